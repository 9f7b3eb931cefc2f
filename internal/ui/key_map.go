package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up        key.Binding
	down      key.Binding
	prevDay   key.Binding
	nextDay   key.Binding
	prevMonth key.Binding
	nextMonth key.Binding
	enter     key.Binding
	back      key.Binding
	profile   key.Binding
	signOut   key.Binding
	dismiss   key.Binding
	quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		prevDay:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev day")),
		nextDay:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
		prevMonth: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev month")),
		nextMonth: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next month")),
		enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		profile:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "profile")),
		signOut:   key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "sign out")),
		dismiss:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss toast")),
		quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.prevDay, k.nextDay, k.prevMonth, k.nextMonth},
		{k.back, k.profile, k.signOut},
		{k.dismiss, k.quit},
	}
}
