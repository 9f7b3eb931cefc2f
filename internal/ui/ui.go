package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/gbx/internal/models"
	"github.com/desertthunder/gbx/internal/services"
	"github.com/desertthunder/gbx/internal/session"
	"github.com/desertthunder/gbx/internal/toasts"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	SignInView ViewState = iota
	DashboardView
	ProfileView
)

// private reports whether a view requires an authenticated session.
func (v ViewState) private() bool {
	return v != SignInView
}

const (
	profileName = iota
	profileEmail
	profileOldPassword
	profilePassword
	profileConfirm
	profileFieldCount
)

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	client     *services.Client
	store      *session.Store
	queue      *toasts.Queue
	providerID string

	view   ViewState
	width  int
	height int
	help   help.Model
	keys   keyMap
	spin   spinner.Model
	busy   bool

	toastChan chan struct{}

	email    textinput.Model
	password textinput.Model
	focus    int

	year      int
	month     time.Month
	day       int
	monthDays []models.MonthDay
	apptList  list.Model
	listReady bool

	profile      []textinput.Model
	profileFocus int
}

// apptItem wraps [models.Appointment] to implement [list.Item].
type apptItem struct {
	appt models.Appointment
}

func (i apptItem) FilterValue() string { return i.appt.User.Name }
func (i apptItem) Title() string       { return i.appt.HourLabel() }
func (i apptItem) Description() string { return i.appt.User.Name }

type toastsChangedMsg struct{}

type signInDoneMsg struct {
	err error
}

type monthFetchedMsg struct {
	year  int
	month time.Month
	days  []models.MonthDay
	err   error
}

type dayFetchedMsg struct {
	date         time.Time
	appointments []models.Appointment
	err          error
}

type profileSavedMsg struct {
	user models.User
	err  error
}

// NewModel creates a new TUI model with the provided dependencies. The queue's
// change callback is wired here so expiring toasts repaint the overlay.
func NewModel(ctx context.Context, client *services.Client, store *session.Store, queue *toasts.Queue, providerID string) *Model {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 120
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	profile := make([]textinput.Model, profileFieldCount)
	for i := range profile {
		profile[i] = textinput.New()
		profile[i].CharLimit = 120
	}
	profile[profileName].Placeholder = "name"
	profile[profileEmail].Placeholder = "email"
	profile[profileOldPassword].Placeholder = "current password"
	profile[profilePassword].Placeholder = "new password"
	profile[profileConfirm].Placeholder = "confirm password"
	for _, i := range []int{profileOldPassword, profilePassword, profileConfirm} {
		profile[i].EchoMode = textinput.EchoPassword
		profile[i].EchoCharacter = '•'
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	now := time.Now()
	m := &Model{
		ctx:        ctx,
		client:     client,
		store:      store,
		queue:      queue,
		providerID: providerID,
		view:       SignInView,
		help:       help.New(),
		keys:       newKeyMap(),
		spin:       sp,
		toastChan:  make(chan struct{}, 1),
		email:      email,
		password:   password,
		year:       now.Year(),
		month:      now.Month(),
		day:        now.Day(),
		profile:    profile,
	}

	queue.SetOnChange(func() {
		select {
		case m.toastChan <- struct{}{}:
		default:
		}
	})

	return m
}

// Init restores the dashboard when a session survived a restart, otherwise
// starts on the sign-in form.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitForToasts()}
	if _, ok := m.store.User(); ok {
		m.view = DashboardView
		cmds = append(cmds, m.fetchMonth(), m.fetchDay())
	}
	return tea.Batch(cmds...)
}

// setView switches views, bouncing unauthenticated users back to sign-in.
func (m *Model) setView(v ViewState) {
	if v.private() {
		if _, ok := m.store.User(); !ok {
			m.queue.Add(models.ToastError, "Authentication required", "Sign in to continue")
			m.view = SignInView
			return
		}
	}
	m.view = v
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.listReady {
			m.apptList.SetSize(msg.Width/2, msg.Height-10)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case toastsChangedMsg:
		return m, m.waitForToasts()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.dismiss) && m.view != SignInView && m.view != ProfileView {
			// Newest toast is last in the queue's insertion order.
			if msgs := m.queue.Messages(); len(msgs) > 0 {
				m.queue.Remove(msgs[len(msgs)-1].ID)
			}
			return m, nil
		}
		switch m.view {
		case SignInView:
			return m.handleSignInKeys(msg)
		case DashboardView:
			return m.handleDashboardKeys(msg)
		case ProfileView:
			return m.handleProfileKeys(msg)
		}

	case signInDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.queue.Add(models.ToastError, "Sign in failed", "Check your credentials and try again")
			return m, nil
		}
		user, _ := m.store.User()
		m.queue.Add(models.ToastSuccess, "Welcome back", user.Name)
		m.password.SetValue("")
		m.setView(DashboardView)
		return m, tea.Batch(m.fetchMonth(), m.fetchDay())

	case monthFetchedMsg:
		if msg.err != nil {
			m.queue.Add(models.ToastError, "Schedule unavailable", "Could not load month availability")
			return m, nil
		}
		if msg.year == m.year && msg.month == m.month {
			m.monthDays = msg.days
		}
		return m, nil

	case dayFetchedMsg:
		if msg.err != nil {
			m.queue.Add(models.ToastError, "Schedule unavailable", "Could not load appointments")
			return m, nil
		}
		items := make([]list.Item, len(msg.appointments))
		for i, appt := range msg.appointments {
			items[i] = apptItem{appt: appt}
		}
		m.apptList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.apptList.Title = msg.date.Format("Monday, Jan 2")
		m.apptList.SetShowHelp(false)
		m.apptList.SetSize(m.width/2, m.height-10)
		m.listReady = true
		return m, nil

	case profileSavedMsg:
		m.busy = false
		if msg.err != nil {
			m.queue.Add(models.ToastError, "Update failed", "An error occurred while updating your profile")
			return m, nil
		}
		if err := m.store.UpdateUser(msg.user); err != nil {
			m.queue.Add(models.ToastError, "Update failed", "Could not persist the updated profile")
			return m, nil
		}
		m.queue.Add(models.ToastSuccess, "Profile updated", "Your information has been saved")
		m.setView(DashboardView)
		return m, nil
	}

	return m, nil
}

// View renders the UI based on the current view state, with the toast
// overlay stacked above the active view.
func (m *Model) View() string {
	var body string
	switch m.view {
	case SignInView:
		body = m.renderSignIn()
	case DashboardView:
		body = m.renderDashboard()
	case ProfileView:
		body = m.renderProfile()
	}

	if overlay := renderToasts(m.queue.Messages(), m.width); overlay != "" {
		return overlay + "\n" + body
	}
	return body
}

func (m *Model) handleSignInKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab", "shift+tab", "up", "down":
		m.focus = (m.focus + 1) % 2
		if m.focus == 0 {
			m.email.Focus()
			m.password.Blur()
		} else {
			m.password.Focus()
			m.email.Blur()
		}
		return m, nil
	case "enter":
		if m.busy {
			return m, nil
		}
		if m.email.Value() == "" || m.password.Value() == "" {
			m.queue.Add(models.ToastError, "Sign in failed", "Email and password are required")
			return m, nil
		}
		m.busy = true
		return m, tea.Batch(m.spin.Tick, m.signIn())
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleDashboardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.profile):
		m.loadProfileForm()
		m.setView(ProfileView)
		return m, nil
	case key.Matches(msg, m.keys.signOut):
		if err := m.store.SignOut(); err != nil {
			m.queue.Add(models.ToastError, "Sign out failed", "Could not clear the stored session")
			return m, nil
		}
		m.queue.Add(models.ToastInfo, "Signed out", "")
		m.view = SignInView
		return m, nil
	case key.Matches(msg, m.keys.prevDay):
		return m.shiftDay(-1)
	case key.Matches(msg, m.keys.nextDay):
		return m.shiftDay(1)
	case key.Matches(msg, m.keys.prevMonth):
		return m.shiftMonth(-1)
	case key.Matches(msg, m.keys.nextMonth):
		return m.shiftMonth(1)
	}

	if m.listReady {
		var cmd tea.Cmd
		m.apptList, cmd = m.apptList.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleProfileKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.setView(DashboardView)
		return m, nil
	case "tab", "down":
		m.focusProfileField((m.profileFocus + 1) % profileFieldCount)
		return m, nil
	case "shift+tab", "up":
		m.focusProfileField((m.profileFocus + profileFieldCount - 1) % profileFieldCount)
		return m, nil
	case "enter":
		if m.busy {
			return m, nil
		}
		if m.profile[profileName].Value() == "" || m.profile[profileEmail].Value() == "" {
			m.queue.Add(models.ToastError, "Update failed", "Name and email are required")
			return m, nil
		}
		m.busy = true
		return m, tea.Batch(m.spin.Tick, m.saveProfile())
	}

	var cmd tea.Cmd
	m.profile[m.profileFocus], cmd = m.profile[m.profileFocus].Update(msg)
	return m, cmd
}

func (m *Model) focusProfileField(i int) {
	m.profile[m.profileFocus].Blur()
	m.profileFocus = i
	m.profile[i].Focus()
}

// loadProfileForm seeds the editable fields with the current user.
func (m *Model) loadProfileForm() {
	user, ok := m.store.User()
	if !ok {
		return
	}
	m.profile[profileName].SetValue(user.Name)
	m.profile[profileEmail].SetValue(user.Email)
	for _, i := range []int{profileOldPassword, profilePassword, profileConfirm} {
		m.profile[i].SetValue("")
	}
	m.focusProfileField(profileName)
}

func (m *Model) shiftDay(delta int) (tea.Model, tea.Cmd) {
	last := time.Date(m.year, m.month, 1, 0, 0, 0, 0, time.Local).AddDate(0, 1, -1).Day()
	next := m.day + delta
	if next < 1 || next > last {
		return m, nil
	}
	m.day = next
	return m, m.fetchDay()
}

func (m *Model) shiftMonth(delta int) (tea.Model, tea.Cmd) {
	next := time.Date(m.year, m.month, 1, 0, 0, 0, 0, time.Local).AddDate(0, delta, 0)
	m.year = next.Year()
	m.month = next.Month()
	m.day = 1
	m.monthDays = nil
	return m, tea.Batch(m.fetchMonth(), m.fetchDay())
}

func (m *Model) signIn() tea.Cmd {
	creds := models.Credentials{Email: m.email.Value(), Password: m.password.Value()}
	return func() tea.Msg {
		return signInDoneMsg{err: m.store.SignIn(m.ctx, creds)}
	}
}

func (m *Model) fetchMonth() tea.Cmd {
	year, month := m.year, m.month
	return func() tea.Msg {
		days, err := m.client.MonthAvailability(m.ctx, m.providerID, year, int(month))
		return monthFetchedMsg{year: year, month: month, days: days, err: err}
	}
}

func (m *Model) fetchDay() tea.Cmd {
	date := time.Date(m.year, m.month, m.day, 0, 0, 0, 0, time.Local)
	return func() tea.Msg {
		appointments, err := m.client.DayAppointments(m.ctx, date)
		return dayFetchedMsg{date: date, appointments: appointments, err: err}
	}
}

func (m *Model) saveProfile() tea.Cmd {
	update := models.ProfileUpdate{
		Name:                 m.profile[profileName].Value(),
		Email:                m.profile[profileEmail].Value(),
		OldPassword:          m.profile[profileOldPassword].Value(),
		Password:             m.profile[profilePassword].Value(),
		PasswordConfirmation: m.profile[profileConfirm].Value(),
	}
	return func() tea.Msg {
		user, err := m.client.UpdateProfile(m.ctx, update)
		return profileSavedMsg{user: user, err: err}
	}
}

func (m *Model) waitForToasts() tea.Cmd {
	return func() tea.Msg {
		<-m.toastChan
		return toastsChangedMsg{}
	}
}

func (m *Model) renderSignIn() string {
	title := styles.title.Render("GoBarber")
	form := fmt.Sprintf("%s\n%s", m.email.View(), m.password.View())

	status := ""
	if m.busy {
		status = fmt.Sprintf("\n%s signing in...", m.spin.View())
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	return fmt.Sprintf("%s\n%s%s\n\n%s", title, form, status, m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderDashboard() string {
	user, _ := m.store.User()
	title := styles.title.Render(fmt.Sprintf("Schedule for %s", user.Name))
	calendar := renderCalendar(m.year, m.month, m.day, m.monthDays)

	agenda := styles.help.Render("No appointments loaded")
	if m.listReady {
		agenda = m.apptList.View()
	}

	helpKeys := []key.Binding{m.keys.prevDay, m.keys.nextDay, m.keys.profile, m.keys.signOut, m.keys.quit}
	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", title, calendar, agenda, m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderProfile() string {
	title := styles.title.Render("My profile")

	var fields string
	for i := range m.profile {
		fields += m.profile[i].View() + "\n"
	}

	status := ""
	if m.busy {
		status = fmt.Sprintf("%s saving...\n", m.spin.View())
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.back, m.keys.quit}
	return fmt.Sprintf("%s\n%s%s\n%s", title, fields, status, m.help.ShortHelpView(helpKeys))
}
