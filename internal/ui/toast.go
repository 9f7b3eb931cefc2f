package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/gbx/internal/models"
)

// toastIcon maps a toast kind to its marker glyph. Unknown and blank
// kinds render as info.
func toastIcon(kind models.ToastKind) string {
	switch kind {
	case models.ToastSuccess:
		return "✓"
	case models.ToastError:
		return "✗"
	default:
		return "i"
	}
}

func toastStyle(kind models.ToastKind) lipgloss.Style {
	switch kind {
	case models.ToastSuccess:
		return styles.ok
	case models.ToastError:
		return styles.err
	default:
		return styles.warn
	}
}

// renderToasts formats the active toasts as a right-aligned overlay block.
// Returns the empty string when there is nothing to show.
func renderToasts(messages []models.Toast, width int) string {
	if len(messages) == 0 {
		return ""
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Padding(0, 1)

	var blocks []string
	for _, t := range messages {
		style := toastStyle(t.Kind)
		line := style.Render(fmt.Sprintf("%s %s", toastIcon(t.Kind), t.Title))
		if t.Description != "" {
			line += "\n" + styles.help.Render(t.Description)
		}
		blocks = append(blocks, box.Render(line))
	}

	overlay := strings.Join(blocks, "\n")
	if width > 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, overlay)
	}
	return overlay
}
