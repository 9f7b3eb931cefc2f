package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/gbx/internal/models"
)

const calendarHeader = "Su Mo Tu We Th Fr Sa"

// availabilityIndex flattens the month availability into a day → open lookup.
func availabilityIndex(days []models.MonthDay) map[int]bool {
	idx := make(map[int]bool, len(days))
	for _, d := range days {
		idx[d.Day] = d.Available
	}
	return idx
}

// renderCalendar draws a month grid. Days without availability render dimmed
// and the selected day is highlighted.
func renderCalendar(year int, month time.Month, selected int, days []models.MonthDay) string {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1).Day()
	open := availabilityIndex(days)

	var b strings.Builder
	b.WriteString(styles.title.Render(first.Format("January 2006")))
	b.WriteString("\n")
	b.WriteString(styles.help.Render(calendarHeader))
	b.WriteString("\n")

	col := int(first.Weekday())
	b.WriteString(strings.Repeat("   ", col))

	for day := 1; day <= last; day++ {
		cell := fmt.Sprintf("%2d", day)
		switch {
		case day == selected:
			cell = styles.focus.Render(cell)
		case !open[day]:
			cell = styles.dim.Render(cell)
		}
		b.WriteString(cell)

		col++
		if col == 7 && day != last {
			b.WriteString("\n")
			col = 0
		} else {
			b.WriteString(" ")
		}
	}

	return b.String()
}
