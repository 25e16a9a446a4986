package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmarakulin/learn-logbook/models"
)

const uiDivider = "──────────────────────────────────────────────────────"

const eventTimeLayout = "2006-01-02 15:04"

func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		lines := strings.Split(data, "\n")
		for _, line := range lines {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	} else {
		b.WriteString("  -\n")
	}

	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString("  ")
		b.WriteString(helpStyle.Render(hotKeys))
		b.WriteString("\n")
	}
	b.WriteString("  " + helpStyle.Render("ctrl+c: выход"))

	return b.String()
}

func categoryIcon(category string) string {
	switch category {
	case models.CategoryStudy:
		return "[У]"
	case models.CategoryExam:
		return "[Э]"
	case models.CategoryDeadline:
		return "[Д]"
	case models.CategoryRevision:
		return "[П]"
	default:
		return "[ ]"
	}
}

func formatEventLine(e models.Event) string {
	mark := " "
	if e.Completed {
		mark = "x"
	}
	line := fmt.Sprintf("[%s] %s %s  %s", mark, categoryIcon(e.Category), e.StartTime.Format(eventTimeLayout), e.Title)
	if e.RRule != "" {
		line += " ↻"
	}
	if e.IsBackup {
		line += " (запасной)"
	}
	return line
}

func formatTimeOrDash(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(eventTimeLayout)
}

func valueOrDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}

func fitText(v string, max int) string {
	if max <= 0 || len(v) <= max {
		return v
	}
	if max <= 3 {
		return v[:max]
	}
	return v[:max-3] + "..."
}
