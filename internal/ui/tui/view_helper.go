package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/newgrf/nch/internal/domain"
)

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

func renderWarnings(t Theme, warnings []domain.ClassWarning) string {
	if len(warnings) == 0 {
		return t.Help.Render("No warnings")
	}

	var b strings.Builder
	b.WriteString(t.Title.Render(fmt.Sprintf("Warnings (%d)", len(warnings))))
	for _, w := range warnings {
		b.WriteString("\n")
		b.WriteString(t.Warning.Render("! " + w.String()))
	}
	return b.String()
}

func paneHeader(title string, n int) string {
	return fmt.Sprintf("%s (%d)", title, n)
}
