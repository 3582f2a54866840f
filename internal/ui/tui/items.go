package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/newgrf/nch/internal/domain"
)

// entry is one row of a pane: a label or a class.
type entry struct {
	code   string
	bit    domain.ClassBit
	title  string
	detail string

	marked      bool
	highlighted bool
	warned      bool
}

func (e entry) FilterValue() string { return e.title }

func labelEntry(lb domain.CargoLabel) entry {
	return entry{code: lb.Code, title: lb.Code, detail: lb.Description}
}

func classEntry(c domain.CargoClass) entry {
	return entry{bit: c.Value, title: c.NMLName, detail: c.Name}
}

// rowDelegate renders one line per entry.
type rowDelegate struct {
	theme Theme
}

func (d rowDelegate) Height() int                             { return 1 }
func (d rowDelegate) Spacing() int                            { return 0 }
func (d rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	e, ok := item.(entry)
	if !ok {
		return
	}

	cursor, mark := " ", " "
	if index == m.Index() {
		cursor = "›"
	}
	if e.marked {
		mark = "*"
	}

	text := clampString(e.title+"  "+e.detail, m.Width()-4)

	style := lipgloss.NewStyle()
	switch {
	case e.warned:
		style = d.theme.Warning
	case e.marked:
		style = d.theme.Marked
	}
	if e.highlighted {
		style = style.Underline(true)
	}
	if index == m.Index() {
		style = style.Bold(true)
	}

	fmt.Fprintf(w, "%s%s %s", cursor, mark, style.Render(text))
}
