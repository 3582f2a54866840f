package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/newgrf/nch/internal/domain"
	"github.com/newgrf/nch/internal/usecase/export"
)

const (
	groupLabels = iota
	groupClasses
)

const paneCount = 6

// Panes 0-2 hold labels, 3-5 classes, each group ordered like domain.Buckets.
var paneTitles = [paneCount]string{
	"cargo_allow_refit",
	"Unset cargos",
	"cargo_disallow_refit",
	"refittable_cargo_classes",
	"Unset cargo classes",
	"non_refittable_cargo_classes",
}

var copyFormats = map[string]string{
	"t": export.FormatTSV,
	"n": export.FormatNML,
	"g": export.FormatCargotable,
}

type model struct {
	theme Theme
	deps  Deps
	ctx   context.Context
	log   *slog.Logger

	reg *domain.Registry
	sel *domain.Selection

	panes [paneCount]list.Model
	focus int

	markedLabels  map[string]bool
	markedClasses map[domain.ClassBit]bool
	modes         [2]domain.MatchMode
	warnings      []domain.ClassWarning

	spinner spinner.Model
	busy    bool
	toast   string

	workspaceFound bool
	workspaceRoot  string

	width, height int
}

func Run(ctx context.Context, deps Deps) error {
	if ctx == nil {
		ctx = context.Background()
	}
	m := newModel(ctx, deps)
	p := tea.NewProgram(wrapSafe(m, deps.Logger), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func newModel(ctx context.Context, deps Deps) model {
	t := DefaultTheme()

	log := deps.Logger
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	reg := deps.Registry
	if reg == nil {
		reg = domain.NewRegistry()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := model{
		theme:          t,
		deps:           deps,
		ctx:            ctx,
		log:            log,
		reg:            reg,
		sel:            domain.NewSelection(reg),
		markedLabels:   map[string]bool{},
		markedClasses:  map[domain.ClassBit]bool{},
		modes:          [2]domain.MatchMode{domain.MatchAny, domain.MatchAny},
		spinner:        sp,
		workspaceFound: deps.WorkspaceFound,
		workspaceRoot:  deps.WorkspaceRoot,
		focus:          1,
	}

	for i := range m.panes {
		l := list.New(nil, rowDelegate{theme: t}, 0, 0)
		l.SetShowTitle(false)
		l.SetShowStatusBar(false)
		l.SetFilteringEnabled(false)
		l.SetShowHelp(false)
		l.DisableQuitKeybindings()
		m.panes[i] = l
	}

	switch {
	case deps.LoadErr != nil:
		m.toast = "Cached labels ignored: " + userMessage(deps.LoadErr)
	case reg.Len() == 0:
		m.toast = "No labels cached, press r to fetch them"
	}

	m.rebuild()
	return m
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case refreshDoneMsg:
		m.busy = false
		if msg.snap != nil {
			m.reg.Restore(*msg.snap)
			m.pruneMarks()
		}
		switch {
		case msg.err != nil && msg.snap != nil:
			m.log.Warn("tui.refresh.save_failed", "err", msg.err)
			m.toast = fmt.Sprintf("Fetched %d labels but could not save them: %s", msg.report.Labels, userMessage(msg.err))
		case msg.err != nil:
			m.log.Error("tui.refresh.failed", "err", msg.err)
			m.toast = "Refresh failed: " + userMessage(msg.err)
		default:
			m.toast = fmt.Sprintf("Fetched %d labels (was %d)", msg.report.Labels, msg.report.Previous)
		}
		m.rebuild()
		return m, nil

	case copyDoneMsg:
		if msg.err != nil {
			m.log.Error("tui.copy.failed", "format", msg.format, "err", msg.err)
			m.toast = "Copy failed: " + userMessage(msg.err)
		} else {
			m.toast = "Copied " + msg.format + " to clipboard"
		}
		return m, nil

	case initWorkspaceDoneMsg:
		if msg.err != nil {
			m.log.Error("tui.workspace.init.failed", "root", msg.root, "err", msg.err)
			m.toast = "Init failed: " + userMessage(msg.err)
			return m, nil
		}
		m.workspaceFound = true
		m.workspaceRoot = msg.root
		m.toast = "Workspace initialized at " + msg.root
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "tab":
		m.focus = (m.focus + 1) % paneCount
		return m, nil

	case "shift+tab":
		m.focus = (m.focus + paneCount - 1) % paneCount
		return m, nil

	case " ":
		m.toggleMark()
		m.rebuild()
		m.panes[m.focus].CursorDown()
		return m, nil

	case "esc":
		if m.focus/3 == groupLabels {
			m.markedLabels = map[string]bool{}
		} else {
			m.markedClasses = map[domain.ClassBit]bool{}
		}
		m.rebuild()
		return m, nil

	case "<", ">":
		dir := -1
		if key == ">" {
			dir = 1
		}
		m.move(dir)
		m.rebuild()
		return m, nil

	case "m":
		g := m.focus / 3
		m.modes[g] = m.modes[g].Next()
		m.rebuild()
		return m, nil

	case "r":
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.toast = ""
		return m, tea.Batch(
			m.spinner.Tick,
			cmdRefresh(m.ctx, m.deps, m.reg.Snapshot(), m.reg.IgnoreUnknown()),
		)

	case "x":
		if m.busy {
			return m, nil
		}
		if m.deps.Clear == nil {
			m.toast = "Clear is not configured"
			return m, nil
		}
		n := m.reg.Len()
		if err := m.deps.Clear.Execute(m.reg); err != nil {
			m.log.Error("tui.clear.failed", "err", err)
			m.toast = "Cleared labels but could not save: " + userMessage(err)
		} else {
			m.toast = fmt.Sprintf("Cleared %d labels", n)
		}
		m.pruneMarks()
		m.rebuild()
		return m, nil

	case "t", "n", "g":
		return m, cmdCopy(m.deps, copyFormats[key], export.FromSelection(m.sel))

	case "i":
		if m.workspaceFound || strings.TrimSpace(m.workspaceRoot) == "" {
			return m, nil
		}
		return m, cmdInitWorkspace(m.deps, m.workspaceRoot)
	}

	var cmd tea.Cmd
	m.panes[m.focus], cmd = m.panes[m.focus].Update(msg)
	return m, cmd
}

func (m *model) toggleMark() {
	e, ok := m.panes[m.focus].SelectedItem().(entry)
	if !ok {
		return
	}
	if m.focus/3 == groupLabels {
		m.markedLabels[e.code] = !m.markedLabels[e.code]
		if !m.markedLabels[e.code] {
			delete(m.markedLabels, e.code)
		}
		return
	}
	m.markedClasses[e.bit] = !m.markedClasses[e.bit]
	if !m.markedClasses[e.bit] {
		delete(m.markedClasses, e.bit)
	}
}

// move sends the marked entries of the focused pane, or the entry under the
// cursor when none is marked, to the neighbouring bucket.
func (m *model) move(dir int) {
	idx := m.focus % 3
	target := idx + dir
	if target < 0 || target >= len(domain.Buckets) {
		return
	}
	from, to := domain.Buckets[idx], domain.Buckets[target]

	var marked []entry
	for _, it := range m.panes[m.focus].Items() {
		if e, ok := it.(entry); ok && e.marked {
			marked = append(marked, e)
		}
	}
	if len(marked) == 0 {
		if e, ok := m.panes[m.focus].SelectedItem().(entry); ok {
			marked = append(marked, e)
		}
	}
	if len(marked) == 0 {
		return
	}

	var err error
	if m.focus/3 == groupLabels {
		codes := make([]string, 0, len(marked))
		for _, e := range marked {
			codes = append(codes, e.code)
			delete(m.markedLabels, e.code)
		}
		err = m.sel.MoveLabels(from, to, codes...)
	} else {
		bits := make([]domain.ClassBit, 0, len(marked))
		for _, e := range marked {
			bits = append(bits, e.bit)
			delete(m.markedClasses, e.bit)
		}
		err = m.sel.MoveClasses(from, to, bits...)
	}
	if err != nil {
		m.log.Warn("tui.move.skipped", "from", from.String(), "to", to.String(), "err", err)
		m.toast = userMessage(err)
	}
}

// pruneMarks drops marks on labels that left the registry.
func (m *model) pruneMarks() {
	for code := range m.markedLabels {
		if _, ok := m.reg.Label(code); !ok {
			delete(m.markedLabels, code)
		}
	}
}

func (m model) markedLabelCodes() []string {
	var out []string
	for _, code := range m.reg.Codes() {
		if m.markedLabels[code] {
			out = append(out, code)
		}
	}
	return out
}

func (m model) markedClassBits() []domain.ClassBit {
	var out []domain.ClassBit
	for _, c := range domain.Classes() {
		if m.markedClasses[c.Value] {
			out = append(out, c.Value)
		}
	}
	return out
}

// rebuild refills every pane from the selection and recomputes highlights and
// warnings.
func (m *model) rebuild() {
	m.warnings = m.sel.Warnings()
	warned := domain.WarnedClasses(m.warnings)

	var hlClasses domain.ClassSet
	if codes := m.markedLabelCodes(); len(codes) > 0 {
		hlClasses = domain.MatchClasses(m.reg, m.modes[groupLabels], codes)
	}
	var hlLabels domain.LabelSet
	if bits := m.markedClassBits(); len(bits) > 0 {
		hlLabels = domain.MatchLabels(m.reg, m.modes[groupClasses], bits)
	}

	for i, b := range domain.Buckets {
		var labels []list.Item
		for _, lb := range m.sel.Labels(b) {
			e := labelEntry(lb)
			e.marked = m.markedLabels[lb.Code]
			e.highlighted = hlLabels.Has(lb.Code)
			labels = append(labels, e)
		}
		setItems(&m.panes[i], labels)

		var classes []list.Item
		for _, c := range m.sel.Classes(b) {
			e := classEntry(c)
			e.marked = m.markedClasses[c.Value]
			e.highlighted = hlClasses.Has(c.Value)
			e.warned = warned.Has(c.Value)
			classes = append(classes, e)
		}
		setItems(&m.panes[3+i], classes)
	}
}

func setItems(l *list.Model, items []list.Item) {
	idx := l.Index()
	l.SetItems(items)
	switch {
	case len(items) == 0:
		l.ResetSelected()
	case idx >= len(items):
		l.Select(len(items) - 1)
	}
}

func (m *model) resize() {
	colW := (m.width - 4) / 3
	if colW < 20 {
		colW = 20
	}
	listH := (m.height - 16) / 2
	if listH < 3 {
		listH = 3
	}
	for i := range m.panes {
		m.panes[i].SetSize(colW-4, listH)
	}
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(0, 1)
	header := m.theme.Title.Render("nch") + "  " +
		m.theme.Subtitle.Render("NewGRF cargo refit helper")

	var workspaceBanner string
	if m.workspaceFound {
		workspaceBanner = m.theme.Help.Render(fmt.Sprintf("Workspace: %s", m.workspaceRoot))
	} else {
		workspaceBanner = m.theme.Help.Render("No workspace (i creates nch.yaml here)")
	}

	labels := m.theme.Title.Render(fmt.Sprintf("Cargo labels  match %s", m.modes[groupLabels])) +
		"\n" + m.renderGroup(0)
	classes := m.theme.Title.Render(fmt.Sprintf("Cargo classes  match %s", m.modes[groupClasses])) +
		"\n" + m.renderGroup(3)

	status := m.toast
	if m.busy {
		status = m.spinner.View() + " Fetching labels…"
	}

	help := m.theme.Help.Render("tab focus • space mark • </> move • m match mode • r refresh • x clear • t/n/g copy tsv/nml/cargotable • q quit")

	return wrap.Render(strings.Join([]string{
		header,
		workspaceBanner,
		labels,
		classes,
		renderWarnings(m.theme, m.warnings),
		status,
		help,
	}, "\n"))
}

func (m model) renderGroup(first int) string {
	cols := make([]string, 0, 3)
	for i := first; i < first+3; i++ {
		style := m.theme.Card
		if i == m.focus {
			style = m.theme.Focused
		}
		body := m.theme.Title.Render(paneHeader(paneTitles[i], len(m.panes[i].Items()))) + "\n" + m.panes[i].View()
		cols = append(cols, style.Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}
