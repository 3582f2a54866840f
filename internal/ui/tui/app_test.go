package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/newgrf/nch/internal/domain"
	"github.com/newgrf/nch/internal/infra/clipboard"
	"github.com/newgrf/nch/internal/usecase"
)

func testRegistry(t *testing.T) *domain.Registry {
	t.Helper()
	reg := domain.NewRegistry()
	err := reg.Refresh(func() ([]domain.RawLabel, error) {
		return []domain.RawLabel{
			{Code: "COAL", Description: "Coal", Bitmask: 0x0010, Industries: []string{"Temperate"}},
			{Code: "GOOD", Description: "Goods", Bitmask: 0x0220, Industries: []string{"Temperate"}},
			{Code: "OIL_", Description: "Oil", Bitmask: 0x0040, Industries: []string{"Temperate"}},
		}, nil
	})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	return reg
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m model, keys ...tea.KeyMsg) model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		mm, ok := next.(model)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
		m = mm
	}
	return m
}

func newTestModel(t *testing.T, cb *clipboard.Memory) model {
	t.Helper()
	m := newModel(context.Background(), Deps{Registry: testRegistry(t), Clipboard: cb})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 60})
	return next.(model)
}

func TestModel_StartsWithEverythingUnset(t *testing.T) {
	m := newTestModel(t, nil)

	if got := len(m.panes[1].Items()); got != 3 {
		t.Fatalf("expected 3 unset labels, got %d", got)
	}
	if got := len(m.panes[4].Items()); got != len(domain.Classes()) {
		t.Fatalf("expected all classes unset, got %d", got)
	}
	if m.focus != 1 {
		t.Fatalf("expected focus on unset labels, got %d", m.focus)
	}
}

func TestModel_MoveCursorLabelLeft(t *testing.T) {
	m := newTestModel(t, nil)

	m = press(t, m, runes("<"))

	b, err := m.sel.LabelBucket("COAL")
	if err != nil {
		t.Fatalf("LabelBucket: %v", err)
	}
	if b != domain.BucketIncluded {
		t.Fatalf("expected COAL included, got %s", b)
	}
	if got := len(m.panes[0].Items()); got != 1 {
		t.Fatalf("expected 1 allowed label, got %d", got)
	}
}

func TestModel_MoveMarkedLabels(t *testing.T) {
	m := newTestModel(t, nil)

	// Mark COAL and OIL_, skipping GOOD.
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeySpace})
	m = press(t, m, runes(">"))

	for code, want := range map[string]domain.Bucket{
		"COAL": domain.BucketExcluded,
		"GOOD": domain.BucketUnset,
		"OIL_": domain.BucketExcluded,
	} {
		got, err := m.sel.LabelBucket(code)
		if err != nil {
			t.Fatalf("LabelBucket(%s): %v", code, err)
		}
		if got != want {
			t.Errorf("%s: expected %s, got %s", code, want, got)
		}
	}
	if len(m.markedLabels) != 0 {
		t.Errorf("expected marks cleared after move, got %v", m.markedLabels)
	}
}

func TestModel_HighlightFollowsMatchMode(t *testing.T) {
	m := newTestModel(t, nil)

	// Mark COAL {Bulk} and GOOD {PieceGoods, Covered}.
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace}, tea.KeyMsg{Type: tea.KeySpace})

	highlighted := func(m model) domain.ClassSet {
		var set domain.ClassSet
		for _, it := range m.panes[4].Items() {
			if e := it.(entry); e.highlighted {
				set = set.With(e.bit)
			}
		}
		return set
	}

	if got, want := highlighted(m), domain.SetOf(domain.Bulk, domain.PieceGoods, domain.Covered); got != want {
		t.Fatalf("ANY: expected %v, got %v", want.NMLNames(), got.NMLNames())
	}

	m = press(t, m, runes("m"))
	if m.modes[groupLabels] != domain.MatchAll {
		t.Fatalf("expected ALL mode, got %s", m.modes[groupLabels])
	}
	if got := highlighted(m); !got.IsEmpty() {
		t.Fatalf("ALL: expected no highlight, got %v", got.NMLNames())
	}

	m = press(t, m, runes("m"))
	if got, want := highlighted(m), domain.SetOf(domain.Bulk, domain.PieceGoods, domain.Covered).Complement(); got != want {
		t.Fatalf("NONE: expected %v, got %v", want.NMLNames(), got.NMLNames())
	}
}

func TestModel_WarningsFollowClassMoves(t *testing.T) {
	m := newTestModel(t, nil)

	// Focus unset classes; the cursor starts on Passengers.
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != 4 {
		t.Fatalf("expected focus 4, got %d", m.focus)
	}
	m = press(t, m, runes(">"))

	if len(m.warnings) != 1 || m.warnings[0].Class.Value != domain.Passengers {
		t.Fatalf("expected one Passengers warning, got %v", m.warnings)
	}
	e := m.panes[5].Items()[0].(entry)
	if !e.warned {
		t.Error("expected excluded Passengers to render as warned")
	}
	if !strings.Contains(m.View(), "Never exclude this class") {
		t.Error("expected the warning in the view")
	}
}

func TestModel_CopyTSV(t *testing.T) {
	cb := &clipboard.Memory{}
	m := newTestModel(t, cb)

	m = press(t, m, runes("<"))
	_, cmd := m.Update(runes("t"))
	if cmd == nil {
		t.Fatal("expected a copy command")
	}
	msg, ok := cmd().(copyDoneMsg)
	if !ok || msg.err != nil {
		t.Fatalf("unexpected copy result: %#v", msg)
	}
	if cb.Text != "COAL\t \t \t " {
		t.Fatalf("unexpected clipboard text: %q", cb.Text)
	}
}

func TestModel_RefreshDoneReplacesLabels(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m.busy = true

	fresh := domain.RegistrySnapshot{
		Labels: []domain.CargoLabel{
			{Code: "PASS", Description: "Passengers", Bitmask: 0x0001, Industries: []string{"Temperate"}},
		},
		IgnoreUnknown: true,
	}
	next, _ := m.Update(refreshDoneMsg{report: usecase.RefreshReport{Previous: 3, Labels: 1}, snap: &fresh})
	m = next.(model)

	if m.busy {
		t.Error("expected busy cleared")
	}
	if m.reg.Len() != 1 {
		t.Fatalf("expected 1 label, got %d", m.reg.Len())
	}
	if len(m.markedLabels) != 0 {
		t.Errorf("expected stale marks pruned, got %v", m.markedLabels)
	}
	if got := len(m.panes[1].Items()); got != 1 {
		t.Errorf("expected 1 unset label, got %d", got)
	}
	if !strings.Contains(m.toast, "Fetched 1 labels (was 3)") {
		t.Errorf("unexpected toast %q", m.toast)
	}
}

func TestModel_RefreshFailureKeepsLabels(t *testing.T) {
	m := newTestModel(t, nil)
	m.busy = true

	next, _ := m.Update(refreshDoneMsg{err: domain.NewFetchError("wiki.fetch", context.DeadlineExceeded)})
	m = next.(model)

	if m.reg.Len() != 3 {
		t.Fatalf("expected labels kept, got %d", m.reg.Len())
	}
	if !strings.HasPrefix(m.toast, "Refresh failed") {
		t.Errorf("unexpected toast %q", m.toast)
	}
}

func TestSafeModel_ViewDoesNotPanic(t *testing.T) {
	s := wrapSafe(newTestModel(t, nil), nil)
	if s.View() == "" {
		t.Fatal("expected a view")
	}
}

func TestSafeModel_RecoveredPanicClearsMarks(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m.markedClasses[domain.Classes()[0].Value] = true
	m.busy = true
	m.sel = nil

	next, cmd := wrapSafe(m, nil).Update(runes(">"))
	s, ok := next.(safeModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	if cmd != nil {
		t.Error("expected no command after a recovered panic")
	}
	if len(s.m.markedLabels) != 0 || len(s.m.markedClasses) != 0 {
		t.Errorf("expected marks cleared, got labels=%v classes=%v", s.m.markedLabels, s.m.markedClasses)
	}
	if s.m.busy {
		t.Error("expected busy cleared")
	}
	if s.m.toast != "Unexpected error (see logs)" {
		t.Errorf("unexpected toast %q", s.m.toast)
	}
}
