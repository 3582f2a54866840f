package clipboard

import "testing"

func TestMemory(t *testing.T) {
	var m Memory
	if err := m.WriteText("COAL"); err != nil {
		t.Fatalf("WriteText error: %v", err)
	}
	if m.Text != "COAL" {
		t.Fatalf("expected COAL, got %q", m.Text)
	}
}
