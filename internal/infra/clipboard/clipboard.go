package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/newgrf/nch/internal/domain"
	"github.com/newgrf/nch/internal/ports"
)

// System writes to the desktop clipboard.
type System struct{}

var _ ports.Clipboard = System{}

func (System) WriteText(text string) error {
	if clipboard.Unsupported {
		return &domain.OpError{
			Op:   "clipboard.write",
			Kind: domain.KindExecution,
			Err:  fmt.Errorf("%w: no clipboard utility available (install xclip, xsel or wl-clipboard)", domain.ErrExecution),
		}
	}
	if err := clipboard.WriteAll(text); err != nil {
		return &domain.OpError{Op: "clipboard.write", Kind: domain.KindExecution, Err: fmt.Errorf("%w: %w", domain.ErrExecution, err)}
	}
	return nil
}

// Memory keeps the last written text. It stands in for the system clipboard
// in headless runs and tests.
type Memory struct {
	Text string
}

var _ ports.Clipboard = (*Memory)(nil)

func (m *Memory) WriteText(text string) error {
	m.Text = text
	return nil
}
