package domain

import "strings"

// RawLabel is one record produced by a label source, before filtering.
type RawLabel struct {
	Code        string
	Description string
	Bitmask     uint16
	Industries  []string
}

// CargoLabel is a cargo type code known to the registry.
type CargoLabel struct {
	Code        string
	Description string
	// Bitmask is the raw two-byte class mask from the wiki. It may carry bits
	// outside the catalog; those never associate with a class.
	Bitmask    uint16
	Industries []string
}

func (l CargoLabel) String() string {
	return l.Code + " - " + l.Description
}

// Known reports whether any industry set produces or accepts the label.
func (l CargoLabel) Known() bool {
	return len(l.Industries) > 0
}

func newCargoLabel(raw RawLabel) CargoLabel {
	industries := make([]string, 0, len(raw.Industries))
	for _, ind := range raw.Industries {
		if s := strings.TrimSpace(ind); s != "" {
			industries = append(industries, s)
		}
	}
	return CargoLabel{
		Code:        strings.TrimSpace(raw.Code),
		Description: strings.TrimSpace(raw.Description),
		Bitmask:     raw.Bitmask,
		Industries:  industries,
	}
}

// LabelSet is a set of label codes.
type LabelSet map[string]struct{}

// NewLabelSet builds a set from codes.
func NewLabelSet(codes ...string) LabelSet {
	s := make(LabelSet, len(codes))
	for _, c := range codes {
		s[c] = struct{}{}
	}
	return s
}

func (s LabelSet) Has(code string) bool {
	_, ok := s[code]
	return ok
}

func (s LabelSet) Add(code string) { s[code] = struct{}{} }
