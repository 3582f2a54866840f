package domain

import (
	"fmt"
	"strings"
)

// MatchMode selects how a selection in one group highlights the other group.
type MatchMode string

const (
	MatchAny  MatchMode = "ANY"
	MatchAll  MatchMode = "ALL"
	MatchNone MatchMode = "NONE"
)

// MatchModes lists the modes in cycling order.
var MatchModes = [...]MatchMode{MatchAny, MatchAll, MatchNone}

// ParseMatchMode accepts any/all/none in any case. Empty means ANY.
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(strings.ToUpper(strings.TrimSpace(s))) {
	case "", MatchAny:
		return MatchAny, nil
	case MatchAll:
		return MatchAll, nil
	case MatchNone:
		return MatchNone, nil
	}
	return "", &OpError{
		Op:   "domain.parsematchmode",
		Kind: KindInvalidConfig,
		Err:  fmt.Errorf("%w: unknown match mode %q (expected any|all|none)", ErrInvalidConfig, s),
	}
}

// Next cycles ANY -> ALL -> NONE -> ANY.
func (m MatchMode) Next() MatchMode {
	for i, mm := range MatchModes {
		if mm == m {
			return MatchModes[(i+1)%len(MatchModes)]
		}
	}
	return MatchAny
}

// MatchClasses computes which classes to highlight for the selected labels.
// Codes unknown to the registry are skipped.
func MatchClasses(reg *Registry, mode MatchMode, codes []string) ClassSet {
	var sets []ClassSet
	for _, code := range codes {
		if _, ok := reg.Label(code); !ok {
			continue
		}
		sets = append(sets, reg.ClassesOf(code))
	}

	switch mode {
	case MatchAll:
		if len(sets) == 0 {
			return 0
		}
		acc := sets[0]
		for _, s := range sets[1:] {
			if acc.Disjoint(s) {
				return 0
			}
			acc = acc.Intersect(s)
		}
		return acc
	case MatchNone:
		var seen ClassSet
		for _, s := range sets {
			seen = seen.Union(s)
		}
		return seen.Complement()
	default:
		var seen ClassSet
		for _, s := range sets {
			seen = seen.Union(s)
		}
		return seen
	}
}

// MatchLabels computes which labels to highlight for the selected classes.
// Bits outside the catalog are skipped.
func MatchLabels(reg *Registry, mode MatchMode, bits []ClassBit) LabelSet {
	var sets []LabelSet
	for _, bit := range bits {
		if _, ok := ClassOf(bit); !ok {
			continue
		}
		sets = append(sets, reg.LabelsOf(bit))
	}

	switch mode {
	case MatchAll:
		if len(sets) == 0 {
			return LabelSet{}
		}
		acc := sets[0]
		for _, s := range sets[1:] {
			next := LabelSet{}
			for code := range acc {
				if s.Has(code) {
					next.Add(code)
				}
			}
			if len(next) == 0 {
				return LabelSet{}
			}
			acc = next
		}
		return acc
	case MatchNone:
		seen := unionLabels(sets)
		out := LabelSet{}
		for _, code := range reg.Codes() {
			if !seen.Has(code) {
				out.Add(code)
			}
		}
		return out
	default:
		return unionLabels(sets)
	}
}

func unionLabels(sets []LabelSet) LabelSet {
	out := LabelSet{}
	for _, s := range sets {
		for code := range s {
			out.Add(code)
		}
	}
	return out
}
