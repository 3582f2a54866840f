package domain

import (
	"fmt"
	"strings"
)

// ClassRow is one row of the wiki's cargo class table.
type ClassRow struct {
	Value     ClassBit
	Name      string
	WagonType string
	Usage     string
	Tips      string
}

// ClassDiffKind tells how a wiki row and the catalog disagree.
type ClassDiffKind string

const (
	DiffMissing ClassDiffKind = "missing" // in the catalog, not on the wiki
	DiffExtra   ClassDiffKind = "extra"   // on the wiki, not in the catalog
	DiffChanged ClassDiffKind = "changed"
)

// ClassDiff is one disagreement between the wiki table and the catalog.
type ClassDiff struct {
	Kind  ClassDiffKind
	Value ClassBit
	Field string
	Wiki  string
	Local string
}

func (d ClassDiff) String() string {
	switch d.Kind {
	case DiffChanged:
		return fmt.Sprintf("0x%04X %s: wiki=%q local=%q", uint16(d.Value), d.Field, d.Wiki, d.Local)
	case DiffExtra:
		return fmt.Sprintf("0x%04X extra on wiki: %s", uint16(d.Value), d.Wiki)
	default:
		return fmt.Sprintf("0x%04X missing on wiki: %s", uint16(d.Value), d.Local)
	}
}

// CompareClassTable reports where the wiki rows differ from the catalog.
// Names and usage are compared case- and whitespace-insensitively; wagon
// types and tips are free text and only reported when the usage also differs.
func CompareClassTable(rows []ClassRow) []ClassDiff {
	seen := map[ClassBit]ClassRow{}
	var out []ClassDiff
	for _, r := range rows {
		if _, dup := seen[r.Value]; dup {
			continue
		}
		seen[r.Value] = r
		c, ok := ClassOf(r.Value)
		if !ok {
			out = append(out, ClassDiff{Kind: DiffExtra, Value: r.Value, Wiki: r.Name})
			continue
		}
		if !sameText(r.Name, c.Name) {
			out = append(out, ClassDiff{Kind: DiffChanged, Value: r.Value, Field: "name", Wiki: r.Name, Local: c.Name})
		}
		if !sameText(r.Usage, c.Usage) {
			out = append(out, ClassDiff{Kind: DiffChanged, Value: r.Value, Field: "usage", Wiki: r.Usage, Local: c.Usage})
			if !sameText(r.Tips, c.Tips) {
				out = append(out, ClassDiff{Kind: DiffChanged, Value: r.Value, Field: "tips", Wiki: r.Tips, Local: c.Tips})
			}
		}
	}
	for _, c := range catalog {
		if _, ok := seen[c.Value]; !ok {
			out = append(out, ClassDiff{Kind: DiffMissing, Value: c.Value, Local: c.Name})
		}
	}
	return out
}

func sameText(a, b string) bool {
	return strings.EqualFold(strings.Join(strings.Fields(a), " "), strings.Join(strings.Fields(b), " "))
}
