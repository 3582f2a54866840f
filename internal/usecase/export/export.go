// Package export renders a refit selection in the formats NewGRF authors
// paste into their sources: a spreadsheet row, NML properties and a
// cargotable block.
package export

import (
	"fmt"
	"strings"

	"github.com/newgrf/nch/internal/domain"
)

// Format names accepted by Render.
const (
	FormatTSV        = "tsv"
	FormatNML        = "nml"
	FormatCargotable = "cargotable"
)

// Formats lists the supported formats.
var Formats = []string{FormatTSV, FormatNML, FormatCargotable}

// Refit is what a vehicle declares: allowed and disallowed labels and classes.
type Refit struct {
	AllowLabels    []string
	DisallowLabels []string
	Refittable     domain.ClassSet
	NonRefittable  domain.ClassSet
	// Cargotable lists every known label code in registry order.
	Cargotable []string
}

// FromSelection reads the included/excluded buckets of a selection.
func FromSelection(s *domain.Selection) Refit {
	return Refit{
		AllowLabels:    s.LabelCodes(domain.BucketIncluded),
		DisallowLabels: s.LabelCodes(domain.BucketExcluded),
		Refittable:     s.ClassSet(domain.BucketIncluded),
		NonRefittable:  s.ClassSet(domain.BucketExcluded),
		Cargotable:     s.Registry().Codes(),
	}
}

// TSV renders one tab separated row. Empty fields become a single space so
// spreadsheet paste keeps every column. No line terminator is added.
func (r Refit) TSV() string {
	fields := []string{
		joinList(r.AllowLabels),
		joinList(r.DisallowLabels),
		joinList(r.Refittable.NMLNames()),
		joinList(r.NonRefittable.NMLNames()),
	}
	for i, f := range fields {
		if f == "" {
			fields[i] = " "
		}
	}
	return strings.Join(fields, "\t")
}

// NML renders the four refit properties of an NML item block.
func (r Refit) NML() string {
	lines := []string{
		fmt.Sprintf("cargo_allow_refit: [%s];", joinList(r.AllowLabels)),
		fmt.Sprintf("cargo_disallow_refit: [%s];", joinList(r.DisallowLabels)),
		fmt.Sprintf("refittable_cargo_classes: %s;", classExpr(r.Refittable)),
		fmt.Sprintf("non_refittable_cargo_classes: %s;", classExpr(r.NonRefittable)),
	}
	return strings.Join(lines, "\n")
}

// CargotableBlock renders the cargotable declaration.
func (r Refit) CargotableBlock() string {
	return fmt.Sprintf("cargotable {\n    %s\n}", joinList(r.Cargotable))
}

// Render dispatches on a format name.
func (r Refit) Render(format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatTSV:
		return r.TSV(), nil
	case FormatNML:
		return r.NML(), nil
	case FormatCargotable:
		return r.CargotableBlock(), nil
	}
	return "", &domain.OpError{
		Op:   "export.render",
		Kind: domain.KindInvalidConfig,
		Err:  fmt.Errorf("%w: unknown format %q (expected %s)", domain.ErrInvalidConfig, format, strings.Join(Formats, "|")),
	}
}

func classExpr(s domain.ClassSet) string {
	if s.IsEmpty() {
		return "NO_CARGO_CLASS"
	}
	return "bitmask(" + joinList(s.NMLNames()) + ")"
}

func joinList(items []string) string {
	return strings.Join(items, ", ")
}
