package domain

import (
	"fmt"
	"strings"
)

// Bucket is one of the three partitions an element can be in.
type Bucket int

const (
	BucketIncluded Bucket = iota
	BucketUnset
	BucketExcluded
)

// Buckets lists the partitions in display order (left to right).
var Buckets = [...]Bucket{BucketIncluded, BucketUnset, BucketExcluded}

func (b Bucket) String() string {
	switch b {
	case BucketIncluded:
		return "included"
	case BucketUnset:
		return "unset"
	case BucketExcluded:
		return "excluded"
	default:
		return fmt.Sprintf("bucket(%d)", int(b))
	}
}

func (b Bucket) valid() bool {
	return b >= BucketIncluded && b <= BucketExcluded
}

// Selection keeps every label and every class of a registry in exactly one
// bucket. It starts with everything unset.
type Selection struct {
	reg     *Registry
	labels  map[string]Bucket
	classes map[ClassBit]Bucket
}

// NewSelection builds an all-unset selection over reg.
func NewSelection(reg *Registry) *Selection {
	s := &Selection{reg: reg}
	s.Reset()
	return s
}

// Registry returns the registry the selection partitions.
func (s *Selection) Registry() *Registry { return s.reg }

// Reset puts every current registry element back into the unset bucket.
func (s *Selection) Reset() {
	s.labels = make(map[string]Bucket, s.reg.Len())
	for _, code := range s.reg.Codes() {
		s.labels[code] = BucketUnset
	}
	s.classes = make(map[ClassBit]Bucket, len(catalog))
	for _, c := range catalog {
		s.classes[c.Value] = BucketUnset
	}
}

// sync keeps the label buckets aligned with the registry: labels that appeared
// since the last call start unset, labels that disappeared are dropped.
func (s *Selection) sync() {
	if len(s.labels) == s.reg.Len() {
		stale := false
		for code := range s.labels {
			if _, ok := s.reg.index[code]; !ok {
				stale = true
				break
			}
		}
		if !stale {
			return
		}
	}
	next := make(map[string]Bucket, s.reg.Len())
	for _, code := range s.reg.Codes() {
		b, ok := s.labels[code]
		if !ok {
			b = BucketUnset
		}
		next[code] = b
	}
	s.labels = next
}

// MoveLabels moves the given labels from one bucket to another. Labels that are
// not in from are skipped; after every other label has been moved, a
// KindNotFound error names the skipped ones.
func (s *Selection) MoveLabels(from, to Bucket, codes ...string) error {
	if !from.valid() || !to.valid() {
		return invalidBuckets("selection.movelabels", from, to)
	}
	s.sync()

	var missing []string
	for _, code := range codes {
		if b, ok := s.labels[code]; !ok || b != from {
			missing = append(missing, code)
			continue
		}
		s.labels[code] = to
	}
	return notFound("selection.movelabels", from, missing)
}

// MoveClasses is MoveLabels for classes.
func (s *Selection) MoveClasses(from, to Bucket, bits ...ClassBit) error {
	if !from.valid() || !to.valid() {
		return invalidBuckets("selection.moveclasses", from, to)
	}

	var missing []string
	for _, bit := range bits {
		if b, ok := s.classes[bit]; !ok || b != from {
			missing = append(missing, fmt.Sprintf("0x%04X", uint16(bit)))
			continue
		}
		s.classes[bit] = to
	}
	return notFound("selection.moveclasses", from, missing)
}

// LabelBucket reports where a label currently is.
func (s *Selection) LabelBucket(code string) (Bucket, error) {
	s.sync()
	b, ok := s.labels[code]
	if !ok {
		return 0, notFound("selection.labelbucket", BucketUnset, []string{code})
	}
	return b, nil
}

// Labels lists the labels of a bucket in registry order.
func (s *Selection) Labels(b Bucket) []CargoLabel {
	s.sync()
	var out []CargoLabel
	for _, lb := range s.reg.labels {
		if s.labels[lb.Code] == b {
			out = append(out, lb)
		}
	}
	return out
}

// LabelCodes is Labels reduced to codes.
func (s *Selection) LabelCodes(b Bucket) []string {
	lbs := s.Labels(b)
	out := make([]string, 0, len(lbs))
	for _, lb := range lbs {
		out = append(out, lb.Code)
	}
	return out
}

// Classes lists the classes of a bucket in catalog order.
func (s *Selection) Classes(b Bucket) []CargoClass {
	return s.ClassSet(b).Classes()
}

// ClassSet returns the classes of a bucket as a set.
func (s *Selection) ClassSet(b Bucket) ClassSet {
	var set ClassSet
	for bit, where := range s.classes {
		if where == b {
			set = set.With(bit)
		}
	}
	return set
}

// Warnings evaluates the rulebook against the current class buckets.
func (s *Selection) Warnings() []ClassWarning {
	return EvaluateWarnings(s.ClassSet(BucketIncluded), s.ClassSet(BucketExcluded))
}

// ClassWarning is a rulebook finding for one class.
type ClassWarning struct {
	Class   CargoClass
	Message string
}

func (w ClassWarning) String() string {
	return w.Class.Name + ": " + w.Message
}

// EvaluateWarnings checks every included class against the exclusions and
// every excluded class against the inclusions. Inclusion findings come first,
// each group in catalog order.
func EvaluateWarnings(included, excluded ClassSet) []ClassWarning {
	var out []ClassWarning
	for _, c := range included.Classes() {
		if msg := CheckInclusion(c.Value, excluded); msg != "" {
			out = append(out, ClassWarning{Class: c, Message: msg})
		}
	}
	for _, c := range excluded.Classes() {
		if msg := CheckExclusion(c.Value, included); msg != "" {
			out = append(out, ClassWarning{Class: c, Message: msg})
		}
	}
	return out
}

// WarnedClasses collects the classes that have at least one warning.
func WarnedClasses(ws []ClassWarning) ClassSet {
	var set ClassSet
	for _, w := range ws {
		set = set.With(w.Class.Value)
	}
	return set
}

func invalidBuckets(op string, from, to Bucket) error {
	return &OpError{
		Op:   op,
		Kind: KindInvalidConfig,
		Err:  fmt.Errorf("%w: move %s -> %s", ErrInvalidConfig, from, to),
	}
}

func notFound(op string, from Bucket, missing []string) error {
	if len(missing) == 0 {
		return nil
	}
	return &OpError{
		Op:   op,
		Kind: KindNotFound,
		Err:  fmt.Errorf("%w in %s: %s", ErrNotFound, from, strings.Join(missing, ", ")),
	}
}
