package domain

import (
	"time"
)

// FetchFunc yields the raw label records. It is the injected fetch adapter;
// timeouts and retries are its concern.
type FetchFunc func() ([]RawLabel, error)

// Registry owns the label set and the label/class associations derived from it.
// A Registry is owned by a single control flow and is not safe for concurrent use.
type Registry struct {
	ignoreUnknown bool
	now           func() time.Time

	labels      []CargoLabel
	index       map[string]int
	classesOf   map[string]ClassSet
	labelsOf    map[ClassBit]LabelSet
	refreshedAt time.Time
}

type RegistryOption func(*Registry)

// WithIgnoreUnknown drops labels that no industry set uses. Default: true.
func WithIgnoreUnknown(enabled bool) RegistryOption {
	return func(r *Registry) { r.ignoreUnknown = enabled }
}

// WithClock is useful for tests.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		ignoreUnknown: true,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.swap(nil, time.Time{})
	return r
}

// Refresh replaces the label set with what fetch returns. On error the
// previous state is kept untouched and a KindFetch error is returned.
func (r *Registry) Refresh(fetch FetchFunc) error {
	if fetch == nil {
		return &OpError{Op: "registry.refresh", Kind: KindInvalidConfig, Err: ErrInvalidConfig}
	}

	raws, err := fetch()
	if err != nil {
		return NewFetchError("registry.refresh", err)
	}

	labels := make([]CargoLabel, 0, len(raws))
	for _, raw := range raws {
		labels = append(labels, newCargoLabel(raw))
	}
	r.swap(labels, r.now().UTC())
	return nil
}

// Clear empties the label set.
func (r *Registry) Clear() {
	r.swap(nil, time.Time{})
}

// swap builds the complete new state before assigning it, so readers never
// observe a half-built association.
func (r *Registry) swap(candidates []CargoLabel, refreshedAt time.Time) {
	labels := make([]CargoLabel, 0, len(candidates))
	index := make(map[string]int, len(candidates))
	classesOf := make(map[string]ClassSet, len(candidates))
	labelsOf := make(map[ClassBit]LabelSet, len(catalog))
	for _, c := range catalog {
		labelsOf[c.Value] = LabelSet{}
	}

	for _, lb := range candidates {
		if lb.Code == "" {
			continue
		}
		if r.ignoreUnknown && !lb.Known() {
			continue
		}
		if _, dup := index[lb.Code]; dup {
			continue
		}

		index[lb.Code] = len(labels)
		labels = append(labels, lb)

		var set ClassSet
		for _, c := range catalog {
			if lb.Bitmask&uint16(c.Value) != 0 {
				set = set.With(c.Value)
				labelsOf[c.Value].Add(lb.Code)
			}
		}
		classesOf[lb.Code] = set
	}

	r.labels = labels
	r.index = index
	r.classesOf = classesOf
	r.labelsOf = labelsOf
	r.refreshedAt = refreshedAt
}

// IgnoreUnknown reports whether unknown labels are filtered.
func (r *Registry) IgnoreUnknown() bool { return r.ignoreUnknown }

// RefreshedAt is the time of the last successful refresh (zero if never).
func (r *Registry) RefreshedAt() time.Time { return r.refreshedAt }

// Classes returns the fixed class catalog.
func (r *Registry) Classes() []CargoClass { return Classes() }

// Labels returns the label set in registry order. The slice is a copy.
func (r *Registry) Labels() []CargoLabel {
	out := make([]CargoLabel, len(r.labels))
	copy(out, r.labels)
	return out
}

// Len is the number of labels.
func (r *Registry) Len() int { return len(r.labels) }

// Label looks up a label by code.
func (r *Registry) Label(code string) (CargoLabel, bool) {
	i, ok := r.index[code]
	if !ok {
		return CargoLabel{}, false
	}
	return r.labels[i], true
}

// ClassesOf returns the classes associated with a label. Unknown codes yield
// an empty set.
func (r *Registry) ClassesOf(code string) ClassSet {
	return r.classesOf[code]
}

// LabelsOf returns the codes of the labels associated with a class.
// The returned set is a copy.
func (r *Registry) LabelsOf(bit ClassBit) LabelSet {
	src := r.labelsOf[bit]
	out := make(LabelSet, len(src))
	for code := range src {
		out.Add(code)
	}
	return out
}

// Ordered lists the labels of set in registry order, skipping unknown codes.
func (r *Registry) Ordered(set LabelSet) []CargoLabel {
	out := make([]CargoLabel, 0, len(set))
	for _, lb := range r.labels {
		if set.Has(lb.Code) {
			out = append(out, lb)
		}
	}
	return out
}

// Codes lists every label code in registry order.
func (r *Registry) Codes() []string {
	out := make([]string, 0, len(r.labels))
	for _, lb := range r.labels {
		out = append(out, lb.Code)
	}
	return out
}

// RegistrySnapshot is the persistable state of a registry. Associations are
// not part of it: they are always recomputed from the bitmasks.
type RegistrySnapshot struct {
	Labels        []CargoLabel
	IgnoreUnknown bool
	RefreshedAt   time.Time
}

// Snapshot captures the current label set.
func (r *Registry) Snapshot() RegistrySnapshot {
	return RegistrySnapshot{
		Labels:        r.Labels(),
		IgnoreUnknown: r.ignoreUnknown,
		RefreshedAt:   r.refreshedAt,
	}
}

// Restore replaces the state with a snapshot, applying this registry's
// unknown-label filter.
func (r *Registry) Restore(snap RegistrySnapshot) {
	r.swap(snap.Labels, snap.RefreshedAt)
}
