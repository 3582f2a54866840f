package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedFetch(raws ...RawLabel) FetchFunc {
	return func() ([]RawLabel, error) { return raws, nil }
}

func sampleRaws() []RawLabel {
	return []RawLabel{
		{Code: "PASS", Description: "Passengers", Bitmask: 0x0001, Industries: []string{"default"}},
		{Code: "COAL", Description: "Coal", Bitmask: 0x0010, Industries: []string{"default", "firs"}},
		{Code: "GOOD", Description: "Goods", Bitmask: 0x0220, Industries: []string{"default"}},
		{Code: "OIL_", Description: "Oil", Bitmask: 0x0040, Industries: []string{"default"}},
		{Code: "MIXD", Description: "Mixed", Bitmask: 0x0031, Industries: []string{"yeti"}},
		{Code: "XUNK", Description: "Unknown", Bitmask: 0x0020},
	}
}

func TestRegistry_AssociationInvariant(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Refresh(fixedFetch(sampleRaws()...)))

	for _, lb := range reg.Labels() {
		for _, c := range reg.Classes() {
			want := lb.Bitmask&uint16(c.Value) != 0
			assert.Equal(t, want, reg.ClassesOf(lb.Code).Has(c.Value), "label=%s class=%s", lb.Code, c.NMLName)
			assert.Equal(t, want, reg.LabelsOf(c.Value).Has(lb.Code), "class=%s label=%s", c.NMLName, lb.Code)
		}
	}
}

func TestRegistry_MaskExample(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Refresh(fixedFetch(sampleRaws()...)))

	assert.Equal(t, SetOf(Passengers, Bulk, PieceGoods), reg.ClassesOf("MIXD"))
	assert.Equal(t, NewLabelSet("COAL", "MIXD"), reg.LabelsOf(Bulk))
}

func TestRegistry_IgnoreUnknown(t *testing.T) {
	reg := NewRegistry(WithIgnoreUnknown(true))
	require.NoError(t, reg.Refresh(fixedFetch(sampleRaws()...)))

	_, ok := reg.Label("XUNK")
	assert.False(t, ok)
	assert.Equal(t, []string{"PASS", "COAL", "GOOD", "OIL_", "MIXD"}, reg.Codes())
	assert.False(t, reg.LabelsOf(PieceGoods).Has("XUNK"))

	keep := NewRegistry(WithIgnoreUnknown(false))
	require.NoError(t, keep.Refresh(fixedFetch(sampleRaws()...)))
	_, ok = keep.Label("XUNK")
	assert.True(t, ok)
	assert.True(t, keep.LabelsOf(PieceGoods).Has("XUNK"))
}

func TestRegistry_RefreshReplacesNotMerges(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Refresh(fixedFetch(sampleRaws()...)))
	require.NoError(t, reg.Refresh(fixedFetch(
		RawLabel{Code: "WOOD", Description: "Wood", Bitmask: 0x0400, Industries: []string{"default"}},
	)))

	assert.Equal(t, []string{"WOOD"}, reg.Codes())
	assert.Empty(t, reg.LabelsOf(Bulk))
	assert.Equal(t, ClassSet(0), reg.ClassesOf("COAL"))
	assert.Equal(t, NewLabelSet("WOOD"), reg.LabelsOf(Oversized))
}

func TestRegistry_FetchFailureKeepsState(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	reg := NewRegistry(WithClock(func() time.Time { return at }))
	require.NoError(t, reg.Refresh(fixedFetch(sampleRaws()...)))

	cause := errors.New("wiki unreachable")
	err := reg.Refresh(func() ([]RawLabel, error) { return nil, cause })

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFetch))
	assert.True(t, errors.Is(err, cause))
	assert.True(t, IsKind(err, KindFetch))

	assert.Equal(t, 5, reg.Len())
	assert.Equal(t, at, reg.RefreshedAt())
	assert.True(t, reg.LabelsOf(Bulk).Has("COAL"))
}

func TestRegistry_NilFetch(t *testing.T) {
	err := NewRegistry().Refresh(nil)
	assert.True(t, IsKind(err, KindInvalidConfig))
}

func TestRegistry_DuplicateCodesKeepFirst(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Refresh(fixedFetch(
		RawLabel{Code: "COAL", Description: "Coal", Bitmask: 0x0010, Industries: []string{"a"}},
		RawLabel{Code: "COAL", Description: "Coal (FIRS)", Bitmask: 0x0020, Industries: []string{"b"}},
	)))

	lb, ok := reg.Label("COAL")
	require.True(t, ok)
	assert.Equal(t, "Coal", lb.Description)
	assert.Equal(t, SetOf(Bulk), reg.ClassesOf("COAL"))
}

func TestRegistry_SnapshotRestoreRecomputes(t *testing.T) {
	src := NewRegistry(WithIgnoreUnknown(false))
	require.NoError(t, src.Refresh(fixedFetch(sampleRaws()...)))
	snap := src.Snapshot()

	dst := NewRegistry(WithIgnoreUnknown(true))
	dst.Restore(snap)

	assert.Equal(t, 5, dst.Len())
	assert.Equal(t, SetOf(Passengers, Bulk, PieceGoods), dst.ClassesOf("MIXD"))
	assert.Equal(t, snap.RefreshedAt, dst.RefreshedAt())
}

func TestRegistry_Clear(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Refresh(fixedFetch(sampleRaws()...)))
	reg.Clear()

	assert.Zero(t, reg.Len())
	assert.True(t, reg.RefreshedAt().IsZero())
	for _, c := range reg.Classes() {
		assert.Empty(t, reg.LabelsOf(c.Value))
	}
}

func TestRegistry_LabelsOfReturnsCopy(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Refresh(fixedFetch(sampleRaws()...)))

	set := reg.LabelsOf(Bulk)
	set.Add("FAKE")
	assert.False(t, reg.LabelsOf(Bulk).Has("FAKE"))
}
