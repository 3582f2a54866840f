package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newgrf/nch/internal/domain"
)

func TestTSV_EmptyFieldsBecomeSpace(t *testing.T) {
	r := Refit{
		AllowLabels: []string{"COAL", "GOOD"},
		Refittable:  domain.SetOf(domain.Bulk),
	}
	assert.Equal(t, "COAL, GOOD\t \tCC_BULK\t ", r.TSV())
}

func TestTSV_AllFilled(t *testing.T) {
	r := Refit{
		AllowLabels:    []string{"OIL_"},
		DisallowLabels: []string{"MILK", "WATR"},
		Refittable:     domain.SetOf(domain.Liquid),
		NonRefittable:  domain.SetOf(domain.Hazardous, domain.Refrigerated),
	}
	assert.Equal(t, "OIL_\tMILK, WATR\tCC_LIQUID\tCC_REFRIGERATED, CC_HAZARDOUS", r.TSV())
}

func TestNML(t *testing.T) {
	r := Refit{
		AllowLabels:   []string{"COAL"},
		Refittable:    domain.SetOf(domain.PieceGoods, domain.Bulk),
		NonRefittable: 0,
	}
	want := "cargo_allow_refit: [COAL];\n" +
		"cargo_disallow_refit: [];\n" +
		"refittable_cargo_classes: bitmask(CC_BULK, CC_PIECE_GOODS);\n" +
		"non_refittable_cargo_classes: NO_CARGO_CLASS;"
	assert.Equal(t, want, r.NML())
}

func TestCargotable(t *testing.T) {
	r := Refit{Cargotable: []string{"PASS", "COAL", "MAIL"}}
	assert.Equal(t, "cargotable {\n    PASS, COAL, MAIL\n}", r.CargotableBlock())
}

func TestFromSelection(t *testing.T) {
	reg := domain.NewRegistry()
	require.NoError(t, reg.Refresh(func() ([]domain.RawLabel, error) {
		return []domain.RawLabel{
			{Code: "PASS", Description: "Passengers", Bitmask: 0x0001, Industries: []string{"d"}},
			{Code: "COAL", Description: "Coal", Bitmask: 0x0010, Industries: []string{"d"}},
			{Code: "GOOD", Description: "Goods", Bitmask: 0x0220, Industries: []string{"d"}},
		}, nil
	}))
	s := domain.NewSelection(reg)
	require.NoError(t, s.MoveLabels(domain.BucketUnset, domain.BucketIncluded, "GOOD", "COAL"))
	require.NoError(t, s.MoveClasses(domain.BucketUnset, domain.BucketIncluded, domain.Bulk))

	r := FromSelection(s)
	assert.Equal(t, "COAL, GOOD\t \tCC_BULK\t ", r.TSV())
	assert.Equal(t, []string{"PASS", "COAL", "GOOD"}, r.Cargotable)
}

func TestRender(t *testing.T) {
	r := Refit{Cargotable: []string{"COAL"}}
	for _, f := range Formats {
		_, err := r.Render(f)
		require.NoError(t, err, f)
	}
	out, err := r.Render(" NML ")
	require.NoError(t, err)
	assert.Equal(t, r.NML(), out)

	_, err = r.Render("csv")
	assert.True(t, domain.IsKind(err, domain.KindInvalidConfig))
}
