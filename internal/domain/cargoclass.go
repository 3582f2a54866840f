package domain

import (
	"fmt"
	"strings"
)

// ClassBit is the flag value of a single cargo class.
type ClassBit uint16

const (
	Passengers   ClassBit = 0x0001
	Mail         ClassBit = 0x0002
	Express      ClassBit = 0x0004
	Armored      ClassBit = 0x0008
	Bulk         ClassBit = 0x0010
	PieceGoods   ClassBit = 0x0020
	Liquid       ClassBit = 0x0040
	Refrigerated ClassBit = 0x0080
	Hazardous    ClassBit = 0x0100
	Covered      ClassBit = 0x0200
	Oversized    ClassBit = 0x0400
	Powderized   ClassBit = 0x0800
	NotPourable  ClassBit = 0x1000
)

// CargoClass describes one of the fixed cargo classes.
// Value is the identity; the text fields are advisory and come from the
// NewGRF specs wiki.
type CargoClass struct {
	Value     ClassBit
	Name      string
	NMLName   string
	WagonType string
	Usage     string
	Tips      string
}

func (c CargoClass) String() string { return c.Name }

var catalog = [...]CargoClass{
	{
		Value:     Passengers,
		Name:      "Passengers",
		NMLName:   "CC_PASSENGERS",
		WagonType: "passenger wagon",
		Usage:     "OR",
		Tips:      "never exclude",
	},
	{
		Value:     Mail,
		Name:      "Mail",
		NMLName:   "CC_MAIL",
		WagonType: "closed or mail wagon",
		Usage:     "OR",
		Tips:      "never exclude",
	},
	{
		Value:     Express,
		Name:      "Express",
		NMLName:   "CC_EXPRESS",
		WagonType: "closed or mail wagon",
		Usage:     "OR",
		Tips:      "never exclude, suitable for airplane or maglev",
	},
	{
		Value:     Armored,
		Name:      "Armored",
		NMLName:   "CC_ARMOURED",
		WagonType: "armored or mail wagon",
		Usage:     "OR",
		Tips:      "never exclude",
	},
	{
		Value:     Bulk,
		Name:      "Bulk (Uncountable)",
		NMLName:   "CC_BULK",
		WagonType: "open or hopper wagon",
		Usage:     "OR",
		Tips:      "never exclude",
	},
	{
		Value:     PieceGoods,
		Name:      "Piece Goods (Countable)",
		NMLName:   "CC_PIECE_GOODS",
		WagonType: "closed or open wagon",
		Usage:     "OR",
		Tips:      "never exclude",
	},
	{
		Value:     Liquid,
		Name:      "Liquid",
		NMLName:   "CC_LIQUID",
		WagonType: "tank wagon",
		Usage:     "OR",
		Tips:      "never exclude",
	},
	{
		Value:     Refrigerated,
		Name:      "Refrigerated",
		NMLName:   "CC_REFRIGERATED",
		WagonType: "refrigerated wagon",
		Usage:     "OR/AND NOT",
		Tips:      "only exclude, when Piece Goods included",
	},
	{
		Value:     Hazardous,
		Name:      "Hazardous",
		NMLName:   "CC_HAZARDOUS",
		WagonType: "unknown",
		Usage:     "OR/AND NOT",
		Tips:      "only exclude, when special wagons are provided.",
	},
	{
		Value:     Covered,
		Name:      "Covered (weather protected)",
		NMLName:   "CC_COVERED",
		WagonType: "closed wagon, any other wagon with tarpaulin or weather cover",
		Usage:     "OR/AND NOT",
		Tips:      "do not exclude for Liquid",
	},
	{
		Value:     Oversized,
		Name:      "Oversized",
		NMLName:   "CC_OVERSIZED",
		WagonType: "stake/flatbed wagon",
		Usage:     "OR/AND NOT",
		Tips:      "only exclude, when Piece Goods included",
	},
	{
		Value:     Powderized,
		Name:      "Powderized (moist protected)",
		NMLName:   "CC_POWDERIZED",
		WagonType: "powder/silo wagon",
		Usage:     "OR/AND NOT",
		Tips:      "only exclude, when Bulk included",
	},
	{
		Value:     NotPourable,
		Name:      "Not Pourable",
		NMLName:   "CC_NON_POURABLE",
		WagonType: "open wagon, but not hopper wagon",
		Usage:     "AND NOT",
		Tips:      "only exclude, when Bulk included",
	},
}

// AllClasses is the set of every catalog class.
const AllClasses ClassSet = 0x1FFF

// Classes returns the fixed, ordered catalog. The returned slice is a copy.
func Classes() []CargoClass {
	out := make([]CargoClass, len(catalog))
	copy(out, catalog[:])
	return out
}

// ClassOf returns the catalog entry for a flag value.
func ClassOf(bit ClassBit) (CargoClass, bool) {
	for _, c := range catalog {
		if c.Value == bit {
			return c, true
		}
	}
	return CargoClass{}, false
}

// ParseClass resolves a class from user input. It accepts the NML name
// ("CC_BULK"), the NML name without prefix ("bulk") or the display name,
// case-insensitively.
func ParseClass(s string) (CargoClass, error) {
	in := strings.ToUpper(strings.TrimSpace(s))
	if in == "" {
		return CargoClass{}, &OpError{Op: "domain.parseclass", Kind: KindInvalidConfig, Err: ErrInvalidConfig}
	}
	bare := strings.TrimPrefix(in, "CC_")
	for _, c := range catalog {
		nml := c.NMLName
		if in == nml || bare == strings.TrimPrefix(nml, "CC_") || in == strings.ToUpper(c.Name) {
			return c, nil
		}
	}
	// Accept the spelling differences between wiki and NML.
	alias := map[string]ClassBit{"ARMORED": Armored, "NOT_POURABLE": NotPourable}
	if bit, ok := alias[bare]; ok {
		c, _ := ClassOf(bit)
		return c, nil
	}
	return CargoClass{}, &OpError{
		Op:   "domain.parseclass",
		Kind: KindNotFound,
		Err:  fmt.Errorf("unknown cargo class %q: %w", s, ErrNotFound),
	}
}

// ClassSet is a set of cargo classes stored as a bitmask.
type ClassSet uint16

// SetOf builds a set from individual flags.
func SetOf(bits ...ClassBit) ClassSet {
	var s ClassSet
	for _, b := range bits {
		s |= ClassSet(b)
	}
	return s
}

// ClassesFromMask keeps only the catalog bits of a raw label bitmask.
func ClassesFromMask(mask uint16) ClassSet {
	return ClassSet(mask) & AllClasses
}

func (s ClassSet) Has(bit ClassBit) bool { return s&ClassSet(bit) != 0 }

func (s ClassSet) With(bit ClassBit) ClassSet { return s | ClassSet(bit) }

func (s ClassSet) Without(bit ClassBit) ClassSet { return s &^ ClassSet(bit) }

func (s ClassSet) Union(o ClassSet) ClassSet { return s | o }

func (s ClassSet) Intersect(o ClassSet) ClassSet { return s & o }

func (s ClassSet) Disjoint(o ClassSet) bool { return s&o == 0 }

func (s ClassSet) IsEmpty() bool { return s&AllClasses == 0 }

// Complement returns the catalog classes not in s.
func (s ClassSet) Complement() ClassSet { return AllClasses &^ s }

// Len counts the catalog classes in s.
func (s ClassSet) Len() int {
	n := 0
	for _, c := range catalog {
		if s.Has(c.Value) {
			n++
		}
	}
	return n
}

// Classes lists the members in catalog order.
func (s ClassSet) Classes() []CargoClass {
	out := make([]CargoClass, 0, s.Len())
	for _, c := range catalog {
		if s.Has(c.Value) {
			out = append(out, c)
		}
	}
	return out
}

// NMLNames lists the members' NML names in catalog order.
func (s ClassSet) NMLNames() []string {
	cs := s.Classes()
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.NMLName)
	}
	return out
}
