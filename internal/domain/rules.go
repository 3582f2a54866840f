package domain

// Warning texts of the refit compatibility table published on the NewGRF specs
// wiki (Action0/Cargos, CargoClasses).
const (
	WarnNeverInclude           = "Never include this class"
	WarnNeverExclude           = "Never exclude this class"
	WarnExcludeNeedsPieceGoods = "Only exclude when Piece Goods is included"
	WarnExcludeNeedsWagons     = "Only exclude when special wagons are provided"
	WarnKeepCoveredForLiquid   = "Do not exclude for Liquid"
	WarnExcludeNeedsBulk       = "Only exclude when Bulk is included"
)

var neverExclude = SetOf(Passengers, Mail, Express, Armored, Bulk, PieceGoods, Liquid)

// CheckInclusion reports whether including candidate is safe. It returns the
// empty string when there is nothing to warn about.
//
// currentExclusions is not consulted by any rule today; it is part of the
// signature so both checks take the opposite partition.
func CheckInclusion(candidate ClassBit, currentExclusions ClassSet) string {
	if candidate == NotPourable {
		return WarnNeverInclude
	}
	return ""
}

// CheckExclusion reports whether excluding candidate is safe given the classes
// currently included. Rules are tried in table order and only the first match
// is reported.
func CheckExclusion(candidate ClassBit, currentInclusions ClassSet) string {
	switch {
	case neverExclude.Has(candidate):
		return WarnNeverExclude
	case (candidate == Refrigerated || candidate == Oversized) && !currentInclusions.Has(PieceGoods):
		return WarnExcludeNeedsPieceGoods
	case candidate == Hazardous:
		// Unconditional: the table gives no inclusion that makes it safe.
		return WarnExcludeNeedsWagons
	case candidate == Covered && currentInclusions.Has(Liquid):
		return WarnKeepCoveredForLiquid
	case (candidate == Powderized || candidate == NotPourable) && !currentInclusions.Has(Bulk):
		return WarnExcludeNeedsBulk
	}
	return ""
}
