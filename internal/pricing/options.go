package pricing

import (
	"strconv"
	"strings"
)

// Automated pricing covers ring sizes 3.0 through 7.0 and carats up to 3;
// anything above routes to a manual quote.
const (
	maxAutomatedRingSize = 7.0
	maxAutomatedCarat    = 3.0
)

// AccessoryStones is the stone domain for tennis necklaces and bracelets,
// narrower than the ring catalog.
var AccessoryStones = []string{"Moissanite", "Lab Grown Diamond"}

// RingSizeLadder is the half-step size ladder offered for rings.
var RingSizeLadder = []string{"3", "3.5", "4", "4.5", "5", "5.5", "6", "6.5", "7"}

// AxesFor returns the customer-selectable axes for a category. Plain bands
// (subcategory without stones) drop the stone axis; accessories overload the
// third axis as length (necklaces) or size (bracelets).
func AxesFor(category Category, subcategory string) []Axis {
	switch category {
	case CategoryRings:
		return []Axis{AxisMetal, AxisStone, AxisCarat, AxisSize}
	case CategoryBands:
		axes := []Axis{AxisMetal}
		if !isPlainBand(subcategory) {
			axes = append(axes, AxisStone, AxisFemaleCarat, AxisMaleCarat)
		}
		return append(axes, AxisFemaleSize, AxisMaleSize)
	case CategoryNecklaces:
		return []Axis{AxisStone, AxisMetal, AxisLength}
	case CategoryBracelets:
		return []Axis{AxisStone, AxisMetal, AxisSize}
	case CategoryEarrings:
		return []Axis{AxisStone, AxisMetal, AxisCarat}
	default:
		return nil
	}
}

func isPlainBand(subcategory string) bool {
	return strings.Contains(subcategory, "plain")
}

// PairNotice reports whether a product of this category is sold as a
// female+male two-ring set, so the UI can surface that the price covers both.
func PairNotice(category Category) bool {
	return category == CategoryBands
}

// Defaults builds the initial selection for a product: the first legal value
// on each axis the category exposes. Axes with no catalog values stay absent.
func Defaults(category Category, subcategory string, opts OptionSet) Selection {
	var sel Selection
	for _, axis := range AxesFor(category, subcategory) {
		switch axis {
		case AxisMetal:
			sel.Metal = first(opts.Metals)
		case AxisStone:
			sel.Stone = first(opts.Stones)
		case AxisCarat:
			sel.Carat = first(opts.Carats)
		case AxisLength:
			sel.Length = first(opts.Lengths)
		case AxisSize:
			sel.Size = first(opts.Sizes)
		case AxisFemaleSize:
			sel.FemaleSize = first(opts.Sizes)
		case AxisMaleSize:
			sel.MaleSize = first(opts.Sizes)
		case AxisFemaleCarat:
			sel.FemaleCarat = first(opts.Carats)
		case AxisMaleCarat:
			sel.MaleCarat = first(opts.Carats)
		}
	}
	return sel
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// NormalizeBandSize maps a band set's per-ring sizes onto the advertised
// size-range token its combination table keys on (for example both sizes in
// 3..7 map to "3-7"). It returns false when either size falls outside every
// advertised token, which routes the request to a manual quote.
func NormalizeBandSize(spec Spec, femaleSize, maleSize string) (string, bool) {
	if femaleSize == "" && maleSize == "" {
		return "", true // no size picked yet, nothing to normalize
	}
	for _, c := range spec.Combinations {
		if c.Size == "" {
			continue
		}
		if sizeWithinToken(c.Size, femaleSize) && sizeWithinToken(c.Size, maleSize) {
			return c.Size, true
		}
	}
	return "", false
}

// sizeWithinToken reports whether a numeric size falls inside a token, which
// is either an exact value ("7") or an inclusive range ("3-7").
func sizeWithinToken(token, size string) bool {
	if size == "" {
		return true
	}
	v, err := strconv.ParseFloat(size, 64)
	if err != nil {
		return token == size
	}
	lo, hi, ok := parseRange(token)
	if !ok {
		return token == size
	}
	return v >= lo && v <= hi
}

func parseRange(token string) (lo, hi float64, ok bool) {
	parts := strings.SplitN(token, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, false
	}
	hi, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, false
	}
	return lo, hi, true
}

// RequiresQuote reports whether a selection leaves the automated pricing path
// entirely: oversized rings, carats above the catalog ceiling, or band sizes
// outside every advertised range.
func RequiresQuote(category Category, spec Spec, sel Selection) bool {
	switch category {
	case CategoryRings:
		if above(sel.Size, maxAutomatedRingSize) || above(sel.Carat, maxAutomatedCarat) {
			return true
		}
	case CategoryBands:
		if _, ok := NormalizeBandSize(spec, sel.FemaleSize, sel.MaleSize); !ok {
			return true
		}
	}
	return false
}

func above(value string, limit float64) bool {
	if value == "" {
		return false
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return false
	}
	return v > limit
}

// PriceFor is the category-aware entry point shared by the interactive price
// preview and the authoritative checkout path. It normalizes band sizes onto
// the advertised range token, routes out-of-range selections to a manual
// quote, and otherwise delegates to Resolve. The returned bool is true when
// the selection needs a manual quote; the price is zero in that case.
func PriceFor(category Category, basePrice Money, spec Spec, sel Selection) (Money, bool) {
	if RequiresQuote(category, spec, sel) {
		return 0, true
	}
	if category == CategoryBands {
		if token, ok := NormalizeBandSize(spec, sel.FemaleSize, sel.MaleSize); ok && token != "" {
			sel.Size = token
		}
	}
	return Resolve(basePrice, spec, sel), false
}
