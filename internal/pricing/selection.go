package pricing

// Category identifies the jewelry family a product belongs to. Each category
// exposes a different set of selectable axes to the customer.
type Category string

const (
	CategoryRings     Category = "rings"
	CategoryBands     Category = "bands"
	CategoryEarrings  Category = "earrings"
	CategoryBracelets Category = "bracelets"
	CategoryNecklaces Category = "necklaces"
)

// Axis names a single customer-selectable attribute dimension.
type Axis string

const (
	AxisMetal       Axis = "metal"
	AxisStone       Axis = "stone"
	AxisCarat       Axis = "carat"
	AxisLength      Axis = "length"
	AxisSize        Axis = "size"
	AxisFemaleSize  Axis = "femaleSize"
	AxisMaleSize    Axis = "maleSize"
	AxisFemaleCarat Axis = "femaleCarat"
	AxisMaleCarat   Axis = "maleCarat"
)

// Selection carries the attribute values a customer picked for one product.
// An empty string means the axis was not selected at all; legal catalog values
// are never empty, so combination matching treats "" as an absent key.
//
// Carat, Length and Size occupy separate fields even though the catalog's
// combination tables historically stored them in one slot: necklaces carry a
// length, bracelets and rings carry a size, everything else a carat. Keeping
// them apart prevents a bracelet size from silently matching a ring carat.
type Selection struct {
	Metal  string `json:"metal,omitempty" bson:"metal,omitempty"`
	Stone  string `json:"stone,omitempty" bson:"stone,omitempty"`
	Carat  string `json:"carat,omitempty" bson:"carat,omitempty"`
	Length string `json:"length,omitempty" bson:"length,omitempty"`
	Size   string `json:"size,omitempty" bson:"size,omitempty"`

	// Two-piece wedding-band sets carry independent per-ring selections.
	// These never participate in combination matching; the band's advertised
	// size-range token (normalized into Size) does.
	FemaleSize  string `json:"femaleSize,omitempty" bson:"female_size,omitempty"`
	MaleSize    string `json:"maleSize,omitempty" bson:"male_size,omitempty"`
	FemaleCarat string `json:"femaleCarat,omitempty" bson:"female_carat,omitempty"`
	MaleCarat   string `json:"maleCarat,omitempty" bson:"male_carat,omitempty"`
}

// OptionSet lists the legal values per axis for one product. The lists
// populate UI controls and drive defaults; the resolver itself does not
// re-validate against them.
type OptionSet struct {
	Metals  []string `json:"metals,omitempty" bson:"metals,omitempty"`
	Stones  []string `json:"stones,omitempty" bson:"stones,omitempty"`
	Carats  []string `json:"carats,omitempty" bson:"carats,omitempty"`
	Sizes   []string `json:"sizes,omitempty" bson:"sizes,omitempty"`
	Lengths []string `json:"lengths,omitempty" bson:"lengths,omitempty"`
}
