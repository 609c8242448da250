package pricing

// Combination maps one fully- or partially-specified attribute tuple to an
// exact catalog-authored price. Empty fields are wildcards: they match any
// selection value, including no selection at all.
type Combination struct {
	Stone  string `json:"stone,omitempty"`
	Metal  string `json:"metal,omitempty"`
	Carat  string `json:"carat,omitempty"`
	Length string `json:"length,omitempty"`
	Size   string `json:"size,omitempty"`
	Price  Money  `json:"price"`
}

// Matches reports whether the selection satisfies every key the combination
// specifies. A key the combination leaves empty matches anything; a key it
// specifies must equal the selection's value exactly, so an unselected axis
// never matches a keyed entry.
func (c Combination) Matches(sel Selection) bool {
	if c.Stone != "" && c.Stone != sel.Stone {
		return false
	}
	if c.Metal != "" && c.Metal != sel.Metal {
		return false
	}
	if c.Carat != "" && c.Carat != sel.Carat {
		return false
	}
	if c.Length != "" && c.Length != sel.Length {
		return false
	}
	if c.Size != "" && c.Size != sel.Size {
		return false
	}
	return true
}

// Modifier is one entry of an additive adjustment table. Metal and stone
// tables key on Type; the carat table keys on Size, a quirk inherited from
// the catalog's authoring format.
type Modifier struct {
	Type          string `json:"type,omitempty"`
	Size          string `json:"size,omitempty"`
	PriceModifier Money  `json:"priceModifier"`
}

// Spec is the pricing specification embedded in a product: an ordered
// combination table plus per-axis modifier tables used as a fallback.
type Spec struct {
	Combinations []Combination `json:"combinations,omitempty"`
	Metal        []Modifier    `json:"metal,omitempty"`
	Stone        []Modifier    `json:"stone,omitempty"`
	Carat        []Modifier    `json:"carat,omitempty"`
}

// Resolve computes the unit price for a selection. The combination table is
// consulted first; the first matching entry short-circuits all modifier
// logic. When no entry matches, the price is basePrice plus the metal, stone
// and carat modifiers, each contributing zero when the axis is unselected or
// the table has no entry for its value.
//
// Resolve never fails: with no match and no usable modifier the result is
// basePrice unchanged, so the caller always has a displayable number.
func Resolve(basePrice Money, spec Spec, sel Selection) Money {
	for _, c := range spec.Combinations {
		if c.Matches(sel) {
			return c.Price
		}
	}

	price := basePrice
	price += typeModifier(spec.Metal, sel.Metal)
	price += typeModifier(spec.Stone, sel.Stone)
	price += caratModifier(spec.Carat, sel.Carat)
	return price
}

func typeModifier(table []Modifier, value string) Money {
	if value == "" {
		return 0
	}
	for _, m := range table {
		if m.Type == value {
			return m.PriceModifier
		}
	}
	return 0
}

func caratModifier(table []Modifier, value string) Money {
	if value == "" {
		return 0
	}
	for _, m := range table {
		if m.Size == value {
			return m.PriceModifier
		}
	}
	return 0
}
