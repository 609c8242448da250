package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// engagementRingSpec mirrors the seeded combination table for the classic
// solitaire engagement ring.
func engagementRingSpec() Spec {
	return Spec{
		Combinations: []Combination{
			{Stone: "Signity", Carat: "1", Metal: "14k White Gold", Price: Pesos(19000)},
			{Stone: "Signity", Carat: "2", Metal: "14k White Gold", Price: Pesos(24000)},
			{Stone: "Moissanite", Carat: "1", Metal: "14k White Gold", Price: Pesos(35000)},
			{Stone: "Natural Diamond", Carat: "1", Metal: "18k Yellow Gold", Price: Pesos(185000)},
			{Stone: "Natural Diamond", Carat: "3", Metal: "18k Yellow Gold", Price: Pesos(1559000)},
		},
	}
}

func plainBandSpec() Spec {
	return Spec{
		Combinations: []Combination{
			{Metal: "14k White Gold", Size: "3-7", Price: Pesos(42000)},
			{Metal: "18k Yellow Gold", Size: "3-7", Price: Pesos(50000)},
		},
	}
}

func tennisNecklaceSpec() Spec {
	return Spec{
		Combinations: []Combination{
			{Stone: "Moissanite", Metal: "18k White Gold", Price: Pesos(75000)},
			{Stone: "Natural Diamond", Metal: "18k White Gold", Price: Pesos(250000)},
		},
	}
}

func TestResolve_CombinationMatch(t *testing.T) {
	spec := engagementRingSpec()

	price := Resolve(Pesos(15000), spec, Selection{
		Stone: "Signity",
		Carat: "1",
		Metal: "14k White Gold",
	})
	assert.Equal(t, Pesos(19000), price)

	price = Resolve(Pesos(15000), spec, Selection{
		Stone: "Natural Diamond",
		Carat: "3",
		Metal: "18k Yellow Gold",
	})
	assert.Equal(t, Pesos(1559000), price)
}

func TestResolve_CombinationIgnoresBasePrice(t *testing.T) {
	spec := engagementRingSpec()
	sel := Selection{Stone: "Signity", Carat: "1", Metal: "14k White Gold"}

	// Same combination entry wins regardless of the fallback seed.
	assert.Equal(t, Pesos(19000), Resolve(0, spec, sel))
	assert.Equal(t, Pesos(19000), Resolve(Pesos(999999), spec, sel))
}

func TestResolve_FirstMatchWins(t *testing.T) {
	spec := Spec{
		Combinations: []Combination{
			{Metal: "14k White Gold", Price: Pesos(100)},
			{Metal: "14k White Gold", Stone: "Signity", Price: Pesos(200)},
		},
	}

	price := Resolve(0, spec, Selection{Metal: "14k White Gold", Stone: "Signity"})
	assert.Equal(t, Pesos(100), price, "entries are searched in catalog order")
}

func TestResolve_AbsentKeyIsWildcard(t *testing.T) {
	spec := plainBandSpec()

	// Plain-band entries carry no stone key, so a stone-free selection matches.
	price := Resolve(Pesos(30000), spec, Selection{Metal: "14k White Gold", Size: "3-7"})
	assert.Equal(t, Pesos(42000), price)

	// A keyed entry never matches a selection that left the axis unselected.
	keyed := Spec{Combinations: []Combination{
		{Metal: "14k White Gold", Stone: "Signity", Price: Pesos(500)},
	}}
	price = Resolve(Pesos(30000), keyed, Selection{Metal: "14k White Gold"})
	assert.Equal(t, Pesos(30000), price, "must fall through to base price")
}

func TestResolve_TennisNecklace(t *testing.T) {
	spec := tennisNecklaceSpec()

	price := Resolve(Pesos(60000), spec, Selection{
		Stone: "Moissanite", Metal: "18k White Gold", Length: "16",
	})
	assert.Equal(t, Pesos(75000), price)

	price = Resolve(Pesos(60000), spec, Selection{
		Stone: "Natural Diamond", Metal: "18k White Gold", Length: "18",
	})
	assert.Equal(t, Pesos(250000), price)
}

func TestResolve_ModifierFallback(t *testing.T) {
	spec := Spec{
		Metal: []Modifier{
			{Type: "14k White Gold", PriceModifier: Pesos(2000)},
			{Type: "18k Yellow Gold", PriceModifier: Pesos(5000)},
		},
		Stone: []Modifier{
			{Type: "Moissanite", PriceModifier: Pesos(8000)},
		},
		Carat: []Modifier{
			{Size: "0.5", PriceModifier: Pesos(1500)},
			{Size: "1", PriceModifier: Pesos(3000)},
		},
	}
	base := Pesos(10000)

	price := Resolve(base, spec, Selection{
		Metal: "18k Yellow Gold", Stone: "Moissanite", Carat: "1",
	})
	assert.Equal(t, Pesos(10000+5000+8000+3000), price)

	// Each modifier defaults to zero when the axis is unselected.
	price = Resolve(base, spec, Selection{Metal: "14k White Gold"})
	assert.Equal(t, Pesos(12000), price)

	// A value missing from the table also contributes zero.
	price = Resolve(base, spec, Selection{Metal: "Platinum"})
	assert.Equal(t, base, price)
}

func TestResolve_EmptySpecReturnsBasePrice(t *testing.T) {
	price := Resolve(Pesos(7500), Spec{}, Selection{Metal: "14k White Gold"})
	assert.Equal(t, Pesos(7500), price)
}

func TestResolve_Idempotent(t *testing.T) {
	spec := engagementRingSpec()
	sel := Selection{Stone: "Moissanite", Carat: "1", Metal: "14k White Gold"}

	first := Resolve(Pesos(15000), spec, sel)
	second := Resolve(Pesos(15000), spec, sel)
	require.Equal(t, first, second)
	require.Equal(t, Pesos(35000), first)
}

func TestResolve_NoCombinationMatchFallsThroughToModifiers(t *testing.T) {
	spec := engagementRingSpec()
	spec.Metal = []Modifier{{Type: "14k Rose Gold", PriceModifier: Pesos(4000)}}

	price := Resolve(Pesos(15000), spec, Selection{Metal: "14k Rose Gold"})
	assert.Equal(t, Pesos(19000), price)
}
