package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPesos(t *testing.T) {
	assert.Equal(t, Money(1900000), Pesos(19000))
	assert.Equal(t, Money(0), Pesos(0))
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "19000.00", Pesos(19000).String())
	assert.Equal(t, "0.50", Money(50).String())
	assert.Equal(t, "-1.25", Money(-125).String())
}

func TestMoney_Abs(t *testing.T) {
	assert.Equal(t, Money(125), Money(-125).Abs())
	assert.Equal(t, Money(125), Money(125).Abs())
	assert.Equal(t, Money(0), Money(0).Abs())
}
