package pricing

import "fmt"

// Money is a monetary value stored in centavos.
type Money int64

// Pesos builds a Money value from a whole-peso amount.
func Pesos(n int64) Money {
	return Money(n * 100)
}

func (m Money) String() string {
	sign := ""
	if m < 0 {
		sign = "-"
		m = -m
	}
	return fmt.Sprintf("%s%d.%02d", sign, m/100, m%100)
}

// Abs returns the absolute value, used for tolerance checks at checkout.
func (m Money) Abs() Money {
	if m < 0 {
		return -m
	}
	return m
}
