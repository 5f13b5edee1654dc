package domain

import "github.com/shopspring/decimal"

// Money is an amount that encodes as a bare JSON number, so stores order
// and compare prices numerically. Decoding accepts quoted and bare values.
type Money struct {
	decimal.Decimal
}

// MustMoney parses s and panics on malformed input. Meant for seeds and tests.
func MustMoney(s string) Money {
	return Money{Decimal: decimal.RequireFromString(s)}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}
