package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// DefaultCurrency applies to wire prices, which arrive as bare numbers
// without a currency code.
var DefaultCurrency = currency.USD

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func NewMoney(amount decimal.Decimal, unit currency.Unit) Money {
	return Money{Amount: amount, Currency: unit}
}

// Zero returns zero money in the given currency.
func Zero(unit currency.Unit) Money {
	return Money{Amount: decimal.Zero, Currency: unit}
}

func (m Money) Mul(n int64) Money {
	return Money{
		Amount:   m.Amount.Mul(decimal.NewFromInt(n)),
		Currency: m.Currency,
	}
}

// Add keeps the receiver's currency. Carts never mix currencies, see DefaultCurrency.
func (m Money) Add(other Money) Money {
	return Money{
		Amount:   m.Amount.Add(other.Amount),
		Currency: m.Currency,
	}
}

func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

func (m Money) String() string {
	return m.Amount.String() + " " + m.Currency.String()
}
