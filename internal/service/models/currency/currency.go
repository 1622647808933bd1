package currency

import (
	"errors"
)

type Currency string

const (
	CurrencyRUB Currency = "RUB"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

var ErrInvalidCurrency = errors.New("invalid currency")

func (c Currency) String() string {
	return string(c)
}

func ParseCurrency(s string) (Currency, error) {
	switch s {
	case CurrencyRUB.String():
		return CurrencyRUB, nil
	case CurrencyUSD.String():
		return CurrencyUSD, nil
	case CurrencyEUR.String():
		return CurrencyEUR, nil
	default:
		return "", ErrInvalidCurrency
	}
}
