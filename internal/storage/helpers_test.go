package storage_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/currency"

	"github.com/nikolayk812/storefront-go/internal/domain"
)

func randomItem() domain.CartItem {
	return domain.CartItem{
		ProductID: gofakeit.UUID(),
		Name:      gofakeit.ProductName(),
		UnitPrice: domain.NewMoney(decimal.NewFromFloat(gofakeit.Price(1, 100)), domain.DefaultCurrency),
		ImageURL:  gofakeit.URL(),
		Quantity:  gofakeit.Number(1, 5),
	}
}

func assertItems(t *testing.T, expected, actual []domain.CartItem) {
	t.Helper()

	currencyComparer := cmp.Comparer(func(x, y currency.Unit) bool {
		return x.String() == y.String()
	})

	diff := cmp.Diff(expected, actual, currencyComparer)
	assert.Empty(t, diff)
}
