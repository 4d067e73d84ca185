package services_test

import (
	"testing"
	"time"

	"bookstore/internal/core/domain/model/catalog"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/pricing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var isbnX = kernel.MustISBN("9780134190440")

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func book(t *testing.T, isbn kernel.ISBN, category int64) *catalog.Book {
	t.Helper()
	b, err := catalog.NewBook(isbn, "Some title", category, true)
	require.NoError(t, err)
	return b
}

func change(t *testing.T, id int64, isbn kernel.ISBN, from time.Time, price string) *pricing.PriceChange {
	t.Helper()
	pc, err := pricing.RestorePriceChange(id, isbn, from, kernel.MustMoney(price), kernel.NewUUID(), from)
	require.NoError(t, err)
	return pc
}

func percentPromo(t *testing.T, id int64, scope pricing.Scope, pct int64, start, end time.Time) *pricing.Promotion {
	t.Helper()
	d, err := pricing.NewPercentDiscount(decimal.NewFromInt(pct))
	require.NoError(t, err)
	p, err := pricing.RestorePromotion(id, "promo", scope, d, start, end, true, start)
	require.NoError(t, err)
	return p
}

func fixedPromo(t *testing.T, id int64, scope pricing.Scope, amount string, start, end time.Time) *pricing.Promotion {
	t.Helper()
	d, err := pricing.NewFixedDiscount(kernel.MustMoney(amount))
	require.NoError(t, err)
	p, err := pricing.RestorePromotion(id, "promo", scope, d, start, end, true, start)
	require.NoError(t, err)
	return p
}

func isbnScope(t *testing.T, isbn kernel.ISBN) pricing.Scope {
	t.Helper()
	s, err := pricing.NewISBNScope(isbn)
	require.NoError(t, err)
	return s
}
