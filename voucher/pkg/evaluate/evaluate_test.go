package evaluate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inErrors "github.com/Alturino/storefront/internal/errors"
)

func int32Ptr(v int32) *int32 { return &v }

func TestEvaluateFixed(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	catalog := NewMapCatalog(Voucher{
		Code:          "HELOBRO",
		Type:          TypeFixed,
		DiscountValue: decimal.NewFromInt(100000),
		MinPurchase:   decimal.NewFromInt(200000),
		ValidFrom:     now.AddDate(0, -1, 0),
		ValidUntil:    now.AddDate(0, 1, 0),
		IsActive:      true,
	})

	t.Run("BelowMinPurchase", func(t *testing.T) {
		_, err := Evaluate(catalog, "HELOBRO", decimal.NewFromInt(150000), now)
		require.Error(t, err)
		assert.Equal(t, inErrors.KindValidation, inErrors.KindOf(err))
		assert.Equal(
			t,
			"A minimum purchase of Rp200.000 is required to use this voucher.",
			err.Error(),
		)
	})

	t.Run("AboveMinPurchase", func(t *testing.T) {
		result, err := Evaluate(catalog, "HELOBRO", decimal.NewFromInt(250000), now)
		require.NoError(t, err)
		assert.True(t, result.Discount.Equal(decimal.NewFromInt(100000)))
		assert.True(t, result.Total.Equal(decimal.NewFromInt(150000)))
		assert.False(t, result.FreeShipping)
	})
}

func TestEvaluatePercentage(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	catalog := NewMapCatalog(Voucher{
		Code:          "DISKON20",
		Type:          TypePercentage,
		DiscountValue: decimal.NewFromInt(20),
		MinPurchase:   decimal.NewFromInt(500000),
		MaxDiscount:   decimal.NewFromInt(200000),
		ValidFrom:     now.AddDate(0, -1, 0),
		ValidUntil:    now.AddDate(0, 1, 0),
		IsActive:      true,
	})

	t.Run("ClampedToMaxDiscount", func(t *testing.T) {
		result, err := Evaluate(catalog, "DISKON20", decimal.NewFromInt(2000000), now)
		require.NoError(t, err)
		assert.True(t, result.Discount.Equal(decimal.NewFromInt(200000)))
		assert.True(t, result.Total.Equal(decimal.NewFromInt(1800000)))
	})

	t.Run("UnderMaxDiscount", func(t *testing.T) {
		result, err := Evaluate(catalog, "DISKON20", decimal.NewFromInt(600000), now)
		require.NoError(t, err)
		assert.True(t, result.Discount.Equal(decimal.NewFromInt(120000)))
	})

	t.Run("DiscountIsFloored", func(t *testing.T) {
		result, err := Evaluate(catalog, "DISKON20", decimal.NewFromInt(500003), now)
		require.NoError(t, err)
		assert.True(t, result.Discount.Equal(decimal.NewFromInt(100000)))
	})
}

func TestEvaluateFreeShipping(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	catalog := NewMapCatalog(Voucher{
		Code:       "ONGKIRGRATIS",
		Type:       TypeFreeShipping,
		ValidFrom:  now.AddDate(0, -1, 0),
		ValidUntil: now.AddDate(0, 1, 0),
		IsActive:   true,
	})

	result, err := Evaluate(catalog, "ongkirgratis", decimal.NewFromInt(100000), now)
	require.NoError(t, err)
	assert.True(t, result.FreeShipping)
	assert.True(t, result.Discount.IsZero())
	assert.True(t, result.Total.Equal(decimal.NewFromInt(100000)))
}

func TestEvaluateRejections(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	catalog := NewMapCatalog(
		Voucher{
			Code:          "INACTIVE",
			Type:          TypeFixed,
			DiscountValue: decimal.NewFromInt(5000),
			ValidFrom:     now.AddDate(0, -1, 0),
			ValidUntil:    now.AddDate(0, 1, 0),
			IsActive:      false,
		},
		Voucher{
			Code:          "EXPIRED",
			Type:          TypeFixed,
			DiscountValue: decimal.NewFromInt(5000),
			ValidFrom:     now.AddDate(0, -2, 0),
			ValidUntil:    now.AddDate(0, -1, 0),
			IsActive:      true,
		},
		Voucher{
			Code:          "UPCOMING",
			Type:          TypeFixed,
			DiscountValue: decimal.NewFromInt(5000),
			ValidFrom:     now.AddDate(0, 1, 0),
			ValidUntil:    now.AddDate(0, 2, 0),
			IsActive:      true,
		},
		Voucher{
			Code:          "EXHAUSTED",
			Type:          TypeFixed,
			DiscountValue: decimal.NewFromInt(5000),
			ValidFrom:     now.AddDate(0, -1, 0),
			ValidUntil:    now.AddDate(0, 1, 0),
			UsageLimit:    int32Ptr(10),
			UsedCount:     10,
			IsActive:      true,
		},
	)
	subtotal := decimal.NewFromInt(100000)

	tests := []struct {
		name    string
		code    string
		message string
	}{
		{name: "UnknownCode", code: "NOPE", message: "Invalid voucher code."},
		{name: "Inactive", code: "INACTIVE", message: "This voucher is no longer active."},
		{name: "Expired", code: "EXPIRED", message: "This voucher has expired."},
		{name: "NotYetValid", code: "UPCOMING", message: "This voucher has expired."},
		{name: "QuotaReached", code: "EXHAUSTED", message: "This voucher has reached its usage quota."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(catalog, tt.code, subtotal, now)
			require.Error(t, err)
			assert.Equal(t, inErrors.KindValidation, inErrors.KindOf(err))
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestEvaluateWindowBoundariesInclusive(t *testing.T) {
	t.Parallel()

	from := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC)
	catalog := NewMapCatalog(Voucher{
		Code:          "MARET",
		Type:          TypeFixed,
		DiscountValue: decimal.NewFromInt(5000),
		ValidFrom:     from,
		ValidUntil:    until,
		IsActive:      true,
	})
	subtotal := decimal.NewFromInt(100000)

	_, err := Evaluate(catalog, "MARET", subtotal, from)
	assert.NoError(t, err)

	_, err = Evaluate(catalog, "MARET", subtotal, until)
	assert.NoError(t, err)

	_, err = Evaluate(catalog, "MARET", subtotal, until.Add(time.Second))
	assert.Error(t, err)
}

func TestEvaluateDoesNotConsumeUsage(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	voucher := Voucher{
		Code:          "SEKALI",
		Type:          TypeFixed,
		DiscountValue: decimal.NewFromInt(5000),
		ValidFrom:     now.AddDate(0, -1, 0),
		ValidUntil:    now.AddDate(0, 1, 0),
		UsageLimit:    int32Ptr(1),
		UsedCount:     0,
		IsActive:      true,
	}
	catalog := NewMapCatalog(voucher)
	subtotal := decimal.NewFromInt(100000)

	for i := 0; i < 3; i++ {
		result, err := Evaluate(catalog, "SEKALI", subtotal, now)
		require.NoError(t, err)
		assert.Equal(t, int32(0), result.Voucher.UsedCount)
	}
}
