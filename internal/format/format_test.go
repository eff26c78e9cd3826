package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRupiah(t *testing.T) {
	tests := []struct {
		name     string
		amount   decimal.Decimal
		expected string
	}{
		{name: "zero", amount: decimal.Zero, expected: "Rp0"},
		{name: "under a thousand", amount: decimal.NewFromInt(999), expected: "Rp999"},
		{name: "exactly a thousand", amount: decimal.NewFromInt(1000), expected: "Rp1.000"},
		{name: "hundred thousand", amount: decimal.NewFromInt(200000), expected: "Rp200.000"},
		{name: "millions", amount: decimal.NewFromInt(2000000), expected: "Rp2.000.000"},
		{name: "fraction truncated", amount: decimal.NewFromFloat(1500.75), expected: "Rp1.500"},
		{name: "negative", amount: decimal.NewFromInt(-50000), expected: "Rp-50.000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Rupiah(tt.amount))
		})
	}
}

func TestDate(t *testing.T) {
	instant := time.Date(2025, time.March, 7, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "07 Mar 2025", Date(instant))
	assert.Equal(t, "07 Mar 2025 14:30", DateTime(instant))
}
