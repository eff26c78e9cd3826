package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inErrors "github.com/Alturino/storefront/internal/errors"
)

func TestCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		quantity int32
		stock    int32
		apply    bool
		wantErr  bool
	}{
		{name: "WithinStock", quantity: 2, stock: 3, apply: true},
		{name: "ExactStock", quantity: 3, stock: 3, apply: true},
		{name: "AboveStock", quantity: 4, stock: 3, wantErr: true},
		{name: "ZeroIgnored", quantity: 0, stock: 3},
		{name: "NegativeIgnored", quantity: -5, stock: 3},
		{name: "ZeroStockAboveStock", quantity: 1, stock: 0, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apply, err := Check(tt.quantity, tt.stock)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, inErrors.KindValidation, inErrors.KindOf(err))
				assert.Equal(t, "Not enough stock available", err.Error())
				assert.False(t, apply)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.apply, apply)
		})
	}
}

func TestClamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		quantity int32
		stock    int32
		want     int32
		wantErr  error
	}{
		{name: "WithinStock", quantity: 2, stock: 5, want: 2},
		{name: "AboveStockClamped", quantity: 9, stock: 5, want: 5},
		{name: "BelowOneClamped", quantity: 0, stock: 5, want: 1},
		{name: "NegativeClamped", quantity: -3, stock: 5, want: 1},
		{name: "NoStock", quantity: 1, stock: 0, wantErr: inErrors.ErrOutOfStock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Clamp(tt.quantity, tt.stock)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
