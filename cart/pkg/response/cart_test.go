package response

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Alturino/storefront/internal/repository"
)

func TestNewCartPricesFromLiveRows(t *testing.T) {
	cart := repository.Cart{ID: uuid.New(), UserID: uuid.New()}
	rows := []repository.FindCartItemsByCartIdRow{
		{
			ID:          uuid.New(),
			CartID:      cart.ID,
			ProductID:   uuid.New(),
			ProductName: "Arabica Gayo 500g",
			Price:       repository.NumericFromDecimal(decimal.NewFromInt(150000)),
			Quantity:    2,
			Stock:       10,
		},
		{
			ID:          uuid.New(),
			CartID:      cart.ID,
			ProductID:   uuid.New(),
			ProductName: "Robusta Lampung 500g",
			Price:       repository.NumericFromDecimal(decimal.NewFromInt(50000)),
			Quantity:    1,
			Stock:       2,
		},
	}

	actual := NewCart(cart, rows)

	assert.Equal(t, cart.ID, actual.ID)
	assert.Len(t, actual.Items, 2)
	assert.True(t, actual.Items[0].LineTotal.Equal(decimal.NewFromInt(300000)))
	assert.True(t, actual.Items[1].LineTotal.Equal(decimal.NewFromInt(50000)))
	assert.True(t, actual.Subtotal.Equal(decimal.NewFromInt(350000)))
	assert.Equal(t, "Rp350.000", actual.SubtotalFormatted)
}

func TestNewCartEmpty(t *testing.T) {
	cart := repository.Cart{ID: uuid.New(), UserID: uuid.New()}

	actual := NewCart(cart, nil)

	assert.Empty(t, actual.Items)
	assert.True(t, actual.Subtotal.IsZero())
	assert.Equal(t, "Rp0", actual.SubtotalFormatted)
}
