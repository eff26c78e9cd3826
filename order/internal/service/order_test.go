package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/order/pkg/request"
)

var (
	buyerId      = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	hoarderId    = uuid.MustParse("55555555-5555-5555-5555-555555555555")
	emptyCartId  = uuid.MustParse("77777777-7777-7777-7777-777777777777")
	arabicaId    = uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
	robustaId    = uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb")
	seedFilePath = filepath.Join("seed", "storefront.seed.sql")
)

func TestCheckoutAppliesVoucherAndDecrementsStock(t *testing.T) {
	c := context.Background()
	deps := setup(t, c, seedFilePath)
	defer teardown(t, deps)

	order, err := deps.service.Checkout(c, buyerId, request.Checkout{VoucherCode: "HEMAT50"})
	require.NoError(t, err)

	assert.Equal(t, "PENDING", order.Status)
	assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(350000)), "subtotal=%s", order.Subtotal)
	assert.True(t, order.Discount.Equal(decimal.NewFromInt(50000)), "discount=%s", order.Discount)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(300000)), "total=%s", order.Total)
	assert.False(t, order.FreeShipping)
	assert.Len(t, order.Items, 2)

	arabica, err := deps.queries.FindProductById(c, arabicaId)
	require.NoError(t, err)
	assert.EqualValues(t, 8, arabica.Stock)

	robusta, err := deps.queries.FindProductById(c, robustaId)
	require.NoError(t, err)
	assert.EqualValues(t, 1, robusta.Stock)

	voucher, err := deps.queries.FindVoucherByCode(c, "HEMAT50")
	require.NoError(t, err)
	assert.EqualValues(t, 1, voucher.UsedCount)

	cart, err := deps.queries.FindCartByUserId(c, buyerId)
	require.NoError(t, err)
	items, err := deps.queries.FindCartItemsByCartId(c, cart.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCheckoutWithoutVoucher(t *testing.T) {
	c := context.Background()
	deps := setup(t, c, seedFilePath)
	defer teardown(t, deps)

	order, err := deps.service.Checkout(c, buyerId, request.Checkout{})
	require.NoError(t, err)

	assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(350000)), "subtotal=%s", order.Subtotal)
	assert.True(t, order.Discount.IsZero(), "discount=%s", order.Discount)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(350000)), "total=%s", order.Total)
	assert.Nil(t, order.VoucherId)
}

func TestCheckoutInsufficientStockRollsBack(t *testing.T) {
	c := context.Background()
	deps := setup(t, c, seedFilePath)
	defer teardown(t, deps)

	_, err := deps.service.Checkout(c, hoarderId, request.Checkout{})
	require.Error(t, err)
	assert.Equal(t, inErrors.KindValidation, inErrors.KindOf(err))
	assert.ErrorContains(t, err, "Not enough stock available")

	arabica, err := deps.queries.FindProductById(c, arabicaId)
	require.NoError(t, err)
	assert.EqualValues(t, 10, arabica.Stock)

	orders, err := deps.queries.FindOrdersByUserId(c, hoarderId)
	require.NoError(t, err)
	assert.Empty(t, orders)

	cart, err := deps.queries.FindCartByUserId(c, hoarderId)
	require.NoError(t, err)
	items, err := deps.queries.FindCartItemsByCartId(c, cart.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCheckoutExhaustedVoucherRollsBack(t *testing.T) {
	c := context.Background()
	deps := setup(t, c, seedFilePath)
	defer teardown(t, deps)

	_, err := deps.service.Checkout(c, buyerId, request.Checkout{VoucherCode: "SEKALI"})
	require.Error(t, err)
	assert.Equal(t, inErrors.KindValidation, inErrors.KindOf(err))
	assert.ErrorContains(t, err, "This voucher has reached its usage quota.")

	arabica, err := deps.queries.FindProductById(c, arabicaId)
	require.NoError(t, err)
	assert.EqualValues(t, 10, arabica.Stock)

	voucher, err := deps.queries.FindVoucherByCode(c, "SEKALI")
	require.NoError(t, err)
	assert.EqualValues(t, 1, voucher.UsedCount)
}

func TestCheckoutEmptyCart(t *testing.T) {
	c := context.Background()
	deps := setup(t, c, seedFilePath)
	defer teardown(t, deps)

	_, err := deps.service.Checkout(c, emptyCartId, request.Checkout{})
	require.Error(t, err)
	assert.Equal(t, inErrors.KindValidation, inErrors.KindOf(err))
	assert.ErrorContains(t, err, "Cart is empty.")
}

func TestUpdateStatus(t *testing.T) {
	c := context.Background()
	deps := setup(t, c, seedFilePath)
	defer teardown(t, deps)

	placed, err := deps.service.Checkout(c, buyerId, request.Checkout{})
	require.NoError(t, err)

	updated, err := deps.service.UpdateStatus(c, request.UpdateStatus{
		ID:     placed.ID,
		Status: "PAID",
	})
	require.NoError(t, err)
	assert.Equal(t, "PAID", updated.Status)

	stored, err := deps.queries.FindOrderById(c, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, "PAID", stored.Status)
}

func TestFindOrderByIdOwnership(t *testing.T) {
	c := context.Background()
	deps := setup(t, c, seedFilePath)
	defer teardown(t, deps)

	placed, err := deps.service.Checkout(c, buyerId, request.Checkout{})
	require.NoError(t, err)

	found, err := deps.service.FindOrderById(c, buyerId, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, placed.ID, found.ID)
	assert.Len(t, found.Items, 2)

	_, err = deps.service.FindOrderById(c, hoarderId, placed.ID)
	require.Error(t, err)
	assert.ErrorContains(t, err, "Order not found.")
}
