package response

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Alturino/storefront/internal/format"
	"github.com/Alturino/storefront/internal/repository"
)

type CartItem struct {
	ID             uuid.UUID       `json:"id"`
	ProductId      uuid.UUID       `json:"product_id"`
	ProductName    string          `json:"product_name"`
	Price          decimal.Decimal `json:"price"`
	PriceFormatted string          `json:"price_formatted"`
	Quantity       int32           `json:"quantity"`
	Stock          int32           `json:"stock"`
	LineTotal      decimal.Decimal `json:"line_total"`
}

type Cart struct {
	ID                uuid.UUID       `json:"id"`
	UserId            uuid.UUID       `json:"user_id"`
	Items             []CartItem      `json:"items"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	SubtotalFormatted string          `json:"subtotal_formatted"`
}

// NewCart prices the cart from the live product rows so stale cart lines never
// carry an outdated price.
func NewCart(
	cart repository.Cart,
	rows []repository.FindCartItemsByCartIdRow,
) Cart {
	items := make([]CartItem, len(rows))
	subtotal := decimal.Zero
	for i, row := range rows {
		price := repository.DecimalFromNumeric(row.Price)
		lineTotal := price.Mul(decimal.NewFromInt32(row.Quantity))
		subtotal = subtotal.Add(lineTotal)
		items[i] = CartItem{
			ID:             row.ID,
			ProductId:      row.ProductID,
			ProductName:    row.ProductName,
			Price:          price,
			PriceFormatted: format.Rupiah(price),
			Quantity:       row.Quantity,
			Stock:          row.Stock,
			LineTotal:      lineTotal,
		}
	}
	return Cart{
		ID:                cart.ID,
		UserId:            cart.UserID,
		Items:             items,
		Subtotal:          subtotal,
		SubtotalFormatted: format.Rupiah(subtotal),
	}
}
