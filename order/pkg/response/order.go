package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Alturino/storefront/internal/format"
	"github.com/Alturino/storefront/internal/repository"
)

type OrderItem struct {
	ID             uuid.UUID       `json:"id"`
	ProductId      uuid.UUID       `json:"product_id"`
	ProductName    string          `json:"product_name"`
	Price          decimal.Decimal `json:"price"`
	PriceFormatted string          `json:"price_formatted"`
	Quantity       int32           `json:"quantity"`
	LineTotal      decimal.Decimal `json:"line_total"`
}

type Order struct {
	ID                uuid.UUID       `json:"id"`
	UserId            uuid.UUID       `json:"user_id"`
	Status            string          `json:"status"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	SubtotalFormatted string          `json:"subtotal_formatted"`
	Discount          decimal.Decimal `json:"discount"`
	DiscountFormatted string          `json:"discount_formatted"`
	FreeShipping      bool            `json:"free_shipping"`
	VoucherId         *uuid.UUID      `json:"voucher_id"`
	Total             decimal.Decimal `json:"total"`
	TotalFormatted    string          `json:"total_formatted"`
	Items             []OrderItem     `json:"items"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// NewOrder prices each line from the price recorded at checkout so later
// product price changes never rewrite order history.
func NewOrder(order repository.Order, rows []repository.FindOrderItemsByOrderIdRow) Order {
	items := make([]OrderItem, len(rows))
	for i, row := range rows {
		price := repository.DecimalFromNumeric(row.Price)
		items[i] = OrderItem{
			ID:             row.ID,
			ProductId:      row.ProductID,
			ProductName:    row.ProductName,
			Price:          price,
			PriceFormatted: format.Rupiah(price),
			Quantity:       row.Quantity,
			LineTotal:      price.Mul(decimal.NewFromInt32(row.Quantity)),
		}
	}
	var voucherId *uuid.UUID
	if order.VoucherID.Valid {
		id := uuid.UUID(order.VoucherID.Bytes)
		voucherId = &id
	}
	subtotal := repository.DecimalFromNumeric(order.Subtotal)
	discount := repository.DecimalFromNumeric(order.Discount)
	total := repository.DecimalFromNumeric(order.Total)
	return Order{
		ID:                order.ID,
		UserId:            order.UserID,
		Status:            order.Status,
		Subtotal:          subtotal,
		SubtotalFormatted: format.Rupiah(subtotal),
		Discount:          discount,
		DiscountFormatted: format.Rupiah(discount),
		FreeShipping:      order.FreeShipping,
		VoucherId:         voucherId,
		Total:             total,
		TotalFormatted:    format.Rupiah(total),
		Items:             items,
		CreatedAt:         order.CreatedAt.Time,
		UpdatedAt:         order.UpdatedAt.Time,
	}
}

func NewOrders(orders []repository.Order) []Order {
	items := make([]Order, len(orders))
	for i, order := range orders {
		items[i] = NewOrder(order, nil)
	}
	return items
}
