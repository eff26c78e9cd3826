package request

import "github.com/google/uuid"

type AddItem struct {
	ProductId uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int32     `json:"quantity"`
}

type SetQuantity struct {
	ProductId uuid.UUID `json:"-"`
	Quantity  int32     `json:"quantity"`
}

type Checkout struct {
	VoucherCode string `json:"voucher_code"`
}
