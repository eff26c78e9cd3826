package request

import (
	"github.com/google/uuid"
)

type Checkout struct {
	VoucherCode string `json:"voucher_code"`
}

type UpdateStatus struct {
	ID     uuid.UUID `json:"-"`
	Status string    `json:"status" validate:"required,oneof=PENDING PAID SHIPPED COMPLETED CANCELLED"`
}
