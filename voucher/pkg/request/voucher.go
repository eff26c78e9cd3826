package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InsertVoucher struct {
	Code          string          `json:"code"           validate:"required,uppercase"`
	VoucherType   string          `json:"voucher_type"   validate:"required,oneof=FIXED PERCENTAGE FREE_SHIPPING"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	MinPurchase   decimal.Decimal `json:"min_purchase"`
	MaxDiscount   decimal.Decimal `json:"max_discount"`
	ValidFrom     time.Time       `json:"valid_from"     validate:"required"`
	ValidUntil    time.Time       `json:"valid_until"    validate:"required,gtefield=ValidFrom"`
	UsageLimit    *int32          `json:"usage_limit"`
	IsActive      bool            `json:"is_active"`
}

type UpdateVoucher struct {
	ID            uuid.UUID       `json:"-"`
	VoucherType   string          `json:"voucher_type"   validate:"required,oneof=FIXED PERCENTAGE FREE_SHIPPING"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	MinPurchase   decimal.Decimal `json:"min_purchase"`
	MaxDiscount   decimal.Decimal `json:"max_discount"`
	ValidFrom     time.Time       `json:"valid_from"     validate:"required"`
	ValidUntil    time.Time       `json:"valid_until"    validate:"required,gtefield=ValidFrom"`
	UsageLimit    *int32          `json:"usage_limit"`
	IsActive      bool            `json:"is_active"`
}

type Evaluate struct {
	Code     string          `json:"code"     validate:"required"`
	Subtotal decimal.Decimal `json:"subtotal"`
}
