package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Alturino/storefront/internal/format"
	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/voucher/pkg/evaluate"
)

type Voucher struct {
	ID            uuid.UUID       `json:"id"`
	Code          string          `json:"code"`
	VoucherType   string          `json:"voucher_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	MinPurchase   decimal.Decimal `json:"min_purchase"`
	MaxDiscount   decimal.Decimal `json:"max_discount"`
	ValidFrom     time.Time       `json:"valid_from"`
	ValidUntil    time.Time       `json:"valid_until"`
	UsageLimit    *int32          `json:"usage_limit"`
	UsedCount     int32           `json:"used_count"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func NewVoucher(voucher repository.Voucher) Voucher {
	var usageLimit *int32
	if voucher.UsageLimit.Valid {
		limit := voucher.UsageLimit.Int32
		usageLimit = &limit
	}
	return Voucher{
		ID:            voucher.ID,
		Code:          voucher.Code,
		VoucherType:   voucher.VoucherType,
		DiscountValue: repository.DecimalFromNumeric(voucher.DiscountValue),
		MinPurchase:   repository.DecimalFromNumeric(voucher.MinPurchase),
		MaxDiscount:   repository.DecimalFromNumeric(voucher.MaxDiscount),
		ValidFrom:     voucher.ValidFrom.Time,
		ValidUntil:    voucher.ValidUntil.Time,
		UsageLimit:    usageLimit,
		UsedCount:     voucher.UsedCount,
		IsActive:      voucher.IsActive,
		CreatedAt:     voucher.CreatedAt.Time,
		UpdatedAt:     voucher.UpdatedAt.Time,
	}
}

type Evaluation struct {
	Code               string          `json:"code"`
	VoucherType        string          `json:"voucher_type"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	Discount           decimal.Decimal `json:"discount"`
	DiscountFormatted  string          `json:"discount_formatted"`
	FreeShipping       bool            `json:"free_shipping"`
	Total              decimal.Decimal `json:"total"`
	TotalFormatted     string          `json:"total_formatted"`
}

func NewEvaluation(result evaluate.Result) Evaluation {
	return Evaluation{
		Code:              result.Voucher.Code,
		VoucherType:       string(result.Voucher.Type),
		Subtotal:          result.Subtotal,
		Discount:          result.Discount,
		DiscountFormatted: format.Rupiah(result.Discount),
		FreeShipping:      result.FreeShipping,
		Total:             result.Total,
		TotalFormatted:    format.Rupiah(result.Total),
	}
}
