package evaluate

import (
	"github.com/Alturino/storefront/internal/repository"
)

func NewVoucher(voucher repository.Voucher) Voucher {
	var usageLimit *int32
	if voucher.UsageLimit.Valid {
		limit := voucher.UsageLimit.Int32
		usageLimit = &limit
	}
	return Voucher{
		Code:          voucher.Code,
		Type:          Type(voucher.VoucherType),
		DiscountValue: repository.DecimalFromNumeric(voucher.DiscountValue),
		MinPurchase:   repository.DecimalFromNumeric(voucher.MinPurchase),
		MaxDiscount:   repository.DecimalFromNumeric(voucher.MaxDiscount),
		ValidFrom:     voucher.ValidFrom.Time,
		ValidUntil:    voucher.ValidUntil.Time,
		UsageLimit:    usageLimit,
		UsedCount:     voucher.UsedCount,
		IsActive:      voucher.IsActive,
	}
}
