package evaluate

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/format"
)

type Type string

const (
	TypeFixed        Type = "FIXED"
	TypePercentage   Type = "PERCENTAGE"
	TypeFreeShipping Type = "FREE_SHIPPING"
)

type Voucher struct {
	Code          string          `json:"code"`
	Type          Type            `json:"type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	MinPurchase   decimal.Decimal `json:"min_purchase"`
	MaxDiscount   decimal.Decimal `json:"max_discount"`
	ValidFrom     time.Time       `json:"valid_from"`
	ValidUntil    time.Time       `json:"valid_until"`
	UsageLimit    *int32          `json:"usage_limit"`
	UsedCount     int32           `json:"used_count"`
	IsActive      bool            `json:"is_active"`
}

type Result struct {
	Voucher      Voucher         `json:"voucher"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Discount     decimal.Decimal `json:"discount"`
	FreeShipping bool            `json:"free_shipping"`
	Total        decimal.Decimal `json:"total"`
}

type Catalog interface {
	FindByCode(code string) (Voucher, bool)
}

// Evaluate applies the voucher identified by code to subtotal without
// consuming a use. Usage is consumed at order placement.
func Evaluate(
	catalog Catalog,
	code string,
	subtotal decimal.Decimal,
	now time.Time,
) (Result, error) {
	voucher, found := catalog.FindByCode(strings.ToUpper(strings.TrimSpace(code)))
	if !found {
		return Result{}, inErrors.Validation("Invalid voucher code.")
	}
	if !voucher.IsActive {
		return Result{}, inErrors.Validation("This voucher is no longer active.")
	}
	if now.Before(voucher.ValidFrom) || now.After(voucher.ValidUntil) {
		return Result{}, inErrors.Validation("This voucher has expired.")
	}
	if subtotal.LessThan(voucher.MinPurchase) {
		return Result{}, inErrors.Validation(fmt.Sprintf(
			"A minimum purchase of %s is required to use this voucher.",
			format.Rupiah(voucher.MinPurchase),
		))
	}
	if voucher.UsageLimit != nil && voucher.UsedCount >= *voucher.UsageLimit {
		return Result{}, inErrors.Validation("This voucher has reached its usage quota.")
	}

	discount := decimal.Zero
	freeShipping := false
	switch voucher.Type {
	case TypeFixed:
		discount = voucher.DiscountValue
	case TypePercentage:
		discount = subtotal.Mul(voucher.DiscountValue).Div(decimal.NewFromInt(100)).Floor()
		if voucher.MaxDiscount.IsPositive() && discount.GreaterThan(voucher.MaxDiscount) {
			discount = voucher.MaxDiscount
		}
	case TypeFreeShipping:
		freeShipping = true
	default:
		return Result{}, inErrors.Validation("Invalid voucher code.")
	}

	return Result{
		Voucher:      voucher,
		Subtotal:     subtotal,
		Discount:     discount,
		FreeShipping: freeShipping,
		Total:        subtotal.Sub(discount),
	}, nil
}

// MapCatalog adapts an in-memory voucher list for lookup by code.
type MapCatalog map[string]Voucher

func NewMapCatalog(vouchers ...Voucher) MapCatalog {
	catalog := MapCatalog{}
	for _, voucher := range vouchers {
		catalog[strings.ToUpper(voucher.Code)] = voucher
	}
	return catalog
}

func (m MapCatalog) FindByCode(code string) (Voucher, bool) {
	voucher, found := m[code]
	return voucher, found
}
