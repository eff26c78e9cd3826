package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const insertVoucher = `
INSERT INTO vouchers (code, voucher_type, discount_value, min_purchase, max_discount, valid_from, valid_until, usage_limit, is_active)
VALUES (upper($1), $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, code, voucher_type, discount_value, min_purchase, max_discount, valid_from, valid_until, usage_limit, used_count, is_active, created_at, updated_at
`

type InsertVoucherParams struct {
	Code          string           `json:"code"`
	VoucherType   string           `json:"voucher_type"`
	DiscountValue pgtype.Numeric   `json:"discount_value"`
	MinPurchase   pgtype.Numeric   `json:"min_purchase"`
	MaxDiscount   pgtype.Numeric   `json:"max_discount"`
	ValidFrom     pgtype.Timestamp `json:"valid_from"`
	ValidUntil    pgtype.Timestamp `json:"valid_until"`
	UsageLimit    pgtype.Int4      `json:"usage_limit"`
	IsActive      bool             `json:"is_active"`
}

func (q *Queries) InsertVoucher(c context.Context, arg InsertVoucherParams) (Voucher, error) {
	row := q.db.QueryRow(c, insertVoucher,
		arg.Code,
		arg.VoucherType,
		arg.DiscountValue,
		arg.MinPurchase,
		arg.MaxDiscount,
		arg.ValidFrom,
		arg.ValidUntil,
		arg.UsageLimit,
		arg.IsActive,
	)
	var i Voucher
	err := row.Scan(
		&i.ID,
		&i.Code,
		&i.VoucherType,
		&i.DiscountValue,
		&i.MinPurchase,
		&i.MaxDiscount,
		&i.ValidFrom,
		&i.ValidUntil,
		&i.UsageLimit,
		&i.UsedCount,
		&i.IsActive,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const findVouchers = `
SELECT id, code, voucher_type, discount_value, min_purchase, max_discount, valid_from, valid_until, usage_limit, used_count, is_active, created_at, updated_at
FROM vouchers
ORDER BY created_at DESC
`

func (q *Queries) FindVouchers(c context.Context) ([]Voucher, error) {
	rows, err := q.db.Query(c, findVouchers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Voucher{}
	for rows.Next() {
		var i Voucher
		if err := rows.Scan(
			&i.ID,
			&i.Code,
			&i.VoucherType,
			&i.DiscountValue,
			&i.MinPurchase,
			&i.MaxDiscount,
			&i.ValidFrom,
			&i.ValidUntil,
			&i.UsageLimit,
			&i.UsedCount,
			&i.IsActive,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const findVoucherById = `
SELECT id, code, voucher_type, discount_value, min_purchase, max_discount, valid_from, valid_until, usage_limit, used_count, is_active, created_at, updated_at
FROM vouchers
WHERE id = $1
`

func (q *Queries) FindVoucherById(c context.Context, id uuid.UUID) (Voucher, error) {
	row := q.db.QueryRow(c, findVoucherById, id)
	var i Voucher
	err := row.Scan(
		&i.ID,
		&i.Code,
		&i.VoucherType,
		&i.DiscountValue,
		&i.MinPurchase,
		&i.MaxDiscount,
		&i.ValidFrom,
		&i.ValidUntil,
		&i.UsageLimit,
		&i.UsedCount,
		&i.IsActive,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const findVoucherByCode = `
SELECT id, code, voucher_type, discount_value, min_purchase, max_discount, valid_from, valid_until, usage_limit, used_count, is_active, created_at, updated_at
FROM vouchers
WHERE code = upper($1)
`

func (q *Queries) FindVoucherByCode(c context.Context, code string) (Voucher, error) {
	row := q.db.QueryRow(c, findVoucherByCode, code)
	var i Voucher
	err := row.Scan(
		&i.ID,
		&i.Code,
		&i.VoucherType,
		&i.DiscountValue,
		&i.MinPurchase,
		&i.MaxDiscount,
		&i.ValidFrom,
		&i.ValidUntil,
		&i.UsageLimit,
		&i.UsedCount,
		&i.IsActive,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const updateVoucher = `
UPDATE vouchers
SET voucher_type = $2,
    discount_value = $3,
    min_purchase = $4,
    max_discount = $5,
    valid_from = $6,
    valid_until = $7,
    usage_limit = $8,
    is_active = $9,
    updated_at = now()
WHERE id = $1
RETURNING id, code, voucher_type, discount_value, min_purchase, max_discount, valid_from, valid_until, usage_limit, used_count, is_active, created_at, updated_at
`

type UpdateVoucherParams struct {
	ID            uuid.UUID        `json:"id"`
	VoucherType   string           `json:"voucher_type"`
	DiscountValue pgtype.Numeric   `json:"discount_value"`
	MinPurchase   pgtype.Numeric   `json:"min_purchase"`
	MaxDiscount   pgtype.Numeric   `json:"max_discount"`
	ValidFrom     pgtype.Timestamp `json:"valid_from"`
	ValidUntil    pgtype.Timestamp `json:"valid_until"`
	UsageLimit    pgtype.Int4      `json:"usage_limit"`
	IsActive      bool             `json:"is_active"`
}

func (q *Queries) UpdateVoucher(c context.Context, arg UpdateVoucherParams) (Voucher, error) {
	row := q.db.QueryRow(c, updateVoucher,
		arg.ID,
		arg.VoucherType,
		arg.DiscountValue,
		arg.MinPurchase,
		arg.MaxDiscount,
		arg.ValidFrom,
		arg.ValidUntil,
		arg.UsageLimit,
		arg.IsActive,
	)
	var i Voucher
	err := row.Scan(
		&i.ID,
		&i.Code,
		&i.VoucherType,
		&i.DiscountValue,
		&i.MinPurchase,
		&i.MaxDiscount,
		&i.ValidFrom,
		&i.ValidUntil,
		&i.UsageLimit,
		&i.UsedCount,
		&i.IsActive,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const deleteVoucher = `
DELETE FROM vouchers WHERE id = $1
`

func (q *Queries) DeleteVoucher(c context.Context, id uuid.UUID) error {
	_, err := q.db.Exec(c, deleteVoucher, id)
	return err
}

const incrementVoucherUsage = `
UPDATE vouchers
SET used_count = used_count + 1, updated_at = now()
WHERE id = $1
  AND is_active
  AND (usage_limit IS NULL OR used_count < usage_limit)
RETURNING id, code, voucher_type, discount_value, min_purchase, max_discount, valid_from, valid_until, usage_limit, used_count, is_active, created_at, updated_at
`

// IncrementVoucherUsage consumes one use and fails with pgx.ErrNoRows when the
// voucher is inactive or the usage limit has been reached.
func (q *Queries) IncrementVoucherUsage(c context.Context, id uuid.UUID) (Voucher, error) {
	row := q.db.QueryRow(c, incrementVoucherUsage, id)
	var i Voucher
	err := row.Scan(
		&i.ID,
		&i.Code,
		&i.VoucherType,
		&i.DiscountValue,
		&i.MinPurchase,
		&i.MaxDiscount,
		&i.ValidFrom,
		&i.ValidUntil,
		&i.UsageLimit,
		&i.UsedCount,
		&i.IsActive,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
