package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const insertOrder = `
INSERT INTO orders (user_id, status, subtotal, discount, free_shipping, voucher_id, total)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, user_id, status, subtotal, discount, free_shipping, voucher_id, total, created_at, updated_at
`

type InsertOrderParams struct {
	UserID       uuid.UUID      `json:"user_id"`
	Status       string         `json:"status"`
	Subtotal     pgtype.Numeric `json:"subtotal"`
	Discount     pgtype.Numeric `json:"discount"`
	FreeShipping bool           `json:"free_shipping"`
	VoucherID    pgtype.UUID    `json:"voucher_id"`
	Total        pgtype.Numeric `json:"total"`
}

func (q *Queries) InsertOrder(c context.Context, arg InsertOrderParams) (Order, error) {
	row := q.db.QueryRow(c, insertOrder,
		arg.UserID,
		arg.Status,
		arg.Subtotal,
		arg.Discount,
		arg.FreeShipping,
		arg.VoucherID,
		arg.Total,
	)
	var i Order
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Status,
		&i.Subtotal,
		&i.Discount,
		&i.FreeShipping,
		&i.VoucherID,
		&i.Total,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

type InsertOrderItemsParams struct {
	OrderID   uuid.UUID      `json:"order_id"`
	ProductID uuid.UUID      `json:"product_id"`
	Price     pgtype.Numeric `json:"price"`
	Quantity  int32          `json:"quantity"`
}

func (q *Queries) InsertOrderItems(c context.Context, arg []InsertOrderItemsParams) (int64, error) {
	return q.db.CopyFrom(
		c,
		pgx.Identifier{"order_items"},
		[]string{"order_id", "product_id", "price", "quantity"},
		pgx.CopyFromSlice(len(arg), func(i int) ([]interface{}, error) {
			return []interface{}{
				arg[i].OrderID,
				arg[i].ProductID,
				arg[i].Price,
				arg[i].Quantity,
			}, nil
		}),
	)
}

const findOrderById = `
SELECT id, user_id, status, subtotal, discount, free_shipping, voucher_id, total, created_at, updated_at
FROM orders
WHERE id = $1
`

func (q *Queries) FindOrderById(c context.Context, id uuid.UUID) (Order, error) {
	row := q.db.QueryRow(c, findOrderById, id)
	var i Order
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Status,
		&i.Subtotal,
		&i.Discount,
		&i.FreeShipping,
		&i.VoucherID,
		&i.Total,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const findOrdersByUserId = `
SELECT id, user_id, status, subtotal, discount, free_shipping, voucher_id, total, created_at, updated_at
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC
`

func (q *Queries) FindOrdersByUserId(c context.Context, userID uuid.UUID) ([]Order, error) {
	rows, err := q.db.Query(c, findOrdersByUserId, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Order{}
	for rows.Next() {
		var i Order
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.Status,
			&i.Subtotal,
			&i.Discount,
			&i.FreeShipping,
			&i.VoucherID,
			&i.Total,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const findOrderItemsByOrderId = `
SELECT oi.id,
       oi.order_id,
       oi.product_id,
       p.name AS product_name,
       oi.price,
       oi.quantity,
       oi.created_at,
       oi.updated_at
FROM order_items oi
JOIN products p ON p.id = oi.product_id
WHERE oi.order_id = $1
ORDER BY oi.created_at
`

type FindOrderItemsByOrderIdRow struct {
	ID          uuid.UUID        `json:"id"`
	OrderID     uuid.UUID        `json:"order_id"`
	ProductID   uuid.UUID        `json:"product_id"`
	ProductName string           `json:"product_name"`
	Price       pgtype.Numeric   `json:"price"`
	Quantity    int32            `json:"quantity"`
	CreatedAt   pgtype.Timestamp `json:"created_at"`
	UpdatedAt   pgtype.Timestamp `json:"updated_at"`
}

func (q *Queries) FindOrderItemsByOrderId(
	c context.Context,
	orderID uuid.UUID,
) ([]FindOrderItemsByOrderIdRow, error) {
	rows, err := q.db.Query(c, findOrderItemsByOrderId, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []FindOrderItemsByOrderIdRow{}
	for rows.Next() {
		var i FindOrderItemsByOrderIdRow
		if err := rows.Scan(
			&i.ID,
			&i.OrderID,
			&i.ProductID,
			&i.ProductName,
			&i.Price,
			&i.Quantity,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const updateOrderStatus = `
UPDATE orders
SET status = $2, updated_at = now()
WHERE id = $1
RETURNING id, user_id, status, subtotal, discount, free_shipping, voucher_id, total, created_at, updated_at
`

type UpdateOrderStatusParams struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

func (q *Queries) UpdateOrderStatus(c context.Context, arg UpdateOrderStatusParams) (Order, error) {
	row := q.db.QueryRow(c, updateOrderStatus, arg.ID, arg.Status)
	var i Order
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Status,
		&i.Subtotal,
		&i.Discount,
		&i.FreeShipping,
		&i.VoucherID,
		&i.Total,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const countOrders = `
SELECT count(*) FROM orders
`

func (q *Queries) CountOrders(c context.Context) (int64, error) {
	row := q.db.QueryRow(c, countOrders)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const sumOrderRevenue = `
SELECT coalesce(sum(total), 0)::numeric FROM orders WHERE status <> 'CANCELLED'
`

func (q *Queries) SumOrderRevenue(c context.Context) (pgtype.Numeric, error) {
	row := q.db.QueryRow(c, sumOrderRevenue)
	var total pgtype.Numeric
	err := row.Scan(&total)
	return total, err
}

const findRecentOrders = `
SELECT id, user_id, status, subtotal, discount, free_shipping, voucher_id, total, created_at, updated_at
FROM orders
ORDER BY created_at DESC
LIMIT $1
`

func (q *Queries) FindRecentOrders(c context.Context, limit int32) ([]Order, error) {
	rows, err := q.db.Query(c, findRecentOrders, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Order{}
	for rows.Next() {
		var i Order
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.Status,
			&i.Subtotal,
			&i.Discount,
			&i.FreeShipping,
			&i.VoucherID,
			&i.Total,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
