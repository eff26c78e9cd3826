package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const insertBrand = `
INSERT INTO brands (name)
VALUES ($1)
RETURNING id, name, created_at, updated_at
`

func (q *Queries) InsertBrand(c context.Context, name string) (Brand, error) {
	row := q.db.QueryRow(c, insertBrand, name)
	var i Brand
	err := row.Scan(&i.ID, &i.Name, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const findBrands = `
SELECT id, name, created_at, updated_at FROM brands ORDER BY name
`

func (q *Queries) FindBrands(c context.Context) ([]Brand, error) {
	rows, err := q.db.Query(c, findBrands)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Brand{}
	for rows.Next() {
		var i Brand
		if err := rows.Scan(&i.ID, &i.Name, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const updateBrand = `
UPDATE brands SET name = $2, updated_at = now()
WHERE id = $1
RETURNING id, name, created_at, updated_at
`

type UpdateBrandParams struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func (q *Queries) UpdateBrand(c context.Context, arg UpdateBrandParams) (Brand, error) {
	row := q.db.QueryRow(c, updateBrand, arg.ID, arg.Name)
	var i Brand
	err := row.Scan(&i.ID, &i.Name, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const deleteBrand = `
DELETE FROM brands WHERE id = $1
RETURNING id, name, created_at, updated_at
`

func (q *Queries) DeleteBrand(c context.Context, id uuid.UUID) (Brand, error) {
	row := q.db.QueryRow(c, deleteBrand, id)
	var i Brand
	err := row.Scan(&i.ID, &i.Name, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const insertCategory = `
INSERT INTO categories (name)
VALUES ($1)
RETURNING id, name, created_at, updated_at
`

func (q *Queries) InsertCategory(c context.Context, name string) (Category, error) {
	row := q.db.QueryRow(c, insertCategory, name)
	var i Category
	err := row.Scan(&i.ID, &i.Name, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const findCategories = `
SELECT id, name, created_at, updated_at FROM categories ORDER BY name
`

func (q *Queries) FindCategories(c context.Context) ([]Category, error) {
	rows, err := q.db.Query(c, findCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Category{}
	for rows.Next() {
		var i Category
		if err := rows.Scan(&i.ID, &i.Name, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const updateCategory = `
UPDATE categories SET name = $2, updated_at = now()
WHERE id = $1
RETURNING id, name, created_at, updated_at
`

type UpdateCategoryParams struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func (q *Queries) UpdateCategory(c context.Context, arg UpdateCategoryParams) (Category, error) {
	row := q.db.QueryRow(c, updateCategory, arg.ID, arg.Name)
	var i Category
	err := row.Scan(&i.ID, &i.Name, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const deleteCategory = `
DELETE FROM categories WHERE id = $1
RETURNING id, name, created_at, updated_at
`

func (q *Queries) DeleteCategory(c context.Context, id uuid.UUID) (Category, error) {
	row := q.db.QueryRow(c, deleteCategory, id)
	var i Category
	err := row.Scan(&i.ID, &i.Name, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const insertProduct = `
INSERT INTO products (brand_id, category_id, name, description, price, stock)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, brand_id, category_id, name, description, price, stock, created_at, updated_at
`

type InsertProductParams struct {
	BrandID     uuid.UUID      `json:"brand_id"`
	CategoryID  uuid.UUID      `json:"category_id"`
	Name        string         `json:"name"`
	Description pgtype.Text    `json:"description"`
	Price       pgtype.Numeric `json:"price"`
	Stock       int32          `json:"stock"`
}

func (q *Queries) InsertProduct(c context.Context, arg InsertProductParams) (Product, error) {
	row := q.db.QueryRow(c, insertProduct,
		arg.BrandID,
		arg.CategoryID,
		arg.Name,
		arg.Description,
		arg.Price,
		arg.Stock,
	)
	var i Product
	err := row.Scan(
		&i.ID,
		&i.BrandID,
		&i.CategoryID,
		&i.Name,
		&i.Description,
		&i.Price,
		&i.Stock,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const findProducts = `
SELECT id, brand_id, category_id, name, description, price, stock, created_at, updated_at
FROM products
WHERE ($1::uuid IS NULL OR brand_id = $1)
  AND ($2::uuid IS NULL OR category_id = $2)
  AND ($3::numeric IS NULL OR price >= $3)
  AND ($4::numeric IS NULL OR price <= $4)
ORDER BY name
`

type FindProductsParams struct {
	BrandID    pgtype.UUID    `json:"brand_id"`
	CategoryID pgtype.UUID    `json:"category_id"`
	MinPrice   pgtype.Numeric `json:"min_price"`
	MaxPrice   pgtype.Numeric `json:"max_price"`
}

func (q *Queries) FindProducts(c context.Context, arg FindProductsParams) ([]Product, error) {
	rows, err := q.db.Query(c, findProducts, arg.BrandID, arg.CategoryID, arg.MinPrice, arg.MaxPrice)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Product{}
	for rows.Next() {
		var i Product
		if err := rows.Scan(
			&i.ID,
			&i.BrandID,
			&i.CategoryID,
			&i.Name,
			&i.Description,
			&i.Price,
			&i.Stock,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const findProductById = `
SELECT id, brand_id, category_id, name, description, price, stock, created_at, updated_at
FROM products
WHERE id = $1
`

func (q *Queries) FindProductById(c context.Context, id uuid.UUID) (Product, error) {
	row := q.db.QueryRow(c, findProductById, id)
	var i Product
	err := row.Scan(
		&i.ID,
		&i.BrandID,
		&i.CategoryID,
		&i.Name,
		&i.Description,
		&i.Price,
		&i.Stock,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const findProductByName = `
SELECT id, brand_id, category_id, name, description, price, stock, created_at, updated_at
FROM products
WHERE name = $1
`

func (q *Queries) FindProductByName(c context.Context, name string) (Product, error) {
	row := q.db.QueryRow(c, findProductByName, name)
	var i Product
	err := row.Scan(
		&i.ID,
		&i.BrandID,
		&i.CategoryID,
		&i.Name,
		&i.Description,
		&i.Price,
		&i.Stock,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const updateProduct = `
UPDATE products
SET brand_id = $2,
    category_id = $3,
    name = $4,
    description = $5,
    price = $6,
    stock = $7,
    updated_at = now()
WHERE id = $1
RETURNING id, brand_id, category_id, name, description, price, stock, created_at, updated_at
`

type UpdateProductParams struct {
	ID          uuid.UUID      `json:"id"`
	BrandID     uuid.UUID      `json:"brand_id"`
	CategoryID  uuid.UUID      `json:"category_id"`
	Name        string         `json:"name"`
	Description pgtype.Text    `json:"description"`
	Price       pgtype.Numeric `json:"price"`
	Stock       int32          `json:"stock"`
}

func (q *Queries) UpdateProduct(c context.Context, arg UpdateProductParams) (Product, error) {
	row := q.db.QueryRow(c, updateProduct,
		arg.ID,
		arg.BrandID,
		arg.CategoryID,
		arg.Name,
		arg.Description,
		arg.Price,
		arg.Stock,
	)
	var i Product
	err := row.Scan(
		&i.ID,
		&i.BrandID,
		&i.CategoryID,
		&i.Name,
		&i.Description,
		&i.Price,
		&i.Stock,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const deleteProduct = `
DELETE FROM products WHERE id = $1
RETURNING id, brand_id, category_id, name, description, price, stock, created_at, updated_at
`

func (q *Queries) DeleteProduct(c context.Context, id uuid.UUID) (Product, error) {
	row := q.db.QueryRow(c, deleteProduct, id)
	var i Product
	err := row.Scan(
		&i.ID,
		&i.BrandID,
		&i.CategoryID,
		&i.Name,
		&i.Description,
		&i.Price,
		&i.Stock,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const decrementProductStock = `
UPDATE products
SET stock = stock - $2, updated_at = now()
WHERE id = $1 AND stock >= $2
RETURNING id, brand_id, category_id, name, description, price, stock, created_at, updated_at
`

type DecrementProductStockParams struct {
	ID       uuid.UUID `json:"id"`
	Quantity int32     `json:"quantity"`
}

// DecrementProductStock fails with pgx.ErrNoRows when the remaining stock is
// lower than the requested quantity.
func (q *Queries) DecrementProductStock(
	c context.Context,
	arg DecrementProductStockParams,
) (Product, error) {
	row := q.db.QueryRow(c, decrementProductStock, arg.ID, arg.Quantity)
	var i Product
	err := row.Scan(
		&i.ID,
		&i.BrandID,
		&i.CategoryID,
		&i.Name,
		&i.Description,
		&i.Price,
		&i.Stock,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const countProducts = `
SELECT count(*) FROM products
`

func (q *Queries) CountProducts(c context.Context) (int64, error) {
	row := q.db.QueryRow(c, countProducts)
	var count int64
	err := row.Scan(&count)
	return count, err
}
