package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Alturino/storefront/internal/format"
	"github.com/Alturino/storefront/internal/repository"
)

type Product struct {
	ID             uuid.UUID       `json:"id"`
	BrandId        uuid.UUID       `json:"brand_id"`
	CategoryId     uuid.UUID       `json:"category_id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	PriceFormatted string          `json:"price_formatted"`
	Stock          int32           `json:"stock"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func NewProduct(product repository.Product) Product {
	price := repository.DecimalFromNumeric(product.Price)
	return Product{
		ID:             product.ID,
		BrandId:        product.BrandID,
		CategoryId:     product.CategoryID,
		Name:           product.Name,
		Description:    product.Description.String,
		Price:          price,
		PriceFormatted: format.Rupiah(price),
		Stock:          product.Stock,
		CreatedAt:      product.CreatedAt.Time,
		UpdatedAt:      product.UpdatedAt.Time,
	}
}

func NewProducts(products []repository.Product) []Product {
	items := make([]Product, len(products))
	for i, product := range products {
		items[i] = NewProduct(product)
	}
	return items
}

type Brand struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewBrand(brand repository.Brand) Brand {
	return Brand{
		ID:        brand.ID,
		Name:      brand.Name,
		CreatedAt: brand.CreatedAt.Time,
		UpdatedAt: brand.UpdatedAt.Time,
	}
}

type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewCategory(category repository.Category) Category {
	return Category{
		ID:        category.ID,
		Name:      category.Name,
		CreatedAt: category.CreatedAt.Time,
		UpdatedAt: category.UpdatedAt.Time,
	}
}
