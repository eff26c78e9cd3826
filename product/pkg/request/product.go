package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InsertProduct struct {
	BrandId     uuid.UUID       `json:"brand_id"    validate:"required"`
	CategoryId  uuid.UUID       `json:"category_id" validate:"required"`
	Name        string          `json:"name"        validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"       validate:"price"`
	Stock       int32           `json:"stock"       validate:"gte=0"`
}

type UpdateProduct struct {
	ID          uuid.UUID       `json:"-"`
	BrandId     uuid.UUID       `json:"brand_id"    validate:"required"`
	CategoryId  uuid.UUID       `json:"category_id" validate:"required"`
	Name        string          `json:"name"        validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"       validate:"price"`
	Stock       int32           `json:"stock"       validate:"gte=0"`
}

type FindProducts struct {
	BrandId    uuid.NullUUID       `json:"brand_id"`
	CategoryId uuid.NullUUID       `json:"category_id"`
	MinPrice   decimal.NullDecimal `json:"min_price"`
	MaxPrice   decimal.NullDecimal `json:"max_price"`
}

type InsertBrand struct {
	Name string `json:"name" validate:"required"`
}

type InsertCategory struct {
	Name string `json:"name" validate:"required"`
}
