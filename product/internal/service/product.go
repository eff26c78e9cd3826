package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/log"
	inOtel "github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/product/internal/common/cache"
	"github.com/Alturino/storefront/product/internal/common/otel"
	"github.com/Alturino/storefront/product/pkg/request"
	"github.com/Alturino/storefront/product/pkg/response"
)

type ProductService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	cache   *redis.Client
}

func NewProductService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
) ProductService {
	return ProductService{pool: pool, queries: queries, cache: cache}
}

func (s ProductService) InsertProduct(
	c context.Context,
	param request.InsertProduct,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService InsertProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService InsertProduct").
		Str(log.KeyBrandID, param.BrandId.String()).
		Str(log.KeyCategoryID, param.CategoryId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "inserting product to database").Logger()
	logger.Info().Msg("inserting product to database")
	product, err := s.queries.InsertProduct(c, repository.InsertProductParams{
		BrandID:     param.BrandId,
		CategoryID:  param.CategoryId,
		Name:        param.Name,
		Description: pgtype.Text{String: param.Description, Valid: param.Description != ""},
		Price:       repository.NumericFromDecimal(param.Price),
		Stock:       param.Stock,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting product to database with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger = logger.With().Str(log.KeyProductID, product.ID.String()).Logger()
	logger.Info().Msg("inserted product to database")

	logger = logger.With().Str(log.KeyProcess, "invalidating product list cache").Logger()
	logger.Info().Msg("invalidating product list cache")
	err = s.cache.Del(c, cache.KEY_PRODUCT_LIST).Err()
	if err != nil {
		err = fmt.Errorf("failed invalidating product list cache with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Msg("invalidated product list cache")

	return response.NewProduct(product), nil
}

func (s ProductService) FindProducts(
	c context.Context,
	param request.FindProducts,
) ([]response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProducts").
		Logger()

	filtered := param.BrandId.Valid || param.CategoryId.Valid ||
		param.MinPrice.Valid || param.MaxPrice.Valid
	if !filtered {
		logger = logger.With().Str(log.KeyProcess, "finding products in cache").Logger()
		logger.Info().Msg("finding products in cache")
		jsonCache, err := s.cache.Get(c, cache.KEY_PRODUCT_LIST).Result()
		if err == nil {
			logger.Info().Msg("found products in cache")
			products := []response.Product{}
			if err := json.Unmarshal([]byte(jsonCache), &products); err != nil {
				err = fmt.Errorf("failed unmarshaling cache with error=%w", err)
				inOtel.RecordError(err, span)
				logger.Error().Err(err).Msg(err.Error())
				return nil, err
			}
			return products, nil
		}
		logger.Info().Err(err).Msg("products not found in cache")
	}

	logger = logger.With().Str(log.KeyProcess, "finding products in db").Logger()
	logger.Info().Msg("finding products in db")
	var minPrice, maxPrice pgtype.Numeric
	if param.MinPrice.Valid {
		minPrice = repository.NumericFromDecimal(param.MinPrice.Decimal)
	}
	if param.MaxPrice.Valid {
		maxPrice = repository.NumericFromDecimal(param.MaxPrice.Decimal)
	}
	products, err := s.queries.FindProducts(c, repository.FindProductsParams{
		BrandID:    pgtype.UUID{Bytes: param.BrandId.UUID, Valid: param.BrandId.Valid},
		CategoryID: pgtype.UUID{Bytes: param.CategoryId.UUID, Valid: param.CategoryId.Valid},
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
	})
	if err != nil {
		err = fmt.Errorf("failed finding products in db with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d products in db", len(products))
	productsResponse := response.NewProducts(products)

	if !filtered {
		logger = logger.With().Str(log.KeyProcess, "inserting products to cache").Logger()
		logger.Info().Msg("inserting products to cache")
		marshaled, err := json.Marshal(productsResponse)
		if err != nil {
			err = fmt.Errorf("failed marshaling products with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		err = s.cache.Set(c, cache.KEY_PRODUCT_LIST, marshaled, time.Hour).Err()
		if err != nil {
			err = fmt.Errorf("failed inserting products to cache with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		logger.Info().Msg("inserted products to cache")
	}

	return productsResponse, nil
}

func (s ProductService) FindProductById(
	c context.Context,
	productId uuid.UUID,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProductById")
	defer span.End()

	cacheKey := fmt.Sprintf(cache.KEY_PRODUCTS, productId.String())

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProductById").
		Str(log.KeyProductID, productId.String()).
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product in cache").Logger()
	logger.Info().Msg("finding product in cache")
	jsonCache, err := s.cache.Get(c, cacheKey).Result()
	if err != nil {
		logger.Info().Err(err).Msg("product not found in cache")

		logger = logger.With().Str(log.KeyProcess, "finding product in db").Logger()
		logger.Info().Msg("finding product in db")
		product, err := s.queries.FindProductById(c, productId)
		if err != nil {
			err = fmt.Errorf("failed finding product in db with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Product{}, err
		}
		logger.Info().Msg("found product in db")
		productResponse := response.NewProduct(product)

		logger = logger.With().Str(log.KeyProcess, "inserting product to cache").Logger()
		logger.Info().Msg("inserting product to cache")
		marshaled, err := json.Marshal(productResponse)
		if err != nil {
			err = fmt.Errorf("failed marshaling product with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Product{}, err
		}
		err = s.cache.Set(c, cacheKey, marshaled, time.Hour).Err()
		if err != nil {
			err = fmt.Errorf("failed inserting product to cache with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Product{}, err
		}
		logger.Info().Msg("inserted product to cache")

		return productResponse, nil
	}
	logger.Info().Msg("found product in cache")

	logger = logger.With().Str(log.KeyProcess, "unmarshaling cache").Logger()
	logger.Info().Msg("unmarshaling cache")
	product := response.Product{}
	err = json.Unmarshal([]byte(jsonCache), &product)
	if err != nil {
		err = fmt.Errorf("failed unmarshaling cache with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Msg("unmarshaled cache")

	return product, nil
}

func (s ProductService) UpdateProduct(
	c context.Context,
	param request.UpdateProduct,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService UpdateProduct")
	defer span.End()

	cacheKey := fmt.Sprintf(cache.KEY_PRODUCTS, param.ID.String())

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService UpdateProduct").
		Str(log.KeyProductID, param.ID.String()).
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "updating product in database").Logger()
	logger.Info().Msg("updating product in database")
	product, err := s.queries.UpdateProduct(c, repository.UpdateProductParams{
		ID:          param.ID,
		BrandID:     param.BrandId,
		CategoryID:  param.CategoryId,
		Name:        param.Name,
		Description: pgtype.Text{String: param.Description, Valid: param.Description != ""},
		Price:       repository.NumericFromDecimal(param.Price),
		Stock:       param.Stock,
	})
	if err != nil {
		err = fmt.Errorf("failed updating product in database with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Msg("updated product in database")

	logger = logger.With().Str(log.KeyProcess, "invalidating product cache").Logger()
	logger.Info().Msg("invalidating product cache")
	err = s.cache.Del(c, cacheKey, cache.KEY_PRODUCT_LIST).Err()
	if err != nil {
		err = fmt.Errorf("failed invalidating product cache with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Msg("invalidated product cache")

	return response.NewProduct(product), nil
}

func (s ProductService) DeleteProduct(c context.Context, productId uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "ProductService DeleteProduct")
	defer span.End()

	cacheKey := fmt.Sprintf(cache.KEY_PRODUCTS, productId.String())

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService DeleteProduct").
		Str(log.KeyProductID, productId.String()).
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "deleting product from database").Logger()
	logger.Info().Msg("deleting product from database")
	_, err := s.queries.DeleteProduct(c, productId)
	if err != nil {
		err = fmt.Errorf("failed deleting product from database with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("deleted product from database")

	logger = logger.With().Str(log.KeyProcess, "invalidating product cache").Logger()
	logger.Info().Msg("invalidating product cache")
	err = s.cache.Del(c, cacheKey, cache.KEY_PRODUCT_LIST).Err()
	if err != nil {
		err = fmt.Errorf("failed invalidating product cache with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("invalidated product cache")

	return nil
}

func (s ProductService) InsertBrand(
	c context.Context,
	param request.InsertBrand,
) (response.Brand, error) {
	c, span := otel.Tracer.Start(c, "ProductService InsertBrand")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService InsertBrand").
		Str(log.KeyProcess, "inserting brand to database").
		Logger()

	logger.Info().Msg("inserting brand to database")
	brand, err := s.queries.InsertBrand(c, param.Name)
	if err != nil {
		err = fmt.Errorf("failed inserting brand to database with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Brand{}, err
	}
	logger.Info().Msg("inserted brand to database")

	return response.NewBrand(brand), nil
}

func (s ProductService) FindBrands(c context.Context) ([]response.Brand, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindBrands")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindBrands").
		Str(log.KeyProcess, "finding brands in db").
		Logger()

	logger.Info().Msg("finding brands in db")
	brands, err := s.queries.FindBrands(c)
	if err != nil {
		err = fmt.Errorf("failed finding brands in db with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d brands in db", len(brands))

	items := make([]response.Brand, len(brands))
	for i, brand := range brands {
		items[i] = response.NewBrand(brand)
	}
	return items, nil
}

func (s ProductService) InsertCategory(
	c context.Context,
	param request.InsertCategory,
) (response.Category, error) {
	c, span := otel.Tracer.Start(c, "ProductService InsertCategory")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService InsertCategory").
		Str(log.KeyProcess, "inserting category to database").
		Logger()

	logger.Info().Msg("inserting category to database")
	category, err := s.queries.InsertCategory(c, param.Name)
	if err != nil {
		err = fmt.Errorf("failed inserting category to database with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Category{}, err
	}
	logger.Info().Msg("inserted category to database")

	return response.NewCategory(category), nil
}

func (s ProductService) FindCategories(c context.Context) ([]response.Category, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindCategories")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindCategories").
		Str(log.KeyProcess, "finding categories in db").
		Logger()

	logger.Info().Msg("finding categories in db")
	categories, err := s.queries.FindCategories(c)
	if err != nil {
		err = fmt.Errorf("failed finding categories in db with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d categories in db", len(categories))

	items := make([]response.Category, len(categories))
	for i, category := range categories {
		items[i] = response.NewCategory(category)
	}
	return items, nil
}
