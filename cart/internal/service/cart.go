package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Alturino/storefront/cart/internal/common/cache"
	"github.com/Alturino/storefront/cart/internal/common/otel"
	"github.com/Alturino/storefront/cart/pkg/reconcile"
	"github.com/Alturino/storefront/cart/pkg/request"
	"github.com/Alturino/storefront/cart/pkg/response"
	"github.com/Alturino/storefront/internal/common/constants"
	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/log"
	inOtel "github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/repository"
)

type CartService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	cache   *redis.Client
}

func NewCartService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
) CartService {
	return CartService{pool: pool, queries: queries, cache: cache}
}

func (s CartService) findOrCreateCart(
	c context.Context,
	queries *repository.Queries,
	userId uuid.UUID,
) (repository.Cart, error) {
	cart, err := queries.FindCartByUserId(c, userId)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return repository.Cart{}, err
	}
	return queries.InsertCart(c, userId)
}

func (s CartService) FindCart(c context.Context, userId uuid.UUID) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService FindCart")
	defer span.End()

	cacheKey := fmt.Sprintf(cache.KEY_CARTS_BY_USER_ID, userId.String())

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService FindCart").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding cart in cache").Logger()
	logger.Info().Msg("finding cart in cache")
	jsonCache, err := s.cache.Get(c, cacheKey).Result()
	if err == nil {
		logger.Info().Msg("found cart in cache")
		cart := response.Cart{}
		if err := json.Unmarshal([]byte(jsonCache), &cart); err != nil {
			err = fmt.Errorf("failed unmarshaling cache with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Cart{}, err
		}
		return cart, nil
	}
	logger.Info().Err(err).Msg("cart not found in cache")

	logger = logger.With().Str(log.KeyProcess, "finding cart in db").Logger()
	logger.Info().Msg("finding cart in db")
	cart, err := s.findOrCreateCart(c, s.queries, userId)
	if err != nil {
		err = fmt.Errorf("failed finding cart in db with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	rows, err := s.queries.FindCartItemsByCartId(c, cart.ID)
	if err != nil {
		err = fmt.Errorf("failed finding cart items in db with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger = logger.With().Str(log.KeyCartID, cart.ID.String()).Logger()
	logger.Info().Msgf("found cart with %d items in db", len(rows))
	cartResponse := response.NewCart(cart, rows)

	logger = logger.With().Str(log.KeyProcess, "inserting cart to cache").Logger()
	logger.Info().Msg("inserting cart to cache")
	marshaled, err := json.Marshal(cartResponse)
	if err != nil {
		err = fmt.Errorf("failed marshaling cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	err = s.cache.Set(c, cacheKey, marshaled, 15*time.Minute).Err()
	if err != nil {
		err = fmt.Errorf("failed inserting cart to cache with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("inserted cart to cache")

	return cartResponse, nil
}

func (s CartService) AddItem(
	c context.Context,
	userId uuid.UUID,
	param request.AddItem,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService AddItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService AddItem").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyProductID, param.ProductId.String()).
		Int32(log.KeyQuantity, param.Quantity).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	logger.Info().Msg("initializing transaction")
	tx, err := s.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("initialized transaction")
	defer func(lg zerolog.Logger) {
		l := lg.With().Str(log.KeyProcess, "rolling back transaction").Logger()
		rollbackErr := tx.Rollback(c)
		if rollbackErr != nil {
			if errors.Is(rollbackErr, pgx.ErrTxClosed) {
				return
			}
			rollbackErr = fmt.Errorf("failed rolling back transaction with error=%w", rollbackErr)
			inOtel.RecordError(rollbackErr, span)
			l.Error().Err(rollbackErr).Msg(rollbackErr.Error())
			return
		}
		l.Info().Msg("rolled back transaction")
	}(logger)
	queries := s.queries.WithTx(tx)

	logger = logger.With().Str(log.KeyProcess, "finding cart").Logger()
	logger.Info().Msg("finding cart")
	cart, err := s.findOrCreateCart(c, queries, userId)
	if err != nil {
		err = fmt.Errorf("failed finding cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger = logger.With().Str(log.KeyCartID, cart.ID.String()).Logger()
	logger.Info().Msg("found cart")

	logger = logger.With().Str(log.KeyProcess, "finding product").Logger()
	logger.Info().Msg("finding product")
	product, err := queries.FindProductById(c, param.ProductId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = inErrors.Validation("Product not found.")
		} else {
			err = fmt.Errorf("failed finding product with error=%w", err)
		}
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger = logger.With().Int32(log.KeyStock, product.Stock).Logger()
	logger.Info().Msg("found product")

	logger = logger.With().Str(log.KeyProcess, "merging cart item").Logger()
	logger.Info().Msg("merging cart item")
	desired := param.Quantity
	existing, err := queries.FindCartItemByCartIdAndProductId(
		c,
		repository.FindCartItemByCartIdAndProductIdParams{
			CartID:    cart.ID,
			ProductID: param.ProductId,
		},
	)
	merge := err == nil
	if merge {
		desired = existing.Quantity + param.Quantity
	} else if !errors.Is(err, pgx.ErrNoRows) {
		err = fmt.Errorf("failed finding cart item with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	quantity, err := reconcile.Clamp(desired, product.Stock)
	if err != nil {
		err = inErrors.Validation("Not enough stock available")
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	if merge {
		_, err = queries.UpdateCartItemQuantity(c, repository.UpdateCartItemQuantityParams{
			ID:       existing.ID,
			Quantity: quantity,
		})
	} else {
		_, err = queries.InsertCartItem(c, repository.InsertCartItemParams{
			CartID:    cart.ID,
			ProductID: param.ProductId,
			Quantity:  quantity,
		})
	}
	if err != nil {
		err = fmt.Errorf("failed upserting cart item with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msgf("merged cart item with quantity=%d", quantity)

	logger = logger.With().Str(log.KeyProcess, "finding cart items").Logger()
	logger.Info().Msg("finding cart items")
	rows, err := queries.FindCartItemsByCartId(c, cart.ID)
	if err != nil {
		err = fmt.Errorf("failed finding cart items with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msgf("found %d cart items", len(rows))

	logger = logger.With().Str(log.KeyProcess, "committing transaction").Logger()
	logger.Info().Msg("committing transaction")
	err = tx.Commit(c)
	if err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("committed transaction")

	c = logger.WithContext(c)
	if err := s.invalidateCart(c, userId); err != nil {
		return response.Cart{}, err
	}

	return response.NewCart(cart, rows), nil
}

func (s CartService) SetQuantity(
	c context.Context,
	userId uuid.UUID,
	param request.SetQuantity,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService SetQuantity")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService SetQuantity").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyProductID, param.ProductId.String()).
		Int32(log.KeyQuantity, param.Quantity).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding cart").Logger()
	logger.Info().Msg("finding cart")
	cart, err := s.queries.FindCartByUserId(c, userId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = inErrors.Validation("Cart is empty.")
		} else {
			err = fmt.Errorf("failed finding cart with error=%w", err)
		}
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger = logger.With().Str(log.KeyCartID, cart.ID.String()).Logger()
	logger.Info().Msg("found cart")

	logger = logger.With().Str(log.KeyProcess, "finding cart item").Logger()
	logger.Info().Msg("finding cart item")
	item, err := s.queries.FindCartItemByCartIdAndProductId(
		c,
		repository.FindCartItemByCartIdAndProductIdParams{
			CartID:    cart.ID,
			ProductID: param.ProductId,
		},
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = inErrors.Validation("Item not in cart.")
		} else {
			err = fmt.Errorf("failed finding cart item with error=%w", err)
		}
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("found cart item")

	logger = logger.With().Str(log.KeyProcess, "finding product").Logger()
	logger.Info().Msg("finding product")
	product, err := s.queries.FindProductById(c, param.ProductId)
	if err != nil {
		err = fmt.Errorf("failed finding product with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger = logger.With().Int32(log.KeyStock, product.Stock).Logger()
	logger.Info().Msg("found product")

	logger = logger.With().Str(log.KeyProcess, "reconciling quantity").Logger()
	logger.Info().Msg("reconciling quantity")
	apply, err := reconcile.Check(param.Quantity, product.Stock)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	if apply {
		_, err = s.queries.UpdateCartItemQuantity(c, repository.UpdateCartItemQuantityParams{
			ID:       item.ID,
			Quantity: param.Quantity,
		})
		if err != nil {
			err = fmt.Errorf("failed updating cart item quantity with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Cart{}, err
		}
		logger.Info().Msg("reconciled quantity")

		c = logger.WithContext(c)
		if err := s.invalidateCart(c, userId); err != nil {
			return response.Cart{}, err
		}
	} else {
		logger.Info().Msg("quantity below one, ignoring update")
	}

	logger = logger.With().Str(log.KeyProcess, "finding cart items").Logger()
	logger.Info().Msg("finding cart items")
	rows, err := s.queries.FindCartItemsByCartId(c, cart.ID)
	if err != nil {
		err = fmt.Errorf("failed finding cart items with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msgf("found %d cart items", len(rows))

	return response.NewCart(cart, rows), nil
}

func (s CartService) RemoveItem(
	c context.Context,
	userId uuid.UUID,
	productId uuid.UUID,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService RemoveItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService RemoveItem").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyProductID, productId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding cart").Logger()
	logger.Info().Msg("finding cart")
	cart, err := s.queries.FindCartByUserId(c, userId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = inErrors.Validation("Cart is empty.")
		} else {
			err = fmt.Errorf("failed finding cart with error=%w", err)
		}
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger = logger.With().Str(log.KeyCartID, cart.ID.String()).Logger()
	logger.Info().Msg("found cart")

	logger = logger.With().Str(log.KeyProcess, "deleting cart item").Logger()
	logger.Info().Msg("deleting cart item")
	err = s.queries.DeleteCartItem(c, repository.DeleteCartItemParams{
		CartID:    cart.ID,
		ProductID: productId,
	})
	if err != nil {
		err = fmt.Errorf("failed deleting cart item with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("deleted cart item")

	c = logger.WithContext(c)
	if err := s.invalidateCart(c, userId); err != nil {
		return response.Cart{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "finding cart items").Logger()
	logger.Info().Msg("finding cart items")
	rows, err := s.queries.FindCartItemsByCartId(c, cart.ID)
	if err != nil {
		err = fmt.Errorf("failed finding cart items with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msgf("found %d cart items", len(rows))

	return response.NewCart(cart, rows), nil
}

func (s CartService) ClearCart(c context.Context, userId uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "CartService ClearCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService ClearCart").
		Str(log.KeyUserID, userId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding cart").Logger()
	logger.Info().Msg("finding cart")
	cart, err := s.queries.FindCartByUserId(c, userId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		err = fmt.Errorf("failed finding cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger = logger.With().Str(log.KeyCartID, cart.ID.String()).Logger()
	logger.Info().Msg("found cart")

	logger = logger.With().Str(log.KeyProcess, "deleting cart items").Logger()
	logger.Info().Msg("deleting cart items")
	err = s.queries.DeleteCartItemsByCartId(c, cart.ID)
	if err != nil {
		err = fmt.Errorf("failed deleting cart items with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("deleted cart items")

	c = logger.WithContext(c)
	return s.invalidateCart(c, userId)
}

// Checkout forwards the cart to the order service which places the order in a
// single transaction.
func (s CartService) Checkout(
	c context.Context,
	jwt *jwt.Token,
	userId uuid.UUID,
	param request.Checkout,
) (map[string]interface{}, error) {
	c, span := otel.Tracer.Start(c, "CartService Checkout")
	defer span.End()

	requestId := log.RequestIDFromContext(c)

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService Checkout").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyVoucherCode, param.VoucherCode).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "creating checkout request").Logger()
	logger.Info().Msg("creating checkout request to order-service")
	body, err := json.Marshal(param)
	if err != nil {
		err = fmt.Errorf("failed marshaling checkout request with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	req, err := http.NewRequestWithContext(
		c,
		http.MethodPost,
		constants.URL_ORDER_SERVICE+"/checkout",
		bytes.NewBuffer(body),
	)
	if err != nil {
		err = fmt.Errorf("failed creating request to order-service with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	req.Header.Add("Authorization", "Bearer "+jwt.Raw)
	req.Header.Add(log.KeyRequestID, requestId)
	logger.Info().Msg("created checkout request to order-service")

	logger = logger.With().Str(log.KeyProcess, "sending checkout request").Logger()
	logger.Info().Msg("sending checkout request to order-service")
	resp, err := otelhttp.DefaultClient.Do(req)
	if err != nil {
		err = inErrors.Transport("failed checkout to order-service", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	defer resp.Body.Close()
	logger.Info().Msg("sent checkout request to order-service")

	logger = logger.With().Str(log.KeyProcess, "decoding checkout response").Logger()
	logger.Info().Msg("decoding checkout response")
	respBody := map[string]interface{}{}
	err = json.NewDecoder(resp.Body).Decode(&respBody)
	if err != nil {
		err = fmt.Errorf("failed decoding checkout response with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		err = fmt.Errorf(
			"order service returned status code=%d with message=%v",
			resp.StatusCode,
			respBody["message"],
		)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msg("decoded checkout response")

	c = logger.WithContext(c)
	if err := s.invalidateCart(c, userId); err != nil {
		return nil, err
	}

	return respBody, nil
}

func (s CartService) invalidateCart(c context.Context, userId uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "CartService invalidateCart")
	defer span.End()

	cacheKey := fmt.Sprintf(cache.KEY_CARTS_BY_USER_ID, userId.String())

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService invalidateCart").
		Str(log.KeyCacheKey, cacheKey).
		Str(log.KeyProcess, "deleting cart from cache").
		Logger()

	logger.Info().Msg("deleting cart from cache")
	err := s.cache.Del(c, cacheKey).Err()
	if err != nil {
		err = fmt.Errorf("failed deleting cart from cache with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("deleted cart from cache")

	return nil
}
