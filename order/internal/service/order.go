package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/log"
	inOtel "github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/order/internal/common/cache"
	"github.com/Alturino/storefront/order/internal/common/otel"
	"github.com/Alturino/storefront/order/pkg/request"
	"github.com/Alturino/storefront/order/pkg/response"
	"github.com/Alturino/storefront/voucher/pkg/evaluate"
)

type OrderService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	cache   *redis.Client
}

func NewOrderService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
) OrderService {
	return OrderService{pool: pool, queries: queries, cache: cache}
}

// Checkout places an order from the user's cart in a single transaction.
// Stock is decremented and the voucher use is consumed inside the same
// transaction so a failed placement leaves both untouched.
func (s OrderService) Checkout(
	c context.Context,
	userId uuid.UUID,
	param request.Checkout,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService Checkout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService Checkout").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyVoucherCode, param.VoucherCode).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	logger.Info().Msg("initializing transaction")
	tx, err := s.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
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
	cart, err := queries.FindCartByUserId(c, userId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = inErrors.Validation("Cart is empty.")
		} else {
			err = fmt.Errorf("failed finding cart with error=%w", err)
		}
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	items, err := queries.FindCartItemsByCartId(c, cart.ID)
	if err != nil {
		err = fmt.Errorf("failed finding cart items with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	if len(items) == 0 {
		err = inErrors.Validation("Cart is empty.")
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger = logger.With().Str(log.KeyCartID, cart.ID.String()).Logger()
	logger.Info().Msgf("found cart with %d items", len(items))

	logger = logger.With().Str(log.KeyProcess, "decrementing stock").Logger()
	logger.Info().Msg("decrementing stock")
	subtotal := decimal.Zero
	for _, item := range items {
		_, err = queries.DecrementProductStock(c, repository.DecrementProductStockParams{
			ID:       item.ProductID,
			Quantity: item.Quantity,
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				err = inErrors.Validation("Not enough stock available")
			} else {
				err = fmt.Errorf(
					"failed decrementing stock of productId=%s with error=%w",
					item.ProductID.String(),
					err,
				)
			}
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Order{}, err
		}
		price := repository.DecimalFromNumeric(item.Price)
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt32(item.Quantity)))
	}
	logger = logger.With().Str(log.KeySubtotal, subtotal.String()).Logger()
	logger.Info().Msg("decremented stock")

	discount := decimal.Zero
	total := subtotal
	freeShipping := false
	voucherId := pgtype.UUID{}
	if param.VoucherCode != "" {
		logger = logger.With().Str(log.KeyProcess, "applying voucher").Logger()
		logger.Info().Msg("applying voucher")
		catalog := evaluate.NewMapCatalog()
		voucher, err := queries.FindVoucherByCode(c, param.VoucherCode)
		if err == nil {
			catalog = evaluate.NewMapCatalog(evaluate.NewVoucher(voucher))
		} else if !errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("failed finding voucher by code with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Order{}, err
		}
		result, err := evaluate.Evaluate(catalog, param.VoucherCode, subtotal, time.Now())
		if err != nil {
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Order{}, err
		}
		_, err = queries.IncrementVoucherUsage(c, voucher.ID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				err = inErrors.Validation("This voucher has reached its usage quota.")
			} else {
				err = fmt.Errorf("failed incrementing voucher usage with error=%w", err)
			}
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Order{}, err
		}
		discount = result.Discount
		total = result.Total
		freeShipping = result.FreeShipping
		voucherId = pgtype.UUID{Bytes: voucher.ID, Valid: true}
		logger = logger.With().Str(log.KeyDiscount, discount.String()).Logger()
		logger.Info().Msg("applied voucher")
	}

	logger = logger.With().Str(log.KeyProcess, "inserting order").Logger()
	logger.Info().Msg("inserting order")
	order, err := queries.InsertOrder(c, repository.InsertOrderParams{
		UserID:       userId,
		Status:       "PENDING",
		Subtotal:     repository.NumericFromDecimal(subtotal),
		Discount:     repository.NumericFromDecimal(discount),
		FreeShipping: freeShipping,
		VoucherID:    voucherId,
		Total:        repository.NumericFromDecimal(total),
	})
	if err != nil {
		err = fmt.Errorf("failed inserting order with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	orderItems := make([]repository.InsertOrderItemsParams, len(items))
	for i, item := range items {
		orderItems[i] = repository.InsertOrderItemsParams{
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
	}
	inserted, err := queries.InsertOrderItems(c, orderItems)
	if err != nil {
		err = fmt.Errorf("failed inserting order items with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger = logger.With().Str(log.KeyOrderID, order.ID.String()).Logger()
	logger.Info().Msgf("inserted order with %d items", inserted)

	logger = logger.With().Str(log.KeyProcess, "clearing cart").Logger()
	logger.Info().Msg("clearing cart")
	err = queries.DeleteCartItemsByCartId(c, cart.ID)
	if err != nil {
		err = fmt.Errorf("failed clearing cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("cleared cart")

	logger = logger.With().Str(log.KeyProcess, "finding order items").Logger()
	logger.Info().Msg("finding order items")
	rows, err := queries.FindOrderItemsByOrderId(c, order.ID)
	if err != nil {
		err = fmt.Errorf("failed finding order items with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msgf("found %d order items", len(rows))

	logger = logger.With().Str(log.KeyProcess, "committing transaction").Logger()
	logger.Info().Msg("committing transaction")
	err = tx.Commit(c)
	if err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("committed transaction")

	return response.NewOrder(order, rows), nil
}

func (s OrderService) FindOrders(c context.Context, userId uuid.UUID) ([]response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService FindOrders")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService FindOrders").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyProcess, "finding orders in db").
		Logger()

	logger.Info().Msg("finding orders in db")
	orders, err := s.queries.FindOrdersByUserId(c, userId)
	if err != nil {
		err = fmt.Errorf("failed finding orders in db with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d orders in db", len(orders))

	return response.NewOrders(orders), nil
}

func (s OrderService) FindOrderById(
	c context.Context,
	userId uuid.UUID,
	orderId uuid.UUID,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService FindOrderById")
	defer span.End()

	cacheKey := fmt.Sprintf(cache.KEY_ORDERS, orderId.String())

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService FindOrderById").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyOrderID, orderId.String()).
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding order in cache").Logger()
	logger.Info().Msg("finding order in cache")
	jsonCache, err := s.cache.Get(c, cacheKey).Result()
	if err == nil {
		logger.Info().Msg("found order in cache")
		order := response.Order{}
		if err := json.Unmarshal([]byte(jsonCache), &order); err != nil {
			err = fmt.Errorf("failed unmarshaling cache with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Order{}, err
		}
		if order.UserId != userId {
			err = inErrors.Validation("Order not found.")
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Order{}, err
		}
		return order, nil
	}
	logger.Info().Err(err).Msg("order not found in cache")

	logger = logger.With().Str(log.KeyProcess, "finding order in db").Logger()
	logger.Info().Msg("finding order in db")
	order, err := s.queries.FindOrderById(c, orderId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = inErrors.Validation("Order not found.")
		} else {
			err = fmt.Errorf("failed finding order in db with error=%w", err)
		}
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	if order.UserID != userId {
		err = inErrors.Validation("Order not found.")
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	rows, err := s.queries.FindOrderItemsByOrderId(c, orderId)
	if err != nil {
		err = fmt.Errorf("failed finding order items in db with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msgf("found order with %d items in db", len(rows))
	orderResponse := response.NewOrder(order, rows)

	logger = logger.With().Str(log.KeyProcess, "inserting order to cache").Logger()
	logger.Info().Msg("inserting order to cache")
	marshaled, err := json.Marshal(orderResponse)
	if err != nil {
		err = fmt.Errorf("failed marshaling order with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	err = s.cache.Set(c, cacheKey, marshaled, time.Hour).Err()
	if err != nil {
		err = fmt.Errorf("failed inserting order to cache with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("inserted order to cache")

	return orderResponse, nil
}

func (s OrderService) UpdateStatus(
	c context.Context,
	param request.UpdateStatus,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService UpdateStatus")
	defer span.End()

	cacheKey := fmt.Sprintf(cache.KEY_ORDERS, param.ID.String())

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService UpdateStatus").
		Str(log.KeyOrderID, param.ID.String()).
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "updating order status").Logger()
	logger.Info().Msgf("updating order status to %s", param.Status)
	order, err := s.queries.UpdateOrderStatus(c, repository.UpdateOrderStatusParams{
		ID:     param.ID,
		Status: param.Status,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = inErrors.Validation("Order not found.")
		} else {
			err = fmt.Errorf("failed updating order status with error=%w", err)
		}
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msgf("updated order status to %s", param.Status)

	logger = logger.With().Str(log.KeyProcess, "deleting order from cache").Logger()
	logger.Info().Msg("deleting order from cache")
	err = s.cache.Del(c, cacheKey).Err()
	if err != nil {
		err = fmt.Errorf("failed deleting order from cache with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("deleted order from cache")

	logger = logger.With().Str(log.KeyProcess, "finding order items").Logger()
	logger.Info().Msg("finding order items")
	rows, err := s.queries.FindOrderItemsByOrderId(c, param.ID)
	if err != nil {
		err = fmt.Errorf("failed finding order items with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msgf("found %d order items", len(rows))

	return response.NewOrder(order, rows), nil
}
