package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/dashboard/internal/common/cache"
	"github.com/Alturino/storefront/dashboard/internal/common/otel"
	"github.com/Alturino/storefront/dashboard/pkg/response"
	"github.com/Alturino/storefront/internal/format"
	"github.com/Alturino/storefront/internal/log"
	inOtel "github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/repository"
)

const recentOrderLimit = 10

type DashboardService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	cache   *redis.Client
}

func NewDashboardService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
) DashboardService {
	return DashboardService{pool: pool, queries: queries, cache: cache}
}

// Stats aggregates storefront counters. The result is cached briefly so a
// dashboard polling every few seconds does not hammer the database.
func (s DashboardService) Stats(c context.Context) (response.Stats, error) {
	c, span := otel.Tracer.Start(c, "DashboardService Stats")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "DashboardService Stats").
		Str(log.KeyCacheKey, cache.KEY_DASHBOARD_STATS).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding stats in cache").Logger()
	logger.Info().Msg("finding stats in cache")
	jsonCache, err := s.cache.Get(c, cache.KEY_DASHBOARD_STATS).Result()
	if err == nil {
		logger.Info().Msg("found stats in cache")
		stats := response.Stats{}
		if err := json.Unmarshal([]byte(jsonCache), &stats); err != nil {
			err = fmt.Errorf("failed unmarshaling cache with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Stats{}, err
		}
		return stats, nil
	}
	logger.Info().Err(err).Msg("stats not found in cache")

	logger = logger.With().Str(log.KeyProcess, "counting customers").Logger()
	logger.Info().Msg("counting customers")
	customerCount, err := s.queries.CountUsersByRole(c, "customer")
	if err != nil {
		err = fmt.Errorf("failed counting customers with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Stats{}, err
	}
	logger.Info().Msgf("counted %d customers", customerCount)

	logger = logger.With().Str(log.KeyProcess, "counting products").Logger()
	logger.Info().Msg("counting products")
	productCount, err := s.queries.CountProducts(c)
	if err != nil {
		err = fmt.Errorf("failed counting products with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Stats{}, err
	}
	logger.Info().Msgf("counted %d products", productCount)

	logger = logger.With().Str(log.KeyProcess, "counting orders").Logger()
	logger.Info().Msg("counting orders")
	orderCount, err := s.queries.CountOrders(c)
	if err != nil {
		err = fmt.Errorf("failed counting orders with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Stats{}, err
	}
	logger.Info().Msgf("counted %d orders", orderCount)

	logger = logger.With().Str(log.KeyProcess, "summing revenue").Logger()
	logger.Info().Msg("summing revenue")
	revenueNumeric, err := s.queries.SumOrderRevenue(c)
	if err != nil {
		err = fmt.Errorf("failed summing revenue with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Stats{}, err
	}
	revenue := repository.DecimalFromNumeric(revenueNumeric)
	logger.Info().Msgf("summed revenue=%s", revenue.String())

	logger = logger.With().Str(log.KeyProcess, "finding recent orders").Logger()
	logger.Info().Msg("finding recent orders")
	orders, err := s.queries.FindRecentOrders(c, recentOrderLimit)
	if err != nil {
		err = fmt.Errorf("failed finding recent orders with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Stats{}, err
	}
	recentOrders := make([]response.RecentOrder, len(orders))
	for i, order := range orders {
		total := repository.DecimalFromNumeric(order.Total)
		recentOrders[i] = response.RecentOrder{
			ID:             order.ID,
			UserId:         order.UserID,
			Status:         order.Status,
			Total:          total,
			TotalFormatted: format.Rupiah(total),
			CreatedAt:      order.CreatedAt.Time,
		}
	}
	logger.Info().Msgf("found %d recent orders", len(recentOrders))

	stats := response.Stats{
		CustomerCount:    customerCount,
		ProductCount:     productCount,
		OrderCount:       orderCount,
		Revenue:          revenue,
		RevenueFormatted: format.Rupiah(revenue),
		RecentOrders:     recentOrders,
	}

	logger = logger.With().Str(log.KeyProcess, "inserting stats to cache").Logger()
	logger.Info().Msg("inserting stats to cache")
	marshaled, err := json.Marshal(stats)
	if err != nil {
		err = fmt.Errorf("failed marshaling stats with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Stats{}, err
	}
	err = s.cache.Set(c, cache.KEY_DASHBOARD_STATS, marshaled, 30*time.Second).Err()
	if err != nil {
		err = fmt.Errorf("failed inserting stats to cache with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Stats{}, err
	}
	logger.Info().Msg("inserted stats to cache")

	return stats, nil
}
