package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/log"
	inOtel "github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/voucher/internal/common/otel"
	"github.com/Alturino/storefront/voucher/pkg/evaluate"
	"github.com/Alturino/storefront/voucher/pkg/request"
	"github.com/Alturino/storefront/voucher/pkg/response"
)

type VoucherService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	cache   *redis.Client
}

func NewVoucherService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
) VoucherService {
	return VoucherService{pool: pool, queries: queries, cache: cache}
}

func (s VoucherService) InsertVoucher(
	c context.Context,
	param request.InsertVoucher,
) (response.Voucher, error) {
	c, span := otel.Tracer.Start(c, "VoucherService InsertVoucher")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "VoucherService InsertVoucher").
		Str(log.KeyVoucherCode, param.Code).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "inserting voucher to database").Logger()
	logger.Info().Msg("inserting voucher to database")
	var usageLimit pgtype.Int4
	if param.UsageLimit != nil {
		usageLimit = pgtype.Int4{Int32: *param.UsageLimit, Valid: true}
	}
	voucher, err := s.queries.InsertVoucher(c, repository.InsertVoucherParams{
		Code:          param.Code,
		VoucherType:   param.VoucherType,
		DiscountValue: repository.NumericFromDecimal(param.DiscountValue),
		MinPurchase:   repository.NumericFromDecimal(param.MinPurchase),
		MaxDiscount:   repository.NumericFromDecimal(param.MaxDiscount),
		ValidFrom:     pgtype.Timestamp{Time: param.ValidFrom, Valid: true},
		ValidUntil:    pgtype.Timestamp{Time: param.ValidUntil, Valid: true},
		UsageLimit:    usageLimit,
		IsActive:      param.IsActive,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting voucher to database with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Voucher{}, err
	}
	logger = logger.With().Str(log.KeyVoucher, voucher.ID.String()).Logger()
	logger.Info().Msg("inserted voucher to database")

	return response.NewVoucher(voucher), nil
}

func (s VoucherService) FindVouchers(c context.Context) ([]response.Voucher, error) {
	c, span := otel.Tracer.Start(c, "VoucherService FindVouchers")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "VoucherService FindVouchers").
		Str(log.KeyProcess, "finding vouchers in db").
		Logger()

	logger.Info().Msg("finding vouchers in db")
	vouchers, err := s.queries.FindVouchers(c)
	if err != nil {
		err = fmt.Errorf("failed finding vouchers in db with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d vouchers in db", len(vouchers))

	items := make([]response.Voucher, len(vouchers))
	for i, voucher := range vouchers {
		items[i] = response.NewVoucher(voucher)
	}
	return items, nil
}

func (s VoucherService) FindVoucherById(
	c context.Context,
	voucherId uuid.UUID,
) (response.Voucher, error) {
	c, span := otel.Tracer.Start(c, "VoucherService FindVoucherById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "VoucherService FindVoucherById").
		Str(log.KeyVoucher, voucherId.String()).
		Str(log.KeyProcess, "finding voucher in db").
		Logger()

	logger.Info().Msg("finding voucher in db")
	voucher, err := s.queries.FindVoucherById(c, voucherId)
	if err != nil {
		err = fmt.Errorf("failed finding voucher in db with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Voucher{}, err
	}
	logger.Info().Msg("found voucher in db")

	return response.NewVoucher(voucher), nil
}

func (s VoucherService) UpdateVoucher(
	c context.Context,
	param request.UpdateVoucher,
) (response.Voucher, error) {
	c, span := otel.Tracer.Start(c, "VoucherService UpdateVoucher")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "VoucherService UpdateVoucher").
		Str(log.KeyVoucher, param.ID.String()).
		Str(log.KeyProcess, "updating voucher in database").
		Logger()

	logger.Info().Msg("updating voucher in database")
	var usageLimit pgtype.Int4
	if param.UsageLimit != nil {
		usageLimit = pgtype.Int4{Int32: *param.UsageLimit, Valid: true}
	}
	voucher, err := s.queries.UpdateVoucher(c, repository.UpdateVoucherParams{
		ID:            param.ID,
		VoucherType:   param.VoucherType,
		DiscountValue: repository.NumericFromDecimal(param.DiscountValue),
		MinPurchase:   repository.NumericFromDecimal(param.MinPurchase),
		MaxDiscount:   repository.NumericFromDecimal(param.MaxDiscount),
		ValidFrom:     pgtype.Timestamp{Time: param.ValidFrom, Valid: true},
		ValidUntil:    pgtype.Timestamp{Time: param.ValidUntil, Valid: true},
		UsageLimit:    usageLimit,
		IsActive:      param.IsActive,
	})
	if err != nil {
		err = fmt.Errorf("failed updating voucher in database with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Voucher{}, err
	}
	logger.Info().Msg("updated voucher in database")

	return response.NewVoucher(voucher), nil
}

func (s VoucherService) DeleteVoucher(c context.Context, voucherId uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "VoucherService DeleteVoucher")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "VoucherService DeleteVoucher").
		Str(log.KeyVoucher, voucherId.String()).
		Str(log.KeyProcess, "deleting voucher from database").
		Logger()

	logger.Info().Msg("deleting voucher from database")
	err := s.queries.DeleteVoucher(c, voucherId)
	if err != nil {
		err = fmt.Errorf("failed deleting voucher from database with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("deleted voucher from database")

	return nil
}

// Evaluate applies a voucher code to a subtotal without consuming a use.
// Usage is consumed when the order is placed.
func (s VoucherService) Evaluate(
	c context.Context,
	param request.Evaluate,
) (response.Evaluation, error) {
	c, span := otel.Tracer.Start(c, "VoucherService Evaluate")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "VoucherService Evaluate").
		Str(log.KeyVoucherCode, param.Code).
		Str(log.KeySubtotal, param.Subtotal.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding voucher by code").Logger()
	logger.Info().Msg("finding voucher by code")
	catalog := evaluate.NewMapCatalog()
	voucher, err := s.queries.FindVoucherByCode(c, param.Code)
	if err == nil {
		catalog = evaluate.NewMapCatalog(evaluate.NewVoucher(voucher))
		logger.Info().Msg("found voucher by code")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		err = fmt.Errorf("failed finding voucher by code with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Evaluation{}, err
	} else {
		logger.Info().Msg("voucher code not found")
	}

	logger = logger.With().Str(log.KeyProcess, "evaluating voucher").Logger()
	logger.Info().Msg("evaluating voucher")
	result, err := evaluate.Evaluate(catalog, param.Code, param.Subtotal, time.Now())
	if err != nil {
		if inErrors.KindOf(err) != inErrors.KindValidation {
			err = fmt.Errorf("failed evaluating voucher with error=%w", err)
		}
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Evaluation{}, err
	}
	logger = logger.With().Str(log.KeyDiscount, result.Discount.String()).Logger()
	logger.Info().Msg("evaluated voucher")

	return response.NewEvaluation(result), nil
}
