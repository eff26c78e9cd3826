package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	inHttp "github.com/Alturino/storefront/internal/http"
	"github.com/Alturino/storefront/internal/log"
	inOtel "github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/validate"
	"github.com/Alturino/storefront/voucher/internal/common/otel"
	"github.com/Alturino/storefront/voucher/internal/service"
	"github.com/Alturino/storefront/voucher/pkg/request"
)

type VoucherController struct {
	service *service.VoucherService
}

func AttachVoucherController(router *mux.Router, service *service.VoucherService) {
	controller := VoucherController{service: service}

	router.HandleFunc("/vouchers", controller.FindVouchers).Methods(http.MethodGet)
	router.HandleFunc("/vouchers", controller.InsertVoucher).Methods(http.MethodPost)
	router.HandleFunc("/vouchers/evaluate", controller.Evaluate).Methods(http.MethodPost)
	router.HandleFunc("/vouchers/{voucherId}", controller.FindVoucherById).Methods(http.MethodGet)
	router.HandleFunc("/vouchers/{voucherId}", controller.UpdateVoucher).Methods(http.MethodPut)
	router.HandleFunc("/vouchers/{voucherId}", controller.DeleteVoucher).
		Methods(http.MethodDelete)
}

func (t VoucherController) InsertVoucher(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "VoucherController InsertVoucher")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "VoucherController InsertVoucher").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := request.InsertVoucher{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating requestbody").Logger()
	logger.Info().Msg("validating request body")
	if err := validate.New().StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("validated request body")

	logger = logger.With().Str(log.KeyProcess, "inserting voucher").Logger()
	logger.Info().Msg("inserting voucher")
	c = logger.WithContext(c)
	voucher, err := t.service.InsertVoucher(c, reqBody)
	if err != nil {
		err = fmt.Errorf("failed inserting voucher with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": inHttp.StatusCodeFromError(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("inserted voucher")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusCreated,
		"message":    "successfully inserted voucher",
		"data": map[string]interface{}{
			"voucher": voucher,
		},
	})
}

func (t VoucherController) FindVouchers(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "VoucherController FindVouchers")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "VoucherController FindVouchers").
		Str(log.KeyProcess, "finding vouchers").
		Logger()

	logger.Info().Msg("finding vouchers")
	c = logger.WithContext(c)
	vouchers, err := t.service.FindVouchers(c)
	if err != nil {
		err = fmt.Errorf("failed finding vouchers with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": inHttp.StatusCodeFromError(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("found %d vouchers", len(vouchers))

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully found vouchers",
		"data": map[string]interface{}{
			"vouchers": vouchers,
		},
	})
}

func (t VoucherController) FindVoucherById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "VoucherController FindVoucherById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "VoucherController FindVoucherById").
		Str(log.KeyProcess, "validating voucherId").
		Logger()

	logger.Info().Msg("validating voucherId")
	pathValues := mux.Vars(r)
	voucherId, err := uuid.Parse(pathValues["voucherId"])
	if err != nil {
		err = fmt.Errorf(
			"failed validating voucherId=%s with error=%w",
			pathValues["voucherId"],
			err,
		)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyVoucher, voucherId.String()).Logger()
	logger.Info().Msgf("validated voucherId=%s", voucherId.String())

	logger = logger.With().Str(log.KeyProcess, "finding voucher by id").Logger()
	logger.Info().Msg("finding voucher by id")
	c = logger.WithContext(c)
	voucher, err := t.service.FindVoucherById(c, voucherId)
	if err != nil {
		err = fmt.Errorf("failed finding voucherId=%s with error=%w", voucherId.String(), err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusNotFound,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("found voucher by id")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("voucherId=%s found", voucherId.String()),
		"data": map[string]interface{}{
			"voucher": voucher,
		},
	})
}

func (t VoucherController) UpdateVoucher(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "VoucherController UpdateVoucher")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "VoucherController UpdateVoucher").
		Str(log.KeyProcess, "validating voucherId").
		Logger()

	logger.Info().Msg("validating voucherId")
	pathValues := mux.Vars(r)
	voucherId, err := uuid.Parse(pathValues["voucherId"])
	if err != nil {
		err = fmt.Errorf(
			"failed validating voucherId=%s with error=%w",
			pathValues["voucherId"],
			err,
		)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyVoucher, voucherId.String()).Logger()
	logger.Info().Msgf("validated voucherId=%s", voucherId.String())

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := request.UpdateVoucher{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	reqBody.ID = voucherId
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating requestbody").Logger()
	logger.Info().Msg("validating request body")
	if err := validate.New().StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("validated request body")

	logger = logger.With().Str(log.KeyProcess, "updating voucher").Logger()
	logger.Info().Msg("updating voucher")
	c = logger.WithContext(c)
	voucher, err := t.service.UpdateVoucher(c, reqBody)
	if err != nil {
		err = fmt.Errorf("failed updating voucherId=%s with error=%w", voucherId.String(), err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": inHttp.StatusCodeFromError(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("updated voucher")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("successfully updated voucherId=%s", voucherId.String()),
		"data": map[string]interface{}{
			"voucher": voucher,
		},
	})
}

func (t VoucherController) DeleteVoucher(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "VoucherController DeleteVoucher")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "VoucherController DeleteVoucher").
		Str(log.KeyProcess, "validating voucherId").
		Logger()

	logger.Info().Msg("validating voucherId")
	pathValues := mux.Vars(r)
	voucherId, err := uuid.Parse(pathValues["voucherId"])
	if err != nil {
		err = fmt.Errorf(
			"failed validating voucherId=%s with error=%w",
			pathValues["voucherId"],
			err,
		)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyVoucher, voucherId.String()).Logger()
	logger.Info().Msgf("validated voucherId=%s", voucherId.String())

	logger = logger.With().Str(log.KeyProcess, "deleting voucher").Logger()
	logger.Info().Msg("deleting voucher")
	c = logger.WithContext(c)
	if err := t.service.DeleteVoucher(c, voucherId); err != nil {
		err = fmt.Errorf("failed deleting voucherId=%s with error=%w", voucherId.String(), err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": inHttp.StatusCodeFromError(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("deleted voucher")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("successfully deleted voucherId=%s", voucherId.String()),
	})
}

func (t VoucherController) Evaluate(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "VoucherController Evaluate")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "VoucherController Evaluate").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := request.Evaluate{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating requestbody").Logger()
	logger.Info().Msg("validating request body")
	if err := validate.New().StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("validated request body")

	logger = logger.With().Str(log.KeyProcess, "evaluating voucher").Logger()
	logger.Info().Msg("evaluating voucher")
	c = logger.WithContext(c)
	evaluation, err := t.service.Evaluate(c, reqBody)
	if err != nil {
		err = fmt.Errorf("failed evaluating voucher with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": inHttp.StatusCodeFromError(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("evaluated voucher")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully evaluated voucher",
		"data": map[string]interface{}{
			"evaluation": evaluation,
		},
	})
}
