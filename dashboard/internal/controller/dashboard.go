package controller

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/dashboard/internal/common/otel"
	"github.com/Alturino/storefront/dashboard/internal/service"
	inHttp "github.com/Alturino/storefront/internal/http"
	"github.com/Alturino/storefront/internal/log"
	inOtel "github.com/Alturino/storefront/internal/otel"
)

type DashboardController struct {
	service *service.DashboardService
}

func AttachDashboardController(router *mux.Router, service *service.DashboardService) {
	controller := DashboardController{service: service}

	router.HandleFunc("/dashboard/stats", controller.Stats).Methods(http.MethodGet)
}

func (t DashboardController) Stats(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "DashboardController Stats")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "DashboardController Stats").
		Str(log.KeyProcess, "finding stats").
		Logger()

	logger.Info().Msg("finding stats")
	c = logger.WithContext(c)
	stats, err := t.service.Stats(c)
	if err != nil {
		err = fmt.Errorf("failed finding stats with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": inHttp.StatusCodeFromError(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("found stats")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully found stats",
		"data": map[string]interface{}{
			"stats": stats,
		},
	})
}
