package handlers

import (
	"context"
	"net/http"

	"jamjournal/internal/logger"
	"jamjournal/internal/models"
	"jamjournal/internal/utils/helpers"

	"go.uber.org/zap"
)

type AnalyticsService interface {
	Overview(ctx context.Context) (*models.Analytics, error)
}

type AnalyticsHandler struct{ svc AnalyticsService }

func NewAnalyticsHandler(svc AnalyticsService) *AnalyticsHandler { return &AnalyticsHandler{svc: svc} }

func (h *AnalyticsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Overview(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("analytics: ошибка сбора аналитики", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Failed to fetch analytics")
		return
	}
	helpers.JSON(w, http.StatusOK, out)
}
