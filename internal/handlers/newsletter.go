package handlers

import (
	"context"
	"errors"
	"net/http"

	"jamjournal/internal/logger"
	"jamjournal/internal/models"
	"jamjournal/internal/services"
	"jamjournal/internal/utils/helpers"

	"go.uber.org/zap"
)

type NewsletterService interface {
	Subscribe(ctx context.Context, req models.SubscribeRequest) error
	Unsubscribe(ctx context.Context, req models.SubscribeRequest) error
	Subscribers(ctx context.Context) ([]models.Subscriber, error)
	Campaigns(ctx context.Context) ([]models.Campaign, error)
	Send(ctx context.Context, req models.CampaignRequest) (*models.CampaignResult, error)
}

type NewsletterHandler struct{ svc NewsletterService }

func NewNewsletterHandler(svc NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{svc: svc}
}

type campaignSent struct {
	Message string `json:"message"`
	models.CampaignResult
}

func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req models.SubscribeRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "bad json")
		return
	}
	if err := h.svc.Subscribe(r.Context(), req); err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.Message(w, http.StatusOK, "Subscribed successfully")
}

func (h *NewsletterHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req models.SubscribeRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "bad json")
		return
	}
	if err := h.svc.Unsubscribe(r.Context(), req); err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.Message(w, http.StatusOK, "Unsubscribed successfully")
}

func (h *NewsletterHandler) Subscribers(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Subscribers(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, list)
}

func (h *NewsletterHandler) Campaigns(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Campaigns(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, list)
}

func (h *NewsletterHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req models.CampaignRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		logger.WithCtx(r.Context()).Warn("newsletter: невалидный JSON", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "bad json")
		return
	}
	res, err := h.svc.Send(r.Context(), req)
	if errors.Is(err, services.ErrMailDisabled) {
		helpers.Error(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, campaignSent{Message: "Newsletter sent", CampaignResult: *res})
}
