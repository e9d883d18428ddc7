package handlers

import (
	"context"
	"net/http"

	"jamjournal/internal/logger"
	"jamjournal/internal/models"
	"jamjournal/internal/utils/helpers"

	"go.uber.org/zap"
)

type GenreService interface {
	List(ctx context.Context) ([]models.Genre, error)
	Get(ctx context.Context, id int64) (*models.Genre, error)
	Create(ctx context.Context, req models.GenreRequest) (*models.Genre, error)
	Update(ctx context.Context, id int64, req models.GenreRequest) (*models.Genre, error)
	Delete(ctx context.Context, id int64) error
}

type GenreHandler struct{ svc GenreService }

func NewGenreHandler(svc GenreService) *GenreHandler { return &GenreHandler{svc: svc} }

func (h *GenreHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, list)
}

func (h *GenreHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "invalid id")
		return
	}
	g, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, g)
}

func (h *GenreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.GenreRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		logger.WithCtx(r.Context()).Warn("genres: невалидный JSON", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "bad json")
		return
	}
	g, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusCreated, g)
}

func (h *GenreHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req models.GenreRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "bad json")
		return
	}
	g, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, g)
}

func (h *GenreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.Message(w, http.StatusOK, "Genre deleted")
}
