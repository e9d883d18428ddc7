package handlers

import (
	"context"
	"net/http"

	"jamjournal/internal/logger"
	"jamjournal/internal/models"
	"jamjournal/internal/query"
	"jamjournal/internal/reqctx"
	"jamjournal/internal/utils/helpers"

	"go.uber.org/zap"
)

type PostService interface {
	List(ctx context.Context, params query.ListParams, category string) ([]*models.Post, error)
	Get(ctx context.Context, id int64) (*models.Post, error)
	Read(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, req models.CreatePostRequest) (*models.Post, error)
	Update(ctx context.Context, id int64, req models.UpdatePostRequest) (*models.Post, error)
	UpdatePriority(ctx context.Context, id int64, priority int) error
	Delete(ctx context.Context, id int64) error
	Rate(ctx context.Context, id int64) error
	AddMedia(ctx context.Context, postID int64, m models.Media) (*models.Media, error)
	DeleteMedia(ctx context.Context, id int64) error
}

type VisitRecorder interface {
	Record(ctx context.Context, ip, userAgent string) error
}

type PostHandler struct {
	svc    PostService
	visits VisitRecorder
}

func NewPostHandler(svc PostService, visits VisitRecorder) *PostHandler {
	return &PostHandler{svc: svc, visits: visits}
}

// recordVisit: ошибка журнала не мешает отдать контент, в лог ее пишет сервис.
func (h *PostHandler) recordVisit(r *http.Request) {
	c, _ := reqctx.GetClient(r.Context())
	_ = h.visits.Record(r.Context(), c.IP, c.UserAgent)
}

// List: публичная лента.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())
	h.recordVisit(r)

	params, category, err := parseListParams(r.URL.Query())
	if err != nil {
		log.Warn("posts: некорректные параметры ленты", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	list, err := h.svc.List(r.Context(), params, category)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, list)
}

// Read: публичное чтение поста (+1 просмотр).
func (h *PostHandler) Read(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "invalid id")
		return
	}
	h.recordVisit(r)

	p, err := h.svc.Read(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, p)
}

func (h *PostHandler) Rate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.svc.Rate(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.Message(w, http.StatusOK, "Rating incremented")
}

// Get: админский просмотр, без счётчика и журнала.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "invalid id")
		return
	}
	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, p)
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req models.CreatePostRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		log.Warn("posts: невалидный JSON при создании поста", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "bad json")
		return
	}

	p, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusCreated, p)
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req models.UpdatePostRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		logger.WithCtx(r.Context()).Warn("posts: невалидный JSON при обновлении поста", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "bad json")
		return
	}

	p, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, p)
}

func (h *PostHandler) UpdatePriority(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req struct {
		Priority *int `json:"priority"`
	}
	if err := helpers.DecodeJSON(r, &req); err != nil || req.Priority == nil {
		helpers.Error(w, http.StatusBadRequest, "Missing priority")
		return
	}

	if err := h.svc.UpdatePriority(r.Context(), id, *req.Priority); err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.Message(w, http.StatusOK, "Priority updated")
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.Message(w, http.StatusOK, "Post deleted")
}

func (h *PostHandler) AddMedia(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var m models.Media
	if err := helpers.DecodeJSON(r, &m); err != nil {
		helpers.Error(w, http.StatusBadRequest, "bad json")
		return
	}

	created, err := h.svc.AddMedia(r.Context(), id, m)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusCreated, created)
}

func (h *PostHandler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "mediaId")
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.svc.DeleteMedia(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.Message(w, http.StatusOK, "Media deleted")
}
