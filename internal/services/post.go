package services

import (
	"context"
	"strings"

	"jamjournal/internal/logger"
	"jamjournal/internal/models"
	"jamjournal/internal/query"
	"jamjournal/internal/repository"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

type MediaStore interface {
	AddMedia(ctx context.Context, postID int64, m models.Media) (int64, error)
	GetMediaByPost(ctx context.Context, postID int64) ([]models.Media, error)
	DeleteMedia(ctx context.Context, id int64) (bool, error)
}

type CategoryStore interface {
	GetCategories(ctx context.Context, postID int64) ([]string, error)
	GetCategoriesForPosts(ctx context.Context, postIDs []int64) (map[int64][]string, error)
	GetPostsByCategory(ctx context.Context, label string, limit int) ([]*models.Post, error)
}

// PostEvents: кому сообщить о новом посте. nil допустим.
type PostEvents interface {
	PostCreated(ctx context.Context, p *models.Post)
}

type PostService struct {
	posts      repository.PostRepo
	media      MediaStore
	categories CategoryStore
	events     PostEvents
	policy     *bluemonday.Policy
}

func NewPostService(posts repository.PostRepo, media MediaStore, categories CategoryStore, events PostEvents) *PostService {
	p := bluemonday.UGCPolicy()
	p.AllowElements("img", "iframe")
	p.AllowAttrs("src", "alt").OnElements("img")
	p.AllowAttrs("src", "width", "height", "allowfullscreen", "frameborder").OnElements("iframe")
	return &PostService{posts: posts, media: media, categories: categories, events: events, policy: p}
}

func (s *PostService) Create(ctx context.Context, req models.CreatePostRequest) (*models.Post, error) {
	log := logger.WithCtx(ctx)
	log.Info("Создание поста",
		zap.String("title", strings.TrimSpace(req.Title)),
		zap.Int("media_count", len(req.Media)),
		zap.Int("categories_count", len(req.Categories)),
	)

	if err := validateStruct(req); err != nil {
		log.Warn("Валидация не пройдена", zap.Error(err))
		return nil, err
	}

	p := &models.Post{
		Title:        strings.TrimSpace(req.Title),
		Excerpt:      req.Excerpt,
		Content:      s.policy.Sanitize(req.Content),
		AuthorID:     req.AuthorID,
		GenreID:      req.GenreID,
		Tags:         normalizeLabels(req.Tags),
		Featured:     req.Featured,
		Priority:     req.Priority,
		HeroImageURL: req.HeroImageURL,
		ReadTime:     req.ReadTime,
	}
	if req.Rating != nil {
		p.Rating = *req.Rating
	}
	if req.CreatedAt != nil && strings.TrimSpace(*req.CreatedAt) != "" {
		t, err := models.ParseTimestamp(*req.CreatedAt)
		if err != nil {
			log.Warn("Некорректная дата публикации", zap.String("created_at", *req.CreatedAt))
			return nil, validationErr("created_at: %v", err)
		}
		p.CreatedAt = t
	}

	id, err := s.posts.Create(ctx, p, models.PostRelations{
		Categories: normalizeLabels(req.Categories),
		Media:      req.Media,
	})
	if err != nil {
		log.Error("Ошибка создания поста (repo)", zap.Error(err))
		return nil, err
	}

	created, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.events != nil {
		s.events.PostCreated(ctx, created)
	}

	log.Info("Пост создан", zap.Int64("id", id))
	return created, nil
}

// Get: пост вместе с категориями и медиа.
func (s *PostService) Get(ctx context.Context, id int64) (*models.Post, error) {
	log := logger.WithCtx(ctx)
	log.Debug("Получение поста по ID", zap.Int64("id", id))

	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		log.Warn("Пост не найден (repo)", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	if p.Categories, err = s.categories.GetCategories(ctx, id); err != nil {
		return nil, err
	}
	if p.Media, err = s.media.GetMediaByPost(ctx, id); err != nil {
		return nil, err
	}
	return p, nil
}

// Read: публичное чтение, +1 просмотр, затем сам пост.
func (s *PostService) Read(ctx context.Context, id int64) (*models.Post, error) {
	found, err := s.posts.IncrementViews(ctx, id)
	if err != nil {
		logger.WithCtx(ctx).Error("Ошибка увеличения просмотров (repo)", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	if !found {
		return nil, repository.ErrNotFound
	}
	return s.Get(ctx, id)
}

// List: лента по фильтрам; если задана категория, фильтры ленты игнорируются.
func (s *PostService) List(ctx context.Context, params query.ListParams, category string) ([]*models.Post, error) {
	log := logger.WithCtx(ctx)
	log.Debug("Получение списка постов",
		zap.String("search", params.Search),
		zap.String("sort", params.SortBy),
		zap.String("category", category),
	)

	var (
		list []*models.Post
		err  error
	)
	if category = strings.TrimSpace(category); category != "" {
		limit := 0
		if params.Limit != nil {
			limit = *params.Limit
		}
		list, err = s.categories.GetPostsByCategory(ctx, category, limit)
	} else {
		list, err = s.posts.List(ctx, params)
	}
	if err != nil {
		log.Error("Ошибка получения списка постов (repo)", zap.Error(err))
		return nil, err
	}

	if err := s.attachCategories(ctx, list); err != nil {
		return nil, err
	}

	log.Debug("Список постов получен", zap.Int("count", len(list)))
	return list, nil
}

func (s *PostService) attachCategories(ctx context.Context, list []*models.Post) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(list))
	for _, p := range list {
		ids = append(ids, p.ID)
	}
	byPost, err := s.categories.GetCategoriesForPosts(ctx, ids)
	if err != nil {
		logger.WithCtx(ctx).Error("Ошибка получения категорий (repo)", zap.Error(err))
		return err
	}
	for _, p := range list {
		if labels, ok := byPost[p.ID]; ok {
			p.Categories = labels
		} else {
			p.Categories = []string{}
		}
	}
	return nil
}

// Update: частичное обновление полей; категории и медиа заменяются
// ровно тем, что пришло в запросе (пустой список очищает).
func (s *PostService) Update(ctx context.Context, id int64, req models.UpdatePostRequest) (*models.Post, error) {
	log := logger.WithCtx(ctx)
	log.Info("Обновление поста", zap.Int64("id", id))

	if err := validateStruct(req); err != nil {
		log.Warn("Валидация не пройдена", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	patch, err := s.patchFromRequest(req)
	if err != nil {
		return nil, err
	}

	found, err := s.posts.Update(ctx, id, patch, models.PostRelations{
		Categories: normalizeLabels(req.Categories),
		Media:      req.Media,
	})
	if err != nil {
		log.Error("Ошибка обновления поста (repo)", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	if !found {
		log.Warn("Пост для обновления не найден", zap.Int64("id", id))
		return nil, repository.ErrNotFound
	}

	log.Info("Пост обновлён", zap.Int64("id", id))
	return s.Get(ctx, id)
}

func (s *PostService) patchFromRequest(req models.UpdatePostRequest) (models.PostPatch, error) {
	patch := models.PostPatch{
		Excerpt:      req.Excerpt,
		GenreID:      req.GenreID,
		Featured:     req.Featured,
		Priority:     req.Priority,
		HeroImageURL: req.HeroImageURL,
		Rating:       req.Rating,
		ReadTime:     req.ReadTime,
	}
	if req.Title != nil {
		t := strings.TrimSpace(*req.Title)
		patch.Title = &t
	}
	if req.Content != nil {
		c := s.policy.Sanitize(*req.Content)
		patch.Content = &c
	}
	if req.Tags != nil {
		tags := normalizeLabels(*req.Tags)
		patch.Tags = &tags
	}
	if req.CreatedAt != nil && strings.TrimSpace(*req.CreatedAt) != "" {
		t, err := models.ParseTimestamp(*req.CreatedAt)
		if err != nil {
			return models.PostPatch{}, validationErr("created_at: %v", err)
		}
		patch.CreatedAt = &t
	}
	return patch, nil
}

func (s *PostService) UpdatePriority(ctx context.Context, id int64, priority int) error {
	log := logger.WithCtx(ctx)
	log.Info("Изменение приоритета поста", zap.Int64("id", id), zap.Int("priority", priority))

	found, err := s.posts.UpdatePriority(ctx, id, priority)
	if err != nil {
		log.Error("Ошибка изменения приоритета (repo)", zap.Int64("id", id), zap.Error(err))
		return err
	}
	if !found {
		return repository.ErrNotFound
	}
	return nil
}

func (s *PostService) Delete(ctx context.Context, id int64) error {
	log := logger.WithCtx(ctx)
	log.Info("Удаление поста", zap.Int64("id", id))

	found, err := s.posts.Delete(ctx, id)
	if err != nil {
		log.Error("Ошибка удаления поста (repo)", zap.Int64("id", id), zap.Error(err))
		return err
	}
	if !found {
		log.Warn("Пост для удаления не найден", zap.Int64("id", id))
		return repository.ErrNotFound
	}

	log.Info("Пост удалён", zap.Int64("id", id))
	return nil
}

func (s *PostService) Rate(ctx context.Context, id int64) error {
	found, err := s.posts.IncrementRating(ctx, id)
	if err != nil {
		logger.WithCtx(ctx).Error("Ошибка увеличения рейтинга (repo)", zap.Int64("id", id), zap.Error(err))
		return err
	}
	if !found {
		return repository.ErrNotFound
	}
	return nil
}

func (s *PostService) AddMedia(ctx context.Context, postID int64, m models.Media) (*models.Media, error) {
	log := logger.WithCtx(ctx)
	log.Info("Добавление медиа к посту", zap.Int64("post_id", postID), zap.String("kind", m.Kind))

	if err := validateStruct(m); err != nil {
		log.Warn("Валидация медиа не пройдена", zap.Error(err))
		return nil, err
	}
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		log.Warn("Пост для медиа не найден", zap.Int64("post_id", postID), zap.Error(err))
		return nil, err
	}

	id, err := s.media.AddMedia(ctx, postID, m)
	if err != nil {
		log.Error("Ошибка добавления медиа (repo)", zap.Int64("post_id", postID), zap.Error(err))
		return nil, err
	}

	m = m.WithDefaults()
	m.ID = id
	m.PostID = postID
	return &m, nil
}

func (s *PostService) DeleteMedia(ctx context.Context, id int64) error {
	log := logger.WithCtx(ctx)
	log.Info("Удаление медиа", zap.Int64("media_id", id))

	found, err := s.media.DeleteMedia(ctx, id)
	if err != nil {
		log.Error("Ошибка удаления медиа (repo)", zap.Int64("media_id", id), zap.Error(err))
		return err
	}
	if !found {
		return repository.ErrNotFound
	}
	return nil
}

// normalizeLabels: разбивает "a, b" на части, обрезает пробелы, выкидывает
// пустые и повторы (первое вхождение остаётся).
func normalizeLabels(in []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, raw := range in {
		for _, l := range strings.Split(raw, ",") {
			l = strings.TrimSpace(l)
			if l == "" {
				continue
			}
			if _, ok := seen[l]; ok {
				continue
			}
			seen[l] = struct{}{}
			out = append(out, l)
		}
	}
	return out
}
