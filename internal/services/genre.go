package services

import (
	"context"
	"strings"

	"jamjournal/internal/logger"
	"jamjournal/internal/models"
	"jamjournal/internal/repository"

	"go.uber.org/zap"
)

type GenreStore interface {
	List(ctx context.Context) ([]models.Genre, error)
	GetByID(ctx context.Context, id int64) (*models.Genre, error)
	Create(ctx context.Context, name string) (int64, error)
	Update(ctx context.Context, id int64, name string) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type GenreService struct {
	repo GenreStore
}

func NewGenreService(repo GenreStore) *GenreService { return &GenreService{repo: repo} }

func (s *GenreService) List(ctx context.Context) ([]models.Genre, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		logger.WithCtx(ctx).Error("Ошибка получения жанров (repo)", zap.Error(err))
		return nil, err
	}
	return list, nil
}

func (s *GenreService) Get(ctx context.Context, id int64) (*models.Genre, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *GenreService) Create(ctx context.Context, req models.GenreRequest) (*models.Genre, error) {
	log := logger.WithCtx(ctx)
	req.Name = strings.TrimSpace(req.Name)
	if err := validateStruct(req); err != nil {
		log.Warn("Валидация жанра не пройдена", zap.Error(err))
		return nil, err
	}

	id, err := s.repo.Create(ctx, req.Name)
	if err != nil {
		log.Error("Ошибка создания жанра (repo)", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}

	log.Info("Жанр создан", zap.Int64("id", id), zap.String("name", req.Name))
	return &models.Genre{ID: id, Name: req.Name}, nil
}

func (s *GenreService) Update(ctx context.Context, id int64, req models.GenreRequest) (*models.Genre, error) {
	log := logger.WithCtx(ctx)
	req.Name = strings.TrimSpace(req.Name)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	found, err := s.repo.Update(ctx, id, req.Name)
	if err != nil {
		log.Error("Ошибка обновления жанра (repo)", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	if !found {
		return nil, repository.ErrNotFound
	}

	log.Info("Жанр обновлён", zap.Int64("id", id))
	return &models.Genre{ID: id, Name: req.Name}, nil
}

func (s *GenreService) Delete(ctx context.Context, id int64) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		logger.WithCtx(ctx).Error("Ошибка удаления жанра (repo)", zap.Int64("id", id), zap.Error(err))
		return err
	}
	if !found {
		return repository.ErrNotFound
	}
	logger.WithCtx(ctx).Info("Жанр удалён", zap.Int64("id", id))
	return nil
}
