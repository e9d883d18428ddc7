package services

import (
	"context"
	"testing"

	"jamjournal/internal/models"
	"jamjournal/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenres struct {
	byID   map[int64]string
	nextID int64
}

func (f *fakeGenres) List(context.Context) ([]models.Genre, error) {
	out := []models.Genre{}
	for id, n := range f.byID {
		out = append(out, models.Genre{ID: id, Name: n})
	}
	return out, nil
}

func (f *fakeGenres) GetByID(_ context.Context, id int64) (*models.Genre, error) {
	n, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &models.Genre{ID: id, Name: n}, nil
}

func (f *fakeGenres) Create(_ context.Context, name string) (int64, error) {
	f.nextID++
	f.byID[f.nextID] = name
	return f.nextID, nil
}

func (f *fakeGenres) Update(_ context.Context, id int64, name string) (bool, error) {
	if _, ok := f.byID[id]; !ok {
		return false, nil
	}
	f.byID[id] = name
	return true, nil
}

func (f *fakeGenres) Delete(_ context.Context, id int64) (bool, error) {
	_, ok := f.byID[id]
	delete(f.byID, id)
	return ok, nil
}

func TestGenreService(t *testing.T) {
	store := &fakeGenres{byID: map[int64]string{}}
	svc := NewGenreService(store)
	ctx := context.Background()

	g, err := svc.Create(ctx, models.GenreRequest{Name: "  Jazz "})
	require.NoError(t, err)
	assert.Equal(t, "Jazz", g.Name)

	_, err = svc.Create(ctx, models.GenreRequest{Name: "   "})
	assert.ErrorIs(t, err, ErrValidation)

	g, err = svc.Update(ctx, g.ID, models.GenreRequest{Name: "Bebop"})
	require.NoError(t, err)
	assert.Equal(t, "Bebop", store.byID[g.ID])

	_, err = svc.Update(ctx, 404, models.GenreRequest{Name: "X"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	got, err := svc.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bebop", got.Name)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, g.ID))
	assert.ErrorIs(t, svc.Delete(ctx, g.ID), repository.ErrNotFound)
}
