package repository

import (
	"context"

	"jamjournal/internal/db"
	"jamjournal/internal/models"
)

type GenreRepo struct {
	db db.PgxIface
}

func NewGenreRepo(pool db.PgxIface) *GenreRepo { return &GenreRepo{db: pool} }

func (r *GenreRepo) List(ctx context.Context) ([]models.Genre, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM genres ORDER BY name ASC`)
	if err != nil {
		return nil, storeErr("list genres", err)
	}
	defer rows.Close()

	out := []models.Genre{}
	for rows.Next() {
		var g models.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, storeErr("list genres", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list genres", err)
	}
	return out, nil
}

func (r *GenreRepo) GetByID(ctx context.Context, id int64) (*models.Genre, error) {
	var g models.Genre
	err := r.db.QueryRow(ctx, `SELECT id, name FROM genres WHERE id = $1`, id).Scan(&g.ID, &g.Name)
	if err != nil {
		return nil, rowErr("get genre", err)
	}
	return &g, nil
}

func (r *GenreRepo) Create(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO genres (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	if err != nil {
		return 0, storeErr("create genre", err)
	}
	return id, nil
}

func (r *GenreRepo) Update(ctx context.Context, id int64, name string) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE genres SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		return false, storeErr("update genre", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete не трогает посты: у них genre_id просто перестаёт разрешаться в имя.
func (r *GenreRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM genres WHERE id = $1`, id)
	if err != nil {
		return false, storeErr("delete genre", err)
	}
	return tag.RowsAffected() > 0, nil
}
