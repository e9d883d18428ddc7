package repository

import (
	"context"

	"jamjournal/internal/db"
	"jamjournal/internal/models"

	"github.com/jackc/pgx/v5"
)

// CategoryRepo: связи пост ↔ свободная текстовая метка.
type CategoryRepo struct {
	db db.PgxIface
}

func NewCategoryRepo(pool db.PgxIface) *CategoryRepo { return &CategoryRepo{db: pool} }

const (
	deleteCategoriesQuery = `DELETE FROM post_categories WHERE post_id = $1`
	insertCategoriesQuery = `
		INSERT INTO post_categories (post_id, category)
		SELECT $1, c.label
		FROM unnest($2::text[]) WITH ORDINALITY AS c(label, ord)
		ORDER BY c.ord`
	selectCategoriesQuery = `
		SELECT category FROM post_categories WHERE post_id = $1 ORDER BY id`
	selectCategoriesForPostsQuery = `
		SELECT post_id, category FROM post_categories WHERE post_id = ANY($1) ORDER BY post_id, id`
	postsByCategoryQuery = postSelect + `
	JOIN post_categories pc ON pc.post_id = p.id
	WHERE pc.category = $1
	ORDER BY p.created_at DESC
	LIMIT $2`
)

const DefaultCategoryLimit = 10

// SetCategories полностью заменяет набор меток поста. Дубликаты не убираются:
// нормализация на стороне сервиса.
func (r *CategoryRepo) SetCategories(ctx context.Context, postID int64, labels []string) error {
	err := db.InTx(ctx, r.db, func(tx pgx.Tx) error {
		return replaceCategories(ctx, tx, postID, labels)
	})
	return storeErr("set categories", err)
}

func (r *CategoryRepo) GetCategories(ctx context.Context, postID int64) ([]string, error) {
	rows, err := r.db.Query(ctx, selectCategoriesQuery, postID)
	if err != nil {
		return nil, storeErr("get categories", err)
	}
	defer rows.Close()

	labels := []string{}
	for rows.Next() {
		var l string
		if err := rows.Scan(&l); err != nil {
			return nil, storeErr("get categories", err)
		}
		labels = append(labels, l)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("get categories", err)
	}
	return labels, nil
}

// GetCategoriesForPosts: метки сразу для списка постов, одним запросом.
func (r *CategoryRepo) GetCategoriesForPosts(ctx context.Context, postIDs []int64) (map[int64][]string, error) {
	out := make(map[int64][]string, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx, selectCategoriesForPostsQuery, postIDs)
	if err != nil {
		return nil, storeErr("get categories for posts", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			postID int64
			label  string
		)
		if err := rows.Scan(&postID, &label); err != nil {
			return nil, storeErr("get categories for posts", err)
		}
		out[postID] = append(out[postID], label)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("get categories for posts", err)
	}
	return out, nil
}

// GetPostsByCategory: только по свежести, прочие фильтры ленты не применяются.
func (r *CategoryRepo) GetPostsByCategory(ctx context.Context, label string, limit int) ([]*models.Post, error) {
	if limit <= 0 {
		limit = DefaultCategoryLimit
	}
	rows, err := r.db.Query(ctx, postsByCategoryQuery, label, limit)
	if err != nil {
		return nil, storeErr("posts by category", err)
	}
	defer rows.Close()

	list := []*models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, storeErr("posts by category", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("posts by category", err)
	}
	return list, nil
}

func deleteCategoriesForPost(ctx context.Context, q db.Querier, postID int64) error {
	_, err := q.Exec(ctx, deleteCategoriesQuery, postID)
	return err
}

func replaceCategories(ctx context.Context, q db.Querier, postID int64, labels []string) error {
	if err := deleteCategoriesForPost(ctx, q, postID); err != nil {
		return err
	}
	return insertCategories(ctx, q, postID, labels)
}

func insertCategories(ctx context.Context, q db.Querier, postID int64, labels []string) error {
	if len(labels) == 0 {
		return nil
	}
	_, err := q.Exec(ctx, insertCategoriesQuery, postID, labels)
	return err
}
