package repository

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"jamjournal/internal/db"
	"jamjournal/internal/logger"
	"jamjournal/internal/models"
	"jamjournal/internal/query"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PostRepo interface {
	Create(ctx context.Context, p *models.Post, rel models.PostRelations) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	List(ctx context.Context, params query.ListParams) ([]*models.Post, error)
	Update(ctx context.Context, id int64, patch models.PostPatch, rel models.PostRelations) (bool, error)
	UpdatePriority(ctx context.Context, id int64, priority int) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	IncrementViews(ctx context.Context, id int64) (bool, error)
	IncrementRating(ctx context.Context, id int64) (bool, error)
}

type postRepo struct{ db db.PgxIface }

func NewPostRepo(pool db.PgxIface) PostRepo { return &postRepo{db: pool} }

// postSelect: пост вместе с отображаемыми полями автора и жанра.
const postSelect = `
	SELECT p.id, p.title, p.excerpt, p.content, p.author_id, p.genre_id, p.tags, p.featured, p.priority,
	       p.hero_image_url, p.created_at, p.updated_at, p.views, p.rating, p.read_time,
	       COALESCE(a.name, ''), COALESCE(a.avatar, ''), COALESCE(a.bio, ''), COALESCE(g.name, '')
	FROM posts p
	LEFT JOIN authors a ON a.id = p.author_id
	LEFT JOIN genres g ON g.id = p.genre_id`

const (
	insertPostQuery = `
		INSERT INTO posts (title, excerpt, content, author_id, genre_id, tags, featured, priority,
		                   hero_image_url, created_at, updated_at, views, rating, read_time)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7, $8, $9, COALESCE($10, NOW()), NOW(), 0, COALESCE($11, 0), $12)
		RETURNING id`
	getPostQuery         = postSelect + ` WHERE p.id = $1`
	deletePostQuery      = `DELETE FROM posts WHERE id = $1`
	incrementViewsQuery  = `UPDATE posts SET views = views + 1 WHERE id = $1`
	incrementRatingQuery = `UPDATE posts SET rating = COALESCE(rating, 0) + 1 WHERE id = $1`
	updatePriorityQuery  = `UPDATE posts SET priority = $2 WHERE id = $1`
)

// Create вставляет пост вместе с категориями и медиа одной транзакцией:
// при ошибке любой дочерней вставки пост не сохраняется.
func (r *postRepo) Create(ctx context.Context, p *models.Post, rel models.PostRelations) (int64, error) {
	tagsJSON, err := marshalTags(p.Tags)
	if err != nil {
		return 0, err
	}

	var createdAt *time.Time
	if !p.CreatedAt.IsZero() {
		t := models.NormalizeTimestamp(p.CreatedAt)
		createdAt = &t
	}
	var rating *int64
	if p.Rating > 0 {
		rating = &p.Rating
	}

	var id int64
	err = db.InTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, insertPostQuery,
			p.Title,
			p.Excerpt,
			p.Content,
			p.AuthorID,
			p.GenreID,
			tagsJSON,
			p.Featured,
			p.Priority,
			p.HeroImageURL,
			createdAt,
			rating,
			p.ReadTime,
		).Scan(&id); err != nil {
			return err
		}
		if err := insertCategories(ctx, tx, id, rel.Categories); err != nil {
			return err
		}
		return insertMediaBulk(ctx, tx, id, rel.Media)
	})
	if err != nil {
		logger.WithCtx(ctx).Error("Ошибка создания поста (repo)", zap.Error(err))
		return 0, storeErr("create post", err)
	}
	return id, nil
}

func (r *postRepo) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	p, err := scanPost(r.db.QueryRow(ctx, getPostQuery, id))
	if err != nil {
		return nil, rowErr("get post", err)
	}
	return p, nil
}

func (r *postRepo) List(ctx context.Context, params query.ListParams) ([]*models.Post, error) {
	sql, args := query.Build(postSelect, params)
	return r.queryPosts(ctx, "list posts", sql, args...)
}

func (r *postRepo) queryPosts(ctx context.Context, op, sql string, args ...any) ([]*models.Post, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.WithCtx(ctx).Error("Ошибка выборки постов (repo)", zap.String("op", op), zap.Error(err))
		return nil, storeErr(op, err)
	}
	defer rows.Close()

	list := []*models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, storeErr(op, err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(op, err)
	}
	return list, nil
}

// Update пишет только заданные поля патча; updated_at обновляется всегда.
// Категории и медиа заменяются на rel в той же транзакции.
// Если поста нет, дочерние таблицы не трогаются.
func (r *postRepo) Update(ctx context.Context, id int64, patch models.PostPatch, rel models.PostRelations) (bool, error) {
	sql, args, err := buildPostUpdate(id, patch)
	if err != nil {
		return false, err
	}

	var found bool
	err = db.InTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}
		if found = tag.RowsAffected() > 0; !found {
			return nil
		}
		if err := replaceCategories(ctx, tx, id, rel.Categories); err != nil {
			return err
		}
		return replaceMedia(ctx, tx, id, rel.Media)
	})
	if err != nil {
		logger.WithCtx(ctx).Error("Ошибка обновления поста (repo)", zap.Int64("post_id", id), zap.Error(err))
		return false, storeErr("update post", err)
	}
	return found, nil
}

func buildPostUpdate(id int64, p models.PostPatch) (string, []any, error) {
	args := &query.Args{}
	var sets []string
	set := func(col string, v any) {
		sets = append(sets, col+" = "+args.Add(v))
	}

	if p.Title != nil {
		set("title", *p.Title)
	}
	if p.Excerpt != nil {
		set("excerpt", *p.Excerpt)
	}
	if p.Content != nil {
		set("content", *p.Content)
	}
	if p.GenreID != nil {
		set("genre_id", *p.GenreID)
	}
	if p.Tags != nil {
		tagsJSON, err := marshalTags(*p.Tags)
		if err != nil {
			return "", nil, err
		}
		sets = append(sets, "tags = "+args.Add(tagsJSON)+"::jsonb")
	}
	if p.Featured != nil {
		set("featured", *p.Featured)
	}
	if p.Priority != nil {
		set("priority", *p.Priority)
	}
	if p.HeroImageURL != nil {
		set("hero_image_url", *p.HeroImageURL)
	}
	if p.Rating != nil {
		set("rating", *p.Rating)
	}
	if p.ReadTime != nil {
		set("read_time", *p.ReadTime)
	}
	if p.CreatedAt != nil {
		set("created_at", models.NormalizeTimestamp(*p.CreatedAt))
	}
	sets = append(sets, "updated_at = NOW()")

	sql := "UPDATE posts SET " + strings.Join(sets, ", ") + " WHERE id = " + args.Add(id)
	return sql, args.Values(), nil
}

func (r *postRepo) UpdatePriority(ctx context.Context, id int64, priority int) (bool, error) {
	tag, err := r.db.Exec(ctx, updatePriorityQuery, id, priority)
	if err != nil {
		return false, storeErr("update priority", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete удаляет медиа, категории и сам пост одной транзакцией,
// чтобы параллельные читатели не увидели осиротевшие строки.
func (r *postRepo) Delete(ctx context.Context, id int64) (bool, error) {
	var found bool
	err := db.InTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := deleteMediaForPost(ctx, tx, id); err != nil {
			return err
		}
		if err := deleteCategoriesForPost(ctx, tx, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, deletePostQuery, id)
		if err != nil {
			return err
		}
		found = tag.RowsAffected() > 0
		return nil
	})
	if err != nil {
		logger.WithCtx(ctx).Error("Ошибка удаления поста (repo)", zap.Int64("post_id", id), zap.Error(err))
		return false, storeErr("delete post", err)
	}
	return found, nil
}

// IncrementViews: атомарный +1 одним UPDATE, без предварительного чтения.
func (r *postRepo) IncrementViews(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, incrementViewsQuery, id)
	if err != nil {
		return false, storeErr("increment views", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *postRepo) IncrementRating(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, incrementRatingQuery, id)
	if err != nil {
		return false, storeErr("increment rating", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanPost(row pgx.Row) (*models.Post, error) {
	var p models.Post
	var tagsRaw []byte
	if err := row.Scan(
		&p.ID, &p.Title, &p.Excerpt, &p.Content, &p.AuthorID, &p.GenreID, &tagsRaw, &p.Featured, &p.Priority,
		&p.HeroImageURL, &p.CreatedAt, &p.UpdatedAt, &p.Views, &p.Rating, &p.ReadTime,
		&p.Author.Name, &p.Author.Avatar, &p.Author.Bio, &p.GenreName,
	); err != nil {
		return nil, err
	}
	_ = json.Unmarshal(tagsRaw, &p.Tags)
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Author.Name == "" {
		p.Author.Name = models.DefaultAuthorName
	}
	return &p, nil
}

func marshalTags(tags []string) ([]byte, error) {
	if tags == nil {
		tags = []string{}
	}
	return json.Marshal(tags)
}
