package repository

import (
	"context"

	"jamjournal/internal/db"
	"jamjournal/internal/models"

	"github.com/jackc/pgx/v5"
)

type MediaRepo struct {
	db db.PgxIface
}

func NewMediaRepo(pool db.PgxIface) *MediaRepo {
	return &MediaRepo{db: pool}
}

const (
	insertMediaQuery = `
		INSERT INTO post_media (post_id, kind, media_type, platform, url, file_url, title, artist)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	// один INSERT на весь список; порядок вставки = порядок во входном списке
	insertMediaBulkQuery = `
		INSERT INTO post_media (post_id, kind, media_type, platform, url, file_url, title, artist)
		SELECT $1, m.kind, m.media_type, m.platform, m.url, m.file_url, m.title, m.artist
		FROM unnest($2::text[], $3::text[], $4::text[], $5::text[], $6::text[], $7::text[], $8::text[])
		     WITH ORDINALITY AS m(kind, media_type, platform, url, file_url, title, artist, ord)
		ORDER BY m.ord`
	selectMediaByPostQuery = `
		SELECT id, post_id, kind, media_type, platform, url, file_url, title, artist
		FROM post_media WHERE post_id = $1 ORDER BY id`
	deleteMediaQuery        = `DELETE FROM post_media WHERE id = $1`
	deleteMediaForPostQuery = `DELETE FROM post_media WHERE post_id = $1`
)

// AddMedia добавляет одну запись, остальные медиа поста не трогает.
func (r *MediaRepo) AddMedia(ctx context.Context, postID int64, m models.Media) (int64, error) {
	m = m.WithDefaults()
	var id int64
	err := r.db.QueryRow(ctx, insertMediaQuery,
		postID, m.Kind, m.MediaType, m.Platform, m.URL, m.FileURL, m.Title, m.Artist,
	).Scan(&id)
	if err != nil {
		return 0, storeErr("add media", err)
	}
	return id, nil
}

// ReplaceAllMedia удаляет все медиа поста и вставляет новый список, одной транзакцией.
func (r *MediaRepo) ReplaceAllMedia(ctx context.Context, postID int64, list []models.Media) error {
	err := db.InTx(ctx, r.db, func(tx pgx.Tx) error {
		return replaceMedia(ctx, tx, postID, list)
	})
	return storeErr("replace media", err)
}

// replaceMedia работает внутри чужой транзакции, поэтому свою не открывает.
func replaceMedia(ctx context.Context, q db.Querier, postID int64, list []models.Media) error {
	if _, err := deleteMediaForPost(ctx, q, postID); err != nil {
		return err
	}
	return insertMediaBulk(ctx, q, postID, list)
}

func (r *MediaRepo) GetMediaByPost(ctx context.Context, postID int64) ([]models.Media, error) {
	rows, err := r.db.Query(ctx, selectMediaByPostQuery, postID)
	if err != nil {
		return nil, storeErr("get media", err)
	}
	defer rows.Close()

	list := []models.Media{}
	for rows.Next() {
		var m models.Media
		if err := rows.Scan(&m.ID, &m.PostID, &m.Kind, &m.MediaType, &m.Platform, &m.URL, &m.FileURL, &m.Title, &m.Artist); err != nil {
			return nil, storeErr("get media", err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("get media", err)
	}
	return list, nil
}

// DeleteMedia идемпотентен: нет строки, значит found=false без ошибки.
func (r *MediaRepo) DeleteMedia(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, deleteMediaQuery, id)
	if err != nil {
		return false, storeErr("delete media", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *MediaRepo) DeleteAllForPost(ctx context.Context, postID int64) (int64, error) {
	n, err := deleteMediaForPost(ctx, r.db, postID)
	if err != nil {
		return 0, storeErr("delete post media", err)
	}
	return n, nil
}

func deleteMediaForPost(ctx context.Context, q db.Querier, postID int64) (int64, error) {
	tag, err := q.Exec(ctx, deleteMediaForPostQuery, postID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func insertMediaBulk(ctx context.Context, q db.Querier, postID int64, list []models.Media) error {
	if len(list) == 0 {
		return nil
	}

	n := len(list)
	kinds := make([]string, 0, n)
	mediaTypes := make([]string, 0, n)
	platforms := make([]string, 0, n)
	urls := make([]string, 0, n)
	fileURLs := make([]*string, 0, n)
	titles := make([]string, 0, n)
	artists := make([]string, 0, n)

	for _, m := range list {
		m = m.WithDefaults()
		kinds = append(kinds, m.Kind)
		mediaTypes = append(mediaTypes, m.MediaType)
		platforms = append(platforms, m.Platform)
		urls = append(urls, m.URL)
		fileURLs = append(fileURLs, m.FileURL)
		titles = append(titles, m.Title)
		artists = append(artists, m.Artist)
	}

	_, err := q.Exec(ctx, insertMediaBulkQuery, postID, kinds, mediaTypes, platforms, urls, fileURLs, titles, artists)
	return err
}
