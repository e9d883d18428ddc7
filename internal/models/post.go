package models

import (
	"fmt"
	"strings"
	"time"
)

const DefaultAuthorName = "Admin"

type Author struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Bio    string `json:"bio"`
}

type Post struct {
	ID           int64     `db:"id"             json:"id"`
	Title        string    `db:"title"          json:"title"`
	Excerpt      string    `db:"excerpt"        json:"excerpt"`
	Content      string    `db:"content"        json:"content"`
	AuthorID     *int64    `db:"author_id"      json:"author_id,omitempty"`
	GenreID      *int64    `db:"genre_id"       json:"genre_id,omitempty"`
	Tags         []string  `db:"-"              json:"tags"`
	Featured     bool      `db:"featured"       json:"featured"`
	Priority     int       `db:"priority"       json:"priority"`
	HeroImageURL *string   `db:"hero_image_url" json:"hero_image_url,omitempty"`
	CreatedAt    time.Time `db:"created_at"     json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"     json:"updated_at"`
	Views        int64     `db:"views"          json:"views"`
	Rating       int64     `db:"rating"         json:"rating"`
	ReadTime     string    `db:"read_time"      json:"read_time"`

	// денормализованные поля из JOIN
	Author    Author `db:"-" json:"author"`
	GenreName string `db:"-" json:"genre_name,omitempty"`

	Categories []string `db:"-" json:"categories,omitempty"`
	Media      []Media  `db:"-" json:"media,omitempty"`
}

// PostPatch: частичное обновление: nil означает «оставить как есть».
type PostPatch struct {
	Title        *string
	Excerpt      *string
	Content      *string
	GenreID      *int64
	Tags         *[]string
	Featured     *bool
	Priority     *int
	HeroImageURL *string
	Rating       *int64
	ReadTime     *string
	CreatedAt    *time.Time
}

// PostRelations: дочерние строки поста, которые пишутся вместе с ним.
type PostRelations struct {
	Categories []string
	Media      []Media
}

type CreatePostRequest struct {
	Title        string   `json:"title"          validate:"required,max=255"`
	Excerpt      string   `json:"excerpt"        validate:"max=1000"`
	Content      string   `json:"content"`
	AuthorID     *int64   `json:"author_id"      validate:"omitempty,gt=0"`
	GenreID      *int64   `json:"genre_id"       validate:"omitempty,gt=0"`
	Tags         []string `json:"tags"`
	Featured     bool     `json:"featured"`
	Priority     int      `json:"priority"`
	HeroImageURL *string  `json:"hero_image_url"`
	Rating       *int64   `json:"rating"         validate:"omitempty,min=0"`
	ReadTime     string   `json:"read_time"      validate:"max=50"`
	// необязательная дата публикации задним числом
	CreatedAt  *string  `json:"created_at"`
	Categories []string `json:"categories"`
	Media      []Media  `json:"media"          validate:"dive"`
}

type UpdatePostRequest struct {
	Title        *string   `json:"title"          validate:"omitempty,min=1,max=255"`
	Excerpt      *string   `json:"excerpt"        validate:"omitempty,max=1000"`
	Content      *string   `json:"content"`
	GenreID      *int64    `json:"genre_id"       validate:"omitempty,gt=0"`
	Tags         *[]string `json:"tags"`
	Featured     *bool     `json:"featured"`
	Priority     *int      `json:"priority"`
	HeroImageURL *string   `json:"hero_image_url"`
	Rating       *int64    `json:"rating"         validate:"omitempty,min=0"`
	ReadTime     *string   `json:"read_time"      validate:"omitempty,max=50"`
	CreatedAt    *string   `json:"created_at"`
	// категории и медиа заменяются целиком при каждом редактировании
	Categories []string `json:"categories"`
	Media      []Media  `json:"media"          validate:"dive"`
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp разбирает дату из формы админки (ISO, datetime-local, MySQL-формат, дата).
func ParseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return NormalizeTimestamp(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}

// NormalizeTimestamp приводит время к формату хранения: UTC, точность timestamptz (мкс).
func NormalizeTimestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
