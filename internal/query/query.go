// Package query собирает SQL выборки постов из независимых необязательных фильтров.
// Значения никогда не попадают в текст запроса, только как $n аргументы.
package query

import (
	"fmt"
	"strings"
)

const (
	SortPriority = "priority"
	SortLatest   = "latest"
	SortPopular  = "popular"
	SortRating   = "rating"
)

// ListParams: параметры ленты постов. Любое поле может отсутствовать.
type ListParams struct {
	Search   string
	GenreID  *int64
	Featured *bool
	SortBy   string
	Limit    *int
	Offset   *int
}

// Args раздаёт номера плейсхолдеров и копит значения аргументов.
type Args struct {
	values []any
}

// Add добавляет значение и возвращает его плейсхолдер ($1, $2, ...).
func (a *Args) Add(v any) string {
	a.values = append(a.values, v)
	return fmt.Sprintf("$%d", len(a.values))
}

func (a *Args) Values() []any { return a.values }

// Predicate: одно условие WHERE.
type Predicate interface {
	SQL(args *Args) string
}

// Search: подстрока без учёта регистра в заголовке, анонсе или тексте.
type Search struct{ Term string }

func (s Search) SQL(args *Args) string {
	ph := args.Add("%" + EscapeLike(s.Term) + "%")
	return fmt.Sprintf("(p.title ILIKE %[1]s OR p.excerpt ILIKE %[1]s OR p.content ILIKE %[1]s)", ph)
}

type Genre struct{ ID int64 }

func (g Genre) SQL(args *Args) string {
	return "p.genre_id = " + args.Add(g.ID)
}

type Featured struct{ Value bool }

func (f Featured) SQL(args *Args) string {
	return "p.featured = " + args.Add(f.Value)
}

// EscapeLike экранирует спецсимволы LIKE (\, escape по умолчанию в Postgres).
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// Predicates возвращает условия только для заданных параметров.
func (p ListParams) Predicates() []Predicate {
	var out []Predicate
	// термин ищется как есть, пробелы тоже часть подстроки
	if p.Search != "" {
		out = append(out, Search{Term: p.Search})
	}
	if p.GenreID != nil {
		out = append(out, Genre{ID: *p.GenreID})
	}
	if p.Featured != nil {
		out = append(out, Featured{Value: *p.Featured})
	}
	return out
}

// OrderBy: сортировка по ключу; неизвестный или пустой ключ = latest.
func OrderBy(sortBy string) string {
	switch sortBy {
	case SortPriority:
		return "p.priority DESC, p.created_at DESC"
	case SortPopular:
		return "p.views DESC"
	case SortRating:
		return "p.rating DESC"
	default:
		return "p.created_at DESC"
	}
}

// Where склеивает предикаты через AND. Пустая строка, если фильтров нет.
func Where(preds []Predicate, args *Args) string {
	if len(preds) == 0 {
		return ""
	}
	parts := make([]string, 0, len(preds))
	for _, p := range preds {
		parts = append(parts, p.SQL(args))
	}
	return " WHERE " + strings.Join(parts, " AND ")
}

// Build дописывает к базовому SELECT фильтры, сортировку и пагинацию.
func Build(base string, p ListParams) (string, []any) {
	args := &Args{}

	var sb strings.Builder
	sb.WriteString(base)
	sb.WriteString(Where(p.Predicates(), args))
	sb.WriteString(" ORDER BY ")
	sb.WriteString(OrderBy(p.SortBy))

	if p.Limit != nil && *p.Limit > 0 {
		sb.WriteString(" LIMIT " + args.Add(*p.Limit))
	}
	if p.Offset != nil && *p.Offset > 0 {
		sb.WriteString(" OFFSET " + args.Add(*p.Offset))
	}

	return sb.String(), args.Values()
}
