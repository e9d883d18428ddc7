package handlers

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"jamjournal/internal/query"
)

// parseListParams разбирает query-string ленты. Пустое значение значит «без фильтра».
func parseListParams(v url.Values) (query.ListParams, string, error) {
	p := query.ListParams{
		Search: v.Get("search"),
		SortBy: v.Get("sortBy"),
	}

	if raw := strings.TrimSpace(v.Get("genre")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return p, "", fmt.Errorf("genre must be a numeric id")
		}
		p.GenreID = &id
	}
	if raw := strings.TrimSpace(v.Get("featured")); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return p, "", fmt.Errorf("featured must be true or false")
		}
		p.Featured = &b
	}
	for _, f := range []struct {
		key string
		dst **int
	}{{"limit", &p.Limit}, {"offset", &p.Offset}} {
		raw := strings.TrimSpace(v.Get(f.key))
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return p, "", fmt.Errorf("%s must be a non-negative integer", f.key)
		}
		*f.dst = &n
	}

	return p, v.Get("category"), nil
}
