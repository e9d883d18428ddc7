// Package lookup: внешние классификаторы для аналитики: страна по IP и тип
// устройства по User-Agent. Обе реализации можно обернуть LRU-кэшем.
package lookup

import (
	"errors"
	"fmt"
	"net"

	"jamjournal/internal/metrics"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/oschwald/geoip2-golang"
)

// GeoLocator возвращает название страны для IP. Пустая строка: страна неизвестна.
type GeoLocator interface {
	Country(ip string) (string, error)
}

var ErrBadIP = errors.New("invalid ip address")

// MaxMindLocator читает локальную базу GeoLite2/GeoIP2 Country.
type MaxMindLocator struct {
	db *geoip2.Reader
}

func OpenMaxMind(path string) (*MaxMindLocator, error) {
	db, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open geoip db %s: %w", path, err)
	}
	return &MaxMindLocator{db: db}, nil
}

func (l *MaxMindLocator) Country(ip string) (string, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return "", ErrBadIP
	}
	rec, err := l.db.Country(parsed)
	if err != nil {
		return "", err
	}
	if name := rec.Country.Names["en"]; name != "" {
		return name, nil
	}
	return rec.Country.IsoCode, nil
}

func (l *MaxMindLocator) Close() error { return l.db.Close() }

// NopLocator: когда база не настроена: страна всегда неизвестна.
type NopLocator struct{}

func (NopLocator) Country(string) (string, error) { return "", nil }

type geoResult struct {
	country string
	err     error
}

// CachedLocator запоминает ответ (и ошибку) для каждого различного IP.
type CachedLocator struct {
	next  GeoLocator
	cache *lru.Cache[string, geoResult]
}

func NewCachedLocator(next GeoLocator, size int) (*CachedLocator, error) {
	c, err := lru.New[string, geoResult](size)
	if err != nil {
		return nil, err
	}
	return &CachedLocator{next: next, cache: c}, nil
}

func (c *CachedLocator) Country(ip string) (string, error) {
	if r, ok := c.cache.Get(ip); ok {
		metrics.RecordLookup("geo", true)
		return r.country, r.err
	}
	metrics.RecordLookup("geo", false)
	country, err := c.next.Country(ip)
	c.cache.Add(ip, geoResult{country: country, err: err})
	return country, err
}
