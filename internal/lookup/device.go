package lookup

import (
	"jamjournal/internal/metrics"
	"jamjournal/internal/models"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mileusna/useragent"
)

type DeviceClassifier interface {
	Classify(userAgent string) models.DeviceClass
}

// UAClassifier: планшет проверяется раньше телефона, всё прочее считается десктопом.
type UAClassifier struct{}

func (UAClassifier) Classify(userAgent string) models.DeviceClass {
	if userAgent == "" {
		return models.DeviceDesktop
	}
	ua := useragent.Parse(userAgent)
	switch {
	case ua.Tablet:
		return models.DeviceTablet
	case ua.Mobile:
		return models.DeviceMobile
	default:
		return models.DeviceDesktop
	}
}

type CachedClassifier struct {
	next  DeviceClassifier
	cache *lru.Cache[string, models.DeviceClass]
}

func NewCachedClassifier(next DeviceClassifier, size int) (*CachedClassifier, error) {
	c, err := lru.New[string, models.DeviceClass](size)
	if err != nil {
		return nil, err
	}
	return &CachedClassifier{next: next, cache: c}, nil
}

func (c *CachedClassifier) Classify(userAgent string) models.DeviceClass {
	if d, ok := c.cache.Get(userAgent); ok {
		metrics.RecordLookup("device", true)
		return d
	}
	metrics.RecordLookup("device", false)
	d := c.next.Classify(userAgent)
	c.cache.Add(userAgent, d)
	return d
}
