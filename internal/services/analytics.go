package services

import (
	"context"
	"net"
	"sort"
	"strings"
	"time"

	"jamjournal/internal/logger"
	"jamjournal/internal/lookup"
	"jamjournal/internal/metrics"
	"jamjournal/internal/models"
	"jamjournal/internal/query"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	topCountries = 8
	topPosts     = 5
)

type PostLister interface {
	List(ctx context.Context, params query.ListParams) ([]*models.Post, error)
}

type VisitTallier interface {
	Tally(ctx context.Context) ([]models.VisitTally, error)
	Count(ctx context.Context) (int64, error)
}

type AnalyticsService struct {
	posts   PostLister
	visits  VisitTallier
	geo     lookup.GeoLocator
	devices lookup.DeviceClassifier
}

func NewAnalyticsService(posts PostLister, visits VisitTallier, geo lookup.GeoLocator, devices lookup.DeviceClassifier) *AnalyticsService {
	return &AnalyticsService{posts: posts, visits: visits, geo: geo, devices: devices}
}

// Overview: сводка для админки: рейтинги контента плюс география и устройства.
// Лента и журнал посещений читаются параллельно.
func (s *AnalyticsService) Overview(ctx context.Context) (*models.Analytics, error) {
	start := time.Now()
	defer func() { metrics.AnalyticsDuration.Observe(time.Since(start).Seconds()) }()

	log := logger.WithCtx(ctx)
	log.Debug("Сбор аналитики")

	var (
		posts   []*models.Post
		tallies []models.VisitTally
		total   int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		posts, err = s.posts.List(gctx, query.ListParams{})
		return err
	})
	g.Go(func() error {
		var err error
		tallies, err = s.visits.Tally(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.visits.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error("Ошибка сбора аналитики (repo)", zap.Error(err))
		return nil, err
	}

	visits := ComputeVisitStats(tallies, s.geo, s.devices)
	out := &models.Analytics{
		ContentStats:       ComputeContentStats(posts),
		GlobalDistribution: visits.ByCountry,
		DeviceBreakdown:    visits.ByDevice,
		TotalVisits:        total,
	}

	log.Debug("Аналитика собрана",
		zap.Int("posts", len(posts)),
		zap.Int("visitor_pairs", len(tallies)),
		zap.Duration("took", time.Since(start)),
	)
	return out, nil
}

func (s *AnalyticsService) ContentStats(ctx context.Context) (models.ContentStats, error) {
	posts, err := s.posts.List(ctx, query.ListParams{})
	if err != nil {
		return models.ContentStats{}, err
	}
	return ComputeContentStats(posts), nil
}

func (s *AnalyticsService) VisitStats(ctx context.Context) (models.VisitStats, error) {
	tallies, err := s.visits.Tally(ctx)
	if err != nil {
		return models.VisitStats{}, err
	}
	return ComputeVisitStats(tallies, s.geo, s.devices), nil
}

// ComputeContentStats считается в памяти по уже полученной ленте.
func ComputeContentStats(posts []*models.Post) models.ContentStats {
	var st models.ContentStats
	for _, p := range posts {
		st.TotalRating += p.Rating
		st.TotalViews += p.Views
	}
	if len(posts) > 0 {
		st.AvgRating = float64(st.TotalRating) / float64(len(posts))
	}
	st.TopByViews = topBy(posts, func(p *models.Post) int64 { return p.Views })
	st.TopByRating = topBy(posts, func(p *models.Post) int64 { return p.Rating })
	return st
}

func topBy(posts []*models.Post, key func(*models.Post) int64) []models.RankedPost {
	sorted := make([]*models.Post, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool { return key(sorted[i]) > key(sorted[j]) })
	if len(sorted) > topPosts {
		sorted = sorted[:topPosts]
	}

	out := make([]models.RankedPost, 0, len(sorted))
	for _, p := range sorted {
		out = append(out, models.RankedPost{ID: p.ID, Title: p.Title, Views: p.Views, Rating: p.Rating})
	}
	return out
}

// ComputeVisitStats: каждая пара (ip, user_agent) классифицируется один раз,
// а в счётчики идёт её число посещений.
func ComputeVisitStats(tallies []models.VisitTally, geo lookup.GeoLocator, devices lookup.DeviceClassifier) models.VisitStats {
	counts := map[string]int64{}
	var order []string
	var dev models.DeviceBreakdown

	for _, t := range tallies {
		country := ResolveCountry(geo, t.IP)
		if _, ok := counts[country]; !ok {
			order = append(order, country)
		}
		counts[country] += t.Hits

		switch devices.Classify(t.UserAgent) {
		case models.DeviceMobile:
			dev.Mobile += t.Hits
		case models.DeviceTablet:
			dev.Tablet += t.Hits
		default:
			dev.Desktop += t.Hits
		}
	}

	byCountry := make([]models.CountryCount, 0, len(order))
	for _, c := range order {
		byCountry = append(byCountry, models.CountryCount{Country: c, Count: counts[c]})
	}
	sort.SliceStable(byCountry, func(i, j int) bool { return byCountry[i].Count > byCountry[j].Count })
	if len(byCountry) > topCountries {
		byCountry = byCountry[:topCountries]
	}

	return models.VisitStats{ByCountry: byCountry, ByDevice: dev}
}

// ResolveCountry: локальные, частные и нераспознанные адреса дают "Unknown"
// без обращения к базе; ошибка или пустой ответ базы тоже дают "Unknown".
func ResolveCountry(geo lookup.GeoLocator, rawIP string) string {
	ip := parseClientIP(rawIP)
	if ip == nil || !isPublic(ip) {
		return models.UnknownCountry
	}
	country, err := geo.Country(ip.String())
	if err != nil || strings.TrimSpace(country) == "" {
		return models.UnknownCountry
	}
	return country
}

func parseClientIP(raw string) net.IP {
	raw = strings.TrimSpace(raw)
	// X-Forwarded-For может прийти целиком: "client, proxy1, proxy2"
	if i := strings.IndexByte(raw, ','); i >= 0 {
		raw = strings.TrimSpace(raw[:i])
	}
	if raw == "" {
		return nil
	}
	if host, _, err := net.SplitHostPort(raw); err == nil {
		raw = host
	}
	return net.ParseIP(strings.Trim(raw, "[]"))
}

func isPublic(ip net.IP) bool {
	return !(ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast())
}
