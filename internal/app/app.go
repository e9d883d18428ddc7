package app

import (
	"context"
	"fmt"

	"jamjournal/internal/config"
	"jamjournal/internal/db"
	"jamjournal/internal/handlers"
	"jamjournal/internal/logger"
	"jamjournal/internal/lookup"
	"jamjournal/internal/repository"
	"jamjournal/internal/routes"
	"jamjournal/internal/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// InitApp собирает зависимости. cleanup закрывает пул, очередь писем и базу GeoIP.
func InitApp(ctx context.Context, cfg *config.Config) (*mux.Router, func(), error) {
	pool, err := db.NewPostgresConnection(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	closers := []func(){pool.Close}
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if cfg.DbAutoMigrate {
		if err := db.EnsureSchema(ctx, pool); err != nil {
			cleanup()
			return nil, nil, err
		}
		logger.Log.Info("Схема БД проверена")
	}

	// Репозитории
	postRepo := repository.NewPostRepo(pool)
	mediaRepo := repository.NewMediaRepo(pool)
	categoryRepo := repository.NewCategoryRepo(pool)
	visitRepo := repository.NewVisitRepo(pool)
	genreRepo := repository.NewGenreRepo(pool)
	settingsRepo := repository.NewSettingsRepo(pool)
	subscriptionRepo := repository.NewSubscriptionRepo(pool)

	// Геолокация и классификация устройств
	var geo lookup.GeoLocator = lookup.NopLocator{}
	if cfg.GeoIPDBPath != "" {
		mm, err := lookup.OpenMaxMind(cfg.GeoIPDBPath)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("open geoip db: %w", err)
		}
		closers = append(closers, func() { _ = mm.Close() })
		geo = mm
	}
	cachedGeo, err := lookup.NewCachedLocator(geo, cfg.LookupCacheSize)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	devices, err := lookup.NewCachedClassifier(lookup.UAClassifier{}, cfg.LookupCacheSize)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	// Почта: уведомления о постах и рассылки подписчикам
	var (
		events services.PostEvents
		mail   services.EmailEnqueuer
	)
	if cfg.SMTPEnabled() {
		dispatcher := services.NewEmailDispatcher(services.NewSMTPMailer(cfg), cfg.EmailWorkers)
		closers = append(closers, dispatcher.Close)
		mail = dispatcher
		events = services.NewPostNotifier(subscriptionRepo, settingsRepo, dispatcher, cfg.SiteURL)
	} else {
		logger.Log.Warn("SMTP не настроен, уведомления и рассылки отключены")
	}

	// Сервисы
	postSvc := services.NewPostService(postRepo, mediaRepo, categoryRepo, events)
	genreSvc := services.NewGenreService(genreRepo)
	visitSvc := services.NewVisitService(visitRepo)
	analyticsSvc := services.NewAnalyticsService(postRepo, visitRepo, cachedGeo, devices)
	newsletterSvc := services.NewNewsletterService(subscriptionRepo, settingsRepo, mail, cfg.SiteURL)

	// Маршруты
	router := mux.NewRouter()
	routes.InitRoutes(router, routes.Handlers{
		Posts:      handlers.NewPostHandler(postSvc, visitSvc),
		Genres:     handlers.NewGenreHandler(genreSvc),
		Analytics:  handlers.NewAnalyticsHandler(analyticsSvc),
		Settings:   handlers.NewSettingsHandler(settingsRepo),
		Newsletter: handlers.NewNewsletterHandler(newsletterSvc),
	})

	logger.Log.Info("Приложение инициализировано",
		zap.Bool("geoip", cfg.GeoIPDBPath != ""),
		zap.Bool("smtp", cfg.SMTPEnabled()),
	)
	return router, cleanup, nil
}
