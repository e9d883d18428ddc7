package routes

import (
	"net/http"

	"jamjournal/internal/handlers"
	"jamjournal/internal/middleware"

	"github.com/gorilla/mux"
)

type Handlers struct {
	Posts      *handlers.PostHandler
	Genres     *handlers.GenreHandler
	Analytics  *handlers.AnalyticsHandler
	Settings   *handlers.SettingsHandler
	Newsletter *handlers.NewsletterHandler
}

func InitRoutes(router *mux.Router, h Handlers) {
	router.Use(middleware.RequestID, middleware.ClientInfo, middleware.Logging, middleware.Recoverer)

	api := router.PathPrefix("/api").Subrouter()

	// --- Публичные маршруты ---
	api.HandleFunc("/posts", h.Posts.List).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id:[0-9]+}", h.Posts.Read).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id:[0-9]+}/rate", h.Posts.Rate).Methods(http.MethodPost)

	api.HandleFunc("/genres", h.Genres.List).Methods(http.MethodGet)
	api.HandleFunc("/genres/{id:[0-9]+}", h.Genres.Get).Methods(http.MethodGet)

	api.HandleFunc("/newsletter/subscribe", h.Newsletter.Subscribe).Methods(http.MethodPost)
	api.HandleFunc("/newsletter/unsubscribe", h.Newsletter.Unsubscribe).Methods(http.MethodPost)

	// --- Админка (авторизация снаружи, на прокси) ---
	admin := api.PathPrefix("/admin").Subrouter()

	admin.HandleFunc("/posts", h.Posts.Create).Methods(http.MethodPost)
	admin.HandleFunc("/posts/media/{mediaId:[0-9]+}", h.Posts.DeleteMedia).Methods(http.MethodDelete)
	admin.HandleFunc("/posts/{id:[0-9]+}", h.Posts.Get).Methods(http.MethodGet)
	admin.HandleFunc("/posts/{id:[0-9]+}", h.Posts.Update).Methods(http.MethodPut)
	admin.HandleFunc("/posts/{id:[0-9]+}", h.Posts.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/posts/{id:[0-9]+}/priority", h.Posts.UpdatePriority).Methods(http.MethodPatch, http.MethodOptions)
	admin.HandleFunc("/posts/{id:[0-9]+}/media", h.Posts.AddMedia).Methods(http.MethodPost)

	admin.HandleFunc("/genres", h.Genres.Create).Methods(http.MethodPost)
	admin.HandleFunc("/genres/{id:[0-9]+}", h.Genres.Update).Methods(http.MethodPut)
	admin.HandleFunc("/genres/{id:[0-9]+}", h.Genres.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/analytics", h.Analytics.Overview).Methods(http.MethodGet)

	admin.HandleFunc("/settings/{key}", h.Settings.Get).Methods(http.MethodGet)
	admin.HandleFunc("/settings/{key}", h.Settings.Put).Methods(http.MethodPut)

	admin.HandleFunc("/newsletter/subscribers", h.Newsletter.Subscribers).Methods(http.MethodGet)
	admin.HandleFunc("/newsletter/campaigns", h.Newsletter.Campaigns).Methods(http.MethodGet)
	admin.HandleFunc("/newsletter/send", h.Newsletter.Send).Methods(http.MethodPost)
}
