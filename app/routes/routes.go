package routes

import (
	"log/slog"
	"net/http"
	"time"

	"postfeed/app/controllers"
	"postfeed/app/middleware"
	"postfeed/app/observability"
	"postfeed/app/services"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes defines the feed's routes and returns a router.
func SetupRoutes(store *services.PostStore, logger *slog.Logger) *mux.Router {
	if logger == nil {
		logger = observability.Discard()
	}
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recoverer(logger))

	postController := controllers.NewPostController(store, logger)

	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// API routes with JSON content type
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)

	posts := api.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", postController.Index).Methods("GET")
	posts.HandleFunc("", postController.Create).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}", postController.Show).Methods("GET")
	posts.HandleFunc("/{id:[0-9]+}/upvote", postController.Upvote).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}/downvote", postController.Downvote).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}/bookmark", postController.Bookmark).Methods("POST")

	api.HandleFunc("/bookmarks", postController.Bookmarks).Methods("GET")

	return router
}

// NewServer wraps the router in an http.Server listening on addr.
func NewServer(addr string, router http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
