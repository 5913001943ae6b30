package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/slidedeck/internal/api"
	apiMiddleware "github.com/phrazzld/slidedeck/internal/api/middleware"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	deckHandler := api.NewDeckHandler(app.workspace, app.logger)

	r.Route("/api", func(r chi.Router) {
		if app.jwtService != nil {
			r.Use(apiMiddleware.NewAuthMiddleware(app.jwtService).Authenticate)
		}
		deckHandler.Routes(r)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
