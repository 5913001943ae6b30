package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/slidedeck/internal/api/shared"
	"github.com/phrazzld/slidedeck/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupRouter_Auth(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.JWTSecret = "0123456789abcdef0123456789abcdef"

	app, err := newApplication(context.Background(), cfg, testLogger, nil)
	require.NoError(t, err)
	require.NotNil(t, app.jwtService)

	var actors []string
	app.eventEmitter.RegisterHandler(events.EventHandlerFunc(func(_ context.Context, e *events.DocumentChangedEvent) error {
		actors = append(actors, e.Actor)
		return nil
	}))

	router := app.setupRouter()

	t.Run("health is public", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get(shared.TraceIDHeader))
	})

	t.Run("api requires a token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/decks", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token subject becomes the event actor", func(t *testing.T) {
		token, err := app.jwtService.GenerateToken(context.Background(), "alice")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/decks", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		require.NotEmpty(t, actors)
		assert.Equal(t, "alice", actors[len(actors)-1])
	})
}

func TestSetupRouter_NoAuth(t *testing.T) {
	app, err := newApplication(context.Background(), testConfig(), testLogger, nil)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.setupRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/decks", nil))
	assert.Equal(t, http.StatusCreated, rec.Code)
}
