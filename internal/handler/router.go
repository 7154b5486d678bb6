/*
Package handler provides the HTTP handlers and routing setup for the collaboration relay.

This file defines the main Router, applying necessary middleware like logging, CORS,
and IP-based rate limiting before delegating requests to the landing page and WebSocket handlers.
*/
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"

	"codesync/internal/configs"
	"codesync/internal/pkg/limiter"
	"codesync/internal/pkg/logx"
)

const (
	// PageRequests requests to the landing page are allowed per PageWindow and client IP.
	PageRequests = 100
	PageWindow   = 15 * time.Minute

	UpgradeRate  = 0.2
	UpgradeBurst = 5
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
// The rate limiters it creates sweep idle clients until ctx is done.
func Router(ctx context.Context, deps *AppDeps) http.Handler {
	pageLimiter := limiter.NewIPRateLimiter(ctx, limiter.Window(PageRequests, PageWindow), PageRequests)
	upgradeLimiter := limiter.NewIPRateLimiter(ctx, UpgradeRate, UpgradeBurst)

	r := chi.NewRouter()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{deps.Config.ClientURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.With(pageLimiter.Middleware).Get("/", HandleLanding(deps.Config.PublicDir))
	r.Get("/ws", HandleWebSocket(deps.Hub, newUpgrader(deps.Config), upgradeLimiter))

	return r
}

// newUpgrader builds the WebSocket upgrader whose origin check follows CLIENT_URL.
func newUpgrader(cfg *configs.AppConfig) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if cfg.IsDevelopment() || cfg.AllowsAnyOrigin() {
				return true
			}

			origin := configs.NormalizeOrigin(r.Header.Get("Origin"))
			if origin == cfg.ClientURL {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}
}
