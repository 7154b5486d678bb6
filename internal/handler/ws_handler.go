/*
Package handler provides the HTTP handler function for WebSocket connection upgrading and initialization.

This file contains the HandleWebSocket function, which is responsible for rate limiting, upgrading
the HTTP connection to WebSocket, and handing the new connection to the relay hub.
*/
package handler

import (
	"net/http"

	"github.com/gorilla/websocket"

	"codesync/internal/app/relay"
	"codesync/internal/pkg/errs"
	"codesync/internal/pkg/limiter"
	"codesync/internal/pkg/logx"
	"codesync/internal/pkg/randx"
	"codesync/internal/pkg/resp"
)

// HandleWebSocket creates an HTTP HandlerFunc to process WebSocket connection requests.
// Rooms are chosen later by the join-request event, so the upgrade itself carries no parameters.
func HandleWebSocket(hub *relay.Hub, upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := limiter.ClientIP(r)

		if !rateLimiter.Allow(ip) {
			logx.Warn("WebSocket connection rejected: Rate limit exceeded.", "ip", ip)
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		if !websocket.IsWebSocketUpgrade(r) {
			resp.RespondError(w, r, errs.NewError(errs.ErrUpgradeRequired))
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// the upgrader has already written an HTTP error response
			logx.Warn("Failed to upgrade connection to WebSocket.", "error", err.Error())
			return
		}

		client := relay.NewClient(hub, conn, randx.ConnectionID())

		if !hub.Register(client) {
			unavailable := errs.NewError(errs.ErrRelayUnavailable)
			logx.Warn("WebSocket connection rejected: Relay is shutting down.", "connection_id", client.ID())
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseTryAgainLater, unavailable.Message))
			_ = conn.Close()
			return
		}

		logx.Info("WebSocket connection established.", "connection_id", client.ID())

		go client.WritePump()

		client.ReadPump()
	}
}
