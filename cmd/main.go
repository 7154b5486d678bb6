/*
Package main is the entry point for the collaboration relay.

It is responsible for loading configuration, initializing the global logging system,
setting up the HTTP server, starting the relay Hub, and gracefully handling operating
system interrupt signals (SIGINT, SIGTERM) to ensure a smooth server shutdown.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"codesync/internal/app/relay"
	"codesync/internal/configs"
	"codesync/internal/handler"
	"codesync/internal/pkg/logx"
)

func main() {
	// A .env file is optional; real environment variables always win.
	envErr := godotenv.Load()

	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logx.InitGlobalLogger(cfg.IsDevelopment())
	if envErr != nil {
		if errors.Is(envErr, fs.ErrNotExist) {
			logx.Logger().Debug().Msg("No .env file found, using process environment only.")
		} else {
			logx.Warn("Failed to read .env file.", "error", envErr.Error())
		}
	}

	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Str("client_url", cfg.ClientURL).
		Str("public_dir", cfg.PublicDir).
		Msg("Configuration loaded successfully")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := relay.NewHub()
	go hub.Run()

	router := handler.Router(ctx, &handler.AppDeps{
		Hub:    hub,
		Config: cfg,
	})

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info("Relay server listening.", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Error(err, "Server forced to shutdown")
	}

	// Closes every live connection's queue so the write pumps send a close frame.
	hub.Shutdown()

	logx.Info("Server gracefully stopped.")
}
