package handler

import (
	"codesync/internal/app/relay"
	"codesync/internal/configs"
)

// AppDeps carries the long-lived services shared by every HTTP handler.
type AppDeps struct {
	Hub    *relay.Hub
	Config *configs.AppConfig
}
