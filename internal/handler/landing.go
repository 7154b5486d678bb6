package handler

import (
	"net/http"
	"os"
	"path/filepath"

	"codesync/internal/pkg/logx"
	"codesync/internal/pkg/resp"
)

// HandleLanding serves index.html from publicDir. When the page is missing it answers
// with a small JSON status document instead.
func HandleLanding(publicDir string) http.HandlerFunc {
	index := filepath.Join(publicDir, "index.html")

	return func(w http.ResponseWriter, r *http.Request) {
		info, err := os.Stat(index)
		if err == nil && !info.IsDir() {
			http.ServeFile(w, r, index)
			return
		}

		logx.Logger().Debug().Str("path", index).Msg("Landing page not found, serving status.")
		resp.RespondSuccess(w, r, map[string]string{
			"status":  "ok",
			"service": logx.ServiceName,
		})
	}
}
