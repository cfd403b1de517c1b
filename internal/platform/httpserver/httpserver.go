package httpserver

import (
	"net/http"
	"time"

	"ethicsaudit/internal/platform/config"
)

// New builds an HTTP server for the API. WriteTimeout stays unset because
// report generation streams for as long as the backend produces text; the
// stream handler manages its own deadline.
func New(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.ReadTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}
