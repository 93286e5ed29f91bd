package handler

import (
	"net/http"
	"sync"

	"venuebook/config"
	"venuebook/di"
	"venuebook/shared/logger"
	transport "venuebook/transport/http"
	"venuebook/transport/http/response"

	"github.com/rs/zerolog/log"
)

var (
	once    sync.Once
	server  *transport.HTTP
	initErr error
)

// Handler is the serverless entrypoint; the service graph is built once per instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.Init(cfg, cfg.App.Name)

		server, initErr = di.InitializeService()
	})

	if initErr != nil {
		log.Error().Err(initErr).Msg("Failed to initialize service")
		response.WithUnhealthy(w)

		return
	}

	server.ServeHTTP(w, r)
}
