package handler

import (
	"net/http"
	"sync"

	"hotel/config"
	"hotel/di"
	"hotel/shared/logger"
	"hotel/shared/timezone"
	transport "hotel/transport/http"

	"github.com/rs/zerolog/log"
)

var (
	server *transport.HTTP
	once   sync.Once
)

// Handler serves requests when the API is deployed as a serverless function.
// The dependency graph is built once per warm instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		if err := timezone.Load(cfg.App.Timezone); err != nil {
			log.Fatal().Err(err).Msg("Failed to load hotel timezone")
		}

		server = di.InitializeService()
	})

	r.RequestURI = r.URL.String()

	server.ServeHTTP(w, r)
}
