package main

import (
	"hotel/config"
	"hotel/di"
	"hotel/shared/logger"
	"hotel/shared/timezone"

	"github.com/rs/zerolog/log"
)

// @title Hotel API
// @version 1.0
// @description Hotel booking, payment and emergency refund service.
// @BasePath /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if err := timezone.Load(cfg.App.Timezone); err != nil {
		log.Fatal().Err(err).Msg("Failed to load hotel timezone")
	}

	server := di.InitializeService()
	server.Serve()
}
