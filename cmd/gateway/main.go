package main

import (
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"sharebox/internal/config"
	"sharebox/internal/gateway"
	"sharebox/internal/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file, using environment")
	}

	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid REDIS_URL")
		}
		redisClient = redis.NewClient(opts)
	} else {
		log.Warn().Msg("REDIS_URL not set, rate limiting disabled")
	}

	gw := gateway.New(gateway.NewClient(cfg.ServerURL), cfg)
	router := gateway.NewRouter(gw, redisClient, cfg.RateLimitRPM)

	log.Info().Str("port", cfg.Port).Str("server", cfg.ServerURL).Msg("starting gateway")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("gateway stopped")
	}
}
