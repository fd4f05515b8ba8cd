package main

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"sharebox/internal/config"
	"sharebox/internal/database"
	"sharebox/internal/handlers"
	"sharebox/internal/logging"
	"sharebox/internal/repository"
	"sharebox/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file, using environment")
	}

	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get database instance")
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	store := repository.NewGormStore(db)
	router := handlers.NewRouter(handlers.Services{
		Users:    services.NewUserService(store),
		Items:    services.NewItemService(store, cfg.AvailabilityPolicy == config.AvailabilityApproved),
		Bookings: services.NewBookingService(store),
		Requests: services.NewRequestService(store),
	})

	log.Info().Str("port", cfg.Port).Msg("starting server")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
