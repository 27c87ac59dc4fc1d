package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"auction-api/internal/config"
	"auction-api/internal/db"
	"auction-api/internal/logger"
	"auction-api/internal/repository"
	"auction-api/internal/router"
)

func main() {
	cfg := config.LoadConfig()

	log := logger.InitLogger()
	log.Info().Msg("Starting auction API")

	var store repository.Store
	if cfg.DBUrl != "" {
		database := db.InitDB(cfg.DBUrl)
		defer database.Close()
		db.RunMigrations(database)
		store = repository.NewMySQLStore(database, log)
	} else {
		log.Warn().Msg("DB_URL not set, serving fixtures from the in-memory store")
		mem := repository.NewMemoryStore()
		if err := repository.SeedFixtures(mem); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed fixtures")
		}
		store = mem
	}

	r := router.SetupRouter(store, log)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info().Msgf("Server listening on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Info().Msg("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	log.Info().Msg("Server stopped")
}
