// Package main provides the entry point for the Kumpi sähkö API server
package main

import (
	"context"
	"flag"
	"kumpisahko/internal/api/server"
	"kumpisahko/internal/config"
	"kumpisahko/internal/database"
	"kumpisahko/internal/logging"
	"kumpisahko/internal/validation"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	envFile := flag.String("env", ".env", "Path to env file")
	flag.Parse()

	// A missing default .env is fine, an explicitly named one is not
	if err := godotenv.Load(*envFile); err != nil && *envFile != ".env" {
		log.Fatal().Err(err).Str("file", *envFile).Msg("failed to load env file")
	}

	cfg := &config.Config{}
	if err := cfg.LoadFromEnv(); err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := logging.NewLogger(cfg.Logging)
	gin.SetMode(gin.ReleaseMode)

	db, err := database.SetupDatabase(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to set up database")
	}
	defer db.Close()

	validation.Initialize()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.New(cfg, db, logger).Run(ctx); err != nil {
		logger.Error().Err(err).Msg("server exited with error")
		stop()
		db.Close()
		os.Exit(1)
	}
	logger.Info().Msg("server exiting")
}
