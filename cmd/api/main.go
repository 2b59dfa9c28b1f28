package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/inkhaus/inkhaus/pkg/api"
	"github.com/inkhaus/inkhaus/pkg/db"
	"github.com/inkhaus/inkhaus/pkg/render"

	_ "github.com/inkhaus/inkhaus/docs"
)

// @title           Inkhaus API
// @version         1.0
// @description     Self-hosted backend for TRMNL-style e-ink displays

// @host      localhost:8080
// @BasePath  /api
// @schemes   http https

func main() {
	// Configure logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Parse flags
	dbPath := flag.String("db", "", "Path to database file (default: ~/.config/inkhaus/inkhaus.db)")
	addr := flag.String("addr", ":8080", "Listen address")
	baseURL := flag.String("base-url", "", "Externally reachable URL devices fetch images from (default: http://localhost<addr>)")
	flag.Parse()

	ctx := context.Background()

	// Open database
	database, err := db.Open(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}()

	log.Info().Str("path", database.Path()).Msg("Database opened")

	// Run migrations
	if err := database.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	base := *baseURL
	if base == "" {
		base = fmt.Sprintf("http://localhost%s", *addr)
	}

	// The key-derivation secret is optional; without it each new device
	// gets a key derived from a random secret, which is fine for a
	// single-server install.
	secret := []byte(os.Getenv("API_KEY_SECRET"))
	if len(secret) == 0 {
		log.Warn().Msg("API_KEY_SECRET not set, device keys use per-key random secrets")
	}

	router := api.NewRouter(database, render.SampleEvents{}, api.Config{
		BaseURL: base,
		Secret:  secret,
	})

	// Handle shutdown gracefully
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info().Msg("Shutting down...")
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
		os.Exit(0)
	}()

	// Start server
	log.Info().Str("address", *addr).Str("base_url", base).Msg("Starting API server")

	if err := router.Run(*addr); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
