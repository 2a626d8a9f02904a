package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"canteen/configs"
	"canteen/middlewares"
	"canteen/pkg/events"
	"canteen/routes"
	"canteen/services"
	"canteen/ws"
)

func main() {
	// Logger
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	cfg := configs.LoadConfig()

	// DB
	db, err := configs.ConnectDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database failed")
	}
	if err := configs.SetupDatabase(db); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}
	if err := configs.SeedStaff(db, cfg); err != nil {
		log.Fatal().Err(err).Msg("seed staff failed")
	}
	if err := configs.SeedMenu(db); err != nil {
		log.Fatal().Err(err).Msg("seed menu failed")
	}

	// Order events (optional)
	var pub services.EventPublisher
	if cfg.RabbitURL != "" {
		rb, err := events.NewRabbit(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			log.Fatal().Err(err).Msg("connect rabbit failed")
		}
		defer rb.Close()
		pub = rb
		log.Info().Str("exchange", cfg.RabbitExchange).Msg("order events enabled")
	}

	// Staff order feed
	hub := ws.NewOrderHub()
	go hub.Run()

	// HTTP
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())
	r.Use(middlewares.MetricsMiddleware())

	routes.RegisterRoutes(r, db, cfg, pub, hub)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Info().Str("addr", addr).Msg("server running")
	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
