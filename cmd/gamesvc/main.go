package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	config "github.com/avvvet/games-crud/configs"
	"github.com/avvvet/games-crud/internal/gamesvc/broker"
	gamecfg "github.com/avvvet/games-crud/internal/gamesvc/config"
	"github.com/avvvet/games-crud/internal/gamesvc/db"
	handlers "github.com/avvvet/games-crud/internal/gamesvc/handlers"
	"github.com/avvvet/games-crud/internal/gamesvc/service"
	"github.com/avvvet/games-crud/internal/gamesvc/store"
	nats "github.com/avvvet/games-crud/internal/nats"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "game"

var instanceId string

func init() {
	config.LoadEnv(SERVICE_NAME)
	instanceId = config.CreateUniqueInstance(SERVICE_NAME)
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
}

func main() {
	logger := log.WithFields(log.Fields{"service": SERVICE_NAME, "instance": instanceId})

	cfg, err := gamecfg.Load()
	if err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	if cfg.MigrateOnStart {
		if err := db.Migrate(cfg.DBUrl); err != nil {
			logger.Fatalf("Failed to migrate DB: %v", err)
		}
	}

	// pg connection
	dbpool, err := db.Connect(context.Background(), cfg.DBUrl)
	if err != nil {
		logger.Fatalf("Failed to connect to DB: %v", err)
	}
	defer dbpool.Close()
	logger.Infof("pg connection established successfully, max %d connections", db.MaxConns)

	// events are optional, without NATS the broker drops them
	events := broker.NewBroker(nil)
	if cfg.NatsUrl != "" {
		n, err := nats.Connect(cfg.NatsUrl, cfg.NatsToken, SERVICE_NAME+"_service_"+instanceId)
		if err != nil {
			logger.Warnf("unable to connect to NATS server, game events disabled: %v", err)
		} else {
			defer n.Conn.Close()
			events = broker.NewBroker(n.Conn)
			logger.Infof("NATS connection established successfully %s", n.Url)
		}
	}

	gameStore := store.NewGameStore(dbpool)
	gameService := service.NewGameService(gameStore, events, cfg.QueryTimeout)

	// Setup router
	r := chi.NewRouter()
	c := config.CORS(cfg.AllowedOrigin)

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	r.Use(config.RateLimit(cfg.RateLimit))

	// Init handlers and routes
	h := handlers.NewHandler(gameService)
	for _, rt := range h.SetRoutes(r) {
		logger.Debugf("route %-6s %s%s -> %s", rt.Method, handlers.APIPrefix, rt.Pattern, rt.Name)
	}

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Infof("%s service running at %s", SERVICE_NAME, server.Addr)
	if err := server.ListenAndServe(); err != nil {
		logger.Fatalf("ListenAndServe(): %v", err)
	}
}
