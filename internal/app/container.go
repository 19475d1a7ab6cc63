package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"prepmate/internal/config"
	"prepmate/internal/database"
	"prepmate/internal/database/migration"
	dbpostgres "prepmate/internal/database/postgres"
	"prepmate/internal/infrastructure/cache"
	"prepmate/internal/infrastructure/genai"
	"prepmate/internal/infrastructure/payment"
	"prepmate/internal/ws"
)

// Container owns the process-wide infrastructure: database pool, cache,
// external clients, and the websocket hub.
type Container struct {
	Config  config.Config
	DB      database.DB
	Cache   *cache.Redis
	AI      *genai.Client
	Gateway payment.Gateway
	Hub     *ws.Hub
	Logger  *log.Logger
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := migration.Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	hub := ws.NewHub(logger)
	go hub.Run()

	return &Container{
		Config:  cfg,
		DB:      db,
		Cache:   cache.NewRedis(logger),
		AI:      genai.NewClient(cfg.AI, logger),
		Gateway: payment.NewCashfreeGateway(cfg.Payment, logger),
		Hub:     hub,
		Logger:  logger,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
