package application

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/iamavinashmourya/SIA/internal/auth"
	"github.com/iamavinashmourya/SIA/internal/config"
	"github.com/iamavinashmourya/SIA/internal/database"
	"github.com/iamavinashmourya/SIA/internal/handler"
	"github.com/iamavinashmourya/SIA/internal/router"
	"github.com/iamavinashmourya/SIA/internal/service"
	"github.com/iamavinashmourya/SIA/internal/storage"
)

// API is the HTTP + WebSocket application.
type API struct {
	cfg *config.Config
	srv *http.Server
	db  *gorm.DB
	log *zap.Logger
}

// NewAPI validates config, runs migrations, opens the database, and wires
// the service graph.
func NewAPI(cfg *config.Config) (*API, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := database.MigrateUp(cfg.DatabaseURL()); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	logger, _ := zap.NewProduction()
	if cfg.AppEnv == "development" {
		logger, _ = zap.NewDevelopment()
	}

	hosts := storage.NewHostStore(db)
	rooms := storage.NewRoomStore(db)
	participants := storage.NewParticipantStore(db)
	sessions := storage.NewSessionStore(db)
	queue := storage.NewQueueStore(db)

	// One hub per process; everything that touches connections gets this
	// instance injected.
	hub := service.NewHub(cfg.WSReadBufferSize, cfg.WSWriteBufferSize, cfg.WSSendBuffer, cfg.WSMaxMessageSize, logger)

	sessionSvc := service.NewSessionService(rooms, participants, sessions, logger)
	queueSvc := service.NewQueueService(sessions, participants, rooms, queue, hub, logger)
	roomSvc := service.NewRoomService(rooms, logger)
	dashboardSvc := service.NewDashboardService(rooms, participants, sessions, queue)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	deps := router.Deps{
		Auth:         handler.NewAuthHandler(hosts, tokens, cfg.BcryptCost, logger),
		Rooms:        handler.NewRoomHandler(roomSvc),
		Participants: handler.NewParticipantHandler(sessionSvc, tokens),
		Queue:        handler.NewQueueHandler(queueSvc),
		Dashboard:    handler.NewDashboardHandler(dashboardSvc),
		WS:           handler.NewWSHandler(hub, sessionSvc, hosts, rooms, cfg.WSWriteTimeout, logger),
		Health:       handler.NewHealthHandler(),
		RequireHost:  auth.RequireHost(tokens, hosts),
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.New(deps),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &API{cfg: cfg, srv: srv, db: db, log: logger}, nil
}

// Run starts the HTTP server and blocks until ctx is cancelled; then shuts
// down gracefully.
func (a *API) Run(ctx context.Context) error {
	host := a.cfg.AppHost
	if host == "0.0.0.0" {
		host = "localhost"
	}
	log.Printf("HTTP server listening on %s", a.srv.Addr)
	log.Printf("  Health:      http://%s:%s/health", host, a.cfg.HTTPPort)
	log.Printf("  API:         http://%s:%s/api", host, a.cfg.HTTPPort)
	log.Printf("  WebSocket:   ws://%s:%s/ws/host/:host_id | /ws/participant/:session_id", host, a.cfg.HTTPPort)

	go func() {
		if err := a.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("http: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	defer a.log.Sync()
	if err := a.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
