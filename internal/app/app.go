package app

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"farehub/internal/clients"
	"farehub/internal/config"
	"farehub/internal/fares"
	httpserver "farehub/internal/http"
	"farehub/internal/http/handlers"
	"farehub/internal/http/middleware"
	"farehub/internal/password"
	redisstore "farehub/internal/redis"
	"farehub/internal/repository"
	"farehub/internal/service"
	"farehub/internal/ws"
	libdb "farehub/libs/db"
	libredis "farehub/libs/redis"
)

// App wires fare service dependencies.
type App struct {
	server          *httpserver.Server
	readers         *ws.Manager
	billing         *service.BillingService
	billingInterval time.Duration
	db              *sql.DB
	logger          *zap.Logger
}

// New constructs the application graph.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := libdb.NewPostgresDB(cfg.Database.DSN, cfg.Database.MaxOpenConns)
	if err != nil {
		return nil, err
	}

	customerRepo := repository.NewCustomerRepository(sqlDB)
	scanLogRepo := repository.NewScanLogRepository(sqlDB)

	var travellingMirror service.TravellingStore
	var journeyCache handlers.ActiveJourneyGetter
	if cfg.Redis.Addr != "" {
		redisClient, err := libredis.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			sqlDB.Close()
			return nil, err
		}
		store := redisstore.NewStore(redisClient, cfg.Redis.TravellingTTL)
		travellingMirror = store
		journeyCache = store
	}

	tracker := service.NewTravelTracker(customerRepo, travellingMirror, scanLogRepo, logger)

	location, err := cfg.Location()
	if err != nil {
		sqlDB.Close()
		return nil, err
	}
	schedule, err := fares.ParseSchedule(fares.ScheduleOverrides{
		PeakLong:     cfg.Billing.PeakLong,
		PeakShort:    cfg.Billing.PeakShort,
		OffPeakLong:  cfg.Billing.OffPeakLong,
		OffPeakShort: cfg.Billing.OffPeakShort,
		PeakCap:      cfg.Billing.PeakCap,
		OffPeakCap:   cfg.Billing.OffPeakCap,
	})
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	payments := clients.NewPaymentsClient(cfg.Payments.BaseURL, logger)
	billing := service.NewBillingService(
		tracker,
		customerRepo,
		payments,
		schedule,
		fares.NewClassifier(location),
		logger,
	)

	tokens := service.NewTokenService(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	operatorAuth := service.NewOperatorAuth(
		cfg.Auth.OperatorUsername,
		cfg.Auth.OperatorPasswordHash,
		password.NewBcryptHasher(0),
		tokens,
		logger,
	)

	readers := ws.NewManager(cfg.Readers.PingInterval)
	gateway := ws.NewServer(readers, tracker, cfg.Readers.WriteTimeout, logger)

	authGuard := middleware.Auth(tokens)
	routes := httpserver.Routes{
		Scan:       handlers.NewScanHandler(tracker, logger),
		ReadersWS:  gateway.HandleWS,
		BillingRun: authGuard(handlers.NewBillingRunHandler(billing, logger)),
		Travelling: authGuard(handlers.NewTravellingHandler(tracker, journeyCache, logger)),
		Login:      handlers.NewLoginHandler(operatorAuth),
		Health:     handlers.NewHealthHandler(readers),
	}

	router := httpserver.NewRouter(routes)
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server:          server,
		readers:         readers,
		billing:         billing,
		billingInterval: cfg.Billing.Interval,
		db:              sqlDB,
		logger:          logger,
	}, nil
}

// Run starts the HTTP server, the reader ping loop, and the billing
// scheduler; it blocks until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	go a.readers.Start(ctx)
	go a.runBillingCycles(ctx)
	return a.server.Run(ctx)
}

// runBillingCycles triggers ChargeAccounts on the configured interval.
// A zero interval disables scheduling; cycles then run only via the ops API.
func (a *App) runBillingCycles(ctx context.Context) {
	if a.billingInterval <= 0 {
		return
	}

	ticker := time.NewTicker(a.billingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			charged, err := a.billing.ChargeAccounts(ctx)
			if err != nil {
				a.logger.Error("scheduled billing cycle failed", zap.Error(err))
				continue
			}
			a.logger.Info("scheduled billing cycle complete", zap.Int("customers_charged", charged))
		}
	}
}

// Close releases resources.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
}
