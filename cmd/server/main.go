package main // Entry point package

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/iliyamo/wonderland-tickets/internal/config"
	"github.com/iliyamo/wonderland-tickets/internal/database"
	"github.com/iliyamo/wonderland-tickets/internal/handler"
	"github.com/iliyamo/wonderland-tickets/internal/middleware"
	"github.com/iliyamo/wonderland-tickets/internal/queue"
	"github.com/iliyamo/wonderland-tickets/internal/repository"
	"github.com/iliyamo/wonderland-tickets/internal/router"
	"github.com/iliyamo/wonderland-tickets/internal/service"
	"github.com/iliyamo/wonderland-tickets/internal/session"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("load .env: %v", err)
	}
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Catalog store: the SQL backends fail fast.
	var (
		mysqlDB *sql.DB
		store   repository.ShowingStore
		ping    func(context.Context) error
	)
	openMySQL := func() *sql.DB {
		if mysqlDB != nil {
			return mysqlDB
		}
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			log.Fatalf("mysql connect: %v", err)
		}
		mctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := database.Migrate(mctx, db); err != nil {
			log.Fatalf("mysql migrate: %v", err)
		}
		mysqlDB = db
		return db
	}

	switch cfg.CatalogDriver {
	case config.DriverPostgres:
		gdb, err := database.OpenPostgres(cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("postgres connect: %v", err)
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			log.Fatalf("postgres handle: %v", err)
		}
		defer sqlDB.Close()
		store, ping = repository.NewGormShowingRepo(gdb), sqlDB.PingContext
	case config.DriverMemory:
		log.Warn("CATALOG_DRIVER=memory: the catalog is lost on restart")
		store = repository.NewMemoryShowingRepo()
	default:
		db := openMySQL()
		store, ping = repository.NewShowingRepo(db), db.PingContext
	}

	var guests repository.GuestStore = repository.NewMemoryGuestRepo()
	if cfg.GuestStore == config.DriverMySQL {
		guests = repository.NewGuestRepo(openMySQL())
	}
	if mysqlDB != nil {
		defer mysqlDB.Close()
	}

	creds, err := service.NewCredentialService(guests, service.AdminCredential{
		Username:    cfg.AdminUsername,
		Password:    cfg.AdminPassword,
		DisplayName: cfg.AdminDisplayName,
	}, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("credentials: %v", err)
	}
	seedCtx, cancelSeed := context.WithTimeout(ctx, 10*time.Second)
	if err := creds.Seed(seedCtx, service.DefaultSeedGuests); err != nil {
		log.Fatalf("seed guests: %v", err)
	}
	cancelSeed()

	// Redis backs sessions, the read cache and rate limiting; without it the
	// service keeps running on process memory.
	rdb := config.NewRedisClient(config.LoadRedisConfig())
	var sessions session.Store
	if rdb != nil {
		defer rdb.Close()
		sessions = session.NewRedisStore(rdb)
	} else {
		log.Warn("redis unavailable: sessions kept in memory, cache and rate limiting disabled")
		sessions = session.NewMemoryStore()
	}
	mgr := session.NewManager(sessions, cfg.SessionSecret, cfg.SessionTTL, cfg.Production())

	var publisher service.EventPublisher
	if cfg.EventsEnabled {
		publisher = service.NewAMQPPublisher(cfg.AMQPURL)
		go func() {
			if err := queue.StartBookingConsumer(ctx, cfg.AMQPURL, cfg.BookingLogDir); err != nil && !errors.Is(err, context.Canceled) {
				log.Errorf("booking consumer stopped: %v", err)
			}
		}()
	} else {
		log.Warn("EVENTS_ENABLED=false: seats.booked events are not published")
	}

	svc := service.NewBookingService(store, publisher)
	cache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.INFO)
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			c.Logger().Infof("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	router.RegisterRoutes(e, mgr, router.Deps{
		Auth:    handler.NewAuthHandler(mgr, creds),
		Catalog: handler.NewCatalogHandler(svc, cache),
		Health:  handler.HealthHandler{Ping: ping},
		Limiter: middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		Cache:   cache.Middleware(),
	})

	go func() {
		log.Infof("listening on %s (env=%s, catalog=%s)", cfg.Addr(), cfg.Env, cfg.CatalogDriver)
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown: %v", err)
	}
}
