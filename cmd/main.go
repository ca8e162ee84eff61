package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/sessions"
	"github.com/jonboulle/clockwork"

	"github.com/s/lms/internal/cache"
	"github.com/s/lms/internal/config"
	"github.com/s/lms/internal/database"
	"github.com/s/lms/internal/handlers"
	"github.com/s/lms/internal/lms"
	"github.com/s/lms/internal/logger"
	"github.com/s/lms/internal/server"
	"github.com/s/lms/internal/storage"
)

func main() {
	// ---------------------------
	// 0. Конфигурация и логгер
	// ---------------------------
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clock := clockwork.NewRealClock()

	// ---------------------------
	// 1. Хранилище записей
	// ---------------------------
	var (
		store  storage.Store
		writer storage.Writer
	)
	switch cfg.Store.Driver {
	case "memory":
		mem := storage.NewMemoryStore(clock, database.Fixtures(clock.Now()))
		store, writer = mem, mem
		log.Info("using in-memory store with fixture data")
	default:
		db, err := database.Connect(ctx, cfg.Database, log)
		if err != nil {
			log.Fatal("database connection failed", "error", err)
		}

		// ---------------------------
		// 2. Миграции и сиды
		// ---------------------------
		if err := database.AutoMigrate(db); err != nil {
			log.Fatal("migration failed", "error", err)
		}
		if cfg.Database.Seed {
			if err := database.Seed(db, database.Fixtures(clock.Now())); err != nil {
				log.Fatal("seed failed", "error", err)
			}
			log.Info("fixture data seeded")
		}

		gs := storage.NewGormStore(db)
		store, writer = gs, gs
	}

	// ---------------------------
	// 3. Кэш каталога (опционально)
	// ---------------------------
	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn("redis unavailable, catalog cache disabled", "addr", cfg.Redis.Addr, "error", err)
		} else {
			defer rdb.Close()
			store = cache.New(store, rdb, cfg.Redis.TTL, log)
			log.Info("catalog cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL)
		}
	}

	// ---------------------------
	// 4. Сервис и сессии
	// ---------------------------
	svc := lms.NewService(log, store, writer, clock, lms.Files{
		BaseURL: cfg.Files.BaseURL,
		Mock:    cfg.Store.Driver == "memory",
	})

	if cfg.Session.DefaultSessionKey() {
		log.Warn("SESSION_KEY not set, using the development key")
	}
	sessionStore := sessions.NewCookieStore([]byte(cfg.Session.Key))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.Session.MaxAge / time.Second),
		HttpOnly: true,
		Secure:   cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	h := handlers.NewHandler(svc, sessionStore, log)

	// ---------------------------
	// 5. Запуск сервера
	// ---------------------------
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           server.NewRouter(h, cfg.Server.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server started", "addr", "http://localhost:"+cfg.Server.Port, "store", cfg.Store.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
