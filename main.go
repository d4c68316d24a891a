package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"clova-router/internal/common/logging"
	"clova-router/internal/config"
	"clova-router/internal/dispatch"
	"clova-router/internal/extension"
	"clova-router/internal/handlers"
	"clova-router/internal/middleware"
	"clova-router/internal/response"
	"clova-router/internal/server"
	"clova-router/internal/sessions"
	"clova-router/internal/verify"
)

func main() {
	godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := logging.NewZapLogger(logging.ParseLevel(cfg.LogLevel))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logging.SetGlobalLogger(logger)

	// Request verifier (skipped entirely in debug mode)
	var verifier dispatch.Verifier
	if !cfg.DebugMode {
		keyPEM, err := cfg.PublicKeyPEM()
		if err != nil {
			log.Fatalf("Failed to load public key: %v", err)
		}
		v, err := verify.NewVerifier(keyPEM, logger)
		if err != nil {
			log.Fatalf("Failed to initialize verifier: %v", err)
		}
		verifier = v
	} else {
		logger.Warn("debug mode enabled, request verification is disabled")
	}

	// Session store
	var store sessions.Store
	if cfg.SessionStore == "redis" {
		ttl, _ := time.ParseDuration(cfg.SessionTTL)
		db, _ := strconv.Atoi(cfg.RedisDB)
		poolSize, _ := strconv.Atoi(cfg.RedisPoolSize)
		redisStore, err := sessions.NewRedisStore(&sessions.RedisConfig{
			Address:  cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       db,
			PoolSize: poolSize,
			TTL:      ttl,
		})
		if err != nil {
			log.Fatalf("Failed to connect session store: %v", err)
		}
		defer redisStore.Close()
		store = redisStore
	} else {
		store = sessions.NewMemoryStore()
	}

	// Dispatcher with the demo extension handlers
	dispatcher, err := dispatch.New(dispatch.Config{
		ApplicationID: cfg.ApplicationID,
		DebugMode:     cfg.DebugMode,
		Verifier:      verifier,
		Logger:        logger,
	})
	if err != nil {
		log.Fatalf("Failed to initialize dispatcher: %v", err)
	}

	builder, err := response.NewBuilder(cfg.DefaultLanguage)
	if err != nil {
		log.Fatalf("Failed to initialize response builder: %v", err)
	}
	extension.New(builder, store, logger).RegisterHandlers(dispatcher)

	// HTTP surface
	router := mux.NewRouter()
	router.Use(middleware.Logging)
	handlers.New(dispatcher, logger).SetupRoutes(router)

	srv := server.New(router, cfg.Port, cfg.TLSCert, cfg.TLSKey)
	srv.Start()
	logger.Info("extension server started",
		logging.Field{Key: "port", Value: cfg.Port},
		logging.Field{Key: "debug_mode", Value: cfg.DebugMode},
	)

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", err)
	}
	logger.Info("server stopped")
}
