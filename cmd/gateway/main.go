package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KishoreBalajiP/eco-frontend/internal/backend"
	"github.com/KishoreBalajiP/eco-frontend/internal/cart"
	"github.com/KishoreBalajiP/eco-frontend/internal/catalog"
	"github.com/KishoreBalajiP/eco-frontend/internal/config"
	"github.com/KishoreBalajiP/eco-frontend/internal/events"
	"github.com/KishoreBalajiP/eco-frontend/internal/httpapi"
	"github.com/KishoreBalajiP/eco-frontend/internal/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}
	cfg := config.Load()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	publisher := events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	if publisher == nil {
		log.Println("no kafka brokers configured, order events disabled")
	}
	defer publisher.Close()

	client := backend.New(cfg.BackendBaseURL, cfg.RequestTimeout)

	store := session.NewStore(redisClient, cfg.SessionTTL)
	sessions := session.NewManager(store, client)
	client.OnUnauthorized(sessions.HandleUnauthorized)
	sessions.SetLifecycle(
		func(ctx context.Context, s *session.Session) {
			// Warm the cart mirror so the first page after sign-in has it.
			if err := cart.NewSynchronizer(client, s).Fetch(ctx); err != nil {
				log.Printf("session %s: cart warm-up failed: %v", s.ID, err)
			}
		},
		func(_ context.Context, s *session.Session) {
			log.Printf("session %s: signed out", s.ID)
		},
	)

	catalogSvc := catalog.NewService(client, catalog.NewRedisCache(redisClient, cfg.CatalogCacheTTL))

	router := httpapi.NewRouter(httpapi.Deps{
		Sessions:       sessions,
		Backend:        client,
		Catalog:        catalogSvc,
		Events:         publisher,
		RequestTimeout: cfg.RequestTimeout,
	})

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("storefront gateway listening on port %s", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("server stopped")
}
