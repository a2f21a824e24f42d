package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/arnoldart/shophub/internal/cart"
	"github.com/arnoldart/shophub/internal/catalog"
	"github.com/arnoldart/shophub/internal/checkout"
	h "github.com/arnoldart/shophub/internal/http"
	"github.com/arnoldart/shophub/internal/publisher"
	"github.com/arnoldart/shophub/internal/session"
	"github.com/arnoldart/shophub/internal/snapshot"
)

type Config struct {
	HTTPPort        string
	DatabasePath    string
	MigrationsPath  string
	RedisAddr       string
	KafkaBrokers    string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	SettleDelay     time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		DatabasePath:    getEnv("DB_PATH", "shophub.db"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "internal/catalog/migrations"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		KafkaBrokers:    getEnv("KAFKA_BROKERS", ""),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		SettleDelay:     2 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	repo, err := catalog.NewRepository(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open catalog database: %v", err)
	}
	defer repo.Close()

	if err := repo.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis backs both the product cache and the cart/session snapshots.
	// Without it the server still works, just without durability.
	var (
		productCache catalog.ProductCache = catalog.NopCache{}
		snapshots    snapshot.Store       = snapshot.NewMemoryStore()
	)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer redisClient.Close()

		productCache = catalog.NewRedisCache(redisClient)
		snapshots = snapshot.NewRedisStore(redisClient)
	} else {
		log.Println("REDIS_ADDR not set, carts and sessions will not survive restarts")
	}

	var orderPublisher checkout.Publisher = publisher.LogPublisher{}
	if cfg.KafkaBrokers != "" {
		kafkaPublisher := publisher.NewKafkaPublisher(strings.Split(cfg.KafkaBrokers, ",")...)
		defer kafkaPublisher.Close()
		orderPublisher = kafkaPublisher
	}

	catalogService := catalog.NewService(repo, productCache)
	cartStore := cart.NewStore(snapshots)
	sessionService := session.NewService(snapshots)
	gateway := checkout.NewSimulatedGateway(cfg.SettleDelay, checkout.AlwaysApprove{})
	checkoutService := checkout.NewService(cartStore, gateway, orderPublisher)

	catalogHandler := h.NewCatalogHandler(catalogService, cfg.RequestTimeout)
	cartHandler := h.NewCartHandler(cartStore, catalogService, cfg.RequestTimeout)
	checkoutHandler := h.NewCheckoutHandler(checkoutService, cfg.RequestTimeout)
	sessionHandler := h.NewSessionHandler(sessionService, cfg.RequestTimeout)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.SessionMiddleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", catalogHandler.ListProducts)
			r.Get("/{slug}", catalogHandler.GetProduct)
		})
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
		})
		r.Post("/checkout", checkoutHandler.Submit)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", sessionHandler.Login)
			r.Post("/register", sessionHandler.Register)
			r.Post("/logout", sessionHandler.Logout)
			r.Get("/me", sessionHandler.Me)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(r, "shophub"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second, // checkout holds the request while the charge settles
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("shophub starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
