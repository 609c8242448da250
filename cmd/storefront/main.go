package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	bagrepo "github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/bag/repository"
	bagservice "github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/bag/service"
	catalogcache "github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/catalog/cache"
	catalogrepo "github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/catalog/repository"
	catalogservice "github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/catalog/service"
	h "github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/http"
	"github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/order/events"
	orderrepo "github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/order/repository"
	orderservice "github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/order/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Config struct {
	HTTPPort          string
	PostgresHost      string
	PostgresPort      int
	PostgresUser      string
	PostgresPassword  string
	PostgresDB        string
	MongoURI          string
	MongoDBName       string
	RedisAddr         string
	RedisPassword     string
	KafkaBrokers      string
	RequestTimeout    time.Duration
	ShutdownTimeout   time.Duration
	CatalogMigrations string
	OrderMigrations   string
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		PostgresHost:      getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:      getEnvInt("POSTGRES_PORT", 5432),
		PostgresUser:      getEnv("POSTGRES_USER", "storefront"),
		PostgresPassword:  getEnv("POSTGRES_PASSWORD", "storefront"),
		PostgresDB:        getEnv("POSTGRES_DB", "storefront"),
		MongoURI:          getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:       getEnv("MONGO_DB_NAME", "bagdb"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		KafkaBrokers:      getEnv("KAFKA_BROKERS", "localhost:9092"),
		RequestTimeout:    30 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		CatalogMigrations: getEnv("CATALOG_MIGRATIONS_DIR", "./migrations/catalog"),
		OrderMigrations:   getEnv("ORDER_MIGRATIONS_DIR", "./migrations/orders"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()
	ctx := context.Background()

	// Catalog store (Postgres)
	catalogCreds := &catalogrepo.Credentials{
		Host:              cfg.PostgresHost,
		Port:              cfg.PostgresPort,
		User:              cfg.PostgresUser,
		Password:          cfg.PostgresPassword,
		DBName:            cfg.PostgresDB,
		MigrationsDirPath: cfg.CatalogMigrations,
	}
	catalogRepo, err := catalogrepo.NewRepository(catalogCreds)
	if err != nil {
		log.Fatalf("Failed to connect to catalog database: %v", err)
	}
	defer catalogRepo.Close()
	if err := catalogRepo.RunMigrations(catalogCreds); err != nil {
		log.Fatalf("Failed to run catalog migrations: %v", err)
	}

	// Order store (Postgres)
	orderCreds := &orderrepo.Credentials{
		Host:              cfg.PostgresHost,
		Port:              cfg.PostgresPort,
		User:              cfg.PostgresUser,
		Password:          cfg.PostgresPassword,
		DBName:            cfg.PostgresDB,
		MigrationsDirPath: cfg.OrderMigrations,
	}
	orderRepo, err := orderrepo.NewRepository(orderCreds)
	if err != nil {
		log.Fatalf("Failed to connect to orders database: %v", err)
	}
	defer orderRepo.Close()
	if err := orderRepo.RunMigrations(orderCreds); err != nil {
		log.Fatalf("Failed to run order migrations: %v", err)
	}

	// Bag store (MongoDB)
	mongoDB, err := bagrepo.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoDB.Client().Disconnect(ctx)
	bagRepo, err := bagrepo.NewMongoRepository(ctx, mongoDB)
	if err != nil {
		log.Fatalf("Failed to prepare bag store: %v", err)
	}
	log.Printf("Connected to MongoDB at %s", cfg.MongoURI)

	// Catalog cache (Redis)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Redis connection failed:", err)
	}
	log.Printf("Redis ping succeeded")

	// Order events (Kafka)
	producer := events.NewProducer(cfg.KafkaBrokers)
	defer producer.Close()

	// Services
	catalogSvc := catalogservice.NewCatalogService(catalogRepo, catalogcache.NewRedisCache(redisClient))
	bagSvc := bagservice.NewBagService(bagRepo, catalogSvc)
	orderSvc := orderservice.NewOrderService(orderRepo, catalogSvc, h.HeaderUserDirectory{}, bagRepo, producer)

	// Handlers
	productHandler := h.NewProductHandler(catalogSvc, cfg.RequestTimeout)
	bagHandler := h.NewBagHandler(bagSvc, cfg.RequestTimeout)
	orderHandler := h.NewOrderHandler(orderSvc, cfg.RequestTimeout)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.HeaderAuthMiddleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.ListProducts)
			r.Get("/{product_id}", productHandler.GetProduct)
			r.Get("/{product_id}/defaults", productHandler.DefaultSelection)
			r.Post("/{product_id}/price", productHandler.PreviewPrice)
		})
		r.Route("/bag", func(r chi.Router) {
			r.Get("/", bagHandler.GetBag)
			r.Post("/lines", bagHandler.AddLine)
			r.Put("/lines/{line_id}", bagHandler.UpdateLine)
			r.Delete("/lines/{line_id}", bagHandler.RemoveLine)
			r.Delete("/", bagHandler.ClearBag)
		})
		r.Post("/checkout", orderHandler.Checkout)
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", orderHandler.ListOrders)
			r.Get("/{order_id}", orderHandler.GetOrder)
			r.Post("/{order_id}/cancel", orderHandler.CancelOrder)
		})
		r.Put("/admin/orders/{order_id}/status", orderHandler.UpdateStatus)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(r, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
