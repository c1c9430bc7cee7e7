package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/rogerio-castellano/order-insights/internal/auditlog"
	"github.com/rogerio-castellano/order-insights/internal/auth"
	"github.com/rogerio-castellano/order-insights/internal/cache"
	"github.com/rogerio-castellano/order-insights/internal/config"
	"github.com/rogerio-castellano/order-insights/internal/csvload"
	"github.com/rogerio-castellano/order-insights/internal/db"
	api "github.com/rogerio-castellano/order-insights/internal/http"
	"github.com/rogerio-castellano/order-insights/internal/http/handlers"
	rl "github.com/rogerio-castellano/order-insights/internal/http/rate_limiter"
	"github.com/rogerio-castellano/order-insights/internal/repo"
)

// @title Order Insights API
// @version 1.0
// @description REST API for e-commerce order analytics: top cities by order volume and most popular product category per city.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Could not load configuration: %v", err)
	}

	auth.SetSecret(cfg.JWT.Secret)
	go rl.StartVisitorCleanupLoop()

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("Could not connect to Redis: %v", err)
		}
		defer rdb.Close()

		handlers.SetInsightCache(cache.New(rdb, cfg.Cache.TTL))
		handlers.SetImportLog(auditlog.New(rdb))
	} else {
		log.Println("Redis not configured; insight caching and import log disabled")
	}

	if cfg.Database.URL != "" {
		database, err := db.Connect(cfg.Database.URL)
		if err != nil {
			log.Fatal("❌ Could not connect to database:", err)
		}
		defer database.Close()

		handlers.SetDatasetRepo(repo.NewPostgresDatasetRepository(database))
		handlers.SetInsightsRepo(repo.NewPostgresInsightsRepository(database))
		handlers.SetUserRepo(repo.NewPostgresUserRepository(database))
	} else {
		datasets := repo.NewInMemoryDatasetRepository()
		if ds, err := csvload.LoadDir(cfg.Data.Dir); err != nil {
			log.Printf("Could not seed datasets from %q: %v", cfg.Data.Dir, err)
		} else {
			datasets.Seed(ds)
			log.Printf("Seeded datasets from %q", cfg.Data.Dir)
		}

		handlers.SetDatasetRepo(datasets)
		handlers.SetInsightsRepo(repo.NewInMemoryInsightsRepository(datasets))
		handlers.SetUserRepo(repo.NewInMemoryUserRepository())
	}

	r := api.NewRouter()
	log.Printf("✅ Server running on %s", cfg.Server.Addr)
	if err := http.ListenAndServe(cfg.Server.Addr, r); err != nil {
		log.Fatal(err)
	}
}
