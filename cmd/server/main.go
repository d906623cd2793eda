package main // Entry point for the POS backend

import (
	"log"

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/fuelware/petrol-station-pos/internal/config"
	"github.com/fuelware/petrol-station-pos/internal/database"
	"github.com/fuelware/petrol-station-pos/internal/handler"
	"github.com/fuelware/petrol-station-pos/internal/middleware"
	"github.com/fuelware/petrol-station-pos/internal/queue"
	"github.com/fuelware/petrol-station-pos/internal/repository"
	"github.com/fuelware/petrol-station-pos/internal/router"
)

func main() {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	stations := repository.NewStationRepo(db)
	prices := repository.NewPriceRepo(db)
	sales := repository.NewSaleRepo(db)

	// Redis is optional: when unreachable the cache and rate limiter
	// become pass-throughs.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiting disabled")
	}
	stationCache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	loginLimiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret, loginLimiter)
	router.RegisterStations(e, handler.NewStationHandler(stations), cfg.JWTSecret, stationCache)
	router.RegisterPOS(e, handler.NewPriceHandler(prices), handler.NewSaleHandler(sales, prices, stations, users), cfg.JWTSecret)

	// Shift-audit consumer; runs its own reconnect loop.
	go func() {
		if err := queue.StartSaleConsumer(); err != nil {
			log.Printf("sale consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
