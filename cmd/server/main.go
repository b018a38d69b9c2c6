package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/GROUP-E-AWAP/Filmpass/internal/config"
	"github.com/GROUP-E-AWAP/Filmpass/internal/database"
	"github.com/GROUP-E-AWAP/Filmpass/internal/handler"
	"github.com/GROUP-E-AWAP/Filmpass/internal/middleware"
	"github.com/GROUP-E-AWAP/Filmpass/internal/queue"
	"github.com/GROUP-E-AWAP/Filmpass/internal/repository"
	"github.com/GROUP-E-AWAP/Filmpass/internal/router"
	"github.com/GROUP-E-AWAP/Filmpass/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: without it the response cache and the rate
	// limiter degrade to pass-throughs.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	movies := repository.NewMovieRepo(db)
	theaters := repository.NewTheaterRepo(db)
	showtimes := repository.NewShowtimeRepo(db)
	seats := repository.NewSeatRepo(db)
	bookings := repository.NewBookingRepo(db)

	resolver := service.NewIdentityResolver(users)
	availability := service.NewAvailabilityCalculator(seats)
	engine := service.NewBookingEngine(bookings)

	authHandler := handler.NewAuthHandler(cfg, users, tokens)
	catalogHandler := handler.NewCatalogHandler(movies, theaters, showtimes, availability)
	bookingHandler := handler.NewBookingHandler(resolver, engine, bookings)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterCatalog(e, catalogHandler,
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	router.RegisterBooking(e, bookingHandler, cfg.JWTSecret,
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	// Consumer appends confirmed bookings to logs/booking.log.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
