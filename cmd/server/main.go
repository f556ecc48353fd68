package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"crmsales/internal/config"
	"crmsales/internal/database"
	"crmsales/internal/handler"
	"crmsales/internal/middleware"
	"crmsales/internal/queue"
	"crmsales/internal/repository"
	"crmsales/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()

	db, err := database.Open(database.Settings{
		User: cfg.DB.User, Pass: cfg.DB.Pass,
		Host: cfg.DB.Host, Port: cfg.DB.Port, Name: cfg.DB.Name,
		MaxOpenConns:    cfg.DB.MaxOpen,
		MaxIdleConns:    cfg.DB.MaxIdle,
		ConnMaxLifetime: cfg.DB.ConnLife,
	})
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	customers := repository.NewCustomerRepo(db)
	purchases := repository.NewPurchaseRepo(db)

	authHandler := handler.NewAuthHandler(cfg, users, tokens)
	customerHandler := handler.NewCustomerHandler(customers)
	purchaseHandler := handler.NewPurchaseHandler(customers, purchases)

	// Redis only backs the login limiter; nil client disables it.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, login rate limiting disabled")
	}
	loginLimiter := middleware.LoginRateLimit(config.LoadRateLimitConfig(), rdb)

	// Receipt trail consumer; reconnects on its own, never blocks startup.
	go func() {
		if err := queue.StartPurchaseConsumer(); err != nil {
			log.Printf("purchase consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e, authHandler, customerHandler, purchaseHandler,
		cfg.JWTSecret, tokens, loginLimiter)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
