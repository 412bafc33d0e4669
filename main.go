package main

import (
	"log"
	"time"

	"timberyard-backend/config"
	"timberyard-backend/database"
	"timberyard-backend/middlewares"
	"timberyard-backend/models"
	"timberyard-backend/routes"
	"timberyard-backend/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	// ---- Persistence gateway (remote Postgres + local sqlite cache)
	gw, err := database.Open(cfg.DatabaseDSN, cfg.CachePath)
	if err != nil {
		log.Fatalf("could not open persistence: %v", err)
	}

	seedUsers(gw, cfg)

	// ---- Domain store (in-memory working state)
	s := store.New(gw)
	s.Load()

	// ---- Fiber app with global error handler + body limit
	app := fiber.New(fiber.Config{
		ErrorHandler: middlewares.ErrorHandler,
		BodyLimit:    cfg.BodyLimitBytes,
	})

	// ---- CORS
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: false, // using Bearer tokens, not cookies
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Idempotency-Key",
	}))

	// ---- Global rate limiter
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: time.Duration(cfg.RateLimitWindowSeconds) * time.Second,
		// Default KeyGenerator = client IP; default 429 handler is fine.
	}))

	// ---- Routes
	routes.Register(app, s, gw)

	// ---- Start
	log.Printf("API server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

// seedUsers upserts the two operator accounts when their passwords are
// configured. Re-running with a changed password rotates the hash.
func seedUsers(gw *database.Gateway, cfg config.Config) {
	seed := func(username, password, role string) {
		if password == "" {
			return
		}
		user := models.User{Username: username, Role: role}
		user.SetPassword(password)
		gw.SaveUser(user)
	}
	seed("admin", cfg.AdminPassword, models.RoleAdmin)
	seed("sales", cfg.SalesPassword, models.RoleSales)
}
