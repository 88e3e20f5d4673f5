package main // Entry point package

import (
	"context" // Context for schema bootstrap
	"log"     // Logging library
	"time"    // Timeouts for startup steps

	"github.com/joho/godotenv"    // Loads .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/showdeck/showdeck/internal/config"     // Internal config loader
	"github.com/showdeck/showdeck/internal/database"   // MySQL connection and schema bootstrap
	"github.com/showdeck/showdeck/internal/handler"    // HTTP handlers
	"github.com/showdeck/showdeck/internal/queue"      // Background activity consumer
	"github.com/showdeck/showdeck/internal/repository" // Data access layer
	"github.com/showdeck/showdeck/internal/router"     // Route registration
)

func main() {
	_ = godotenv.Load()  // Load .env when present; real env vars win
	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName) // Connect to MySQL
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil { // Create tables on first run
		cancel()
		log.Fatalf("schema: %v", err)
	}
	cancel()

	rdb := config.NewRedisClient() // Redis client for cache + rate limiting (nil when unconfigured)

	users := repository.NewUserRepo(db)      // User accounts
	tokens := repository.NewTokenRepo(db)    // Refresh token store
	docs := repository.NewDocumentRepo(db)   // Production documents
	shares := repository.NewShareRepo(db)    // Share grants

	authH := handler.NewAuthHandler(cfg, users, tokens)
	docH := handler.NewDocumentHandler(docs, shares)
	shareH := handler.NewShareHandler(docs, shares)
	rosH := handler.NewRunOfShowHandler(docs)

	e := echo.New() // Create Echo instance
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret, rdb)
	router.RegisterDocuments(e, docH, shareH, rosH, cfg.JWTSecret)
	router.RegisterShared(e, shareH, shares, rdb)

	go func() { // Activity log consumer runs for the lifetime of the process
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err)
	}
}
