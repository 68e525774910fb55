package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TatianaS7/booksy/internal/cache"
	"github.com/TatianaS7/booksy/internal/config"
	dbpkg "github.com/TatianaS7/booksy/internal/db"
	"github.com/TatianaS7/booksy/internal/middleware"
	"github.com/TatianaS7/booksy/internal/routes"
	"github.com/TatianaS7/booksy/internal/seed"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	if cfg.SeedData {
		if err := seed.Load(db, cfg.SeedDir); err != nil {
			log.Fatalf("failed to seed database: %v", err)
		}
		log.Println("database seeded from", cfg.SeedDir)
	}

	// search cache is optional; without REDIS_URL every search hits the DB
	var searchCache *cache.Cache
	if cfg.RedisURL != "" {
		c, err := cache.New(cfg.RedisURL)
		if err != nil {
			log.Printf("redis disabled: %v", err)
		} else {
			searchCache = c
		}
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, searchCache)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
