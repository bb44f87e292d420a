package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/martin7tsang/student-management-system/auth"
	"github.com/martin7tsang/student-management-system/config"
	"github.com/martin7tsang/student-management-system/database"
	"github.com/martin7tsang/student-management-system/routes"
	"github.com/martin7tsang/student-management-system/store"
	"github.com/martin7tsang/student-management-system/web"
)

func main() {
	cfg := config.Load()

	database.Connect(cfg)
	if err := database.EnsureAdmin(database.DB); err != nil {
		log.Fatalf("admin seeding failed: %v", err)
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
		})
	}

	st := store.New(database.DB)
	authSvc := auth.NewService(database.DB, rdb, cfg.JWTSecret)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	renderer, err := web.NewTemplateRenderer(cfg.TemplateDir)
	if err != nil {
		log.Fatalf("template load failed: %v", err)
	}
	e.Renderer = renderer
	e.Static("/static", "static")

	routes.Register(e, st, authSvc)

	addr := ":" + cfg.AppPort
	log.Printf("server listening at %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
