package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"

	"P2H-backend/internal/dashboard"
	"P2H-backend/internal/p2h"
	"P2H-backend/internal/platform/auth"
	platformdb "P2H-backend/internal/platform/db"
	"P2H-backend/internal/scheduler"
	"P2H-backend/internal/telegram"
	"P2H-backend/internal/vehicles"
)

func main() {
	cfg, err := platformdb.LoadConfig("config/config.yaml")
	if err != nil {
		panic(err)
	}

	mode := cfg.Mode
	log.Printf("[INFO] mode:%s\n", mode)

	if mode != "dev" && mode != "release" {
		log.Fatal("config mode must be dev or release")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("jwt_secret must be set in config")
	}

	loc, err := cfg.Location()
	if err != nil {
		panic(err)
	}
	log.Printf("[INFO] site timezone: %s", loc)

	conn, err := platformdb.Connect(cfg.DB)
	if err != nil {
		panic(err)
	}
	defer conn.Close()

	log.Printf("[INFO] connected to DB: %s", cfg.DB.DBName)

	// Services
	authSvc := auth.NewService(conn, cfg.JWTSecret)
	vehicleSvc := vehicles.NewService(conn)
	telegramSvc := telegram.NewService(conn, cfg.Telegram, loc)
	p2hSvc := p2h.NewService(conn, vehicleSvc, telegramSvc, loc)
	dashboardSvc := dashboard.NewService(conn, loc)

	// Scheduler (owned here, not a package singleton)
	sched, err := scheduler.New(loc, scheduler.NewJobs(conn, vehicleSvc, telegramSvc, loc))
	if err != nil {
		log.Fatal(err)
	}
	sched.Start()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	_ = r.SetTrustedProxies(nil)

	if mode == "dev" {
		// CORS (frontend dev server only)
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowCredentials: true,
		}))
	}

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	// /api/v1
	pub := r.Group("/api/v1")
	api := r.Group("/api/v1")
	api.Use(auth.RequireAuth(authSvc.Secret()))

	auth.RegisterRoutes(pub, api, authSvc)
	vehicles.RegisterRoutes(api, vehicleSvc)
	p2h.RegisterRoutes(api, p2hSvc)
	dashboard.RegisterRoutes(api, dashboardSvc)

	srv := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}

	go func() {
		log.Println("[INFO] listening on http://0.0.0.0:8080")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Println("[INFO] shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	sched.Stop(ctx)
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
