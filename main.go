package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	log.SetPrefix("nutricalc-go-api: ")
	log.SetFlags(0)

	// .env is optional — production injects real env vars.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := newDBPool(ctx)
	if err != nil {
		log.Fatalf("unable to create db pool: %v", err)
	}
	defer pool.Close()
	log.Println("DB pool ready!")

	h := &Handler{db: pool}

	router := gin.Default()
	router.SetTrustedProxies(nil)
	router.Use(cors.Default())
	h.registerRoutes(router)

	// Serve the built SPA when present; unmatched /api paths still get JSON 404s.
	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "./static"
	}
	if _, err := os.Stat(staticDir); err == nil {
		router.Static("/assets", filepath.Join(staticDir, "assets"))
		router.StaticFile("/", filepath.Join(staticDir, "index.html"))
	}
	registerFallback(router, staticDir)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{Addr: ":" + port, Handler: router}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Printf("listening on :%s", port)

	// Block until SIGINT/SIGTERM, then drain in-flight requests and close the pool.
	<-ctx.Done()
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
