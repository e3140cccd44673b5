package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"puna.nz/compliance/cache"
	"puna.nz/compliance/config"
	"puna.nz/compliance/handlers"
	"puna.nz/compliance/middleware"
	"puna.nz/compliance/routes"
	"puna.nz/compliance/storage"
)

var (
	Version   = "dev"
	BuildTime = ""
)

func main() {
	versionFlag := flag.Bool("version", false, "Print version info and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("Version:   %s\n", Version)
		fmt.Printf("BuildTime: %s\n", BuildTime)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	if err := config.Migrations(db); err != nil {
		log.Fatalf("could not run migrations: %v", err)
	}
	if err := config.SeedComplianceRules(db); err != nil {
		log.Printf("Warning: rule seeding encountered issues: %v", err)
	}

	rdb, err := config.ConnectRedis(cfg)
	if err != nil {
		log.Printf("Warning: Redis unavailable, caching disabled: %v", err)
	}

	ctx := context.Background()
	store, err := storage.New(ctx, cfg)
	if err != nil {
		log.Fatalf("could not initialise storage: %v", err)
	}
	log.Printf("document storage backend: %s", store.Name())

	deps := routes.Deps{
		DB:    db,
		Cache: cache.New(rdb),
		Auth:  middleware.NewAuth(cfg.JWTSecret),
		Store: store,
	}

	if !cfg.WorkersOff {
		go handlers.NewDeadlineWorker(db).Start(ctx)
		go handlers.NewHousekeepingWorker(db, store).Start(ctx)
	}

	handler := enableCORS(routes.Register(deps))
	log.Println("Server starting at port", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
