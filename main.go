package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"

	"campusevents_backend/internals/configs"
	database "campusevents_backend/internals/databases"
	eventScheduler "campusevents_backend/internals/features/events/events/scheduler"
	authScheduler "campusevents_backend/internals/features/users/auth/scheduler"
	authService "campusevents_backend/internals/features/users/auth/service"
	helper "campusevents_backend/internals/helpers"
	helpersAuth "campusevents_backend/internals/helpers/auth"
	"campusevents_backend/internals/helpers/media"
	middlewares "campusevents_backend/internals/middlewares"
	routes "campusevents_backend/internals/route"
	"campusevents_backend/internals/seeds"
)

// usage: campusevents [serve | migrate [up|down|version] | seed]
func main() {
	configs.LoadEnv()

	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "migrate":
		sub := ""
		if len(os.Args) > 2 {
			sub = os.Args[2]
		}
		db := database.ConnectDB()
		defer database.Close()
		if err := database.Migrate(db, sub); err != nil {
			log.Fatalf("[ERROR] %v", err)
		}
	case "seed":
		db := database.ConnectDB()
		defer database.Close()
		if err := seeds.RunAllSeeds(db); err != nil {
			log.Fatalf("[ERROR] %v", err)
		}
	case "serve":
		serve()
	default:
		log.Fatalf("[ERROR] unknown command %q (expected serve, migrate or seed)", cmd)
	}
}

func serve() {
	if configs.JWTSecret == "" {
		log.Fatal("[ERROR] JWT_SECRET must be set to serve requests")
	}

	// 🔌 DB connect + pool
	db := database.ConnectDB()
	database.TunePool(db)

	if configs.AutoMigrate {
		if err := database.Migrate(db, "up"); err != nil {
			log.Fatalf("[ERROR] %v", err)
		}
	}
	if configs.AutoSeed {
		if err := seeds.RunAllSeeds(db); err != nil {
			log.Printf("[WARN] seeding failed: %v", err)
		}
	}

	store, err := media.NewStorageFromEnv()
	if err != nil {
		log.Printf("[WARN] uploads disabled: %v", err)
		store = nil
	}

	var throttle authService.LoginThrottle
	if configs.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := authService.NewRedisClient(ctx, configs.RedisURL)
		cancel()
		if err != nil {
			log.Printf("[WARN] redis unavailable, login throttle disabled: %v", err)
		} else {
			throttle = authService.NewRedisLoginThrottle(client)
			defer client.Close()
		}
	}

	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		ErrorHandler:          helper.ErrorHandler,
		BodyLimit:             media.MaxUploadBytes + 1<<20,
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
	})

	middlewares.SetupMiddlewares(app)

	svc := routes.SetupRoutes(app, routes.Deps{
		DB:       db,
		Tokens:   helpersAuth.NewTokenManager(configs.JWTSecret, configs.TokenTTL),
		Media:    store,
		Throttle: throttle,
		Now:      configs.Now,
	})

	// ⏱ scheduler after routes so the services exist
	c := cron.New(
		cron.WithLocation(configs.AppTZ),
		cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)),
	)
	if _, err := eventScheduler.RegisterCompletionSweep(c, configs.CompletionSweepCron, svc.Events); err != nil {
		log.Printf("[WARN] completion sweep not scheduled: %v", err)
	}
	if _, err := authScheduler.RegisterBlacklistCleanup(c, configs.BlacklistCleanupCron, svc.Auth); err != nil {
		log.Printf("[WARN] blacklist cleanup not scheduled: %v", err)
	}
	c.Start()

	// 🔒 keep-alive and server timeouts
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		log.Printf("[INFO] Listening on :%s", configs.AppPort)
		if err := app.Listen("0.0.0.0:" + configs.AppPort); err != nil {
			log.Fatalf("[ERROR] server error: %v", err)
		}
	}()

	// graceful shutdown + close DB pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("[INFO] shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	<-c.Stop().Done()
	_ = app.ShutdownWithContext(ctx)
	database.Close()
}
