package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"clubdev/config"
	"clubdev/handlers"
	"clubdev/middleware"
	"clubdev/models"
	"clubdev/services"
	"clubdev/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{})

	// 🔐❗ GLOBAL: Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	// Load allowed origins from environment variable
	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, User-Agent, Cache-Control, X-Service-Token, X-User-ID, X-User-Roles",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Script{},
		&models.BlogPost{},
		&models.Like{},
		&models.Flag{},
		&models.HelpQuestion{},
		&models.HelpAnswer{},
		&models.Trophy{},
		&models.Badge{},
		&models.UserBadge{},
		&models.Achievement{},
		&models.UserAchievement{},
		&models.Challenge{},
		&models.DailyChallenge{},
		&models.GamificationEvent{},
		&models.Leaderboard{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	thresholds := config.LoadThresholds()

	catalogService := services.NewCatalogService(db)
	if err := catalogService.SeedCatalogs(); err != nil {
		log.Fatal("failed to seed catalogs:", err)
	}

	gamificationService := services.NewGamificationService(db, thresholds)
	activityService := services.NewActivityService(db, gamificationService)

	// --- CONFIGURE Profile Service Details for User Sync ---
	profileServiceURL := os.Getenv("PROFILE_SERVICE_URL")
	if profileServiceURL == "" {
		log.Fatal("PROFILE_SERVICE_URL environment variable not set")
	}
	serviceToken := os.Getenv("GAMIFICATION_SERVICE_TOKEN")
	if serviceToken == "" {
		log.Fatal("GAMIFICATION_SERVICE_TOKEN environment variable not set")
	}
	// --- END CONFIG ---

	syncWorker := workers.NewUserSyncWorker(db, profileServiceURL, "/api/v1/public/profiles", serviceToken)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Println("Starting User Sync Worker...")
		syncWorker.Start(ctx)
	}()

	gamificationService.StartLeaderboardScheduler()

	// ✅ Setup routes — now with enforced Gateway auth + consistent /s/ prefix
	handlers.SetupGamificationRoutes(app, gamificationService, catalogService)
	handlers.SetupActivityRoutes(app, activityService)

	go func() {
		if err := app.Listen(":5300"); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Println("✅ Server running on http://localhost:5300")
	log.Println("✅ User Sync Worker running")
	log.Println("✅ Leaderboard scheduler running (hourly snapshots)")
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
}
