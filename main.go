package main

import (
	"log"

	"learnhub/config"
	"learnhub/database"
	"learnhub/logger"
	authRoutes "learnhub/routers/authRoutes"
	courseRoutes "learnhub/routers/courseRoutes"
	heroSlideRoutes "learnhub/routers/heroSlideRoutes"
	superAdminRoutes "learnhub/routers/superAdmin"
	"learnhub/services"
	"learnhub/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// setupApp builds the Fiber app with middleware and every route group.
func setupApp() *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: 8 << 20,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: config.AppConfig.CorsOrigins,
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(fiberLogger.New(fiberLogger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files (uploaded thumbnails) from the public folder
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)
	superAdminRoutes.SetupSuperAdminRoutes(app)
	heroSlideRoutes.SetupHeroSlideRoutes(app)

	return app
}

func main() {
	config.LoadConfig()

	if err := logger.Init(config.AppConfig.AppEnv); err != nil {
		log.Fatalf("Failed to initialise logger: %v", err)
	}
	defer logger.Log.Sync()

	database.ConnectDb()
	services.Init(database.Database.Db, logger.Log)

	scheduler, err := utils.InitializeReconcileScheduler(services.Learning, config.AppConfig.ReconcileCron)
	if err != nil {
		logger.Log.Fatal("invalid RECONCILE_CRON", "schedule", config.AppConfig.ReconcileCron, "error", err)
	}
	if scheduler != nil {
		defer scheduler.Stop()
	}

	app := setupApp()

	logger.Log.Info("server starting", "port", config.AppConfig.Port, "env", config.AppConfig.AppEnv)
	if err := app.Listen(":" + config.AppConfig.Port); err != nil {
		logger.Log.Fatal("server stopped", "error", err)
	}
}
