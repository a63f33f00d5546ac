package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"github.com/robfig/cron"

	config "github.com/cadencehq/cadence-api/configs"
	"github.com/cadencehq/cadence-api/internal/api/handlers"
	"github.com/cadencehq/cadence-api/internal/gemini"
	job "github.com/cadencehq/cadence-api/internal/jobs"
	"github.com/cadencehq/cadence-api/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	var assets gemini.AssetStore
	if cfg.R2.BucketName != "" && cfg.R2.AccountID != "" {
		assetService, err := service.NewAssetService(*cfg)
		if err != nil {
			log.Fatalf("Failed to set up asset storage: %v", err)
		}
		assets = assetService
	}

	client, err := gemini.NewClient(*cfg, assets)
	if err != nil {
		log.Fatalf("Failed to create generation client: %v", err)
	}

	contentService := service.NewContentService(client)

	app := fiber.New(fiber.Config{
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 2 * time.Minute,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	generation := handlers.NewGenerationHandler(contentService)
	usage := handlers.NewUsageHandler(client)
	exporter := handlers.NewExportHandler()

	api := app.Group("/api")

	api.Post("/enhance", generation.Enhance)
	api.Post("/generate/single", generation.GenerateSingle)
	api.Post("/generate/campaign/strategy", generation.GenerateCampaignStrategy)
	api.Post("/generate/campaign/posts", generation.GenerateCampaignPosts)
	api.Post("/generate/campaign", generation.GenerateCampaign)
	api.Post("/generate/media", generation.GenerateMedia)
	api.Post("/adjust", generation.Adjust)
	api.Post("/export/strategy", exporter.ExportStrategy)
	api.Get("/usage", usage.GetUsage)

	// generation endpoints answer GET probes with 405
	for _, path := range []string{
		"/enhance",
		"/generate/single",
		"/generate/campaign/strategy",
		"/generate/campaign/posts",
		"/generate/campaign",
		"/generate/media",
		"/adjust",
	} {
		api.Get(path, handlers.MethodNotAllowed)
	}

	usageJob := job.NewUsageReportJob(client)
	c := cron.New()
	c.AddFunc("@every 00h10m00s", usageJob.Report)
	c.Start()

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running on http://localhost:%s", cfg.Port)

	gracefulShutdown(app, c)
}

func gracefulShutdown(app *fiber.App, c *cron.Cron) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	c.Stop()
	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	log.Println("Server shutdown complete.")
}
