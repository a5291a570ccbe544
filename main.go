package main

import (
	"context"
	"log"
	"os"
	"time"

	"marketpulse/config"
	"marketpulse/database"
	"marketpulse/handlers"
	"marketpulse/intelligence"
	"marketpulse/mlclient"
	"marketpulse/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	// Load configuration
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	// Set up the application configuration
	config.AppConfig.JWTSecret = jwtSecret
	config.AppConfig.MLServiceURL = os.Getenv("ML_SERVICE_URL")
	config.AppConfig.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	config.AppConfig.MLTimeout = mlclient.DefaultTimeout
	if raw := os.Getenv("ML_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatalf("Invalid ML_TIMEOUT %q: %v", raw, err)
		}
		config.AppConfig.MLTimeout = timeout
	}

	// Analysis thresholds come from an optional YAML file, with validated
	// defaults when none is provided. A bad config is a startup failure,
	// never a silent fallback.
	intelCfg, err := config.LoadIntelligence(os.Getenv("INTELLIGENCE_CONFIG"))
	if err != nil {
		log.Fatalf("Invalid intelligence configuration: %v", err)
	}
	config.AppConfig.Intelligence = intelCfg

	// Initialize database
	ctx := context.Background()
	store, err := database.Connect(ctx, databaseURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer store.Close()

	// The forecast path degrades to the rule-based model when no ML
	// service is configured.
	var remote intelligence.Forecaster
	if config.AppConfig.MLServiceURL != "" {
		remote = mlclient.New(config.AppConfig.MLServiceURL, config.AppConfig.MLTimeout)
	} else {
		log.Println("ML_SERVICE_URL is not set, forecasts will use the rule-based model")
	}

	engine := intelligence.NewEngine(intelCfg, remote, config.AppConfig.MLTimeout)
	h := handlers.New(store, engine)

	app := fiber.New()

	// Add CORS middleware
	app.Use(cors.New())

	// Setup routes
	routes.SetupRoutes(app, h)

	// Start server
	log.Fatal(app.Listen(":3000"))
}
