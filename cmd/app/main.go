package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"buffet/cmd"
	"buffet/internal/adapters/in/http"
	"buffet/internal/adapters/out/postgres/itemrepo"
	"buffet/internal/adapters/out/postgres/orderrepo"
	"buffet/internal/adapters/out/postgres/profilerepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := openDB(configs)

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	// Warm the menu before the first customer asks for it.
	if err := app.CatalogCache().Refresh(context.Background()); err != nil {
		logger.Warn("initial catalog refresh failed", "error", err)
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app.CreateWebhookServer(configs), configs.HTTPPort)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:              goDotEnvVariable("HTTP_PORT"),
		DBHost:                goDotEnvVariable("DB_HOST"),
		DBPort:                goDotEnvVariable("DB_PORT"),
		DBUser:                goDotEnvVariable("DB_USER"),
		DBPassword:            goDotEnvVariable("DB_PASSWORD"),
		DBName:                goDotEnvVariable("DB_NAME"),
		DBSslMode:             goDotEnvVariable("DB_SSLMODE"),
		TelegramBotToken:      goDotEnvVariable("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookSecret: goDotEnvVariable("TELEGRAM_WEBHOOK_SECRET"),
		CatalogTTL:            goDotEnvVariable("CATALOG_TTL"),
		CartMaxIdle:           goDotEnvVariable("CART_MAX_IDLE"),
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func openDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&itemrepo.ItemDTO{},
		&profilerepo.ProfileDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startWebServer(server *http.Server, port string) {
	e := echo.New()
	server.RegisterRoutes(e)
	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
