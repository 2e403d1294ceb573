package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"production/cmd"
	httpadapter "production/internal/adapters/in/http"
	"production/internal/adapters/out/redisbus"
	"production/internal/telemetry"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	configs := getConfigs()

	gormDB, err := openDatabase(configs)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: configs.RedisAddr})
	notifier, err := redisbus.NewRedisNotifier(redisClient, configs.NotificationChannel)
	if err != nil {
		logger.Error("failed to create notifier", "error", err)
		os.Exit(1)
	}

	root := cmd.NewCompositionRoot(configs, gormDB, notifier)

	overdueAfter, err := time.ParseDuration(configs.OutwardOverdueAfter)
	if err != nil {
		overdueAfter = 7 * 24 * time.Hour
	}

	jobManager := root.CreateJobManager(overdueAfter, logger)
	if err = jobManager.StartAll(); err != nil {
		logger.Error("failed to start background jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	e := newWebServer(&root)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && err != http.ErrServerClosed {
			logger.Error("web server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("web server shutdown failed", "error", err)
	}
}

func newWebServer(root *cmd.CompositionRoot) *echo.Echo {
	server := httpadapter.NewServer(
		root.CreatePlanBatchCommandHandler(),
		root.CreateSplitJobCardCommandHandler(),
		root.CreateStartStepCommandHandler(),
		root.CreateCompleteStepCommandHandler(),
		root.CreateToggleSubStepCommandHandler(),
		root.CreateAcceptOpenJobCommandHandler(),
		root.CreateAssignStepCommandHandler(),
		root.CreateSubmitFQCCommandHandler(),
		root.CreateRecordOutwardSentCommandHandler(),
		root.CreateRecordOutwardReturnCommandHandler(),
		root.CreateSetOrderStageCommandHandler(),
		root.CreateHoldOrderCommandHandler(),
		root.CreateResumeOrderCommandHandler(),
		root.CreateRecomputeOrderStageCommandHandler(),
		root.CreateGetOpenJobsQueryHandler(),
		root.CreateGetOrderProgressQueryHandler(),
	)

	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(httpadapter.RequestMetrics())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(telemetry.Handler()))
	server.RegisterRoutes(e)

	return e
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)
	return gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:            goDotEnvVariable("HTTP_PORT"),
		DBHost:              goDotEnvVariable("DB_HOST"),
		DBPort:              goDotEnvVariable("DB_PORT"),
		DBUser:              goDotEnvVariable("DB_USER"),
		DBPassword:          goDotEnvVariable("DB_PASSWORD"),
		DBName:              goDotEnvVariable("DB_NAME"),
		DBSslMode:           goDotEnvVariable("DB_SSLMODE"),
		RedisAddr:           goDotEnvVariable("REDIS_ADDR"),
		NotificationChannel: goDotEnvVariable("NOTIFICATION_CHANNEL"),
		OutwardOverdueAfter: goDotEnvVariable("OUTWARD_OVERDUE_AFTER"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Warnf("No .env file found, relying on environment")
	}
	return os.Getenv(key)
}
