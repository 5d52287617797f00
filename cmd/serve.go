package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vibast-solutions/ms-go-meal-subscriptions/app/controller"
	"github.com/vibast-solutions/ms-go-meal-subscriptions/app/notification"
	"github.com/vibast-solutions/ms-go-meal-subscriptions/app/repository"
	"github.com/vibast-solutions/ms-go-meal-subscriptions/app/service"
	"github.com/vibast-solutions/ms-go-meal-subscriptions/config"

	_ "github.com/go-sql-driver/mysql"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  "Start the HTTP (Echo) server for the meal subscriptions service.",
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}

	db, err := openDatabase(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	sink, closeSink := newNotificationSink(cfg)
	defer closeSink()

	subscriptionService := newSubscriptionService(db, sink, cfg)
	subscriptionController := controller.NewSubscriptionController(subscriptionService)

	e := setupHTTPServer(subscriptionController)

	go func() {
		httpAddr := net.JoinHostPort(cfg.HTTP.Host, cfg.HTTP.Port)
		logrus.WithField("addr", httpAddr).Info("Starting HTTP server")
		if err := e.Start(httpAddr); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Warn("HTTP shutdown error")
	}

	logrus.Info("Server stopped")
}

func setupHTTPServer(subscriptionController *controller.SubscriptionController) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogRequestID: true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"remote_ip":  v.RemoteIP,
				"host":       v.Host,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"latency_ns": v.Latency.Nanoseconds(),
				"user_agent": v.UserAgent,
			}
			entry := logrus.WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: func() string {
			return fmt.Sprintf("rest-%s", uuid.New().String())
		},
	}))

	e.GET("/health", subscriptionController.Health)

	subscriptions := e.Group("/subscriptions")
	subscriptions.POST("", subscriptionController.CreateSubscription)
	subscriptions.GET("", subscriptionController.ListSubscriptions)
	subscriptions.GET("/:id", subscriptionController.GetSubscription)
	subscriptions.GET("/:id/orders", subscriptionController.ListSubscriptionOrders)
	subscriptions.PATCH("/:id/status", subscriptionController.UpdateSubscriptionStatus)
	subscriptions.POST("/:id/pause", subscriptionController.PauseSubscription)
	subscriptions.POST("/:id/resume", subscriptionController.ResumeSubscription)

	return e
}

func openDatabase(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func newNotificationSink(cfg *config.Config) (notification.Sink, func()) {
	if len(cfg.Kafka.Brokers) == 0 {
		return notification.NewLogSink(), func() {}
	}

	sink, err := notification.NewKafkaSink(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize Kafka notification sink")
	}
	return sink, func() {
		if err := sink.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close Kafka producer")
		}
	}
}

func newSubscriptionService(db *sql.DB, sink notification.Sink, cfg *config.Config) *service.SubscriptionService {
	return service.NewSubscriptionService(
		repository.NewSubscriptionRepository(db),
		repository.NewOrderRepository(db),
		repository.NewMenuRepository(db),
		repository.NewConsumerRepository(db),
		repository.NewClosureRepository(db),
		sink,
		cfg.Subscriptions,
	)
}
