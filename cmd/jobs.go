package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vibast-solutions/ms-go-meal-subscriptions/app/service"
	"github.com/vibast-solutions/ms-go-meal-subscriptions/config"

	_ "github.com/go-sql-driver/mysql"
)

var completeWorker bool

var completeCmd = &cobra.Command{
	Use:   "complete",
	Short: "Mark approved subscriptions past their end date as completed",
	Run: func(_ *cobra.Command, _ []string) {
		runCommand(
			"complete",
			completeWorker,
			func(cfg *config.Config) time.Duration { return cfg.Jobs.CompletionCheckInterval },
			func(s *service.SubscriptionService, ctx context.Context) error {
				return s.RunCompletionBatch(ctx)
			},
		)
	},
}

func init() {
	rootCmd.AddCommand(completeCmd)
	completeCmd.Flags().BoolVar(&completeWorker, "worker", false, "Run continuously using configured interval")
}

func runCommand(
	name string,
	worker bool,
	intervalResolver func(cfg *config.Config) time.Duration,
	fn func(s *service.SubscriptionService, ctx context.Context) error,
) {
	cfg, subscriptionService, cleanup := mustCreateSubscriptionService()
	defer cleanup()

	if worker {
		runWorker(name, intervalResolver(cfg), subscriptionService, fn)
		return
	}

	ctx := context.Background()
	runJob(name, func() error { return fn(subscriptionService, ctx) })
}

func runWorker(
	name string,
	interval time.Duration,
	subscriptionService *service.SubscriptionService,
	fn func(s *service.SubscriptionService, ctx context.Context) error,
) {
	if interval <= 0 {
		logrus.WithField("job", name).Fatal("invalid worker interval")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runJob(name, func() error { return fn(subscriptionService, ctx) })

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	for {
		select {
		case <-quit:
			logrus.WithField("job", name).Info("Worker shutdown requested")
			return
		case <-ticker.C:
			runJob(name, func() error { return fn(subscriptionService, ctx) })
		}
	}
}

func mustCreateSubscriptionService() (*config.Config, *service.SubscriptionService, func()) {
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

	sink, closeSink := newNotificationSink(cfg)
	subscriptionService := newSubscriptionService(db, sink, cfg)

	cleanup := func() {
		closeSink()
		if err := db.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close database")
		}
	}

	return cfg, subscriptionService, cleanup
}

func runJob(name string, fn func() error) {
	start := time.Now()
	err := fn()
	latency := time.Since(start)
	if err != nil {
		logrus.WithError(err).WithField("job", name).WithField("latency", latency.String()).Error("job_failed")
		return
	}
	logrus.WithField("job", name).WithField("latency", latency.String()).Info("job_completed")
}
