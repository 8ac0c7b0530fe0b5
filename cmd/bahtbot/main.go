package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"bahtbot/internal/amqp"
	"bahtbot/internal/backend"
	"bahtbot/internal/bot"
	"bahtbot/internal/config"
	apphttp "bahtbot/internal/http"
	"bahtbot/internal/line"
	applog "bahtbot/internal/log"
	"bahtbot/internal/scheduler"
	"bahtbot/internal/services"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", applog.FieldError, err)
		os.Exit(1)
	}
	factory := backend.NewFactory(logger)
	result, err := factory.CreateStore(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize ledger store",
			applog.FieldBackend, cfg.LedgerBackend,
			applog.FieldError, err)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Ledger cleanup failed", applog.FieldError, err)
			}
		}()
	}

	lineClient, err := line.NewClient(cfg.LineChannelSecret, cfg.LineChannelToken)
	if err != nil {
		logger.Error("Failed to initialize LINE client", applog.FieldError, err)
		os.Exit(1)
	}

	// AMQP is optional: a broker outage must not keep the bot down.
	var events services.EventPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without events",
				applog.FieldError, err)
		} else {
			defer amqpClient.Close()
			events = amqpClient
			logger.Info("Initialized AMQP client",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	svc := services.NewTransactionService(result.Store, events, cfg.LowBalanceThreshold, logger)
	handler := bot.NewHandler(svc, lineClient, cfg.PushRecipientID, logger)

	srv := apphttp.NewServer(":"+cfg.Port, lineClient, handler, logger)

	sched, err := scheduler.New(result.Store, lineClient, cfg.PushRecipientID, cfg.BackupDir, scheduler.Times{
		DailySummary:  cfg.DailySummaryTime,
		WeeklySummary: cfg.WeeklySummaryTime,
		Backup:        cfg.BackupTime,
	}, cfg.PollInterval, logger)
	if err != nil {
		logger.Error("Failed to initialize scheduler", applog.FieldError, err)
		os.Exit(1)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting bahtbot server",
			"port", cfg.Port,
			applog.FieldBackend, cfg.LedgerBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		if err := sched.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
