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

	"github.com/riskibarqy/liga-fantasy/internal/app"
	"github.com/riskibarqy/liga-fantasy/internal/config"
	"github.com/riskibarqy/liga-fantasy/internal/observability"
	"github.com/riskibarqy/liga-fantasy/internal/platform/logging"
	"github.com/riskibarqy/liga-fantasy/internal/scheduler"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logger, flushLogs, err := observability.InitBetterStackLogger(cfg, logger)
	if err != nil {
		logger.Error("init better stack logger", "error", err)
		os.Exit(1)
	}
	logging.SetDefault(logger)

	shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}

	stopPyroscope, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		os.Exit(1)
	}

	pprofSrv, err := observability.StartPprofServer(cfg, logger)
	if err != nil {
		logger.Error("start pprof server", "error", err)
		os.Exit(1)
	}

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}

	var settlementScheduler *scheduler.Scheduler
	if cfg.StatsFeedEnabled && cfg.JobSettlementInterval > 0 {
		settlementScheduler, err = scheduler.New(application.Settlement, cfg.JobSettlementInterval, logger)
		if err != nil {
			logger.Error("build settlement scheduler", "error", err)
			os.Exit(1)
		}
		if err := settlementScheduler.Start(); err != nil {
			logger.Error("start settlement scheduler", "error", err)
			os.Exit(1)
		}
	}

	go func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr)
		if err := application.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if settlementScheduler != nil {
		if err := settlementScheduler.Stop(); err != nil {
			logger.Error("stop settlement scheduler", "error", err)
		}
	}

	if err := application.Server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}

	if err := observability.StopPprofServer(pprofSrv, logger, 5*time.Second); err != nil {
		logger.Error("stop pprof server", "error", err)
	}

	if stopPyroscope != nil {
		if err := stopPyroscope(); err != nil {
			logger.Error("stop pyroscope", "error", err)
		}
	}

	if shutdownUptrace != nil {
		if err := shutdownUptrace(shutdownCtx); err != nil {
			logger.Error("shutdown uptrace", "error", err)
		}
	}

	if err := application.Close(); err != nil {
		logger.Error("close database", "error", err)
	}

	if flushLogs != nil {
		if err := flushLogs(shutdownCtx); err != nil {
			logger.Error("flush logs", "error", err)
		}
	}

	logger.Info("http server stopped")
	_ = logger.Sync()
}
