package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Spok95/lms-dashboard/internal/config"
	"github.com/Spok95/lms-dashboard/internal/dashboard"
	"github.com/Spok95/lms-dashboard/internal/demo"
	"github.com/Spok95/lms-dashboard/internal/httpapi"
	"github.com/Spok95/lms-dashboard/internal/jobs"
	"github.com/Spok95/lms-dashboard/internal/logging"
	"github.com/Spok95/lms-dashboard/internal/observability"
)

const envFile = ".env"

var version = "dev"

func main() {
	// Загрузка переменных окружения
	if err := godotenv.Load(envFile); err != nil {
		log.Println("Не удалось загрузить .env файл, используем переменные окружения")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	holder := config.NewHolder(cfg)

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lg.Closer()

	flush, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, version)
	if err != nil {
		lg.Base.Warn("sentry init failed", zap.Error(err))
	}
	defer flush()

	resolver := dashboard.NewResolver(holder.LMS, dashboard.LiveSources(nil, lg.Named("lms")), demo.New())
	svc := dashboard.New(resolver, lg.Named("dashboard"))
	_, mode := resolver.Resolve()
	lg.Base.Info("starting", zap.String("addr", cfg.HTTPAddr), zap.String("mode", string(mode)), zap.String("version", version))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner := jobs.New(ctx, lg.Named("jobs"))
	runner.EveryNow(cfg.ProbeInterval, "upstream_probe", jobs.UpstreamProbe(svc, 10*time.Second))

	srv := httpapi.New(svc, lg.Named("http"), httpapi.Options{
		CORSOrigins: cfg.CORSOrigins,
		Location:    time.Local,
	})
	go func() {
		if err := srv.Listen(cfg.HTTPAddr); err != nil {
			lg.Base.Error("http server stopped", zap.Error(err))
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	for {
		select {
		case <-ctx.Done():
			shutdown(srv, lg.Base)
			return
		case s := <-sig:
			if s == syscall.SIGHUP {
				reload(holder, lg)
				continue
			}
			lg.Base.Info("shutting down", zap.String("signal", s.String()))
			cancel()
			shutdown(srv, lg.Base)
			return
		}
	}
}

// reload перечитывает .env; новые учётные данные LMS применяются со следующего запроса.
func reload(holder *config.Holder, lg *logging.Log) {
	prev := holder.Get()
	cfg, err := holder.Reload(envFile)
	if err != nil {
		lg.Base.Error("config reload failed", zap.Error(err))
		return
	}
	lg.SetLevel(cfg.LogLevel)
	if cfg.HTTPAddr != prev.HTTPAddr {
		lg.Base.Warn("HTTP_ADDR change needs a restart", zap.String("addr", prev.HTTPAddr))
	}
	lg.Base.Info("config reloaded", zap.Bool("lms_configured", cfg.LMS.Configured()))
}

func shutdown(srv *httpapi.Server, lg *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		lg.Error("http shutdown", zap.Error(err))
	}
}
