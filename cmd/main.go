package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/SergeyBogomolovv/escrow-service/docs"
	"github.com/SergeyBogomolovv/escrow-service/internal/app"
	"github.com/SergeyBogomolovv/escrow-service/internal/clock"
	"github.com/SergeyBogomolovv/escrow-service/internal/config"
	"github.com/SergeyBogomolovv/escrow-service/internal/handler"
	"github.com/SergeyBogomolovv/escrow-service/internal/notify"
	"github.com/SergeyBogomolovv/escrow-service/internal/postgres"
	"github.com/SergeyBogomolovv/escrow-service/internal/repo"
	"github.com/SergeyBogomolovv/escrow-service/internal/service"
	"github.com/SergeyBogomolovv/escrow-service/migrations"
	"github.com/SergeyBogomolovv/escrow-service/pkg/cache"
	"github.com/SergeyBogomolovv/escrow-service/pkg/trm"
	"github.com/SergeyBogomolovv/escrow-service/pkg/utils"

	"github.com/joho/godotenv"
)

// @title           Escrow Service API
// @version         1.0
// @description     Order lifecycle with escrowed funds
func main() {
	conf := config.New()
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	orderRepo, closeRepo := newRepo(logger, conf)
	statusCache := cache.NewLRUCache(conf.Cache.Capacity, conf.Cache.TTL)
	notifier := notify.NewKafkaNotifier(logger, conf.Kafka)

	orderService := service.NewOrderService(logger, orderRepo, statusCache, notifier, clock.NewSystem(), utils.RetryConfig{
		MaxAttempts:  conf.Retry.MaxAttempts,
		InitialDelay: conf.Retry.InitialDelay,
		MaxDelay:     conf.Retry.MaxDelay,
		Multiplier:   conf.Retry.Multiplier,
	})

	handler.RegisterMetrics()
	kafkaHandler := handler.NewKafkaHandler(logger, conf.Kafka, orderService)
	httpHandler := handler.NewHTTPHandler(logger, orderService)

	app := app.New(logger, conf)

	app.SetHTTPHandlers(httpHandler)
	app.SetConsumers(kafkaHandler)
	app.SetWorkers(statusCache)
	app.SetStarters(cacheWarmUpAdapter{svc: orderService, count: conf.Cache.Capacity})
	app.SetClosers(notifier, closeRepo)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	panicIfErr("failed to start app", app.Start(ctx))
	<-ctx.Done()
	panicIfErr("failed to stop app", app.Stop())
}

func init() {
	godotenv.Load()
}

func newRepo(logger *slog.Logger, conf config.Config) (service.OrderRepo, io.Closer) {
	if conf.Storage == "memory" {
		logger.Warn("using in-memory storage, state is lost on restart")
		return repo.NewMemoryRepo(), closerFunc(func() error { return nil })
	}

	panicIfErr("failed to apply migrations", migrations.Up(postgres.URL(conf.Postgres)))

	db, err := postgres.New(conf.Postgres)
	panicIfErr("failed to connect to db", err)
	logger.Info("postgres connected")

	return repo.NewPostgresRepo(db, trm.NewManager(db)), db
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

type warmUpper interface {
	WarmUpCache(ctx context.Context, count int) error
}

type cacheWarmUpAdapter struct {
	svc   warmUpper
	count int
}

func (a cacheWarmUpAdapter) Start(ctx context.Context) error {
	return a.svc.WarmUpCache(ctx, a.count)
}
