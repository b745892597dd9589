package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/VictoriaMetrics/metrics"
	"github.com/sirupsen/logrus"
	"github.com/umalmyha/contacts/internal/cache"
	"github.com/umalmyha/contacts/internal/config"
	"github.com/umalmyha/contacts/internal/infra"
	"github.com/umalmyha/contacts/internal/logger"
	"github.com/umalmyha/contacts/internal/repository"
	"github.com/umalmyha/contacts/internal/service"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type backends struct {
	contactRps   repository.ContactRepository
	contactCache cache.ContactCache
	health       []service.Backend
	closers      []func(context.Context) error
}

func (b *backends) close(ctx context.Context, log logrus.FieldLogger) {
	for _, c := range b.closers {
		if err := c(ctx); err != nil {
			log.Errorf("failed to close connection - %v", err)
		}
	}
}

// @title       Contacts API
// @version     1.0
// @description Contact management REST API.
// @BasePath    /
func main() {
	cfg, err := config.Build()
	if err != nil {
		logrus.Fatalf("failed to build config - %v", err)
	}

	log := logger.New(cfg.LogCfg)

	b, err := connect(cfg, log)
	if err != nil {
		log.Fatal(err)
	}

	start(cfg, log, b)
}

//nolint:funlen // function contains a lot of boilerplate actions
func connect(cfg config.Config, log logrus.FieldLogger) (*backends, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	b := &backends{contactCache: cache.NewNopContactCache()}

	switch cfg.StoreDriver {
	case config.StoreDriverMongo:
		client, err := infra.Mongodb(ctx, cfg.MongoCfg)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, client.Disconnect)

		db := client.Database(cfg.MongoCfg.Database)
		if err := infra.EnsureMongoIndexes(ctx, db); err != nil {
			return nil, err
		}

		b.contactRps = repository.NewMongoContactRepository(db)
		b.health = append(b.health, service.Backend{
			Name: "mongodb",
			Pinger: service.PingerFunc(func(ctx context.Context) error {
				return client.Ping(ctx, readpref.Primary())
			}),
		})
		log.Infof("connected to mongodb at %s:%d", cfg.MongoCfg.Host, cfg.MongoCfg.Port)
	case config.StoreDriverPostgres:
		pool, err := infra.Postgresql(ctx, cfg.PostgresCfg)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, func(context.Context) error {
			pool.Close()
			return nil
		})

		b.contactRps = repository.NewPostgresContactRepository(pool)
		b.health = append(b.health, service.Backend{Name: "postgresql", Pinger: service.PingerFunc(pool.Ping)})
		log.Infof("connected to postgresql at %s:%d", cfg.PostgresCfg.Host, cfg.PostgresCfg.Port)
	default:
		b.contactRps = repository.NewMemoryContactRepository()
		log.Warn("contacts are kept in memory and will be lost on shutdown")
	}

	if cfg.RedisCfg.Enabled() {
		client, err := infra.Redis(ctx, cfg.RedisCfg)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, func(context.Context) error {
			return client.Close()
		})

		b.contactCache = cache.NewRedisContactCache(client)
		b.health = append(b.health, service.Backend{
			Name: "redis",
			Pinger: service.PingerFunc(func(ctx context.Context) error {
				return client.Ping(ctx).Err()
			}),
		})
		log.Infof("contacts cache is enabled, redis at %s", cfg.RedisCfg.Addr)
	}

	return b, nil
}

func start(cfg config.Config, log *logrus.Logger, b *backends) {
	contactSvc := service.NewContactService(b.contactRps, b.contactCache, log)
	healthSvc := service.NewHealthService(b.health...)

	app, err := infra.Router(cfg.HTTPCfg, log, infra.RouterDeps{
		ContactSvc: contactSvc,
		HealthSvc:  healthSvc,
		Metrics:    metrics.NewSet(),
	})
	if err != nil {
		log.Fatal(err)
	}

	grpcServer, err := infra.GrpcServer(log, infra.GrpcDeps{
		ContactSvc: contactSvc,
		HealthSvc:  healthSvc,
	})
	if err != nil {
		log.Fatal(err)
	}

	grpcListener, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GrpcCfg.Port))
	if err != nil {
		log.Fatalf("failed to listen on gRPC port - %v", err)
	}

	shutdownCh := make(chan os.Signal, 1)
	errorCh := make(chan error, 2)
	signal.Notify(shutdownCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Infof("http server is listening on port %d", cfg.HTTPCfg.Port)
		errorCh <- app.Start(fmt.Sprintf(":%d", cfg.HTTPCfg.Port))
	}()

	go func() {
		log.Infof("gRPC server is listening on port %d", cfg.GrpcCfg.Port)
		errorCh <- grpcServer.Serve(grpcListener)
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown signal has been sent, stopping the servers...")
	case err := <-errorCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("shutting down the servers, unexpected error occurred - %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPCfg.ShutdownTimeout)
	defer cancel()

	if err := app.Shutdown(ctx); err != nil {
		log.Errorf("failed to stop http server gracefully - %v", err)
	}
	grpcServer.GracefulStop()

	b.close(ctx, log)
	log.Info("servers are stopped")
}
