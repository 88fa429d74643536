package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/settleup/internal/cache"
	"github.com/mmynk/settleup/internal/config"
	"github.com/mmynk/settleup/internal/events"
	"github.com/mmynk/settleup/internal/events/amqp"
	"github.com/mmynk/settleup/internal/events/kafka"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/internal/storage/memory"
	"github.com/mmynk/settleup/internal/storage/postgres"
	"github.com/mmynk/settleup/internal/storage/sqlite"
)

// openStore opens the configured storage backend.
func openStore(ctx context.Context, cfg *config.Config) (storage.Store, healthCheck, error) {
	switch cfg.DataBackend {
	case config.BackendMemory:
		slog.Info("Storage initialized", "backend", cfg.DataBackend)
		return memory.New(), nil, nil
	case config.BackendPostgres:
		store, err := postgres.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("Storage initialized", "backend", cfg.DataBackend)
		return store, store.DB().PingContext, nil
	case config.BackendSQLite:
		store, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("Storage initialized", "backend", cfg.DataBackend, "database", cfg.DBPath)
		return store, store.DB().PingContext, nil
	default:
		return nil, nil, fmt.Errorf("unknown data backend %q", cfg.DataBackend)
	}
}

// openCache connects to redis when REDIS_ADDR is set.
func openCache(ctx context.Context, cfg *config.Config) (cache.Cache, healthCheck, error) {
	if cfg.RedisAddr == "" {
		slog.Info("Split cache disabled - no REDIS_ADDR provided")
		return cache.Nop{}, nil, nil
	}
	c, err := cache.NewRedis(ctx, cfg.RedisAddr, "settleup:split:")
	if err != nil {
		return nil, nil, err
	}
	slog.Info("Split cache initialized", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL)
	return c, c.Ping, nil
}

// openPublisher connects to the configured broker. The publisher is wrapped
// in a circuit breaker so an unreachable broker fails fast.
func openPublisher(cfg *config.Config) (events.Publisher, error) {
	switch cfg.EventsBackend {
	case config.EventsKafka:
		slog.Info("Publishing split events to Kafka", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
		return events.WithBreaker("kafka", kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic), events.DefaultBreakerConfig), nil
	case config.EventsAMQP:
		p, err := amqp.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey)
		if err != nil {
			return nil, err
		}
		slog.Info("Publishing split events to AMQP", "exchange", cfg.AMQPExchange, "routing_key", cfg.AMQPRoutingKey)
		return events.WithBreaker("amqp", p, events.DefaultBreakerConfig), nil
	default:
		slog.Info("Split events disabled")
		return events.Nop{}, nil
	}
}
