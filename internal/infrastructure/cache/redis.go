package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/luewire/DailyFlow-HabitTracker/internal/domain/events"
	"github.com/luewire/DailyFlow-HabitTracker/pkg/config"
)

// Custom error types
var (
	ErrCacheNotFound   = errors.New("cache: key not found")
	ErrInvalidConfig   = errors.New("cache: invalid configuration")
	ErrCacheConnection = errors.New("cache: connection error")
)

// DashboardEventChannel is the Redis channel for dashboard events
const DashboardEventChannel = "dashboard:events"

// Config holds the configuration for the Redis client
type Config struct {
	Addr             string
	Password         string
	DB               int
	PoolSize         int
	MinIdleConns     int
	MaxRetries       int
	ConnTimeout      time.Duration
	OperationTimeout time.Duration
	DefaultTTL       time.Duration
	KeyPrefix        string
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		PoolSize:         100,
		MinIdleConns:     10,
		MaxRetries:       3,
		ConnTimeout:      5 * time.Second,
		OperationTimeout: 2 * time.Second,
		DefaultTTL:       30 * time.Minute,
		KeyPrefix:        "dailyflow:",
	}
}

// NewConfigFromEnv creates a Redis config from project configuration
func NewConfigFromEnv(cfg *config.Config) *Config {
	c := DefaultConfig()
	c.Addr = fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
	c.Password = cfg.Redis.Password
	c.DB = cfg.Redis.DB
	if cfg.Server.Timeout > 0 {
		c.OperationTimeout = cfg.Server.Timeout
	}
	return c
}

// RedisClient wraps the Redis client with JSON helpers and dashboard pub/sub
type RedisClient struct {
	client *redis.Client
	config *Config
}

// NewRedisClient creates a new Redis client with the provided configuration
func NewRedisClient(cfg *Config) (*RedisClient, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Addr == "" {
		return nil, fmt.Errorf("%w: address is required", ErrInvalidConfig)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		MaxRetries:   cfg.MaxRetries,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnTimeout)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{client: client, config: cfg}, nil
}

func (r *RedisClient) key(k string) string {
	return r.config.KeyPrefix + k
}

// GetJSON reads a cached JSON value into out
func (r *RedisClient) GetJSON(ctx context.Context, key string, out interface{}) error {
	raw, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheNotFound
		}
		return fmt.Errorf("%w: %v", ErrCacheConnection, err)
	}
	return json.Unmarshal(raw, out)
}

// SetJSON caches a JSON-encoded value; ttl <= 0 uses the default TTL
func (r *RedisClient) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = r.config.DefaultTTL
	}
	return r.client.Set(ctx, r.key(key), raw, ttl).Err()
}

// InvalidatePattern deletes every key matching the prefixed pattern
func (r *RedisClient) InvalidatePattern(ctx context.Context, pattern string) error {
	iter := r.client.Scan(ctx, 0, r.key(pattern), 100).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// PublishDashboardEvent publishes an event on the dashboard channel
func (r *RedisClient) PublishDashboardEvent(ctx context.Context, event *events.DashboardEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal dashboard event: %w", err)
	}
	return r.client.Publish(ctx, DashboardEventChannel, payload).Err()
}

// SubscribeDashboardEvents subscribes to the dashboard event channel
func (r *RedisClient) SubscribeDashboardEvents(ctx context.Context) *redis.PubSub {
	return r.client.Subscribe(ctx, DashboardEventChannel)
}

// HealthCheck pings Redis
func (r *RedisClient) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// GetClient exposes the underlying client
func (r *RedisClient) GetClient() *redis.Client {
	return r.client
}

// Close closes the underlying connection
func (r *RedisClient) Close() error {
	return r.client.Close()
}
