package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/eventhub/eventhub/infrastructure/service/logger"
)

// RateLimitService mendefinisikan interface untuk rate limiting
type RateLimitService interface {
	// Allow counts one hit against key and reports whether it is within limit
	// for the current window, plus how long until the window resets.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error)
	Close() error
}

// rateLimitService implementasi RateLimitService dengan Redis (fixed window)
type rateLimitService struct {
	redisClient *redis.Client
	logger      logger.Logger
	prefix      string
}

// RateLimitConfig configuration untuk rate limiting
type RateLimitConfig struct {
	Enabled  bool
	RedisURL string
	Prefix   string
}

// NewRateLimitService membuat instance baru dari RateLimitService
func NewRateLimitService(config RateLimitConfig, log logger.Logger) (RateLimitService, error) {
	ctx := context.Background()
	if !config.Enabled {
		log.Info(ctx, "Rate limiting disabled", nil)
		return NewNoopRateLimitService(), nil
	}

	opt, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	redisClient := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	prefix := config.Prefix
	if prefix == "" {
		prefix = "ratelimit"
	}

	log.Info(ctx, "Rate limiting service initialized", map[string]interface{}{
		"redis_addr": opt.Addr,
	})

	return NewRedisRateLimitService(redisClient, prefix, log), nil
}

// NewRedisRateLimitService wraps an existing client.
func NewRedisRateLimitService(client *redis.Client, prefix string, log logger.Logger) RateLimitService {
	return &rateLimitService{
		redisClient: client,
		logger:      log,
		prefix:      prefix,
	}
}

// Allow increments the window counter and starts the window on first hit
func (s *rateLimitService) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error) {
	fullKey := fmt.Sprintf("%s:%s", s.prefix, key)

	pipeline := s.redisClient.TxPipeline()
	incrCmd := pipeline.Incr(ctx, fullKey)
	ttlCmd := pipeline.PTTL(ctx, fullKey)

	if _, err := pipeline.Exec(ctx); err != nil {
		s.logger.Error(ctx, "Failed to increment rate limit counter", err, map[string]interface{}{"key": fullKey})
		return true, 0, fmt.Errorf("failed to increment rate limit: %w", err)
	}

	// A fresh counter has no expiry yet.
	ttl := ttlCmd.Val()
	if ttl < 0 {
		if err := s.redisClient.PExpire(ctx, fullKey, window).Err(); err != nil {
			return true, 0, fmt.Errorf("failed to set rate limit window: %w", err)
		}
		ttl = window
	}

	count := incrCmd.Val()
	allowed := count <= int64(limit)

	s.logger.Debug(ctx, "Rate limit check", map[string]interface{}{
		"key":     fullKey,
		"current": count,
		"limit":   limit,
		"allowed": allowed,
	})

	return allowed, ttl, nil
}

func (s *rateLimitService) Close() error {
	return s.redisClient.Close()
}

// noopRateLimitService allows everything
type noopRateLimitService struct{}

func NewNoopRateLimitService() RateLimitService {
	return &noopRateLimitService{}
}

func (n *noopRateLimitService) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error) {
	return true, 0, nil
}

func (n *noopRateLimitService) Close() error {
	return nil
}
