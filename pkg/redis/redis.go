package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"attendtrack/config"
)

// Nil is returned by lookups when the key does not exist (or expired).
const Nil = goredis.Nil

// Client wraps the Redis connection for the three non-durable concerns
// of this service: token blacklist, rate limiting, and live QR sessions.
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient opens a Redis connection and pings it.
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	logger.Info("redis connected", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── token blacklist ──

const blacklistPrefix = "token:blacklist:"

// BlacklistToken records a JWT ID as revoked until its natural expiry.
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired, nothing to revoke
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted reports whether a JWT ID has been revoked.
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── rate limiting ──

// CheckRateLimit counts a hit against key and reports whether the caller
// is still inside limit for the window.
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	n, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		c.rdb.Expire(ctx, key, window)
	}
	return n <= int64(limit), nil
}

// ── QR sessions ──

const qrSessionPrefix = "qr:session:"

// StoreQRSession records an issued QR session token against its course,
// expiring with the QR code itself. The attendance engine treats the
// request's expiresAt, checked against the server clock, as authoritative;
// this record exists for observability and token lookups.
func (c *Client) StoreQRSession(ctx context.Context, token, courseID string, ttl time.Duration) error {
	return c.rdb.Set(ctx, qrSessionPrefix+token, courseID, ttl).Err()
}

// GetQRSession returns the course id a live session token was issued for.
// Returns Nil when the token is unknown or expired.
func (c *Client) GetQRSession(ctx context.Context, token string) (string, error) {
	return c.rdb.Get(ctx, qrSessionPrefix+token).Result()
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}
