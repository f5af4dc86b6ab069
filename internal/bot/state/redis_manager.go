package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	stateTTL       = 24 * time.Hour
	commandTimeout = 3 * time.Second
)

// RedisManager manages user states using Redis so they survive restarts
type RedisManager struct {
	client *redis.Client
	log    *slog.Logger
}

// NewRedisManager connects to addr and checks the connection
func NewRedisManager(addr string, log *slog.Logger) (*RedisManager, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		ReadTimeout:  commandTimeout,
		WriteTimeout: commandTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisManagerWithClient(client, log), nil
}

// NewRedisManagerWithClient wraps an existing client
func NewRedisManagerWithClient(client *redis.Client, log *slog.Logger) *RedisManager {
	if log == nil {
		log = slog.Default()
	}
	return &RedisManager{client: client, log: log}
}

func stateKey(userID int64) string {
	return fmt.Sprintf("user:%d:state", userID)
}

func tempKey(userID int64) string {
	return fmt.Sprintf("user:%d:temp", userID)
}

func (m *RedisManager) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), commandTimeout)
}

// SetUserState sets the state for a user with TTL
func (m *RedisManager) SetUserState(userID int64, state string) {
	ctx, cancel := m.ctx()
	defer cancel()
	if err := m.client.Set(ctx, stateKey(userID), state, stateTTL).Err(); err != nil {
		m.log.Warn("Failed to store chat state", "telegram_id", userID, "error", err)
	}
}

// GetUserState gets the state for a user, None when unknown or unreachable
func (m *RedisManager) GetUserState(userID int64) string {
	ctx, cancel := m.ctx()
	defer cancel()
	val, err := m.client.Get(ctx, stateKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return None
	}
	if err != nil {
		m.log.Warn("Failed to read chat state", "telegram_id", userID, "error", err)
		return None
	}
	return val
}

// ClearUserState clears the state for a user
func (m *RedisManager) ClearUserState(userID int64) {
	ctx, cancel := m.ctx()
	defer cancel()
	m.client.Del(ctx, stateKey(userID))
}

// SetTempData stores one field of the chat's temp hash. Values are JSON
// encoded, so numbers read back as float64.
func (m *RedisManager) SetTempData(userID int64, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		m.log.Warn("Failed to encode chat data", "telegram_id", userID, "key", key, "error", err)
		return
	}

	ctx, cancel := m.ctx()
	defer cancel()
	_, err = m.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, tempKey(userID), key, data)
		pipe.Expire(ctx, tempKey(userID), stateTTL)
		return nil
	})
	if err != nil {
		m.log.Warn("Failed to store chat data", "telegram_id", userID, "key", key, "error", err)
	}
}

// GetTempData reads one field of the chat's temp hash
func (m *RedisManager) GetTempData(userID int64, key string) (interface{}, bool) {
	ctx, cancel := m.ctx()
	defer cancel()

	raw, err := m.client.HGet(ctx, tempKey(userID), key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			m.log.Warn("Failed to read chat data", "telegram_id", userID, "key", key, "error", err)
		}
		return nil, false
	}

	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, false
	}
	return value, true
}

// ClearTempData clears all temporary data for a user
func (m *RedisManager) ClearTempData(userID int64) {
	ctx, cancel := m.ctx()
	defer cancel()
	m.client.Del(ctx, tempKey(userID))
}

// Close closes the Redis connection
func (m *RedisManager) Close() error {
	return m.client.Close()
}
