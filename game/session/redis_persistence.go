package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/wricardo/hexoban/game/service"
)

// DefaultRedisPrefix namespaces session keys.
const DefaultRedisPrefix = "hexoban:session:"

const redisTimeout = 3 * time.Second

// RedisPersistence stores sessions as JSON strings under <prefix><id>.
// A zero ttl keeps keys forever.
type RedisPersistence struct {
	client  *redis.Client
	prefix  string
	ttl     time.Duration
	puzzles service.PuzzleManager
}

// NewRedisPersistence wraps an existing client
func NewRedisPersistence(client *redis.Client, prefix string, ttl time.Duration, puzzles service.PuzzleManager) *RedisPersistence {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisPersistence{
		client:  client,
		prefix:  prefix,
		ttl:     ttl,
		puzzles: puzzles,
	}
}

// Ping checks the connection.
func (rp *RedisPersistence) Ping(ctx context.Context) error {
	return rp.client.Ping(ctx).Err()
}

func (rp *RedisPersistence) key(id string) string {
	return rp.prefix + strings.ToLower(id)
}

// Save persists a session
func (rp *RedisPersistence) Save(session *service.Session) error {
	jsonData, err := encodeSession(session)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	if err := rp.client.Set(ctx, rp.key(session.ID), jsonData, rp.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session %s: %w", session.ID, err)
	}
	return nil
}

// Load retrieves a session by ID
func (rp *RedisPersistence) Load(id string) (*service.Session, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	jsonData, err := rp.client.Get(ctx, rp.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to read session %s: %w", id, err)
	}
	return decodeSession(jsonData, rp.puzzles)
}

// Delete removes a session key
func (rp *RedisPersistence) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	n, err := rp.client.Del(ctx, rp.key(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// ListAll returns all persisted session IDs
func (rp *RedisPersistence) ListAll() ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	var ids []string
	iter := rp.client.Scan(ctx, 0, rp.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), rp.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan sessions: %w", err)
	}
	return ids, nil
}

// Exists checks if a session key exists
func (rp *RedisPersistence) Exists(id string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	n, err := rp.client.Exists(ctx, rp.key(id)).Result()
	return err == nil && n > 0
}
