package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/student-records/internal/models"
	appErrors "github.com/noah-isme/student-records/pkg/errors"
)

// SessionStore persists sessions under a fixed key.
type SessionStore interface {
	Get(ctx context.Context, key string) (*models.Session, error)
	Set(ctx context.Context, key string, session models.Session, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// RedisSessionRepository keeps the operator session in Redis.
type RedisSessionRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisSessionRepository constructs a Redis-backed session repository.
func NewRedisSessionRepository(client *redis.Client, logger *zap.Logger) *RedisSessionRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisSessionRepository{client: client, logger: logger}
}

// Get loads the session stored under key. A missing entry yields ErrCacheMiss.
func (r *RedisSessionRepository) Get(ctx context.Context, key string) (*models.Session, error) {
	if r.client == nil {
		return nil, appErrors.ErrCacheMiss
	}

	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, appErrors.ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}

	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", key, err)
	}
	return &session, nil
}

// Set stores the session under key with the given TTL.
func (r *RedisSessionRepository) Set(ctx context.Context, key string, session models.Session, ttl time.Duration) error {
	if r.client == nil {
		return fmt.Errorf("redis client not configured")
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", key, err)
	}
	if err := r.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete removes the session stored under key.
func (r *RedisSessionRepository) Delete(ctx context.Context, key string) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying Redis connection if present.
func (r *RedisSessionRepository) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}

// FileSessionRepository keeps sessions in a single JSON file keyed by name.
type FileSessionRepository struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

type fileSessionEntry struct {
	Session   models.Session `json:"session"`
	ExpiresAt *time.Time     `json:"expires_at,omitempty"`
}

// NewFileSessionRepository constructs a file-backed session repository.
func NewFileSessionRepository(path string) *FileSessionRepository {
	return &FileSessionRepository{path: path, now: time.Now}
}

// Get loads the session stored under key. Missing or expired entries yield ErrCacheMiss.
func (r *FileSessionRepository) Get(_ context.Context, key string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.read()
	if err != nil {
		return nil, err
	}
	entry, ok := entries[key]
	if !ok {
		return nil, appErrors.ErrCacheMiss
	}
	if entry.ExpiresAt != nil && r.now().After(*entry.ExpiresAt) {
		delete(entries, key)
		if err := r.write(entries); err != nil {
			return nil, err
		}
		return nil, appErrors.ErrCacheMiss
	}
	session := entry.Session
	return &session, nil
}

// Set stores the session under key. A non-positive TTL never expires.
func (r *FileSessionRepository) Set(_ context.Context, key string, session models.Session, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.read()
	if err != nil {
		return err
	}
	entry := fileSessionEntry{Session: session}
	if ttl > 0 {
		expiresAt := r.now().Add(ttl)
		entry.ExpiresAt = &expiresAt
	}
	entries[key] = entry
	return r.write(entries)
}

// Delete removes the session stored under key.
func (r *FileSessionRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.read()
	if err != nil {
		return err
	}
	if _, ok := entries[key]; !ok {
		return nil
	}
	delete(entries, key)
	return r.write(entries)
}

func (r *FileSessionRepository) read() (map[string]fileSessionEntry, error) {
	entries := map[string]fileSessionEntry{}
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return entries, nil
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}
	if len(raw) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode session file: %w", err)
	}
	return entries, nil
}

func (r *FileSessionRepository) write(entries map[string]fileSessionEntry) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o700); err != nil {
		return fmt.Errorf("prepare session directory: %w", err)
	}
	payload, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}
