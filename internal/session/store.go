package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store persists the terminal session across process restarts: one
// serialized session, overwritten on login, removed on logout, read once
// at startup. Load returns (nil, nil) when nothing is persisted and an
// error when the persisted payload cannot be decoded; Service.Init maps
// that error to "no session".
type Store interface {
	Load(ctx context.Context) (*Session, error)
	Save(ctx context.Context, s Session) error
	Clear(ctx context.Context) error
}

// FileStore keeps the session in a single JSON file, the usual choice
// for a till PC.
type FileStore struct {
	Path string
}

// NewFileStore returns a FileStore writing to path.
func NewFileStore(path string) *FileStore {
	if path == "" {
		panic("session: empty path passed to NewFileStore")
	}
	return &FileStore{Path: path}
}

func (f *FileStore) Load(ctx context.Context) (*Session, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session file: %w", err)
	}
	return &s, nil
}

func (f *FileStore) Save(ctx context.Context, s Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if dir := filepath.Dir(f.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
	}
	// 0600: the file holds the operator's identity
	if err := os.WriteFile(f.Path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

func (f *FileStore) Clear(ctx context.Context) error {
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// RedisStore keeps the session under a single Redis key, for kiosk
// deployments where terminals are stateless and Redis is already present
// for caching. A TTL of zero keeps the session until logout.
type RedisStore struct {
	Client *redis.Client
	Key    string
	TTL    time.Duration
}

// NewRedisStore returns a RedisStore for the given key.
func NewRedisStore(client *redis.Client, key string, ttl time.Duration) *RedisStore {
	if client == nil {
		panic("session: nil redis client passed to NewRedisStore")
	}
	if key == "" {
		panic("session: empty key passed to NewRedisStore")
	}
	return &RedisStore{Client: client, Key: key, TTL: ttl}
}

func (r *RedisStore) Load(ctx context.Context) (*Session, error) {
	data, err := r.Client.Get(ctx, r.Key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session key: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session key: %w", err)
	}
	return &s, nil
}

func (r *RedisStore) Save(ctx context.Context, s Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.Client.Set(ctx, r.Key, data, r.TTL).Err(); err != nil {
		return fmt.Errorf("write session key: %w", err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	if err := r.Client.Del(ctx, r.Key).Err(); err != nil {
		return fmt.Errorf("remove session key: %w", err)
	}
	return nil
}
