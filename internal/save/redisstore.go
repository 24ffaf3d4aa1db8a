package save

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps saves as JSON values under a key prefix, with a set
// indexing the known names. Useful when several server instances share one
// save library.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore { return &RedisStore{rdb: rdb} }

func (s *RedisStore) key(name string) string { return "hexfief:save:" + sanitizeName(name) }
func (s *RedisStore) indexKey() string       { return "hexfief:save:index" }

func (s *RedisStore) Save(ctx context.Context, name string, snap *Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, s.key(name), raw, 0).Err(); err != nil {
		return err
	}
	return s.rdb.SAdd(ctx, s.indexKey(), sanitizeName(name)).Err()
}

func (s *RedisStore) List(ctx context.Context) ([]Info, error) {
	names, err := s.rdb.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, err
	}
	out := []Info{}
	for _, name := range names {
		raw, err := s.rdb.Get(ctx, s.key(name)).Bytes()
		if err == redis.Nil {
			continue // index entry without a value; skip it
		}
		if err != nil {
			return nil, err
		}
		var snap Snapshot
		if err := json.Unmarshal(raw, &snap); err != nil {
			continue
		}
		out = append(out, Info{Name: name, RoomID: snap.RoomID, SavedAt: snap.SavedAt})
	}
	return out, nil
}

func (s *RedisStore) Load(ctx context.Context, name string) (*Snapshot, error) {
	raw, err := s.rdb.Get(ctx, s.key(name)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return Decode(raw)
}
