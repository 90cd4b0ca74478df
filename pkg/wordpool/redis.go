package wordpool

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists the pool in an external key-value store, one Redis
// set per word length, instead of a single JSON file. The Redis server is
// the external collaborator; this adapter only shapes reads and writes to
// and from a *Pool.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore wraps an existing Redis client. prefix namespaces the
// length-keyed sets, e.g. "crossgen:pool:".
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "crossgen:pool:"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(length int) string {
	return fmt.Sprintf("%s%d", s.prefix, length)
}

// Load reads the length buckets named in lengths into a fresh Pool. A
// bucket whose read fails is skipped, the way a missing file yields an
// empty pool.
func (s *RedisStore) Load(ctx context.Context, lengths []int) (*Pool, error) {
	pool := New()
	for _, length := range lengths {
		words, err := s.client.SMembers(ctx, s.key(length)).Result()
		if err != nil {
			continue
		}
		pool.AddWords(words)
	}
	return pool, nil
}

// SaveAtomic writes every bucket of the pool to its own Redis set inside a
// single pipeline, which Redis executes atomically relative to other
// clients.
func (s *RedisStore) SaveAtomic(ctx context.Context, p *Pool) error {
	pipe := s.client.TxPipeline()
	for length, bucket := range p.Words {
		if len(bucket) == 0 {
			continue
		}
		members := make([]interface{}, 0, len(bucket))
		for w := range bucket {
			members = append(members, w)
		}
		pipe.Del(ctx, s.key(length))
		pipe.SAdd(ctx, s.key(length), members...)
	}
	_, err := pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("wordpool: redis save: %w", err)
	}
	return nil
}

// AddWords merges words into the store's length bucket for word length.
func (s *RedisStore) AddWords(ctx context.Context, words []string) error {
	tmp := New()
	added := tmp.AddWords(words)
	for length := range added {
		members := make([]interface{}, 0, len(tmp.Words[length]))
		for w := range tmp.Words[length] {
			members = append(members, w)
		}
		if err := s.client.SAdd(ctx, s.key(length), members...).Err(); err != nil {
			return fmt.Errorf("wordpool: redis add words: %w", err)
		}
	}
	return nil
}
