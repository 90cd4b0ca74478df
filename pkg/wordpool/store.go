package wordpool

import "context"

// Store persists and retrieves a Pool, abstracting over where it lives: a
// local JSON file, or an external key-value store such as RedisStore.
// lengths tells a store that must enumerate its own keyspace (Redis) which
// length buckets to look for; a file-backed store can ignore it, since the
// whole pool lives in one file.
type Store interface {
	Load(ctx context.Context, lengths []int) (*Pool, error)
	SaveAtomic(ctx context.Context, p *Pool) error
}

// FileStore is a Store backed by a local JSON file via the package-level
// Load/SaveAtomic functions.
type FileStore struct {
	Path string
}

func (s FileStore) Load(ctx context.Context, lengths []int) (*Pool, error) {
	return Load(s.Path)
}

func (s FileStore) SaveAtomic(ctx context.Context, p *Pool) error {
	return p.SaveAtomic(s.Path)
}

var (
	_ Store = FileStore{}
	_ Store = (*RedisStore)(nil)
)
