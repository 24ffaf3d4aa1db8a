package save

import "context"

// Store is the durable side of the persistence gateway. Implementations are
// not called concurrently for the same room; the hub serializes save and
// load behind its dispatch loop.
type Store interface {
	Save(ctx context.Context, name string, snap *Snapshot) error
	List(ctx context.Context) ([]Info, error)
	Load(ctx context.Context, name string) (*Snapshot, error)
}
