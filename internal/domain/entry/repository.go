package entry

import "context"

// Repository persists entries. Get of an unknown key returns an empty
// Entry and no error. Put creates the owner's partition on first write.
type Repository interface {
	Get(ctx context.Context, owner, dateKey string) (Entry, error)
	Put(ctx context.Context, owner, dateKey, content string) (Entry, error)
	List(ctx context.Context, owner string) ([]string, error)
}
