package corpus

import (
	"context"
	"time"
)

// Repository loads and replaces the persisted corpus. Save snapshots the
// previous corpus under a name derived from snapshotAt before replacing it
// and returns the snapshot location, empty when there was nothing to keep.
type Repository interface {
	Load(ctx context.Context) (Corpus, error)
	Save(ctx context.Context, data Corpus, snapshotAt time.Time) (string, error)
}
