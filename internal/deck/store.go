package deck

import "context"

// Store persists the full deck state as one record.
//
// Load reports ok=false when nothing is stored. Implementations discard a
// record that fails to decode and report it as absent rather than as an error.
type Store interface {
	Save(ctx context.Context, s Snapshot) error
	Load(ctx context.Context) (s Snapshot, ok bool, err error)
}
