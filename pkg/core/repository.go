package core

import "context"

// Store defines the contract for loading and persisting one collection.
// The whole collection is read and written as a unit; there are no partial
// writes.
type Store interface {
	// Load reads every record in order.
	Load(ctx context.Context) ([]Record, error)

	// Save overwrites the stored collection with records.
	Save(ctx context.Context, records []Record) error
}

// Watchable defines stores that can report changes made by other processes.
type Watchable interface {
	// Watch emits an event whenever the backing file changes outside this store.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context) (<-chan Event, error)
}

type contextKey string

// ChangeReasonKey is the context key for passing a change reason (commit message) to Save.
const ChangeReasonKey contextKey = "change_reason"

// ChangeReason extracts the change reason from ctx, if any.
func ChangeReason(ctx context.Context) string {
	if v, ok := ctx.Value(ChangeReasonKey).(string); ok {
		return v
	}
	return ""
}
