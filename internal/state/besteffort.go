package state

import "context"

// BestEffort funnels every storage access through one failure policy:
// errors are logged and swallowed, reads fail soft to "no saved state",
// writes fail soft to "save skipped". Persistence never blocks the
// session.
type BestEffort struct {
	store  Store
	logger Logger
}

func NewBestEffort(store Store, logger Logger) *BestEffort {
	return &BestEffort{store: store, logger: logger}
}

// Get returns the stored value, or ok=false when the key is absent or
// the read failed.
func (b *BestEffort) Get(ctx context.Context, key string) (string, bool) {
	value, ok, err := b.store.Get(ctx, key)
	if err != nil {
		b.logger.Error("storage.get_failed", map[string]any{"key": key, "error": err.Error()})
		return "", false
	}
	return value, ok
}

// Set stores the value, reporting whether it stuck.
func (b *BestEffort) Set(ctx context.Context, key, value string) bool {
	if err := b.store.Set(ctx, key, value); err != nil {
		b.logger.Error("storage.set_failed", map[string]any{"key": key, "error": err.Error()})
		return false
	}
	return true
}

// Remove deletes the key, reporting whether the delete stuck.
func (b *BestEffort) Remove(ctx context.Context, key string) bool {
	if err := b.store.Remove(ctx, key); err != nil {
		b.logger.Error("storage.remove_failed", map[string]any{"key": key, "error": err.Error()})
		return false
	}
	return true
}
