package state

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "progress.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	if err := s.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return s
}

func TestSetGetRemoveRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, KeyStageFourResult); err != nil || ok {
		t.Fatalf("fresh store should miss: ok=%v err=%v", ok, err)
	}

	payload, _ := json.Marshal(map[string]any{"score": 2, "total": 3})
	if err := s.Set(ctx, KeyStageFourResult, string(payload)); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, ok, err := s.Get(ctx, KeyStageFourResult)
	if err != nil || !ok {
		t.Fatalf("get after set: ok=%v err=%v", ok, err)
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(value), &decoded); err != nil {
		t.Fatalf("stored value is not JSON: %v", err)
	}
	if decoded["total"].(float64) != 3 {
		t.Fatalf("value corrupted: %q", value)
	}

	if err := s.Set(ctx, KeyStageFourResult, `{"score":3}`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	value, _, _ = s.Get(ctx, KeyStageFourResult)
	if value != `{"score":3}` {
		t.Fatalf("overwrite not applied: %q", value)
	}

	if err := s.Remove(ctx, KeyStageFourResult); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := s.Get(ctx, KeyStageFourResult); ok {
		t.Fatal("key should be gone after remove")
	}
	// Removing an absent key is not an error.
	if err := s.Remove(ctx, KeyTeam); err != nil {
		t.Fatalf("remove absent key: %v", err)
	}
}

type failingStore struct{ err error }

func (f failingStore) EnsureSchema(context.Context) error { return f.err }
func (f failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, f.err
}
func (f failingStore) Set(context.Context, string, string) error { return f.err }
func (f failingStore) Remove(context.Context, string) error      { return f.err }
func (f failingStore) Close() error                              { return nil }

type recordingLogger struct{ errors int }

func (l *recordingLogger) Error(string, map[string]any) { l.errors++ }

func TestBestEffortSwallowsFailures(t *testing.T) {
	logger := &recordingLogger{}
	b := NewBestEffort(failingStore{err: errors.New("disk gone")}, logger)
	ctx := context.Background()

	if _, ok := b.Get(ctx, KeyStageFourResult); ok {
		t.Fatal("failed read should report no saved state")
	}
	if b.Set(ctx, KeyStageFourResult, "{}") {
		t.Fatal("failed write should report not stuck")
	}
	if b.Remove(ctx, KeyStageFourResult) {
		t.Fatal("failed remove should report not stuck")
	}
	if logger.errors != 3 {
		t.Fatalf("expected 3 logged failures, got %d", logger.errors)
	}
}

func TestBestEffortPassesThrough(t *testing.T) {
	logger := &recordingLogger{}
	b := NewBestEffort(newTestStore(t), logger)
	ctx := context.Background()

	if !b.Set(ctx, KeyTeam, `"blue"`) {
		t.Fatal("set should stick")
	}
	value, ok := b.Get(ctx, KeyTeam)
	if !ok || value != `"blue"` {
		t.Fatalf("get: ok=%v value=%q", ok, value)
	}
	if !b.Remove(ctx, KeyTeam) {
		t.Fatal("remove should stick")
	}
	if logger.errors != 0 {
		t.Fatalf("no failures expected, got %d", logger.errors)
	}
}
