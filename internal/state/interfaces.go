package state

import "context"

// Fixed keys for the durable records. Values are JSON-encoded strings.
const (
	// KeyStageFourResult holds the stage 4 attempt record.
	KeyStageFourResult = "bitsclues_stage4_result"
	// KeySubmissions holds the append-only log of submitted attempts.
	KeySubmissions = "bitsclues_submissions"
	// KeyTeam holds the team name attached to submissions.
	KeyTeam = "bitsclues_team"
)

// Store is the durable key-value storage the experience persists into.
// It survives restarts but is never required for correctness of the
// in-memory session.
type Store interface {
	EnsureSchema(ctx context.Context) error
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// Logger is the subset of the telemetry logger the best-effort wrapper
// needs.
type Logger interface {
	Error(msg string, fields map[string]any)
}
