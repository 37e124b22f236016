package egraph

import "github.com/google/uuid"

// GraphIDGenerator produces identity tokens for graphs. The token appears
// in every log line the graph emits, correlating interleaved output when
// several graphs share a process.
//
// Implemented by UUIDv7Generator (production) and the fixed generator in
// internal/testutil (deterministic tests and golden snapshots).
type GraphIDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 graph tokens.
//
// UUIDv7 embeds a timestamp in the most significant bits, making tokens
// sortable by creation time, which is helpful when correlating logs from
// many short-lived graphs.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
