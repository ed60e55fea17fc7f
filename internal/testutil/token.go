package testutil

import "sync"

// FixedTokens returns predetermined session tokens for tests.
//
// This enables deterministic journal output and golden comparison:
// tests provide a known sequence and verify exact results.
//
// Thread-safety: safe for concurrent use via internal mutex.
type FixedTokens struct {
	mu     sync.Mutex
	tokens []string
	idx    int
}

// NewFixedTokens creates a generator that returns tokens in order.
//
// Generate panics once all tokens are consumed: exhausting the sequence
// means the test made more sessions than it declared, which should fail
// loudly.
func NewFixedTokens(tokens ...string) *FixedTokens {
	return &FixedTokens{tokens: tokens}
}

// Generate returns the next predetermined token.
func (f *FixedTokens) Generate() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.idx >= len(f.tokens) {
		panic("testutil: fixed tokens exhausted")
	}
	tok := f.tokens[f.idx]
	f.idx++
	return tok
}
