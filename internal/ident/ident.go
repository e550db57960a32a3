// Package ident generates unique identifiers for nodes and components.
//
// IDs combine a coarse timestamp with random bits, so collisions are unlikely
// but not impossible. Callers pass a reservation set of every ID already in
// use; generation loops until it finds a miss and the caller adds the result
// to the set before generating the next ID in the same batch.
package ident

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Generator produces identifiers guaranteed absent from the reserved set.
type Generator interface {
	NextID(typeHint string, reserved map[string]struct{}) (string, error)
}

// maxAttempts bounds the collision retry loop. Exhaustion is a hard failure:
// it means the random source is broken, not that the graph is full.
const maxAttempts = 64

// TimeRandom is the production generator: base-36 coarse timestamp plus
// random bits drawn from a UUID. Stateless and safe for concurrent use.
type TimeRandom struct{}

// NextID returns a fresh identifier of the form "<hint>_<ts36>_<rand>".
func (TimeRandom) NextID(typeHint string, reserved map[string]struct{}) (string, error) {
	ts := strconv.FormatInt(time.Now().Unix(), 36)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		u := uuid.New()
		id := typeHint + "_" + ts + "_" + hex.EncodeToString(u[:4])
		if _, taken := reserved[id]; !taken {
			return id, nil
		}
	}
	return "", fmt.Errorf("ident: exhausted %d attempts generating %q identifier", maxAttempts, typeHint)
}

// Sequence returns deterministic identifiers for tests: "<prefix>-1",
// "<prefix>-2", ... skipping reserved values. Not safe for concurrent use.
type Sequence struct {
	prefix string
	next   int
}

// NewSequence creates a sequential test generator.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix, next: 1}
}

// NextID returns the next unreserved sequential identifier.
func (s *Sequence) NextID(typeHint string, reserved map[string]struct{}) (string, error) {
	for {
		id := fmt.Sprintf("%s-%d", s.prefix, s.next)
		s.next++
		if _, taken := reserved[id]; !taken {
			return id, nil
		}
	}
}
