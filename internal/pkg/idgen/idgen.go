// Package idgen provides ID generation for battle sessions and shields.
package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator generates unique identifiers.
type Generator interface {
	Generate() string
}

// UUIDGenerator generates UUID-based IDs with an optional prefix.
type UUIDGenerator struct {
	prefix string
}

// NewUUID creates a UUID generator. An empty prefix yields bare UUIDs.
func NewUUID(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

// Generate returns a new UUID-based ID.
func (g *UUIDGenerator) Generate() string {
	id := uuid.New().String()
	if g.prefix != "" {
		return fmt.Sprintf("%s_%s", g.prefix, id)
	}
	return id
}

// SequentialGenerator generates deterministic IDs for tests.
type SequentialGenerator struct {
	prefix  string
	counter uint64
}

// NewSequential creates a sequential generator with the given prefix.
func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate returns the next sequential ID.
func (g *SequentialGenerator) Generate() string {
	n := atomic.AddUint64(&g.counter, 1)
	if g.prefix != "" {
		return fmt.Sprintf("%s_%d", g.prefix, n)
	}
	return fmt.Sprintf("%d", n)
}
