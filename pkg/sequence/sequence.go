package sequence

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Generator produces document numbers for invoices, credit notes and exchanges.
// It is passed explicitly to the services that need it so that numbering is
// never driven by package-level mutable state.
type Generator interface {
	Next() string
}

// RandomGenerator derives document numbers from random UUIDs.
type RandomGenerator struct {
	Prefix string
}

// NewRandomGenerator creates a generator producing numbers like "INV-a1b2c3d4"
func NewRandomGenerator(prefix string) *RandomGenerator {
	return &RandomGenerator{Prefix: prefix}
}

func (g *RandomGenerator) Next() string {
	return fmt.Sprintf("%s-%s", g.Prefix, uuid.New().String()[:8])
}

// CounterGenerator produces monotonically increasing document numbers.
// Useful in tests where deterministic numbering is needed.
type CounterGenerator struct {
	Prefix string

	mu   sync.Mutex
	next uint64
}

// NewCounterGenerator creates a counter-backed generator starting at 1
func NewCounterGenerator(prefix string) *CounterGenerator {
	return &CounterGenerator{Prefix: prefix}
}

func (g *CounterGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("%s-%06d", g.Prefix, g.next)
}
