// Package allocation implements the ticket-number allocation and bonus-box
// calculation for raffles. Both operations are pure given their inputs;
// persistence and per-raffle serialization are the caller's concern.
package allocation

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"
)

// ErrInsufficientSupply is returned when fewer unassigned ticket numbers
// remain than were requested. No partial allocation is ever returned.
var ErrInsufficientSupply = errors.New("not enough tickets available")

// Allocator selects unassigned ticket numbers uniformly at random.
// Safe for concurrent use.
type Allocator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewAllocator creates an Allocator seeded from the current time.
func NewAllocator() *Allocator {
	return &Allocator{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewAllocatorWithSeed creates an Allocator with a fixed seed, for tests.
func NewAllocatorWithSeed(seed int64) *Allocator {
	return &Allocator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Allocate picks quantity distinct numbers from 1..poolSize that do not
// appear in assigned, each size-quantity subset of the available numbers
// being equally likely. The result is sorted ascending. It returns
// ErrInsufficientSupply when fewer than quantity numbers are available.
func (a *Allocator) Allocate(poolSize int, assigned []int, quantity int) ([]int, error) {
	if poolSize < 1 {
		return nil, fmt.Errorf("pool size must be at least 1, got %d", poolSize)
	}
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1, got %d", quantity)
	}

	taken := make(map[int]bool, len(assigned))
	for _, n := range assigned {
		taken[n] = true
	}

	available := make([]int, 0, poolSize-len(taken))
	for n := 1; n <= poolSize; n++ {
		if !taken[n] {
			available = append(available, n)
		}
	}

	if len(available) < quantity {
		return nil, ErrInsufficientSupply
	}

	// Partial Fisher-Yates: after i swaps the first i elements are a
	// uniformly random i-subset of available.
	a.mu.Lock()
	for i := 0; i < quantity; i++ {
		j := i + a.rng.Intn(len(available)-i)
		available[i], available[j] = available[j], available[i]
	}
	a.mu.Unlock()

	tickets := make([]int, quantity)
	copy(tickets, available[:quantity])
	sort.Ints(tickets)
	return tickets, nil
}
