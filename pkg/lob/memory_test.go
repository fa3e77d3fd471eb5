package lob

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The add/cancel/match paths must not touch the heap once the book is
// warmed up: orders come from the slab, levels from the preallocated
// side arrays, and the id index is pre-sized.

func TestAddCancelDoesNotAllocate(t *testing.T) {
	book := NewOrderBook(Config{Symbol: "ALLOC", Capacity: 1024}, func(Trade) {})

	// Warm the level storage and the id index.
	book.AddLimitOrder(Buy, 100, 10, 1, 1)
	book.CancelOrder(1)

	id := uint64(2)
	allocs := testing.AllocsPerRun(1000, func() {
		book.AddLimitOrder(Buy, 100, 10, id, 1)
		book.CancelOrder(id)
		id++
	})
	assert.Zero(t, allocs)
}

func TestMatchingDoesNotAllocate(t *testing.T) {
	book := NewOrderBook(Config{Symbol: "ALLOC", Capacity: 1024}, func(Trade) {})

	// Warm both sides.
	book.AddLimitOrder(Sell, 100, 10, 1, 1)
	book.AddLimitOrder(Buy, 100, 10, 2, 2)

	id := uint64(3)
	allocs := testing.AllocsPerRun(1000, func() {
		book.AddLimitOrder(Sell, 100, 10, id, 1)
		book.AddLimitOrder(Buy, 100, 10, id+1, 2)
		id += 2
	})
	assert.Zero(t, allocs)
}

func TestMultiLevelSweepDoesNotAllocate(t *testing.T) {
	book := NewOrderBook(Config{Symbol: "ALLOC", Capacity: 4096}, func(Trade) {})

	// Warm the ask ladder price range.
	for p := uint32(100); p < 110; p++ {
		book.AddLimitOrder(Sell, p, 5, uint64(p), 1)
	}
	book.AddLimitOrder(Buy, 110, 50, 200, 2) // clears the ladder

	id := uint64(300)
	allocs := testing.AllocsPerRun(500, func() {
		for p := uint32(100); p < 110; p++ {
			book.AddLimitOrder(Sell, p, 5, id, 1)
			id++
		}
		book.AddLimitOrder(Buy, 110, 50, id, 2)
		id++
	})
	assert.Zero(t, allocs)
}
