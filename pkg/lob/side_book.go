package lob

import (
	"fmt"
	"sort"
)

// sideBook is one side of the book: a dense, sorted slice of price
// levels. Bids are kept ascending and asks descending, so the best price
// for either side sits at the back where access and removal are O(1).
// The slice is preallocated to its ceiling and never reallocates, which
// keeps level references taken during a matching loop valid.
type sideBook struct {
	levels []PriceLevel
	side   Side
}

func newSideBook(side Side, maxLevels int) sideBook {
	return sideBook{
		levels: make([]PriceLevel, 0, maxLevels),
		side:   side,
	}
}

// find returns the insertion position for price under this side's sort
// order. The returned index may be len(levels) or hold a different price.
func (sb *sideBook) find(price uint32) int {
	if sb.side == Buy {
		// ascending
		return sort.Search(len(sb.levels), func(i int) bool {
			return sb.levels[i].Price >= price
		})
	}
	// descending
	return sort.Search(len(sb.levels), func(i int) bool {
		return sb.levels[i].Price <= price
	})
}

// findOrCreate returns the level at price, inserting an empty one at the
// sorted position if absent. Growing past the preallocated ceiling would
// reallocate the backing array and invalidate held level references, so
// it panics instead.
func (sb *sideBook) findOrCreate(price uint32) *PriceLevel {
	i := sb.find(price)
	if i < len(sb.levels) && sb.levels[i].Price == price {
		return &sb.levels[i]
	}
	if len(sb.levels) == cap(sb.levels) {
		panic(fmt.Sprintf("lob: %s side exceeds %d price levels", sb.side, cap(sb.levels)))
	}
	sb.levels = sb.levels[:len(sb.levels)+1]
	copy(sb.levels[i+1:], sb.levels[i:])
	sb.levels[i] = PriceLevel{Price: price}
	return &sb.levels[i]
}

// best returns the level at the back, nil when the side is empty.
func (sb *sideBook) best() *PriceLevel {
	if len(sb.levels) == 0 {
		return nil
	}
	return &sb.levels[len(sb.levels)-1]
}

// popBest drops the back level.
func (sb *sideBook) popBest() {
	sb.levels = sb.levels[:len(sb.levels)-1]
}

// erase removes the level at index i, shifting any better levels down.
func (sb *sideBook) erase(i int) {
	copy(sb.levels[i:], sb.levels[i+1:])
	sb.levels = sb.levels[:len(sb.levels)-1]
}

func (sb *sideBook) empty() bool { return len(sb.levels) == 0 }

func (sb *sideBook) len() int { return len(sb.levels) }
