package lob

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderPoolBasics(t *testing.T) {
	t.Run("InitialState", func(t *testing.T) {
		p := NewOrderPool(8)
		assert.Equal(t, 8, p.Capacity())
		assert.Equal(t, 8, p.FreeCount())
	})

	t.Run("AllocateReturnsCleanOrder", func(t *testing.T) {
		p := NewOrderPool(4)
		o := p.Allocate()
		require.NotNil(t, o)
		assert.Nil(t, o.next)
		assert.Nil(t, o.prev)
		assert.Equal(t, 3, p.FreeCount())
	})

	t.Run("AllocateAllSlots", func(t *testing.T) {
		p := NewOrderPool(4)
		seen := make(map[*Order]bool)
		for i := 0; i < 4; i++ {
			o := p.Allocate()
			assert.False(t, seen[o], "slot handed out twice")
			seen[o] = true
		}
		assert.Equal(t, 0, p.FreeCount())
	})

	t.Run("DeallocateRestoresFreeCount", func(t *testing.T) {
		p := NewOrderPool(4)
		o := p.Allocate()
		p.Deallocate(o)
		assert.Equal(t, 4, p.FreeCount())
	})
}

func TestOrderPoolLIFOReuse(t *testing.T) {
	p := NewOrderPool(4)

	a := p.Allocate()
	b := p.Allocate()

	p.Deallocate(a)
	p.Deallocate(b)

	// Most recently freed slot comes back first.
	assert.Same(t, b, p.Allocate())
	assert.Same(t, a, p.Allocate())
}

func TestOrderPoolAccounting(t *testing.T) {
	p := NewOrderPool(16)

	var live []*Order
	for i := 0; i < 16; i++ {
		live = append(live, p.Allocate())
		assert.Equal(t, 16, p.FreeCount()+len(live))
	}
	for _, o := range live {
		p.Deallocate(o)
	}
	assert.Equal(t, 16, p.FreeCount())
}

func TestOrderPoolPanics(t *testing.T) {
	t.Run("Exhaustion", func(t *testing.T) {
		p := NewOrderPool(2)
		p.Allocate()
		p.Allocate()
		assert.Panics(t, func() { p.Allocate() })
	})

	t.Run("DeallocateNil", func(t *testing.T) {
		p := NewOrderPool(2)
		assert.Panics(t, func() { p.Deallocate(nil) })
	})

	t.Run("DoubleFree", func(t *testing.T) {
		p := NewOrderPool(2)
		o := p.Allocate()
		p.Deallocate(o)
		assert.Panics(t, func() { p.Deallocate(o) })
	})

	t.Run("ForeignOrder", func(t *testing.T) {
		p := NewOrderPool(2)
		assert.Panics(t, func() { p.Deallocate(&Order{slot: 0}) })
	})

	t.Run("ZeroCapacity", func(t *testing.T) {
		assert.Panics(t, func() { NewOrderPool(0) })
	})
}
