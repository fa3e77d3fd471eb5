package lob

import "fmt"

// OrderPool is a fixed-capacity slab of Order slots with a singly linked
// free list threaded through Order.next. Allocation and deallocation are
// O(1) and touch no heap memory after construction. Reuse is LIFO so the
// most recently freed slot is the next one handed out, keeping the
// working set warm.
type OrderPool struct {
	slab      []Order
	freeList  *Order
	freeCount int
	allocated []bool // per-slot, guards against double free
}

// NewOrderPool preallocates capacity order slots.
func NewOrderPool(capacity int) *OrderPool {
	if capacity <= 0 {
		panic(fmt.Sprintf("lob: order pool capacity must be positive, got %d", capacity))
	}
	p := &OrderPool{
		slab:      make([]Order, capacity),
		freeCount: capacity,
		allocated: make([]bool, capacity),
	}
	for i := range p.slab {
		o := &p.slab[i]
		o.slot = int32(i)
		o.next = p.freeList
		p.freeList = o
	}
	return p
}

// Allocate unlinks the free-list head and returns it with cleared links.
// Exhaustion is a programmer error: the caller sized the pool below its
// peak live order count.
func (p *OrderPool) Allocate() *Order {
	if p.freeList == nil {
		panic("lob: order pool exhausted")
	}
	o := p.freeList
	p.freeList = o.next
	p.freeCount--

	o.next = nil
	o.prev = nil
	p.allocated[o.slot] = true
	return o
}

// Deallocate pushes the slot back onto the free list. Panics on nil and
// on a slot that is not currently allocated.
func (p *OrderPool) Deallocate(o *Order) {
	if o == nil {
		panic("lob: deallocate of nil order")
	}
	if int(o.slot) >= len(p.slab) || &p.slab[o.slot] != o {
		panic("lob: deallocate of order not owned by this pool")
	}
	if !p.allocated[o.slot] {
		panic(fmt.Sprintf("lob: double free of order slot %d", o.slot))
	}
	p.allocated[o.slot] = false

	o.next = p.freeList
	p.freeList = o
	p.freeCount++
}

// Capacity returns the total number of slots.
func (p *OrderPool) Capacity() int { return len(p.slab) }

// FreeCount returns the number of slots currently free.
func (p *OrderPool) FreeCount() int { return p.freeCount }
