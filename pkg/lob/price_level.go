package lob

// PriceLevel is a FIFO bucket of orders sharing one price. Orders are
// chained through their own prev/next fields, so linking and unlinking
// never allocates.
type PriceLevel struct {
	Price         uint32
	TotalQuantity uint32

	head *Order
	tail *Order
}

// addToTail appends o, preserving time priority.
func (pl *PriceLevel) addToTail(o *Order) {
	o.next = nil
	o.prev = pl.tail

	if pl.head == nil {
		pl.head = o
		pl.tail = o
	} else {
		pl.tail.next = o
		pl.tail = o
	}

	pl.TotalQuantity += o.Quantity
}

// remove splices o out of the list and subtracts its remaining quantity
// from the level total. o must be a member of this level. The matching
// loop decrements the level total alongside the order's quantity as it
// fills, so by the time it removes a fully filled order the subtraction
// here is a no-op.
func (pl *PriceLevel) remove(o *Order) {
	if o.prev != nil {
		o.prev.next = o.next
	} else {
		pl.head = o.next
	}

	if o.next != nil {
		o.next.prev = o.prev
	} else {
		pl.tail = o.prev
	}

	pl.TotalQuantity -= o.Quantity

	o.next = nil
	o.prev = nil
}

// front returns the oldest order at this level. Caller guarantees the
// level is non-empty.
func (pl *PriceLevel) front() *Order { return pl.head }

// Empty reports whether the level holds no orders.
func (pl *PriceLevel) Empty() bool { return pl.head == nil }

// Orders returns the number of orders at this level. O(n); intended for
// snapshots and tests, not the matching path.
func (pl *PriceLevel) Orders() int {
	n := 0
	for o := pl.head; o != nil; o = o.next {
		n++
	}
	return n
}
