package lob

import "fmt"

// OrderBook is the matching engine for one symbol. It owns the two side
// books, the order pool, the id index and the admission sequence counter.
//
// All methods must be called from a single goroutine. Fills are delivered
// to the TradeHandler synchronously inside the matching loop.
type OrderBook struct {
	Symbol string

	bids sideBook
	asks sideBook

	pool    *OrderPool
	orders  map[uint64]*Order
	onTrade TradeHandler

	sequence uint64
}

// NewOrderBook creates a book sized by cfg. The pool, the id index and
// both side books are fully preallocated here; steady-state operation
// allocates nothing.
func NewOrderBook(cfg Config, onTrade TradeHandler) *OrderBook {
	if onTrade == nil {
		panic("lob: nil trade handler")
	}
	maxLevels := cfg.MaxPriceLevels
	if maxLevels == 0 {
		maxLevels = DefaultMaxPriceLevels
	}
	return &OrderBook{
		Symbol:  cfg.Symbol,
		bids:    newSideBook(Buy, maxLevels),
		asks:    newSideBook(Sell, maxLevels),
		pool:    NewOrderPool(cfg.Capacity),
		orders:  make(map[uint64]*Order, cfg.Capacity),
		onTrade: onTrade,
	}
}

// AddLimitOrder admits a limit order. If it crosses, it matches against
// the opposite side first; any residual quantity rests at its price
// level. orderID must be unique among currently live orders and quantity
// and price must be positive.
func (b *OrderBook) AddLimitOrder(side Side, price, quantity uint32, orderID, participantID uint64) {
	if quantity == 0 || price == 0 {
		panic(fmt.Sprintf("lob: order %d has zero price or quantity", orderID))
	}
	if _, dup := b.orders[orderID]; dup {
		panic(fmt.Sprintf("lob: order id %d already live", orderID))
	}

	o := b.pool.Allocate()
	o.ID = orderID
	o.ParticipantID = participantID
	o.Price = price
	o.Quantity = quantity
	o.Side = side
	o.Sequence = b.sequence
	b.sequence++

	if side == Buy {
		if best := b.asks.best(); best != nil && price >= best.Price {
			b.matchBuy(o)
		}
	} else {
		if best := b.bids.best(); best != nil && price <= best.Price {
			b.matchSell(o)
		}
	}

	if o.Quantity > 0 {
		if side == Buy {
			b.bids.findOrCreate(price).addToTail(o)
		} else {
			b.asks.findOrCreate(price).addToTail(o)
		}
		b.orders[orderID] = o
	} else {
		// Fully filled or voided by self-match prevention; never indexed.
		b.pool.Deallocate(o)
	}
}

// matchBuy sweeps the ask side while the incoming buy still crosses.
// Trades print at the resting level's price. On the first contact with a
// resting order from the incoming order's own participant, the incoming
// order is voided outright; fills already made stand.
func (b *OrderBook) matchBuy(incoming *Order) {
	for incoming.Quantity > 0 && !b.asks.empty() {
		pl := b.asks.best()
		if incoming.Price < pl.Price {
			break
		}

		resting := pl.front()

		if resting.ParticipantID == incoming.ParticipantID {
			incoming.Quantity = 0
			return
		}

		fillQty := incoming.Quantity
		if resting.Quantity < fillQty {
			fillQty = resting.Quantity
		}

		incoming.Quantity -= fillQty
		resting.Quantity -= fillQty
		pl.TotalQuantity -= fillQty

		b.onTrade(Trade{
			BuyOrderID:  incoming.ID,
			SellOrderID: resting.ID,
			Price:       pl.Price,
			Quantity:    fillQty,
		})

		if resting.Quantity == 0 {
			pl.remove(resting)
			delete(b.orders, resting.ID)
			b.pool.Deallocate(resting)
		}

		if pl.head == nil {
			b.asks.popBest()
		}
	}
}

// matchSell mirrors matchBuy against the bid side.
func (b *OrderBook) matchSell(incoming *Order) {
	for incoming.Quantity > 0 && !b.bids.empty() {
		pl := b.bids.best()
		if incoming.Price > pl.Price {
			break
		}

		resting := pl.front()

		if resting.ParticipantID == incoming.ParticipantID {
			incoming.Quantity = 0
			return
		}

		fillQty := incoming.Quantity
		if resting.Quantity < fillQty {
			fillQty = resting.Quantity
		}

		incoming.Quantity -= fillQty
		resting.Quantity -= fillQty
		pl.TotalQuantity -= fillQty

		b.onTrade(Trade{
			BuyOrderID:  resting.ID,
			SellOrderID: incoming.ID,
			Price:       pl.Price,
			Quantity:    fillQty,
		})

		if resting.Quantity == 0 {
			pl.remove(resting)
			delete(b.orders, resting.ID)
			b.pool.Deallocate(resting)
		}

		if pl.head == nil {
			b.bids.popBest()
		}
	}
}

// CancelOrder removes a resting order. Unknown or already-cancelled ids
// are a silent no-op.
func (b *OrderBook) CancelOrder(orderID uint64) {
	o, ok := b.orders[orderID]
	if !ok {
		return
	}

	side := &b.bids
	if o.Side == Sell {
		side = &b.asks
	}

	i := side.find(o.Price)
	if i >= side.len() || side.levels[i].Price != o.Price {
		panic(fmt.Sprintf("lob: order %d indexed but its price level is missing", orderID))
	}
	pl := &side.levels[i]

	pl.remove(o)
	if pl.Empty() {
		side.erase(i)
	}

	delete(b.orders, orderID)
	b.pool.Deallocate(o)
}

// BestBid returns the highest resting bid level, nil when the bid side is
// empty. The reference is valid only until the next mutating call.
func (b *OrderBook) BestBid() *PriceLevel { return b.bids.best() }

// BestAsk returns the lowest resting ask level, nil when the ask side is
// empty. The reference is valid only until the next mutating call.
func (b *OrderBook) BestAsk() *PriceLevel { return b.asks.best() }

// Len returns the number of currently resting orders.
func (b *OrderBook) Len() int { return len(b.orders) }

// Levels returns the number of populated price levels per side.
func (b *OrderBook) Levels() (bids, asks int) {
	return b.bids.len(), b.asks.len()
}

// Sequence returns the admission counter: the number of orders accepted
// so far. The matching loop never reads it; FIFO within a level comes
// from insertion order.
func (b *OrderBook) Sequence() uint64 { return b.sequence }

// Pool exposes the order pool for capacity accounting.
func (b *OrderBook) Pool() *OrderPool { return b.pool }
