package lob

import (
	"time"

	"github.com/shopspring/decimal"
)

// LevelView is one price level as seen by snapshot consumers.
type LevelView struct {
	Price    uint32 `json:"price"`
	Quantity uint32 `json:"quantity"`
	Orders   int    `json:"orders"`
}

// OrderSnapshot summarizes the book for API consumers and tooling. Prices
// are reported in display units: tick price times the tick size.
type OrderSnapshot struct {
	Symbol    string          `json:"symbol"`
	BidLevels int             `json:"bid_levels"`
	AskLevels int             `json:"ask_levels"`
	BidVolume uint64          `json:"bid_volume"`
	AskVolume uint64          `json:"ask_volume"`
	BestBid   decimal.Decimal `json:"best_bid,omitempty"`
	BestAsk   decimal.Decimal `json:"best_ask,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// Snapshot builds a best-of-book summary. tick converts integer tick
// prices to display units; pass decimal.New(1, 0) for raw ticks. Unlike
// the hot-path operations, Snapshot allocates.
func (b *OrderBook) Snapshot(tick decimal.Decimal) OrderSnapshot {
	snap := OrderSnapshot{
		Symbol:    b.Symbol,
		BidLevels: b.bids.len(),
		AskLevels: b.asks.len(),
		Timestamp: time.Now().UnixNano(),
	}

	for i := range b.bids.levels {
		snap.BidVolume += uint64(b.bids.levels[i].TotalQuantity)
	}
	for i := range b.asks.levels {
		snap.AskVolume += uint64(b.asks.levels[i].TotalQuantity)
	}

	if best := b.bids.best(); best != nil {
		snap.BestBid = decimal.New(int64(best.Price), 0).Mul(tick)
	}
	if best := b.asks.best(); best != nil {
		snap.BestAsk = decimal.New(int64(best.Price), 0).Mul(tick)
	}

	return snap
}

// Depth returns up to n levels per side, best first.
func (b *OrderBook) Depth(n int) (bids, asks []LevelView) {
	bids = depthOf(&b.bids, n)
	asks = depthOf(&b.asks, n)
	return bids, asks
}

func depthOf(sb *sideBook, n int) []LevelView {
	if n > sb.len() {
		n = sb.len()
	}
	out := make([]LevelView, 0, n)
	for i := sb.len() - 1; i >= 0 && len(out) < n; i-- {
		pl := &sb.levels[i]
		out = append(out, LevelView{
			Price:    pl.Price,
			Quantity: pl.TotalQuantity,
			Orders:   pl.Orders(),
		})
	}
	return out
}
