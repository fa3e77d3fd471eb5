package main

import (
	"fmt"
	"os"
	"time"

	"github.com/luxfi/log"
	"github.com/shopspring/decimal"

	"github.com/quynhanhha/order-matching-engine/pkg/lob"
	"github.com/quynhanhha/order-matching-engine/pkg/metrics"
)

func main() {
	logger := log.Root().New("module", "demo")

	m, err := metrics.New("lob_demo")
	if err != nil {
		logger.Error("metrics init failed", "error", err)
		os.Exit(1)
	}

	fmt.Println("================================================")
	fmt.Println("      Limit Order Book - Matching Demo")
	fmt.Println("================================================")
	fmt.Println()

	var trades []lob.Trade
	book := lob.NewOrderBook(lob.Config{
		Symbol:   "BTC-USD",
		Capacity: 1024,
	}, func(t lob.Trade) {
		trades = append(trades, t)
		m.RecordTrade(t)
	})
	fmt.Println("📚 Created BTC-USD order book")
	fmt.Println()

	// Prices are in ticks of $0.01.
	tick := decimal.New(1, -2)

	fmt.Println("➕ Adding buy orders...")
	addOrder(book, m, lob.Buy, 4_990_000, 100, 1, 7)
	fmt.Printf("   Buy  100 @ $49,900.00\n")
	addOrder(book, m, lob.Buy, 4_995_000, 50, 2, 7)
	fmt.Printf("   Buy   50 @ $49,950.00\n")
	addOrder(book, m, lob.Buy, 5_000_000, 200, 3, 8)
	fmt.Printf("   Buy  200 @ $50,000.00\n")
	fmt.Println()

	fmt.Println("➕ Adding sell orders...")
	addOrder(book, m, lob.Sell, 5_010_000, 150, 4, 9)
	fmt.Printf("   Sell 150 @ $50,100.00\n")
	addOrder(book, m, lob.Sell, 5_005_000, 100, 5, 9)
	fmt.Printf("   Sell 100 @ $50,050.00\n")
	fmt.Println()

	printBook(book, tick)

	fmt.Println("🚀 Crossing: buy 150 @ $50,100.00...")
	before := len(trades)
	addOrder(book, m, lob.Buy, 5_010_000, 150, 6, 8)

	fmt.Println()
	fmt.Println("💰 Trades Executed:")
	fmt.Println("━━━━━━━━━━━━━━━━━━")
	for i, t := range trades[before:] {
		price := decimal.New(int64(t.Price), 0).Mul(tick)
		fmt.Printf("   Trade %d: %d @ $%s (buy #%d / sell #%d)\n",
			i+1, t.Quantity, price.StringFixed(2), t.BuyOrderID, t.SellOrderID)
	}
	fmt.Println()

	fmt.Println("✂️  Cancelling order 1...")
	book.CancelOrder(1)
	m.RecordCancel()
	fmt.Println()

	printBook(book, tick)

	snap := book.Snapshot(tick)
	fmt.Println("📈 Summary:")
	fmt.Printf("   Total Trades:  %d\n", len(trades))
	fmt.Printf("   Active Orders: %d\n", book.Len())
	fmt.Printf("   Bid Volume:    %d\n", snap.BidVolume)
	fmt.Printf("   Ask Volume:    %d\n", snap.AskVolume)

	m.UpdateBook(book)
	logger.Info("demo complete",
		"symbol", book.Symbol,
		"trades", len(trades),
		"resting", book.Len(),
		"sequence", book.Sequence())

	fmt.Println()
	fmt.Println("✅ Demo complete!")
}

func addOrder(book *lob.OrderBook, m *metrics.BookMetrics, side lob.Side, price, qty uint32, id, participant uint64) {
	start := time.Now()
	book.AddLimitOrder(side, price, qty, id, participant)
	m.RecordMatchingLatency(float64(time.Since(start).Nanoseconds()))
	m.RecordOrder()
}

func printBook(book *lob.OrderBook, tick decimal.Decimal) {
	fmt.Println("📊 Order Book State:")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━")

	bids, asks := book.Depth(5)
	for _, lv := range asks {
		price := decimal.New(int64(lv.Price), 0).Mul(tick)
		fmt.Printf("   Ask %6d @ $%s (%d orders)\n", lv.Quantity, price.StringFixed(2), lv.Orders)
	}
	for _, lv := range bids {
		price := decimal.New(int64(lv.Price), 0).Mul(tick)
		fmt.Printf("   Bid %6d @ $%s (%d orders)\n", lv.Quantity, price.StringFixed(2), lv.Orders)
	}

	if bb, ba := book.BestBid(), book.BestAsk(); bb != nil && ba != nil {
		spread := decimal.New(int64(ba.Price-bb.Price), 0).Mul(tick)
		fmt.Printf("   Spread:   $%s\n", spread.StringFixed(2))
	}
	fmt.Println()
}
