// Package history keeps a bounded in-memory record of recent trades, fed by
// the matching engine's trade callback. It exists purely so a CLI/REPL
// embedder can print recent activity without re-deriving it -- the engine
// itself does not depend on this package.
//
// The ring layout is grounded on the ejyy-femto_go ring buffer (power-of-two
// size, mask instead of modulo), but dropped to a plain non-atomic
// write cursor: the matching engine this feeds is strictly
// single-threaded and sequential per spec, so there is no producer/consumer
// race to guard against, and carrying atomics here would misrepresent that.
package history

import "time"

const defaultCapacity = 1 << 10 // 1024, power of two for mask-based wraparound

// Trade is a single recorded execution.
type Trade struct {
	BidOrderID uint64
	AskOrderID uint64
	Price      float64
	Volume     uint64
	RecordedAt time.Time
}

// Recorder is a fixed-capacity ring of the most recent trades. The zero
// value is not usable; construct with NewRecorder.
type Recorder struct {
	buffer []Trade
	mask   uint64
	write  uint64
}

// NewRecorder allocates a recorder holding the most recent capacity trades.
// capacity is rounded up to the next power of two.
func NewRecorder(capacity int) *Recorder {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	size := 1
	for size < capacity {
		size <<= 1
	}
	return &Recorder{
		buffer: make([]Trade, size),
		mask:   uint64(size - 1),
	}
}

// Record appends a trade, overwriting the oldest entry once the ring is
// full. Observe is the same operation taking the trade's fields one by one.
func (r *Recorder) Record(t Trade) {
	r.buffer[r.write&r.mask] = t
	r.write++
}

// Observe records one trade from its individual fields. It does not use the
// engine package's types; the engine.TradeCallback adapter that calls it
// lives in cmd/fenrir.
func (r *Recorder) Observe(bidID, askID uint64, price float64, volume uint64, at time.Time) {
	r.Record(Trade{
		BidOrderID: bidID,
		AskOrderID: askID,
		Price:      price,
		Volume:     volume,
		RecordedAt: at,
	})
}

// Recent returns up to n of the most recently recorded trades, oldest
// first within the returned slice.
func (r *Recorder) Recent(n int) []Trade {
	total := r.write
	capacity := uint64(len(r.buffer))
	available := total
	if available > capacity {
		available = capacity
	}
	if uint64(n) > available {
		n = int(available)
	}
	out := make([]Trade, 0, n)
	start := total - uint64(n)
	for i := uint64(0); i < uint64(n); i++ {
		out = append(out, r.buffer[(start+i)&r.mask])
	}
	return out
}

// Len reports how many trades are currently retained (capped at capacity).
func (r *Recorder) Len() int {
	capacity := uint64(len(r.buffer))
	if r.write > capacity {
		return int(capacity)
	}
	return int(r.write)
}
