package engine

import "github.com/tidwall/btree"

// ladder is the per-side ordered sequence of price levels, backed by a
// tidwall/btree so that top-of-book lookups and price-level insertion are
// both logarithmic while keeping levels cache-friendly in sorted order --
// the same structure the book leans on for its bid/ask price levels.
//
// The comparator is oriented so that Min() always yields the top-of-book
// level for that side: bids compare greatest-price-first (so the highest
// bid sorts as the btree minimum), asks compare least-price-first (so the
// lowest ask sorts as the btree minimum). This reproduces the "top of book
// sits at the tail" arrangement from an array-based ladder without
// actually needing an array.
type ladder struct {
	levels           *btree.BTreeG[*priceLevel]
	reclaimThreshold int
}

func newBidLadder(reclaimThreshold int) *ladder {
	return &ladder{
		levels: btree.NewBTreeG(func(a, b *priceLevel) bool {
			return a.price > b.price
		}),
		reclaimThreshold: reclaimThreshold,
	}
}

func newAskLadder(reclaimThreshold int) *ladder {
	return &ladder{
		levels: btree.NewBTreeG(func(a, b *priceLevel) bool {
			return a.price < b.price
		}),
		reclaimThreshold: reclaimThreshold,
	}
}

// insert appends order to the level at price, creating the level if it
// does not exist yet, and returns the slot index assigned within that
// level.
func (ld *ladder) insert(price float64, o Order) int {
	if level, ok := ld.levels.GetMut(&priceLevel{price: price}); ok {
		return level.append(o)
	}
	level := newPriceLevel(price, ld.reclaimThreshold)
	idx := level.append(o)
	ld.levels.Set(level)
	return idx
}

// find returns the level at price, if any.
func (ld *ladder) find(price float64) (*priceLevel, bool) {
	return ld.levels.GetMut(&priceLevel{price: price})
}

// tail returns the top-of-book level for this side.
func (ld *ladder) tail() (*priceLevel, bool) {
	return ld.levels.MinMut()
}

// popTail removes the top-of-book level entirely. Used when that level has
// been fully drained by the match loop.
func (ld *ladder) popTail() {
	if level, ok := ld.levels.Min(); ok {
		ld.levels.Delete(level)
	}
}

func (ld *ladder) empty() bool {
	return ld.levels.Len() == 0
}

// levelsInPriceOrder returns every level in this ladder's sort order
// (best to worst).
func (ld *ladder) levelsInPriceOrder() []*priceLevel {
	out := make([]*priceLevel, 0, ld.levels.Len())
	ld.levels.Scan(func(l *priceLevel) bool {
		out = append(out, l)
		return true
	})
	return out
}
