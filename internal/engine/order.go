package engine

import "fmt"

// Side identifies which book an order rests on.
type Side int

const (
	Bid Side = iota
	Ask
)

func (s Side) String() string {
	switch s {
	case Bid:
		return "BID"
	case Ask:
		return "ASK"
	default:
		return "UNKNOWN"
	}
}

// Order is a single resting or incoming limit order. LevelIndex is assigned
// at insertion and changes only when its level compacts away a dead prefix
// (see priceLevel.reclaim) -- it is the slot this
// order occupies within its price level's underlying storage, and is how
// the order index cross-references back into a level without aliasing a
// pointer.
type Order struct {
	ID         uint64
	Side       Side
	Price      float64
	Volume     uint64
	LevelIndex int
	Active     bool
}

// sameIdentity reports whether other addresses the same logical order as
// the order held by a level slot. Used by modify/cancel to guard against a
// stale cross-reference before mutating a slot in place.
func (o Order) sameIdentity(other Order) bool {
	return o.ID == other.ID && o.Side == other.Side && o.Price == other.Price
}

func (o Order) String() string {
	return fmt.Sprintf("(id=%d side=%s price=%g volume=%d levelIndex=%d active=%t)",
		o.ID, o.Side, o.Price, o.Volume, o.LevelIndex, o.Active)
}
