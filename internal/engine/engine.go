// Package engine implements an in-memory continuous double-auction
// limit order-book matching engine for a single instrument. It is the
// engine package from the teacher repo, generalized: the teacher's
// AssetType/OrderType scaffolding and market-order handling are dropped
// (multi-instrument routing and market orders are explicit non-goals here)
// and replaced with the lazy-deletion price-level/ladder/index design this
// package now implements.
package engine

import "github.com/rs/zerolog"

// TradeCallback is invoked once per matched pair, synchronously, in match
// order. The snapshots reflect both orders at the moment of the trade,
// including their remaining volume before this trade's decrement.
type TradeCallback func(bidOrder, askOrder Order, tradedVolume uint64)

// Engine owns the two side ladders, the order index, and the monotonic id
// counter for a single instrument. It is a plain value owned by its
// embedder -- there is no global state, and multiple instruments are
// multiple Engines.
type Engine struct {
	nextID uint64

	bids *ladder
	asks *ladder

	index *orderIndex

	onTrade          TradeCallback
	logger           zerolog.Logger
	reclaimThreshold int
}

// New constructs an empty engine. Options are applied before the side
// ladders are built, so WithReclaimThreshold takes effect for every level
// the engine ever creates.
func New(opts ...Option) *Engine {
	e := &Engine{
		index:            newOrderIndex(),
		logger:           defaultLogger(),
		reclaimThreshold: defaultReclaimThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.bids = newBidLadder(e.reclaimThreshold)
	e.asks = newAskLadder(e.reclaimThreshold)
	return e
}

// SetTradeCallback installs cb as the engine's trade sink, replacing any
// prior sink. The callback runs synchronously in the caller's goroutine;
// if it blocks, AddOrder blocks.
func (e *Engine) SetTradeCallback(cb TradeCallback) {
	e.onTrade = cb
}

// AddOrder allocates a new id, rests the order in the appropriate ladder,
// and runs the match loop. Returns the new id.
func (e *Engine) AddOrder(side Side, price float64, volume uint64) (uint64, error) {
	id := e.nextID
	e.nextID++

	order := Order{ID: id, Side: side, Price: price, Volume: volume, Active: true}
	if !e.index.insert(order) {
		e.logger.Error().Uint64("id", id).Msg("order id collision on add")
		return 0, ErrInternalCollision
	}

	levelIndex := e.ladderFor(side).insert(price, order)
	order.LevelIndex = levelIndex
	e.index.set(order)

	e.logger.Debug().
		Uint64("id", id).
		Str("side", side.String()).
		Float64("price", price).
		Uint64("volume", volume).
		Msg("order added")

	e.match()
	return id, nil
}

// ModifyOrder implements cancel-then-add: the existing order is cancelled
// (losing time priority) and a brand new order is placed at the new price
// and volume, receiving a fresh id. Returns the new id on success, or an
// error (ErrUnknownOrder, ErrInactiveOrder, ErrStaleSlot) identifying why
// the modify was rejected, in which case no state changes.
func (e *Engine) ModifyOrder(id uint64, newPrice float64, newVolume uint64) (uint64, error) {
	order, ok := e.index.find(id)
	if !ok {
		return 0, ErrUnknownOrder
	}
	if !order.Active {
		return 0, ErrInactiveOrder
	}

	side := order.Side
	if err := e.cancelOrder(order); err != nil {
		return 0, err
	}

	newID, err := e.AddOrder(side, newPrice, newVolume)
	if err != nil {
		return 0, err
	}
	return newID, nil
}

// DeleteOrder cancels a resting order: the level's slot is tombstoned and
// the order index entry is erased. If that leaves the level holding only
// tombstones, the level is removed from its ladder. Cancels never create
// new crosses, so
// the match loop is not run. Returns ErrUnknownOrder, ErrInactiveOrder or
// ErrStaleSlot identifying why the cancel was rejected.
func (e *Engine) DeleteOrder(id uint64) error {
	order, ok := e.index.find(id)
	if !ok {
		return ErrUnknownOrder
	}
	if !order.Active {
		return ErrInactiveOrder
	}
	return e.cancelOrder(order)
}

// cancelOrder tombstones order's slot and erases its index entry, then
// advances the level's head past tombstones and removes the level from its
// ladder once nothing is left in it. Returns ErrStaleSlot if the level's
// slot no longer agrees with the snapshot's identity.
func (e *Engine) cancelOrder(order Order) error {
	level, ok := e.ladderFor(order.Side).find(order.Price)
	if !ok {
		e.logger.Error().Uint64("id", order.ID).Msg("order references a price level that no longer exists")
		return ErrStaleSlot
	}
	if !level.cancel(order) {
		e.logger.Error().Uint64("id", order.ID).Msg("stale slot on cancel")
		return ErrStaleSlot
	}
	for !level.empty() && !level.front().Active {
		level.popFront()
	}
	if level.empty() {
		e.ladderFor(order.Side).levels.Delete(level)
	}
	e.index.erase(order.ID)
	e.logger.Debug().Uint64("id", order.ID).Msg("order cancelled")
	return nil
}

// FindOrder is a read-only lookup in the order index.
func (e *Engine) FindOrder(id uint64) (Order, bool) {
	return e.index.find(id)
}

// BestBid returns the current top-of-book bid price, if any.
func (e *Engine) BestBid() (float64, bool) {
	level, ok := e.bids.tail()
	if !ok {
		return 0, false
	}
	return level.price, true
}

// BestAsk returns the current top-of-book ask price, if any.
func (e *Engine) BestAsk() (float64, bool) {
	level, ok := e.asks.tail()
	if !ok {
		return 0, false
	}
	return level.price, true
}

func (e *Engine) ladderFor(side Side) *ladder {
	if side == Bid {
		return e.bids
	}
	return e.asks
}

// compactIfNeeded applies level's optional reclamation and, if it fired,
// refreshes the order index for every surviving active slot so the
// cross-reference by LevelIndex stays valid.
func (e *Engine) compactIfNeeded(level *priceLevel) {
	for _, o := range level.reclaim() {
		if o.Active {
			e.index.set(o)
		}
	}
}

// match repeatedly inspects both side tails and crosses their heads until
// no crossable pair remains. Cancel only advances past tombstones already
// at the head of the cancelled order's level; tombstones that reach a head
// later, once the orders ahead of them fill, are skipped inside this loop.
func (e *Engine) match() {
	for {
		if e.bids.empty() || e.asks.empty() {
			return
		}

		bidLevel, _ := e.bids.tail()
		askLevel, _ := e.asks.tail()

		if bidLevel.price < askLevel.price {
			return
		}

		for !bidLevel.empty() && !bidLevel.front().Active {
			bidLevel.popFront()
		}
		e.compactIfNeeded(bidLevel)
		for !askLevel.empty() && !askLevel.front().Active {
			askLevel.popFront()
		}
		e.compactIfNeeded(askLevel)

		if bidLevel.empty() || askLevel.empty() {
			if bidLevel.empty() {
				e.bids.popTail()
			}
			if askLevel.empty() {
				e.asks.popTail()
			}
			continue
		}

		bid := bidLevel.front()
		ask := askLevel.front()

		volume := min(bid.Volume, ask.Volume)

		bidSnapshot := *bid
		askSnapshot := *ask

		// The incoming order always carries the larger id, so the other one
		// is the resting order whose price the trade executes at.
		price := askLevel.price
		if bid.ID < ask.ID {
			price = bidLevel.price
		}

		e.logger.Info().
			Uint64("bidID", bid.ID).
			Uint64("askID", ask.ID).
			Float64("price", price).
			Uint64("volume", volume).
			Msg("trade")

		if e.onTrade != nil {
			e.onTrade(bidSnapshot, askSnapshot, volume)
		}

		bid.Volume -= volume
		ask.Volume -= volume

		if bid.Volume == 0 {
			bid.Active = false
			e.index.erase(bid.ID)
			bidLevel.popFront()
			e.compactIfNeeded(bidLevel)
		} else {
			e.index.set(*bid)
		}
		if ask.Volume == 0 {
			ask.Active = false
			e.index.erase(ask.ID)
			askLevel.popFront()
			e.compactIfNeeded(askLevel)
		} else {
			e.index.set(*ask)
		}

		if bidLevel.empty() {
			e.bids.popTail()
		}
		if askLevel.empty() {
			e.asks.popTail()
		}
	}
}
