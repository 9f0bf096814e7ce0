package engine

import "errors"

// Error kinds surfaced by the public API. Every one of these is recovered
// locally: the offending call returns a negative result and the engine's
// state is left unchanged, matching the teacher's sentinel-error style in
// internal/engine/orderbook.go (ErrNotEnoughLiquidity, ErrRejection).
var (
	// ErrUnknownOrder is returned when modify/cancel references an id that
	// is not in the order index at all.
	ErrUnknownOrder = errors.New("order id not found")

	// ErrInactiveOrder is returned when modify/cancel references an id that
	// is still in the order index but has already gone inactive (cancelled
	// or fully filled). The index entry for an inactive order is erased in
	// the same call that deactivates it, so this is only reachable if a
	// caller holds an id across two lookups with erase somehow skipped --
	// kept as a defensive sentinel rather than assumed unreachable.
	ErrInactiveOrder = errors.New("order is no longer active")

	// ErrStaleSlot is returned when a level's slot fails the identity
	// check against the order snapshot during modify/cancel. In practice
	// this means the order index and the level have drifted apart, which
	// should not happen under the invariants in this package.
	ErrStaleSlot = errors.New("level slot does not match order snapshot")

	// ErrInternalCollision is returned when the id counter produced a
	// duplicate -- an invariant violation, since ids are issued
	// monotonically and never reused.
	ErrInternalCollision = errors.New("order id collision")
)
