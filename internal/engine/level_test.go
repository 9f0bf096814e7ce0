package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceLevel_AppendFrontPopFront(t *testing.T) {
	l := newPriceLevel(100.0, defaultReclaimThreshold)

	idx0 := l.append(Order{ID: 0, Side: Bid, Price: 100.0, Volume: 5, Active: true})
	idx1 := l.append(Order{ID: 1, Side: Bid, Price: 100.0, Volume: 7, Active: true})

	assert.Equal(t, 0, idx0)
	assert.Equal(t, 1, idx1)
	assert.Equal(t, 2, l.size())
	assert.False(t, l.empty())

	assert.Equal(t, uint64(0), l.front().ID)
	l.popFront()
	assert.Equal(t, uint64(1), l.front().ID)
	assert.Equal(t, 1, l.size())
}

func TestPriceLevel_ModifyRequiresIdentityMatch(t *testing.T) {
	l := newPriceLevel(50.0, defaultReclaimThreshold)
	l.append(Order{ID: 9, Side: Ask, Price: 50.0, Volume: 10, Active: true})

	good := Order{ID: 9, Side: Ask, Price: 50.0, LevelIndex: 0}
	assert.True(t, l.modify(good, 3))
	assert.Equal(t, uint64(3), l.front().Volume)

	stale := Order{ID: 42, Side: Ask, Price: 50.0, LevelIndex: 0}
	assert.False(t, l.modify(stale, 99))
	assert.Equal(t, uint64(3), l.front().Volume, "stale modify must not mutate the slot")
}

func TestPriceLevel_ModifyToZeroVolumeTombstones(t *testing.T) {
	l := newPriceLevel(50.0, defaultReclaimThreshold)
	l.append(Order{ID: 1, Side: Bid, Price: 50.0, Volume: 10, Active: true})

	snapshot := Order{ID: 1, Side: Bid, Price: 50.0, LevelIndex: 0}
	assert.True(t, l.modify(snapshot, 0))
	assert.False(t, l.front().Active)
}

func TestPriceLevel_CancelRequiresIdentityMatch(t *testing.T) {
	l := newPriceLevel(12.0, defaultReclaimThreshold)
	l.append(Order{ID: 3, Side: Bid, Price: 12.0, Volume: 4, Active: true})

	stale := Order{ID: 4, Side: Bid, Price: 12.0, LevelIndex: 0}
	assert.False(t, l.cancel(stale))
	assert.True(t, l.front().Active)

	good := Order{ID: 3, Side: Bid, Price: 12.0, LevelIndex: 0}
	assert.True(t, l.cancel(good))
	assert.False(t, l.front().Active)
}

func TestPriceLevel_ReclaimRebasesLevelIndex(t *testing.T) {
	const threshold = 4
	l := newPriceLevel(1.0, threshold)
	for i := uint64(0); i < threshold+10; i++ {
		l.append(Order{ID: i, Side: Bid, Price: 1.0, Volume: 1, Active: true})
	}
	for i := 0; i < threshold+4; i++ {
		l.popFront()
	}

	assert.True(t, l.needsReclaim())
	survivors := l.reclaim()
	assert.NotEmpty(t, survivors)
	assert.Equal(t, 0, l.start)
	for i, o := range l.orders {
		assert.Equal(t, i, o.LevelIndex)
	}
	assert.False(t, l.needsReclaim())
}
