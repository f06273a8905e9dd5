package route

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForkTracker_DistinctMillis(t *testing.T) {
	clock := time.UnixMilli(1700000000000)
	tracker := NewForkTracker(func() time.Time {
		clock = clock.Add(time.Millisecond)
		return clock
	})

	first, collided, err := tracker.Fork("dual-ma")
	require.NoError(t, err)
	assert.False(t, collided)

	second, collided, err := tracker.Fork("dual-ma")
	require.NoError(t, err)
	assert.False(t, collided)
	assert.NotEqual(t, first, second)
}

func TestForkTracker_SameMillisecondCollides(t *testing.T) {
	fixed := time.UnixMilli(1700000000000)
	tracker := NewForkTracker(func() time.Time { return fixed })

	first, collided, err := tracker.Fork("dual-ma")
	require.NoError(t, err)
	assert.False(t, collided)

	second, collided, err := tracker.Fork("dual-ma")
	require.NoError(t, err)
	assert.True(t, collided, "expected repeat to be reported")
	assert.Equal(t, first, second, "collision is reported, not resolved")

	// A different source in the same millisecond is not a collision.
	_, collided, err = tracker.Fork("pairs")
	require.NoError(t, err)
	assert.False(t, collided)
}

func TestForkTracker_DefaultClock(t *testing.T) {
	tracker := NewForkTracker(nil)
	id, _, err := tracker.Fork("bitcoin")
	require.NoError(t, err)
	assert.Contains(t, id.String(), "bitcoin-fork-")
}

func TestForkTracker_Concurrent(t *testing.T) {
	fixed := time.UnixMilli(1)
	tracker := NewForkTracker(func() time.Time { return fixed })

	var wg sync.WaitGroup
	collisions := make(chan bool, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, collided, err := tracker.Fork("breakout")
			assert.NoError(t, err)
			collisions <- collided
		}()
	}
	wg.Wait()
	close(collisions)

	count := 0
	for c := range collisions {
		if c {
			count++
		}
	}
	assert.Equal(t, 19, count)
}
