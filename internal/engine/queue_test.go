package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keypad/internal/key"
)

func TestQueue_FIFO(t *testing.T) {
	q := newEventQueue()

	require.True(t, q.Enqueue(key.Digit('1')))
	require.True(t, q.Enqueue(key.Digit('2')))
	require.True(t, q.Enqueue(key.Equals()))
	assert.Equal(t, 3, q.Len())

	first, ok := q.TryDequeue()
	require.True(t, ok)
	assert.Equal(t, key.Digit('1'), first)

	second, ok := q.TryDequeue()
	require.True(t, ok)
	assert.Equal(t, key.Digit('2'), second)

	third, ok := q.TryDequeue()
	require.True(t, ok)
	assert.Equal(t, key.KindEquals, third.Kind)

	_, ok = q.TryDequeue()
	assert.False(t, ok, "empty queue dequeues nothing")
}

func TestQueue_EnqueueAfterCloseFails(t *testing.T) {
	q := newEventQueue()
	q.Close()

	assert.False(t, q.Enqueue(key.Digit('1')))
	assert.Equal(t, 0, q.Len())
}

func TestQueue_CloseIdempotent(t *testing.T) {
	q := newEventQueue()
	q.Close()
	q.Close() // must not panic on double close
}

func TestQueue_SignalCoalesces(t *testing.T) {
	q := newEventQueue()

	q.Enqueue(key.Digit('1'))
	q.Enqueue(key.Digit('2'))

	// Multiple enqueues coalesce into a single signal.
	<-q.Wait()
	select {
	case <-q.Wait():
		t.Fatal("second signal should not be pending")
	default:
	}
}

func TestQueue_ClosedTracksClose(t *testing.T) {
	q := newEventQueue()

	// A drained queue with a stale coalesced signal is still open.
	q.Enqueue(key.Digit('1'))
	_, ok := q.TryDequeue()
	require.True(t, ok)
	assert.False(t, q.Closed())
	assert.Equal(t, 0, q.Len())

	q.Close()
	assert.True(t, q.Closed())
}

func TestQueue_WaitWakesOnClose(t *testing.T) {
	q := newEventQueue()
	q.Close()

	select {
	case <-q.Wait():
		// Closed signal channel fires immediately.
	default:
		t.Fatal("Wait should fire after Close")
	}
}
