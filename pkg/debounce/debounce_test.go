package debounce

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleCoalescesPerKey(t *testing.T) {
	m := New(50 * time.Millisecond)

	var calls atomic.Int32
	var last atomic.Int32
	for i := 1; i <= 10; i++ {
		v := int32(i)
		m.Schedule("step-1", func() {
			calls.Add(1)
			last.Store(v)
		})
	}

	require.NoError(t, m.Wait(context.Background()))
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, int32(10), last.Load())
	assert.Equal(t, 0, m.Pending())
}

func TestKeysAreIndependent(t *testing.T) {
	m := New(10 * time.Millisecond)

	var mu sync.Mutex
	seen := map[string]int{}
	for _, k := range []string{"a", "b", "a", "c", "b"} {
		key := k
		m.Schedule(key, func() {
			mu.Lock()
			seen[key]++
			mu.Unlock()
		})
	}

	require.NoError(t, m.Wait(context.Background()))
	assert.Equal(t, map[string]int{"a": 1, "b": 1, "c": 1}, seen)
}

func TestFlushRunsImmediately(t *testing.T) {
	m := New(time.Hour)

	var ran atomic.Bool
	m.Schedule("k", func() { ran.Store(true) })
	assert.True(t, m.Scheduled("k"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, m.Flush(ctx))

	assert.True(t, ran.Load())
	assert.False(t, m.Scheduled("k"))
}

func TestCancel(t *testing.T) {
	m := New(time.Hour)

	var ran atomic.Bool
	m.Schedule("k", func() { ran.Store(true) })
	m.Cancel("k")
	m.Cancel("missing")

	require.NoError(t, m.Flush(context.Background()))
	assert.False(t, ran.Load())
	assert.Equal(t, 0, m.Pending())
}

func TestWaitHonorsContext(t *testing.T) {
	m := New(time.Hour)
	m.Schedule("k", func() {})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, m.Wait(ctx), context.DeadlineExceeded)

	m.Cancel("k")
	require.NoError(t, m.Wait(context.Background()))
}

func TestNegativeDelay(t *testing.T) {
	m := New(-time.Second)
	assert.Equal(t, time.Duration(0), m.Delay())
}
