package fs

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/folio/pkg/core"
)

func waitEvent(t *testing.T, events <-chan core.Event, timeout time.Duration) (core.Event, bool) {
	t.Helper()
	select {
	case e, ok := <-events:
		return e, ok
	case <-time.After(timeout):
		return core.Event{}, false
	}
}

func TestWatch_ExternalWrite(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := newStore(t, "[]")
	events, err := store.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(store.Path, []byte(`[{"id": "B009"}]`), 0644))

	e, ok := waitEvent(t, events, 2*time.Second)
	require.True(t, ok, "expected an event")
	assert.Equal(t, core.EventModify, e.Type)
	assert.Equal(t, store.Path, e.Path)
}

func TestWatch_IgnoresOwnWrites(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := newStore(t, "[]", func(c *Config) { c.Atomic = true })
	events, err := store.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, []core.Record{core.NewRecord(core.F("id", core.String("B001")))}))

	_, ok := waitEvent(t, events, 3*DebounceInterval)
	assert.False(t, ok, "own write must not be reported")
}

func TestWatch_IgnoresSiblings(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := newStore(t, "[]")
	events, err := store.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(store.Path+".bak", []byte("x"), 0644))

	_, ok := waitEvent(t, events, 3*DebounceInterval)
	assert.False(t, ok)
}

func TestWatch_ClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := newStore(t, "[]")
	events, err := store.Watch(ctx)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return store.State().(StoreState).WatcherActive
	}, time.Second, 10*time.Millisecond)

	cancel()

	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-events:
			return !ok
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
	assert.False(t, store.State().(StoreState).WatcherActive)
}

func TestDebouncer_KeepsLast(t *testing.T) {
	d := newDebouncer(20 * time.Millisecond)
	got := make(chan int, 3)
	for i := 1; i <= 3; i++ {
		d.add(func() { got <- i })
	}
	d.stopAndWait()

	// stopAndWait cancels the pending timer, so nothing or only the last fires.
	close(got)
	for v := range got {
		assert.Equal(t, 3, v)
	}

	d2 := newDebouncer(10 * time.Millisecond)
	fired := make(chan int, 3)
	for i := 1; i <= 3; i++ {
		d2.add(func() { fired <- i })
	}
	select {
	case v := <-fired:
		assert.Equal(t, 3, v)
	case <-time.After(time.Second):
		t.Fatal("debounced callback never fired")
	}
	d2.stopAndWait()
	assert.Empty(t, fired)
}
