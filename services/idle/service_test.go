package idle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"kbdcore-go/bus"
	"kbdcore-go/types"
	"kbdcore-go/x/timex"
)

func nextDimmed(t *testing.T, sub *bus.Subscription) bool {
	t.Helper()
	select {
	case m := <-sub.Channel():
		on, ok := m.Payload.(bool)
		require.True(t, ok, "payload %#v", m.Payload)
		return on
	case <-time.After(time.Second):
		t.Fatal("no dimmed request")
		return false
	}
}

func expectQuiet(t *testing.T, sub *bus.Subscription) {
	t.Helper()
	select {
	case m := <-sub.Channel():
		t.Fatalf("unexpected request %#v", m.Payload)
	case <-time.After(40 * time.Millisecond):
	}
}

func TestDimsAfterIdleAndWakesOnPress(t *testing.T) {
	b := bus.NewBus(16)
	conn := b.NewConnection("idle")
	hal := b.NewConnection("hal")
	ctrl := hal.Subscribe(topicDimmed)

	s := New()
	s.DimAfter = 10 * time.Second
	s.Check = 5 * time.Millisecond
	s.Clock = &timex.Fake{Ms: 60_000}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.Start(ctx, conn))

	// Recent press: nothing to do.
	hal.Publish(hal.NewMessage(topicKeyboardState, types.KeyboardState{LastPressedMs: 55_000}, true))
	expectQuiet(t, ctrl)

	// Idle for a minute: one request, not repeated while unanswered.
	hal.Publish(hal.NewMessage(topicKeyboardState, types.KeyboardState{LastPressedMs: 0}, true))
	require.True(t, nextDimmed(t, ctrl))
	expectQuiet(t, ctrl)

	// HAL echoes the dim; a key press while dimmed wakes it.
	hal.Publish(hal.NewMessage(topicKeyboardState, types.KeyboardState{Dimmed: true}, true))
	hal.Publish(hal.NewMessage(topicKeyboardState, types.KeyboardState{
		Dimmed: true,
		Keys:   []types.Point{{X: 2, Y: 2}},
	}, true))
	require.False(t, nextDimmed(t, ctrl))
}

func TestHeldKeyIsNotIdle(t *testing.T) {
	b := bus.NewBus(16)
	conn := b.NewConnection("idle")
	hal := b.NewConnection("hal")
	ctrl := hal.Subscribe(topicDimmed)

	s := New()
	s.DimAfter = 10 * time.Second
	s.Check = 5 * time.Millisecond
	s.Clock = &timex.Fake{Ms: 60_000}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.Start(ctx, conn))

	// Held since boot; the HAL does not republish while the count is steady.
	hal.Publish(hal.NewMessage(topicKeyboardState, types.KeyboardState{
		Keys:          []types.Point{{X: 2, Y: 2}},
		LastPressedMs: 0,
	}, true))
	expectQuiet(t, ctrl)

	// Released long ago: now it dims.
	hal.Publish(hal.NewMessage(topicKeyboardState, types.KeyboardState{LastPressedMs: 0}, true))
	require.True(t, nextDimmed(t, ctrl))
}

func TestConfigZeroDisables(t *testing.T) {
	b := bus.NewBus(16)
	conn := b.NewConnection("idle")
	hal := b.NewConnection("hal")
	ctrl := hal.Subscribe(topicDimmed)

	hal.Publish(hal.NewMessage(topicConfigIdle, map[string]any{"dim_after_s": float64(0)}, true))

	s := New()
	s.Check = 5 * time.Millisecond
	s.Clock = &timex.Fake{Ms: 60_000}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.Start(ctx, conn))

	// Let the retained config land before the first state.
	time.Sleep(20 * time.Millisecond)
	hal.Publish(hal.NewMessage(topicKeyboardState, types.KeyboardState{LastPressedMs: 0}, true))
	expectQuiet(t, ctrl)
}

func TestDimAfterDecode(t *testing.T) {
	d, ok := dimAfter(map[string]any{"dim_after_s": 1.5})
	require.True(t, ok)
	require.Equal(t, 1500*time.Millisecond, d)

	_, ok = dimAfter(map[string]any{"dim_after_s": "soon"})
	require.False(t, ok)
	_, ok = dimAfter(42)
	require.False(t, ok)
}
