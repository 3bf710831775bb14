// bus/bus_test.go
package bus

import (
	"context"
	"sort"
	"testing"
	"time"
)

func TestBasicPubSub(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("test")

	sub := conn.Subscribe(T("hal", "keyboard", "state"))
	conn.Publish(conn.NewMessage(T("hal", "keyboard", "state"), "hello", false))

	expectOneOf(t, sub, "hello")
}

func TestRetainedMessage(t *testing.T) {
	b := NewBus(2)
	conn := b.NewConnection("test")

	conn.Publish(conn.NewMessage(T("config", "keyboard"), "persist", true))
	sub := conn.Subscribe(T("config", "keyboard"))

	expectOneOf(t, sub, "persist")
}

func TestQueueDropsOldest(t *testing.T) {
	b := NewBus(2)
	c := b.NewConnection("test")
	s := c.Subscribe(T("k"))

	c.Publish(b.NewMessage(T("k"), "m1", false))
	c.Publish(b.NewMessage(T("k"), "m2", false))
	c.Publish(b.NewMessage(T("k"), "m3", false))

	got := drainPayloads(t, s, 2)
	if got[0] != "m2" || got[1] != "m3" {
		t.Fatalf("expected [m2 m3], got %v", got)
	}
}

// -----------------------------------------------------------------------------
// Wildcards
// -----------------------------------------------------------------------------

func TestWildcard_SingleLevel(t *testing.T) {
	b := NewBus(16)
	c := b.NewConnection("test")

	s1 := c.Subscribe(T("hal", "+", "state"))
	s2 := c.Subscribe(T("hal", "+", "+"))
	sNo := c.Subscribe(T("hal", "+", "control"))

	c.Publish(b.NewMessage(T("hal", "keyboard", "state"), "m1", false))
	expectOneOf(t, s1, "m1")
	expectOneOf(t, s2, "m1")
	expectNoMessage(t, sNo)

	c.Publish(b.NewMessage(T("hal", "keyboard"), "m2", false))
	expectNoMessage(t, s1)
	expectNoMessage(t, s2)
}

func TestWildcard_MultiLevel(t *testing.T) {
	b := NewBus(16)
	c := b.NewConnection("test")

	sHalHash := c.Subscribe(T("hal", "#"))
	sHash := c.Subscribe(T("#"))
	sExact := c.Subscribe(T("hal"))

	c.Publish(b.NewMessage(T("hal"), "p1", false))
	expectOneOf(t, sHalHash, "p1")
	expectOneOf(t, sHash, "p1")
	expectOneOf(t, sExact, "p1")

	c.Publish(b.NewMessage(T("hal", "keyboard", "control", "caps_lock"), "p2", false))
	expectOneOf(t, sHalHash, "p2")
	expectOneOf(t, sHash, "p2")
	expectNoMessage(t, sExact)
}

func TestWildcard_RetainedDeliveryAndClear(t *testing.T) {
	b := NewBus(32)
	c := b.NewConnection("test")

	c.Publish(b.NewMessage(T("hal", "state"), "r0", true))
	c.Publish(b.NewMessage(T("hal", "keyboard", "state"), "r1", true))
	c.Publish(b.NewMessage(T("hal", "keyboard", "info"), "r2", true))
	c.Publish(b.NewMessage(T("hal", "keyboard", "info"), nil, true))

	sAll := c.Subscribe(T("hal", "#"))
	assertUnorderedEqual(t, drainPayloads(t, sAll, 2), []string{"r0", "r1"})

	sPlus := c.Subscribe(T("hal", "+", "state"))
	assertUnorderedEqual(t, drainPayloads(t, sPlus, 1), []string{"r1"})
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	b := NewBus(4)
	c := b.NewConnection("test")
	s := c.Subscribe(T("x"))
	s.Unsubscribe()

	if _, ok := <-s.Channel(); ok {
		t.Fatal("expected closed channel")
	}
	// Publishing after unsubscribe must not panic.
	c.Publish(b.NewMessage(T("x"), "late", false))
}

// -----------------------------------------------------------------------------
// Request–Reply
// -----------------------------------------------------------------------------

func TestRequestReply_RequestWait(t *testing.T) {
	b := NewBus(8)
	reqConn := b.NewConnection("requester")
	respConn := b.NewConnection("responder")

	reqTopic := T("hal", "keyboard", "control", "read_now")
	respSub := respConn.Subscribe(reqTopic)
	defer respConn.Unsubscribe(respSub)

	go func() {
		if msg, ok := <-respSub.Channel(); ok {
			respConn.Reply(msg, "OK", false)
		}
	}()

	req := b.NewMessage(reqTopic, nil, false)
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	reply, err := reqConn.RequestWait(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error waiting for reply: %v", err)
	}
	if got, ok := reply.Payload.(string); !ok || got != "OK" {
		t.Fatalf("unexpected reply payload: %#v", reply.Payload)
	}
	if !topicsEqual(reply.Topic, req.ReplyTo) {
		t.Fatalf("reply topic %v != request ReplyTo %v", reply.Topic, req.ReplyTo)
	}
}

func TestRequestReply_Timeout(t *testing.T) {
	b := NewBus(8)
	reqConn := b.NewConnection("requester")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := reqConn.RequestWait(ctx, b.NewMessage(T("service", "noop"), nil, false)); err == nil {
		t.Fatal("expected timeout error, got nil")
	}
}

func TestTopic_InvalidTokenPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic for non-comparable token, got none")
		}
	}()
	_ = T([]byte{1, 2, 3})
}

func TestTopic_String(t *testing.T) {
	if got := T("hal", "keyboard", 0).String(); got != "hal/keyboard/0" {
		t.Fatalf("unexpected topic string %q", got)
	}
}

func TestTopic_AppendDoesNotAlias(t *testing.T) {
	base := make(Topic, 0, 8)
	base = append(base, "hal", "keyboard")
	a := base.Append("state")
	b := base.Append("control", "caps_lock")
	if a.String() != "hal/keyboard/state" || b.String() != "hal/keyboard/control/caps_lock" {
		t.Fatalf("unexpected topics %q %q", a.String(), b.String())
	}
}

// -----------------------------------------------------------------------------
// helpers
// -----------------------------------------------------------------------------

func topicsEqual(a, b Topic) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func expectOneOf(t *testing.T, sub *Subscription, want string) {
	t.Helper()
	select {
	case got := <-sub.Channel():
		s, ok := got.Payload.(string)
		if !ok || s != want {
			t.Fatalf("unexpected payload: %v (want %q)", got.Payload, want)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatalf("timeout waiting for %q", want)
	}
}

func expectNoMessage(t *testing.T, sub *Subscription) {
	t.Helper()
	select {
	case got := <-sub.Channel():
		t.Fatalf("unexpected message: %#v", got)
	case <-time.After(30 * time.Millisecond):
	}
}

func drainPayloads(t *testing.T, sub *Subscription, n int) []string {
	t.Helper()
	var out []string
	deadline := time.Now().Add(300 * time.Millisecond)
	for len(out) < n && time.Now().Before(deadline) {
		select {
		case m := <-sub.Channel():
			if s, ok := m.Payload.(string); ok {
				out = append(out, s)
			} else {
				t.Fatalf("non-string payload in drain: %#v", m.Payload)
			}
		case <-time.After(10 * time.Millisecond):
		}
	}
	if len(out) != n {
		t.Fatalf("drainPayloads: expected %d messages, got %d (%v)", n, len(out), out)
	}
	return out
}

func assertUnorderedEqual(t *testing.T, got, want []string) {
	t.Helper()
	sort.Strings(got)
	sort.Strings(want)
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d (%v vs %v)", len(got), len(want), got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("mismatch at %d: got %q, want %q", i, got[i], want[i])
		}
	}
}
