package drvshim

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"kbdcore-go/errcode"
)

type slowBus struct {
	delay atomic.Int64 // nanoseconds
	err   error
	seen  atomic.Uint32 // first write byte, read after the delay
}

func (b *slowBus) Tx(addr uint16, w, r []byte) error {
	time.Sleep(time.Duration(b.delay.Load()))
	if len(w) > 0 {
		b.seen.Store(uint32(w[0]))
	}
	if len(r) > 0 {
		r[0] = 0x5A
	}
	return b.err
}

func TestShimPassesThrough(t *testing.T) {
	raw := &slowBus{}
	s := NewI2C(raw)
	r := make([]byte, 1)
	if err := s.Tx(0x34, []byte{0x01}, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r[0] != 0x5A {
		t.Fatalf("read data not returned: %#x", r[0])
	}

	want := errors.New("nack")
	raw.err = want
	if err := s.Tx(0x34, []byte{0x01}, r); !errors.Is(err, want) {
		t.Fatalf("expected bus error, got %v", err)
	}
}

func TestShimTimesOutThenReportsBusy(t *testing.T) {
	raw := &slowBus{}
	raw.delay.Store(int64(80 * time.Millisecond))
	s := NewI2C(raw).WithTimeout(10)
	if s.TimeoutMS() != 10 {
		t.Fatalf("timeout not applied")
	}

	if err := s.Tx(0x34, []byte{0x01}, nil); err != errcode.Timeout {
		t.Fatalf("expected timeout, got %v", err)
	}
	if err := s.Tx(0x34, []byte{0x01}, nil); err != errcode.Busy {
		t.Fatalf("expected busy while first tx in flight, got %v", err)
	}

	time.Sleep(120 * time.Millisecond)
	raw.delay.Store(0)
	if err := s.Tx(0x34, []byte{0x01}, nil); err != nil {
		t.Fatalf("expected recovery after wedged tx finished, got %v", err)
	}
}

func TestTimedOutTxDoesNotShareCallerBuffers(t *testing.T) {
	raw := &slowBus{}
	raw.delay.Store(int64(60 * time.Millisecond))
	s := NewI2C(raw).WithTimeout(5)

	w := []byte{0x04}
	r := []byte{0x00}
	if err := s.Tx(0x34, w, r); err != errcode.Timeout {
		t.Fatalf("expected timeout, got %v", err)
	}
	// The driver reuses its fixed buffers for the next register access.
	w[0] = 0xEE
	if err := s.Tx(0x34, w, r); err != errcode.Busy {
		t.Fatalf("expected busy, got %v", err)
	}

	time.Sleep(100 * time.Millisecond)
	if got := raw.seen.Load(); got != 0x04 {
		t.Fatalf("wedged tx saw rewritten buffer: %#x", got)
	}
	if r[0] != 0 {
		t.Fatalf("wedged tx wrote into caller buffer: %#x", r[0])
	}

	// A later transfer gets its own result, not the stale one.
	raw.delay.Store(0)
	w[0] = 0x07
	if err := s.Tx(0x34, w, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw.seen.Load() != 0x07 || r[0] != 0x5A {
		t.Fatalf("unexpected transfer: seen=%#x r=%#x", raw.seen.Load(), r[0])
	}
}

func TestLargeTransferFallsBackToCopy(t *testing.T) {
	raw := &slowBus{}
	s := NewI2C(raw)
	w := make([]byte, 2*xferBuf)
	w[0] = 0x11
	r := make([]byte, 2*xferBuf)
	if err := s.Tx(0x34, w, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw.seen.Load() != 0x11 || r[0] != 0x5A {
		t.Fatalf("unexpected transfer: seen=%#x r=%#x", raw.seen.Load(), r[0])
	}
}

func TestWithTimeoutIgnoresNonPositive(t *testing.T) {
	s := NewI2C(&slowBus{}).WithTimeout(0)
	if s.TimeoutMS() != defaultTimeoutMS {
		t.Fatalf("expected default timeout, got %d", s.TimeoutMS())
	}
}
