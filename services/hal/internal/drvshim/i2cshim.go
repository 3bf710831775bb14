package drvshim

import (
	"sync/atomic"
	"time"

	"kbdcore-go/errcode"

	"tinygo.org/x/drivers"
)

const (
	defaultTimeoutMS = 25

	// Register transfers are a few bytes; larger ones fall back to a copy.
	xferBuf = 8
)

type result struct {
	gen uint32
	err error
}

// I2C bounds how long a caller waits on a raw bus and presents the tinygo
// driver Tx shape. A transaction that overruns is reported as errcode.Timeout;
// until it completes, further calls fail fast with errcode.Busy before
// touching any buffer.
//
// The transfer itself runs on shim-owned copies of w and r, so a caller may
// reuse its buffers as soon as Tx returns, even after a timeout.
//
// On RP2 the I2C controller's own timeout is what ends a wedged machine.I2C.Tx.
// TinyGo's scheduler is cooperative, so this timer cannot preempt a transfer;
// it only bounds the wait once the transfer yields.
type I2C struct {
	raw       drivers.I2C
	timeoutMS int

	inflight atomic.Bool
	gen      uint32
	done     chan result
	timer    *time.Timer

	wbuf, rbuf [xferBuf]byte
}

func NewI2C(bus drivers.I2C) *I2C {
	return &I2C{raw: bus, timeoutMS: defaultTimeoutMS, done: make(chan result, 1)}
}

func (s *I2C) WithTimeout(ms int) *I2C {
	if ms > 0 {
		s.timeoutMS = ms
	}
	return s
}

// TimeoutMS returns the configured bound.
func (s *I2C) TimeoutMS() int { return s.timeoutMS }

func (s *I2C) Tx(addr uint16, w, r []byte) error {
	if !s.inflight.CompareAndSwap(false, true) {
		return errcode.Busy
	}
	s.gen++
	gen := s.gen

	wc := s.wbuf[:0]
	if len(w) > xferBuf {
		wc = make([]byte, 0, len(w))
	}
	wc = append(wc, w...)
	rc := s.rbuf[:len(r):len(r)]
	if len(r) > xferBuf {
		rc = make([]byte, len(r))
	}

	go func() {
		err := s.raw.Tx(addr, wc, rc)
		s.inflight.Store(false)
		s.done <- result{gen: gen, err: err}
	}()

	s.arm()
	for {
		select {
		case res := <-s.done:
			if res.gen != gen {
				continue // left over from a transfer that timed out
			}
			copy(r, rc)
			return res.err
		case <-s.timer.C:
			return errcode.Timeout
		}
	}
}

func (s *I2C) arm() {
	d := time.Duration(s.timeoutMS) * time.Millisecond
	if s.timer == nil {
		s.timer = time.NewTimer(d)
		return
	}
	if !s.timer.Stop() {
		select {
		case <-s.timer.C:
		default:
		}
	}
	s.timer.Reset(d)
}
