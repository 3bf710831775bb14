// Package idle dims the keyboard backlight after a period without key
// presses and wakes it on the next press. It drives the HAL only through
// hal/keyboard/control/dimmed.
package idle

import (
	"context"
	"time"

	"kbdcore-go/bus"
	"kbdcore-go/types"
	"kbdcore-go/x/logx"
	"kbdcore-go/x/timex"
)

var (
	topicConfigIdle    = bus.T("config", "idle")
	topicKeyboardState = bus.T("hal", "keyboard", "state")
	topicDimmed        = bus.T("hal", "keyboard", "control", "dimmed")
)

const (
	DefaultDimAfter = 30 * time.Second
	DefaultCheck    = time.Second
)

type Service struct {
	DimAfter time.Duration
	Check    time.Duration
	Clock    timex.Clock

	log     logx.Logger
	last    *types.KeyboardState
	pending bool // a dimmed request is out and the state has not echoed it yet
}

func New() *Service {
	return &Service{DimAfter: DefaultDimAfter, Check: DefaultCheck, Clock: timex.System{}, log: logx.Tag("idle")}
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(topicConfigIdle)
	defer conn.Unsubscribe(cfgSub)
	stateSub := conn.Subscribe(topicKeyboardState)
	defer conn.Unsubscribe(stateSub)

	tick := time.NewTicker(s.Check)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("stopping")
			return
		case <-tick.C:
			s.checkIdle(conn)
		case msg := <-stateSub.Channel():
			st, ok := msg.Payload.(types.KeyboardState)
			if !ok {
				continue
			}
			if s.last == nil || st.Dimmed != s.last.Dimmed {
				s.pending = false
			}
			s.last = &st
			if st.Dimmed && len(st.Keys) > 0 {
				s.setDimmed(conn, false)
			}
		case msg := <-cfgSub.Channel():
			if d, ok := dimAfter(msg.Payload); ok {
				s.DimAfter = d
				s.log.Info("dim after", d.String())
			}
		}
	}
}

func (s *Service) checkIdle(conn *bus.Connection) {
	// A held key is activity even though the HAL only republishes on count
	// changes, so LastPressedMs goes stale during a long hold.
	if s.last == nil || s.last.Dimmed || len(s.last.Keys) > 0 || s.DimAfter <= 0 {
		return
	}
	if timex.Since(s.Clock, s.last.LastPressedMs) >= s.DimAfter.Milliseconds() {
		s.setDimmed(conn, true)
	}
}

func (s *Service) setDimmed(conn *bus.Connection, on bool) {
	if s.pending {
		return
	}
	s.pending = true
	conn.Publish(conn.NewMessage(topicDimmed, on, false))
}

// dimAfter reads {"dim_after_s": n}; zero disables dimming.
func dimAfter(v any) (time.Duration, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return 0, false
	}
	secs, ok := m["dim_after_s"].(float64)
	if !ok || secs < 0 {
		return 0, false
	}
	return time.Duration(secs * float64(time.Second)), true
}

// Start the idle service.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	if s.log == (logx.Logger{}) {
		s.log = logx.Tag("idle")
	}
	if s.Clock == nil {
		s.Clock = timex.System{}
	}
	if s.Check <= 0 {
		s.Check = DefaultCheck
	}
	go s.serviceLoop(ctx, conn)
	return nil
}
