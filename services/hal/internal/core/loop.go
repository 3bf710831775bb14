package core

import (
	"context"
	"time"

	"kbdcore-go/bus"
	"kbdcore-go/errcode"
	"kbdcore-go/services/hal/internal/consts"
	"kbdcore-go/services/hal/internal/halcore"
	"kbdcore-go/services/hal/internal/util"
	"kbdcore-go/services/hal/keyboard"
	"kbdcore-go/types"
	"kbdcore-go/x/logx"
	"kbdcore-go/x/mathx"
	"kbdcore-go/x/timex"
)

// Resources are the platform pieces the HAL builds the keyboard from.
type Resources struct {
	I2C    halcore.I2CBusFactory
	Pins   halcore.PinFactory
	Layout keyboard.Layout
	Clock  timex.Clock

	// Initial, when set, is applied at start; config/keyboard overrides it.
	Initial *types.KeyboardConfig
}

// HAL owns the keyboard and runs the scan loop. Everything, including bus
// publication, happens on the Run goroutine.
type HAL struct {
	conn *bus.Connection
	res  Resources

	kb  *keyboard.Keyboard
	cfg types.KeyboardConfig

	cfgSub  *bus.Subscription
	ctrlSub *bus.Subscription
	timer   *time.Timer

	log logx.Logger
}

func NewHAL(conn *bus.Connection, res Resources) *HAL {
	if res.Clock == nil {
		res.Clock = timex.System{}
	}
	return &HAL{conn: conn, res: res, log: logx.Tag("hal")}
}

func (h *HAL) Run(ctx context.Context) {
	h.cfgSub = h.conn.Subscribe(topicConfigKeyboard())
	h.ctrlSub = h.conn.Subscribe(ctrlWildcard())
	defer h.conn.Unsubscribe(h.cfgSub)
	defer h.conn.Unsubscribe(h.ctrlSub)

	h.timer = time.NewTimer(time.Hour)
	h.timer.Stop()
	defer h.timer.Stop()

	h.pubHALState(consts.LevelIdle, "awaiting_config")
	if h.res.Initial != nil {
		h.applyConfig(*h.res.Initial)
	}
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			h.pubHALState(consts.LevelStopped, "context_cancelled")
			return
		case msg := <-h.cfgSub.Channel():
			h.applyConfig(msg.Payload)
		case m := <-h.ctrlSub.Channel():
			if h.kb == nil {
				h.replyErr(m, errcode.HALNotReady)
				continue
			}
			h.handleControl(m)
		case <-h.timer.C:
			h.scan()
			util.ResetTimer(h.timer, h.period())
		}
	}
}

func (h *HAL) period() time.Duration {
	ms := mathx.Clamp(h.cfg.ScanPeriodMs, consts.MinScanPeriodMs, consts.MaxScanPeriodMs)
	return time.Duration(ms) * time.Millisecond
}

// applyConfig rebuilds the keyboard. The previous reader is released before
// the new one is constructed; caps lock survives the swap.
func (h *HAL) applyConfig(payload any) {
	cfg, err := decodeConfig(payload)
	if err != nil {
		h.log.Warn("config rejected:", err)
		if h.kb == nil {
			h.pubHALState(consts.LevelIdle, string(errcode.Of(err)))
		}
		return
	}

	caps := false
	if h.kb != nil {
		caps = h.kb.CapsLocked()
		h.shutdown()
	}

	h.cfg = cfg
	h.kb = keyboard.New(keyboard.Options{
		Config: cfg,
		I2C:    h.res.I2C,
		Pins:   h.res.Pins,
		Layout: h.res.Layout,
		Clock:  h.res.Clock,
	})
	h.kb.SetCapsLocked(caps)

	if err := h.kb.Init(cfg.Board); err != nil {
		h.log.Warn("keyboard init failed:", err)
		h.pubHALState(consts.LevelDegraded, string(errcode.Of(err)))
	} else {
		h.log.Info("keyboard ready:", h.kb.Board().String())
		h.pubHALState(consts.LevelReady, h.kb.Board().String())
	}
	h.publishState()
	util.ResetTimer(h.timer, h.period())
}

func (h *HAL) shutdown() {
	if h.kb == nil {
		return
	}
	if err := h.kb.Close(); err != nil {
		h.log.Warn("keyboard close:", err)
	}
	h.kb = nil
	h.timer.Stop()
	util.DrainTimer(h.timer)
}

// scan runs one keyboard update and publishes when the held count changed.
func (h *HAL) scan() {
	if h.kb == nil {
		return
	}
	h.kb.Update()
	if h.kb.IsChanged() {
		h.publishState()
	}
}

func (h *HAL) snapshot() types.KeyboardState {
	st := h.kb.ResolveState()
	return types.KeyboardState{
		Board:         h.kb.Board(),
		Keys:          append([]types.Point(nil), h.kb.Keys()...),
		State:         st.Clone(),
		CapsLocked:    h.kb.CapsLocked(),
		Dimmed:        h.kb.IsDimmed(),
		LastPressedMs: h.kb.LastPressedTime(),
		TS:            h.res.Clock.NowMs(),
	}
}

func (h *HAL) publishState() {
	h.conn.Publish(h.conn.NewMessage(TopicKeyboardState(), h.snapshot(), true))
}

func (h *HAL) pubHALState(level, status string) {
	h.conn.Publish(h.conn.NewMessage(
		topicHALState(),
		types.HALState{Level: level, Status: status, TS: h.res.Clock.NowMs()},
		true,
	))
}

func (h *HAL) handleControl(m *bus.Message) {
	// hal/keyboard/control/<verb>
	if m.Topic.Len() != 4 {
		h.replyErr(m, errcode.InvalidTopic)
		return
	}
	verb, _ := m.Topic.At(3).(string)

	switch verb {
	case consts.CtrlReadNow:
		h.kb.Update()
		h.kb.IsChanged() // the tick need not republish this frame
		h.publishState()
		h.replyValue(m, h.snapshot())

	case consts.CtrlCapsLock:
		on, err := util.DecodeBool(m.Payload)
		if err != nil {
			h.replyErr(m, errcode.InvalidPayload)
			return
		}
		h.kb.SetCapsLocked(on)
		h.publishState()
		h.replyOK(m)

	case consts.CtrlDimmed:
		on, err := util.DecodeBool(m.Payload)
		if err != nil {
			h.replyErr(m, errcode.InvalidPayload)
			return
		}
		h.kb.SetDimmed(on)
		h.publishState()
		h.replyOK(m)

	case consts.CtrlResetIdle:
		h.kb.ResetLastPressedTime()
		h.replyOK(m)

	case consts.CtrlReconfigure:
		board, code := decodeBoard(m.Payload)
		if code != "" {
			h.replyErr(m, code)
			return
		}
		if err := h.kb.Reconfigure(board); err != nil {
			h.pubHALState(consts.LevelDegraded, string(errcode.Of(err)))
			h.replyErr(m, errcode.Of(err))
			return
		}
		h.pubHALState(consts.LevelReady, h.kb.Board().String())
		h.publishState()
		h.replyOK(m)

	default:
		h.replyErr(m, errcode.Unsupported)
	}
}
