package main

import (
	"context"
	"time"

	"kbdcore-go/bus"
	"kbdcore-go/services/config"
	"kbdcore-go/services/hal"
	"kbdcore-go/services/idle"
	"kbdcore-go/types"
	"kbdcore-go/x/logx"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)

	if tx, rx, baud, ok := hal.Console(); ok {
		logx.ConfigureUART(tx, rx, baud)
	}
	log := logx.Tag("main")
	log.Info("boot", hal.SetupName())

	ctx := context.Background()
	b := bus.NewBus(8)
	cfgConn := b.NewConnection("config")
	halConn := b.NewConnection("hal")
	idleConn := b.NewConnection("idle")
	ui := b.NewConnection("ui")

	config.NewConfigService().Start(context.WithValue(ctx, config.CtxDeviceKey, hal.SetupName()), cfgConn)
	go hal.Run(ctx, halConn)
	_ = idle.New().Start(ctx, idleConn)

	halState := ui.Subscribe(bus.T("hal", "state"))
	keys := ui.Subscribe(hal.TopicKeyboardState())
	for {
		select {
		case m := <-halState.Channel():
			if s, ok := m.Payload.(types.HALState); ok {
				log.Info("hal", s.Level, s.Status)
			}
		case m := <-keys.Channel():
			if s, ok := m.Payload.(types.KeyboardState); ok {
				log.Infof("%s keys=%d word=%q mods=%02x hid=%v", s.Board, len(s.Keys), s.State.String(), s.State.Modifiers, s.State.HIDKeys)
			}
		}
	}
}
