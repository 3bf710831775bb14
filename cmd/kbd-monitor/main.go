// cmd/kbd-monitor/main.go
//
// kbd-monitor runs the keyboard HAL against the build-selected setup and
// prints every bus message under hal/ plus the resolved key state.
package main

import (
	"context"
	"runtime"
	"time"

	"kbdcore-go/bus"
	"kbdcore-go/services/hal"
	"kbdcore-go/types"
)

func printTopicWith(prefix string, t bus.Topic) {
	print(prefix)
	print(" ")
	println(t.String())
}

func main() {
	time.Sleep(3 * time.Second)
	ctx := context.Background()

	println("[main] bootstrapping bus …")
	b := bus.NewBus(8)
	halConn := b.NewConnection("hal")
	uiConn := b.NewConnection("ui")

	println("[main] subscribing to hal/# for diagnostics …")
	mon := uiConn.Subscribe(bus.T("hal", "#"))
	go func() {
		for m := range mon.Channel() {
			printTopicWith("[monitor] <-", m.Topic)
			switch p := m.Payload.(type) {
			case types.HALState:
				println("[monitor]   level:", p.Level, "status:", p.Status)
			case types.KeyboardState:
				println("[monitor]   keys:", len(p.Keys), "word:", p.State.String(),
					"caps:", p.CapsLocked, "mods:", int(p.State.Modifiers))
			}
		}
	}()

	println("[main] starting hal.Run …")
	go hal.Run(ctx, halConn)

	time.Sleep(250 * time.Millisecond)

	readNow := hal.TopicControl("read_now")
	println("[main] sending read_now …")
	if reply, err := uiConn.RequestWait(ctx, uiConn.NewMessage(readNow, nil, false)); err != nil {
		println("[main] read_now error:", err.Error())
	} else {
		printTopicWith("[main] read_now reply on", reply.Topic)
	}

	// Blink caps lock so a viewer can see the state republish.
	caps := hal.TopicControl("caps_lock")
	on := false
	for {
		on = !on
		rctx, cancel := context.WithTimeout(ctx, time.Second)
		if _, err := uiConn.RequestWait(rctx, uiConn.NewMessage(caps, on, false)); err != nil {
			println("[main] caps_lock error:", err.Error())
		}
		cancel()
		printMem()
		time.Sleep(2 * time.Second)
	}
}

// printMem prints a compact snapshot of TinyGo runtime memory stats.
func printMem() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	println(
		"[mem]",
		"alloc:", uint32(ms.Alloc),
		"heapInuse:", uint32(ms.HeapInuse),
		"heapSys:", uint32(ms.HeapSys),
		"mallocs:", uint32(ms.Mallocs),
		"frees:", uint32(ms.Frees),
	)
}
