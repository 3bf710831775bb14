//go:build rp2040 || rp2350

package logx

import (
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
)

var console *uartx.UART

// defaultSink falls back to the USB CDC console until a UART is configured.
func defaultSink(line string) {
	if console == nil {
		println(line)
		return
	}
	_, _ = console.Write([]byte(line))
	_, _ = console.Write([]byte("\r\n"))
}

// ConfigureUART routes log lines to uart0 on the given pins.
func ConfigureUART(tx, rx int, baud uint32) {
	hw := uartx.UART0
	if err := hw.Configure(uartx.UARTConfig{
		BaudRate: baud,
		TX:       machine.Pin(tx),
		RX:       machine.Pin(rx),
	}); err != nil {
		println("[logx] uart configure failed:", err.Error())
		return
	}
	mu.Lock()
	console = hw
	mu.Unlock()
}
