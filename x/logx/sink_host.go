//go:build !rp2040 && !rp2350

package logx

import (
	"fmt"
	"os"
)

func defaultSink(line string) { fmt.Fprintln(os.Stderr, line) }

// ConfigureUART is a no-op on host builds.
func ConfigureUART(tx, rx int, baud uint32) {}
