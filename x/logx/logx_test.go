package logx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	SetSink(func(s string) { lines = append(lines, s) })
	t.Cleanup(func() {
		SetSink(nil)
		SetLevel(LevelInfo)
	})
	return &lines
}

func TestTaggedLines(t *testing.T) {
	lines := capture(t)
	log := Tag("kbd")

	log.Info("controller", "ready", 3)
	log.Warnf("bus %s failed after %d ms", "i2c0", 25)

	assert.Equal(t, []string{
		"[kbd] controller ready 3",
		"[kbd] bus i2c0 failed after 25 ms",
	}, *lines)
}

func TestLevelFilter(t *testing.T) {
	lines := capture(t)
	log := Tag("hal")

	log.Debug("hidden")
	SetLevel(LevelError)
	log.Warn("hidden too")
	log.Error("shown")

	assert.Equal(t, []string{"[hal] shown"}, *lines)
}
