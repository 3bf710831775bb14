// Package logx is the tagged line logger used across the firmware.
//
// Lines look like "[kbd] controller begin failed". The sink is chosen per
// build: stderr on host, a UART console on RP2 targets.
package logx

import (
	"fmt"
	"sync"
)

type Level uint8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelOff
)

var (
	mu    sync.Mutex
	floor = LevelInfo
	write = defaultSink
)

// SetLevel drops lines below l.
func SetLevel(l Level) {
	mu.Lock()
	floor = l
	mu.Unlock()
}

// SetSink redirects output; nil restores the platform default.
func SetSink(fn func(line string)) {
	mu.Lock()
	if fn == nil {
		fn = defaultSink
	}
	write = fn
	mu.Unlock()
}

// Logger prefixes every line with its tag.
type Logger struct {
	tag string
}

func Tag(tag string) Logger { return Logger{tag: tag} }

func (l Logger) Debug(args ...any) { l.emit(LevelDebug, args) }
func (l Logger) Info(args ...any)  { l.emit(LevelInfo, args) }
func (l Logger) Warn(args ...any)  { l.emit(LevelWarn, args) }
func (l Logger) Error(args ...any) { l.emit(LevelError, args) }

func (l Logger) Infof(format string, args ...any) {
	l.emitLine(LevelInfo, fmt.Sprintf(format, args...))
}

func (l Logger) Warnf(format string, args ...any) {
	l.emitLine(LevelWarn, fmt.Sprintf(format, args...))
}

func (l Logger) emit(lv Level, args []any) {
	if !enabled(lv) {
		return
	}
	s := fmt.Sprintln(args...)
	l.emitLine(lv, s[:len(s)-1])
}

func (l Logger) emitLine(lv Level, msg string) {
	mu.Lock()
	defer mu.Unlock()
	if lv < floor {
		return
	}
	write("[" + l.tag + "] " + msg)
}

func enabled(lv Level) bool {
	mu.Lock()
	defer mu.Unlock()
	return lv >= floor
}
