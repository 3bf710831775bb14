package timex

import "time"

// start carries the monotonic reading every NowMs is measured from.
var start = time.Now()

// NowMs returns monotonic milliseconds since process start. Wall-clock steps
// do not affect it.
func NowMs() int64 { return time.Since(start).Milliseconds() }

// Clock is the millisecond time source consumed by the keyboard.
type Clock interface {
	NowMs() int64
	Sleep(ms int)
}

// System is the wall clock.
type System struct{}

func (System) NowMs() int64 { return NowMs() }
func (System) Sleep(ms int) { time.Sleep(time.Duration(ms) * time.Millisecond) }

// Fake is a manual clock for tests. Sleep advances time instead of blocking,
// and runs OnSleep (if set) after each advance.
type Fake struct {
	Ms      int64
	OnSleep func()
}

func (f *Fake) NowMs() int64 { return f.Ms }

func (f *Fake) Sleep(ms int) {
	f.Ms += int64(ms)
	if f.OnSleep != nil {
		f.OnSleep()
	}
}

// Since returns the milliseconds elapsed from t on c.
func Since(c Clock, t int64) int64 { return c.NowMs() - t }
