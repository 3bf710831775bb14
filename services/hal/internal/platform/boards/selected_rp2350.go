//go:build rp2350

package boards

var Selected = Pico2
