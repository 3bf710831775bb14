//go:build rp2040

package boards

var Selected = Pico
