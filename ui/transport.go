// Package ui holds the preview window's transport bar and HUD. The
// slider is the scrub surface: dragging it issues engine seeks.
package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// TransportState is the result of drawing the transport for one frame.
type TransportState struct {
	// Frame the slider sits at after input.
	Frame int32
	// Scrubbed is true when the user moved the slider this frame.
	Scrubbed bool
	// Playing is the play/pause state after input.
	Playing bool
}

// Transport is the bottom bar: play/pause, frame slider, frame readout.
type Transport struct {
	maxFrame int32
	playing  bool
}

// NewTransport creates a transport covering frames [0, maxFrame].
func NewTransport(maxFrame int32) *Transport {
	return &Transport{maxFrame: maxFrame}
}

// TogglePlay flips play/pause (space bar handler).
func (t *Transport) TogglePlay() bool {
	t.playing = !t.playing
	return t.playing
}

// Playing reports the current play state.
func (t *Transport) Playing() bool { return t.playing }

// SetPlaying forces the play state (used when a scrub pauses playback).
func (t *Transport) SetPlaying(p bool) { t.playing = p }

// MaxFrame returns the last scrubbable frame.
func (t *Transport) MaxFrame() int32 { return t.maxFrame }

// Draw renders the bar at the bottom of the viewport and returns the
// post-input state. frame is the engine's current frame.
func (t *Transport) Draw(frame int32, viewportW, viewportH float32) TransportState {
	barH := float32(44)
	y := viewportH - barH
	rl.DrawRectangle(0, int32(y), int32(viewportW), int32(barH), rl.Color{R: 25, G: 25, B: 32, A: 235})

	// Play/pause button.
	label := "Play"
	if t.playing {
		label = "Pause"
	}
	if gui.Button(rl.Rectangle{X: 10, Y: y + 10, Width: 70, Height: 24}, label) {
		t.playing = !t.playing
	}

	// Frame slider.
	sliderX := float32(95)
	sliderW := viewportW - sliderX - 130
	newFrame := gui.SliderBar(
		rl.Rectangle{X: sliderX, Y: y + 12, Width: sliderW, Height: 20},
		"0", fmt.Sprintf("%d", t.maxFrame),
		float32(frame), 0, float32(t.maxFrame),
	)

	state := TransportState{Frame: frame, Playing: t.playing}
	if int32(newFrame) != frame {
		state.Frame = int32(newFrame)
		state.Scrubbed = true
		// A scrub pauses playback so the playhead stays where the user
		// put it.
		t.playing = false
		state.Playing = false
	}

	rl.DrawText(fmt.Sprintf("frame %d", state.Frame), int32(viewportW-115), int32(y+14), 16, rl.RayWhite)
	return state
}

// HUD draws the top-left status lines.
func HUD(lines []string) {
	y := int32(10)
	for _, line := range lines {
		rl.DrawText(line, 10, y, 16, rl.Color{R: 200, G: 200, B: 210, A: 255})
		y += 20
	}
}
