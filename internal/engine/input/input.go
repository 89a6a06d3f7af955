// Package input turns SDL2 events into the few events the demo reacts to.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies an input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
}

// Input polls SDL events once per frame.
type Input struct {
	events []Event
	held   map[sdl.Scancode]bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
		held:   make(map[sdl.Scancode]bool),
	}
}

// Update drains the SDL event queue. It returns true once the user asks to
// quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue
			}
			i.record(e.Keysym.Scancode, e.Type == sdl.KEYDOWN)
		}
	}
	return quit
}

func (i *Input) record(key sdl.Scancode, down bool) {
	typ := EventKeyUp
	if down {
		typ = EventKeyDown
	}
	i.held[key] = down
	i.events = append(i.events, Event{Type: typ, Key: key})
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed reports whether key went down this frame.
func (i *Input) IsKeyPressed(key sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == key {
			return true
		}
	}
	return false
}

// IsKeyDown reports whether key is currently held.
func (i *Input) IsKeyDown(key sdl.Scancode) bool {
	return i.held[key]
}
