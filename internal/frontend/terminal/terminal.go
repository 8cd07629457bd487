// Package terminal implements a termbox frontend rendering the video
// grid as text cells.
package terminal

import (
	"fmt"
	"time"
	"unicode"

	termbox "github.com/nsf/termbox-go"
	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/emulator"
)

const (
	pixelRune = '█'

	// keyDecay releases a key this long after its press event. The
	// terminal delivers no key release events, so a pressed key expires
	// instead.
	keyDecay = 100 * time.Millisecond
)

// keymap translates the left block of a QWERTY keyboard to the 4x4
// CHIP-8 keypad, mirroring the SDL frontend layout.
var keymap = map[rune]chip8.Key{
	'1': chip8.Key1,
	'2': chip8.Key2,
	'3': chip8.Key3,
	'4': chip8.KeyC,
	'q': chip8.Key4,
	'w': chip8.Key5,
	'e': chip8.Key6,
	'r': chip8.KeyD,
	'a': chip8.Key7,
	's': chip8.Key8,
	'd': chip8.Key9,
	'f': chip8.KeyE,
	'z': chip8.KeyA,
	'x': chip8.Key0,
	'c': chip8.KeyB,
	'v': chip8.KeyF,
}

var _ emulator.Frontend = (*Frontend)(nil)

// Frontend renders the video grid into the terminal. Input events are
// read on a separate goroutine since termbox polling blocks.
type Frontend struct {
	events  chan termbox.Event
	pressed map[chip8.Key]time.Time
}

// New initializes the terminal and starts the input event reader.
func New() (*Frontend, error) {
	if err := termbox.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}

	f := &Frontend{
		events:  make(chan termbox.Event, 16),
		pressed: map[chip8.Key]time.Time{},
	}

	go f.readEvents(termbox.PollEvent)
	return f, nil
}

// readEvents forwards terminal events to the poll channel until an
// interrupt arrives. Events are dropped when the channel is full so a
// pending send can never block out the interrupt.
func (f *Frontend) readEvents(poll func() termbox.Event) {
	for {
		event := poll()
		if event.Type == termbox.EventInterrupt {
			return
		}
		select {
		case f.events <- event:
		default:
		}
	}
}

// PollInput expires stale key presses and drains pending terminal
// events. It reports true when escape or ctrl-c was pressed.
func (f *Frontend) PollInput(keypad emulator.Keypad) bool {
	now := time.Now()
	for key, pressedAt := range f.pressed {
		if now.Sub(pressedAt) < keyDecay {
			continue
		}
		keypad.SetKey(key, false)
		delete(f.pressed, key)
	}

	for {
		select {
		case event := <-f.events:
			if f.handleEvent(event, keypad) {
				return true
			}
		default:
			return false
		}
	}
}

func (f *Frontend) handleEvent(event termbox.Event, keypad emulator.Keypad) bool {
	if event.Type != termbox.EventKey {
		return false
	}
	if event.Key == termbox.KeyEsc || event.Key == termbox.KeyCtrlC {
		return true
	}

	key, ok := keymap[unicode.ToLower(event.Ch)]
	if !ok {
		return false
	}
	keypad.SetKey(key, true)
	f.pressed[key] = time.Now()
	return false
}

// Render draws the video grid as one cell per pixel.
func (f *Frontend) Render(pixels [chip8.DisplayWidth][chip8.DisplayHeight]bool) {
	_ = termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)

	for x := range chip8.DisplayWidth {
		for y := range chip8.DisplayHeight {
			if !pixels[x][y] {
				continue
			}
			termbox.SetCell(x, y, pixelRune, termbox.ColorDefault, termbox.ColorDefault)
		}
	}

	_ = termbox.Flush()
}

// UpdateAudio is a no-op, the terminal has no audio output.
func (f *Frontend) UpdateAudio(bool) {}

// Close stops the input reader and restores the terminal.
func (f *Frontend) Close() {
	termbox.Interrupt()
	termbox.Close()
}
