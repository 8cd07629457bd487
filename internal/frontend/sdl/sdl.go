// Package sdl implements an SDL2 window frontend with beeper audio.
package sdl

import (
	"fmt"

	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/emulator"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	backgroundColor = 0x1A237E
	foregroundColor = 0x9FA8DA

	audioFreq   = 44100
	beepFreq    = 440
	beepVolume  = 24
	audioCenter = 128

	// queuedAudioTarget keeps roughly a quarter second of samples
	// queued while the beeper is on.
	queuedAudioTarget = audioFreq / 4
)

// keymap translates the left block of a QWERTY keyboard to the 4x4
// CHIP-8 keypad:
//
//	1 2 3 4        1 2 3 C
//	Q W E R   ->   4 5 6 D
//	A S D F        7 8 9 E
//	Z X C V        A 0 B F
var keymap = map[sdl.Scancode]chip8.Key{
	sdl.SCANCODE_1: chip8.Key1,
	sdl.SCANCODE_2: chip8.Key2,
	sdl.SCANCODE_3: chip8.Key3,
	sdl.SCANCODE_4: chip8.KeyC,
	sdl.SCANCODE_Q: chip8.Key4,
	sdl.SCANCODE_W: chip8.Key5,
	sdl.SCANCODE_E: chip8.Key6,
	sdl.SCANCODE_R: chip8.KeyD,
	sdl.SCANCODE_A: chip8.Key7,
	sdl.SCANCODE_S: chip8.Key8,
	sdl.SCANCODE_D: chip8.Key9,
	sdl.SCANCODE_F: chip8.KeyE,
	sdl.SCANCODE_Z: chip8.KeyA,
	sdl.SCANCODE_X: chip8.Key0,
	sdl.SCANCODE_C: chip8.KeyB,
	sdl.SCANCODE_V: chip8.KeyF,
}

var _ emulator.Frontend = (*Frontend)(nil)

// Frontend renders the video grid into an SDL window and plays a square
// wave while the beeper is on.
type Frontend struct {
	window  *sdl.Window
	surface *sdl.Surface
	audio   sdl.AudioDeviceID

	scale   int32
	mute    bool
	beeping bool
}

// New initializes SDL and opens the emulator window.
func New(title string, scale int, mute bool) (*Frontend, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("initializing SDL: %w", err)
	}

	f := &Frontend{
		scale: int32(scale),
		mute:  mute,
	}

	window, err := sdl.CreateWindow(title,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		chip8.DisplayWidth*f.scale, chip8.DisplayHeight*f.scale,
		sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}
	f.window = window

	surface, err := window.GetSurface()
	if err != nil {
		return nil, fmt.Errorf("getting window surface: %w", err)
	}
	f.surface = surface

	if !mute {
		if err := f.openAudio(); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (f *Frontend) openAudio() error {
	spec := &sdl.AudioSpec{
		Freq:     audioFreq,
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  1024,
	}

	audio, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		return fmt.Errorf("opening audio device: %w", err)
	}
	f.audio = audio
	return nil
}

// PollInput drains pending SDL events, translating key events to keypad
// state changes. It reports true when the window got closed or escape
// was pressed.
func (f *Frontend) PollInput(keypad emulator.Keypad) bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch t := event.(type) {
		case *sdl.QuitEvent:
			return true

		case *sdl.KeyboardEvent:
			if t.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
				return true
			}
			key, ok := keymap[t.Keysym.Scancode]
			if !ok {
				continue
			}
			keypad.SetKey(key, t.GetType() == sdl.KEYDOWN)
		}
	}
	return false
}

// Render draws the video grid scaled into the window surface.
func (f *Frontend) Render(pixels [chip8.DisplayWidth][chip8.DisplayHeight]bool) {
	_ = f.surface.FillRect(nil, backgroundColor)

	for x := int32(0); x < chip8.DisplayWidth; x++ {
		for y := int32(0); y < chip8.DisplayHeight; y++ {
			if !pixels[x][y] {
				continue
			}
			rect := sdl.Rect{
				X: x * f.scale,
				Y: y * f.scale,
				W: f.scale,
				H: f.scale,
			}
			_ = f.surface.FillRect(&rect, foregroundColor)
		}
	}

	_ = f.window.UpdateSurface()
}

// UpdateAudio starts or stops the beeper square wave.
func (f *Frontend) UpdateAudio(beeping bool) {
	if f.mute {
		return
	}

	if beeping {
		f.queueSquareWave()
	}
	if beeping == f.beeping {
		return
	}
	f.beeping = beeping
	sdl.PauseAudioDevice(f.audio, !beeping)
}

// queueSquareWave keeps the audio queue topped up with a square wave
// while the beeper is running.
func (f *Frontend) queueSquareWave() {
	if sdl.GetQueuedAudioSize(f.audio) >= queuedAudioTarget {
		return
	}

	halfPeriod := audioFreq / beepFreq / 2
	samples := make([]byte, queuedAudioTarget)
	for i := range samples {
		if (i/halfPeriod)%2 == 0 {
			samples[i] = audioCenter + beepVolume
		} else {
			samples[i] = audioCenter - beepVolume
		}
	}
	_ = sdl.QueueAudio(f.audio, samples)
}

// Close releases the window and audio device and shuts down SDL.
func (f *Frontend) Close() {
	if f.audio != 0 {
		sdl.CloseAudioDevice(f.audio)
	}
	if f.window != nil {
		_ = f.window.Destroy()
	}
	sdl.Quit()
}
