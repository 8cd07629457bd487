package emulator

import (
	"context"
	"testing"

	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// testProgram sets the sound timer to 2, draws a single pixel at the
// top left corner and loops forever.
var testProgram = []byte{
	0x63, 0x02, // load 2 into V3
	0xF3, 0x18, // set sound timer to V3
	0xA2, 0x0A, // point I at the sprite data
	0xD0, 0x01, // draw 1 row at (V0, V0)
	0x12, 0x08, // jump to self
	0x80, // sprite data, single pixel
}

func newTestEmulator(t *testing.T) *Emulator {
	t.Helper()
	return New(log.NewTestLogger(t), testProgram, DefaultConfig())
}

func TestEmulator_Step(t *testing.T) {
	emu := newTestEmulator(t)

	for range 4 {
		emu.Step()
	}

	pixels := emu.Pixels()
	assert.True(t, pixels[0][0])
	for y := 1; y < chip8.DisplayHeight; y++ {
		assert.False(t, pixels[0][y])
	}
}

func TestEmulator_TickTimers(t *testing.T) {
	emu := newTestEmulator(t)
	for range 2 {
		emu.Step() // run until the sound timer is set
	}

	emu.TickTimers()
	assert.True(t, emu.Beeping())

	emu.TickTimers()
	assert.True(t, emu.Beeping())

	emu.TickTimers()
	assert.False(t, emu.Beeping())
}

func TestEmulator_SetKey(t *testing.T) {
	// draws a pixel only when key 0 is pressed
	program := []byte{
		0xE0, 0x9E, // skip next instruction if key V0 is pressed
		0x12, 0x00, // jump back to the key check
		0xA2, 0x08, // point I at the sprite data
		0xD0, 0x01, // draw 1 row at (V0, V0)
		0x80, // sprite data, single pixel
	}
	emu := New(log.NewTestLogger(t), program, DefaultConfig())

	for range 4 {
		emu.Step()
	}
	assert.False(t, emu.Pixels()[0][0])

	emu.SetKey(chip8.Key0, true)
	for range 3 {
		emu.Step()
	}
	assert.True(t, emu.Pixels()[0][0])
}

func TestEmulator_Reset(t *testing.T) {
	emu := newTestEmulator(t)
	for range 4 {
		emu.Step()
	}
	assert.True(t, emu.Pixels()[0][0])

	emu.Reset()
	assert.False(t, emu.Pixels()[0][0])

	// the program image survives the reset
	for range 4 {
		emu.Step()
	}
	assert.True(t, emu.Pixels()[0][0])
}

// stubFrontend counts loop interactions and quits after a fixed number
// of input polls.
type stubFrontend struct {
	polls   int
	quitAt  int
	renders int
	closed  bool
	beeped  bool
}

func (s *stubFrontend) PollInput(Keypad) bool {
	s.polls++
	return s.polls >= s.quitAt
}

func (s *stubFrontend) Render([chip8.DisplayWidth][chip8.DisplayHeight]bool) {
	s.renders++
}

func (s *stubFrontend) UpdateAudio(beeping bool) {
	if beeping {
		s.beeped = true
	}
}

func (s *stubFrontend) Close() {
	s.closed = true
}

func TestEmulator_Run(t *testing.T) {
	emu := newTestEmulator(t)
	frontend := &stubFrontend{quitAt: 3}

	err := emu.Run(context.Background(), frontend)

	assert.NoError(t, err)
	assert.Equal(t, 3, frontend.polls)
	assert.True(t, frontend.closed)
}

func TestEmulator_RunCancelled(t *testing.T) {
	emu := newTestEmulator(t)
	frontend := &stubFrontend{quitAt: 1000}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := emu.Run(ctx, frontend)

	assert.Equal(t, context.Canceled, err)
	assert.True(t, frontend.closed)
}
