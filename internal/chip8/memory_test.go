package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestMemory_New(t *testing.T) {
	program := []byte{0x12, 0x34, 0x56}
	m := NewMemory(program)

	// font table at the start of the address space
	for addr, want := range font4x5 {
		assert.Equal(t, want, m.ReadByte(uint16(addr)))
	}

	assert.Equal(t, byte(0x12), m.ReadByte(ProgramStart))
	assert.Equal(t, byte(0x34), m.ReadByte(ProgramStart+1))
	assert.Equal(t, byte(0x56), m.ReadByte(ProgramStart+2))
	assert.Equal(t, byte(0x00), m.ReadByte(ProgramStart+3))
}

func TestMemory_AddressTruncation(t *testing.T) {
	m := NewMemory(nil)

	m.WriteByte(0x1234, 0xAB)

	assert.Equal(t, byte(0xAB), m.ReadByte(0x0234))
	assert.Equal(t, byte(0xAB), m.ReadByte(0x1234))
}

func TestMemory_PixelWrap(t *testing.T) {
	m := NewMemory(nil)

	m.WritePixel(DisplayWidth, DisplayHeight, true)

	assert.True(t, m.ReadPixel(0, 0))
	assert.False(t, m.ReadPixel(1, 1))
}

func TestMemory_ClearScreen(t *testing.T) {
	m := NewMemory(nil)
	m.WritePixel(5, 5, true)
	m.WritePixel(63, 31, true)

	m.ClearScreen()

	assert.False(t, m.ReadPixel(5, 5))
	assert.False(t, m.ReadPixel(63, 31))
}

func TestMemory_Pixels(t *testing.T) {
	m := NewMemory(nil)
	m.WritePixel(3, 4, true)

	pixels := m.Pixels()
	assert.True(t, pixels[3][4])

	// the returned grid is a copy
	pixels[3][4] = false
	assert.True(t, m.ReadPixel(3, 4))
}

func TestMemory_Keypad(t *testing.T) {
	m := NewMemory(nil)

	assert.False(t, m.ReadKeypad(Key5))

	m.SetKey(Key5, true)
	assert.True(t, m.ReadKeypad(Key5))
	assert.True(t, m.ReadKeypad(0x15)) // key index wraps

	m.SetKey(Key5, false)
	assert.False(t, m.ReadKeypad(Key5))
}

func TestMemory_Timers(t *testing.T) {
	m := NewMemory(nil)

	m.WriteTimer(0x10)
	assert.Equal(t, byte(0x10), m.ReadTimer())
	assert.Equal(t, byte(0x10), m.ReadDelay())

	m.WriteDelay(0x20)
	assert.Equal(t, byte(0x20), m.ReadTimer())

	m.WriteSound(0x30)
	assert.Equal(t, byte(0x30), m.ReadSound())
}
