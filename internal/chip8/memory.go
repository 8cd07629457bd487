package chip8

// Memory layout and display constants.
const (
	// MemorySize is the size of the CHIP-8 address space in bytes.
	MemorySize = 0x1000

	// ProgramStart is the address where user programs begin execution.
	ProgramStart = 0x200

	// FontAddr is the base address of the font sprite table.
	FontAddr = 0x000

	// DisplayWidth and DisplayHeight are the video grid dimensions.
	DisplayWidth  = 64
	DisplayHeight = 32

	addressMask   = MemorySize - 1
	fontGlyphSize = 5
)

// font4x5 holds the sprite patterns for the hexadecimal digits 0-F,
// 5 bytes per glyph.
var font4x5 = [...]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Compile-time checks to ensure Memory implements the bus contracts.
var (
	_ CPUBus   = (*Memory)(nil)
	_ DelayBus = (*Memory)(nil)
	_ SoundBus = (*Memory)(nil)
)

// Memory is the concrete peripheral store of an emulation session: the
// 4 KB main memory, the video grid, the keypad state and the delay and
// sound counters. It implements the CPUBus, DelayBus and SoundBus
// contracts.
type Memory struct {
	memory [MemorySize]byte
	video  [DisplayWidth][DisplayHeight]bool
	keys   [KeypadSize]bool
	delay  byte
	sound  byte
}

// NewMemory returns a peripheral store with the font table burned in at
// the start of the address space and the program image copied to the
// program start address. Program bytes beyond the address space are
// dropped; the rom package rejects oversized images before they get
// here.
func NewMemory(program []byte) *Memory {
	m := &Memory{}
	copy(m.memory[FontAddr:], font4x5[:])
	copy(m.memory[ProgramStart:], program)
	return m
}

// ReadByte reads a byte from memory, truncating the address to the
// address space size.
func (m *Memory) ReadByte(addr uint16) byte {
	return m.memory[addr&addressMask]
}

// WriteByte writes a byte to memory, truncating the address to the
// address space size.
func (m *Memory) WriteByte(addr uint16, value byte) {
	m.memory[addr&addressMask] = value
}

// ReadKeypad reports whether the given key is pressed.
func (m *Memory) ReadKeypad(key Key) bool {
	return m.keys[key&0x0F]
}

// SetKey updates the pressed state of one keypad key. Frontends call
// this when translating host input events.
func (m *Memory) SetKey(key Key, pressed bool) {
	m.keys[key&0x0F] = pressed
}

// ClearScreen unsets every pixel of the video grid.
func (m *Memory) ClearScreen() {
	m.video = [DisplayWidth][DisplayHeight]bool{}
}

// ReadPixel returns the pixel state at the given coordinates, wrapping
// both axes.
func (m *Memory) ReadPixel(x, y byte) bool {
	return m.video[x%DisplayWidth][y%DisplayHeight]
}

// WritePixel sets the pixel state at the given coordinates, wrapping
// both axes.
func (m *Memory) WritePixel(x, y byte, on bool) {
	m.video[x%DisplayWidth][y%DisplayHeight] = on
}

// Pixels returns a copy of the video grid for the presentation layer to
// sample at its own cadence.
func (m *Memory) Pixels() [DisplayWidth][DisplayHeight]bool {
	return m.video
}

// ReadTimer returns the delay counter.
func (m *Memory) ReadTimer() byte {
	return m.delay
}

// WriteTimer sets the delay counter.
func (m *Memory) WriteTimer(value byte) {
	m.delay = value
}

// ReadDelay returns the delay counter.
func (m *Memory) ReadDelay() byte {
	return m.delay
}

// WriteDelay sets the delay counter.
func (m *Memory) WriteDelay(value byte) {
	m.delay = value
}

// ReadSound returns the sound counter.
func (m *Memory) ReadSound() byte {
	return m.sound
}

// WriteSound sets the sound counter.
func (m *Memory) WriteSound(value byte) {
	m.sound = value
}
