package chip8

// testBus is an in-memory CPUBus implementation used to exercise the
// CPU without the concrete peripheral store. It counts ClearScreen
// calls so tests can verify dispatch.
type testBus struct {
	memory [MemorySize]byte
	screen [DisplayWidth][DisplayHeight]bool
	keypad [KeypadSize]bool
	delay  byte
	sound  byte

	clearScreenCalls int
}

func newTestBus() *testBus {
	return &testBus{}
}

func (b *testBus) ReadByte(addr uint16) byte {
	return b.memory[addr&addressMask]
}

func (b *testBus) WriteByte(addr uint16, value byte) {
	b.memory[addr&addressMask] = value
}

func (b *testBus) ReadKeypad(key Key) bool {
	return b.keypad[key&0x0F]
}

func (b *testBus) ClearScreen() {
	b.screen = [DisplayWidth][DisplayHeight]bool{}
	b.clearScreenCalls++
}

func (b *testBus) ReadPixel(x, y byte) bool {
	return b.screen[x%DisplayWidth][y%DisplayHeight]
}

func (b *testBus) WritePixel(x, y byte, on bool) {
	b.screen[x%DisplayWidth][y%DisplayHeight] = on
}

func (b *testBus) ReadTimer() byte {
	return b.delay
}

func (b *testBus) WriteTimer(value byte) {
	b.delay = value
}

func (b *testBus) ReadDelay() byte {
	return b.delay
}

func (b *testBus) WriteDelay(value byte) {
	b.delay = value
}

func (b *testBus) ReadSound() byte {
	return b.sound
}

func (b *testBus) WriteSound(value byte) {
	b.sound = value
}
