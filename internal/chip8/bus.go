package chip8

// CPUBus is the peripheral access contract the CPU executes against.
// Implementations truncate addresses to the 4 KB address space and wrap
// pixel coordinates modulo the display dimensions, so no call has a
// failure path. Implementations are not safe for concurrent use; the
// driver owns the single logical thread of control.
type CPUBus interface {
	// memory
	ReadByte(addr uint16) byte
	WriteByte(addr uint16, value byte)

	// keypad
	ReadKeypad(key Key) bool

	// screen
	ClearScreen()
	ReadPixel(x, y byte) bool
	WritePixel(x, y byte, on bool)

	// delay timer
	ReadTimer() byte
	WriteTimer(value byte)

	// sound timer
	WriteSound(value byte)
}

// DelayBus is the counter access contract of the delay timer unit.
type DelayBus interface {
	ReadDelay() byte
	WriteDelay(value byte)
}

// SoundBus is the counter access contract of the sound timer unit.
type SoundBus interface {
	ReadSound() byte
	WriteSound(value byte)
}
