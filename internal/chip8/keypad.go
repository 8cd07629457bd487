package chip8

// Key identifies one of the 16 hexadecimal keypad keys.
type Key byte

// Keypad keys 0-F.
const (
	Key0 Key = 0x0
	Key1 Key = 0x1
	Key2 Key = 0x2
	Key3 Key = 0x3
	Key4 Key = 0x4
	Key5 Key = 0x5
	Key6 Key = 0x6
	Key7 Key = 0x7
	Key8 Key = 0x8
	Key9 Key = 0x9
	KeyA Key = 0xA
	KeyB Key = 0xB
	KeyC Key = 0xC
	KeyD Key = 0xD
	KeyE Key = 0xE
	KeyF Key = 0xF
)

// KeypadSize is the number of keypad keys.
const KeypadSize = 16

const keyDigits = "0123456789ABCDEF"

// String returns the hexadecimal name of the key.
func (k Key) String() string {
	if k >= KeypadSize {
		return "?"
	}
	return string(keyDigits[k])
}
