// Package rom loads CHIP-8 program images.
package rom

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8emu/internal/chip8"
)

// MaxSize is the largest program image that fits into the address space
// below the program start address.
const MaxSize = chip8.MemorySize - chip8.ProgramStart

// ROM is a loaded CHIP-8 program image.
type ROM struct {
	data []byte
}

// LoadFile reads a program image from the given file.
func LoadFile(name string) (*ROM, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening file '%s': %w", name, err)
	}
	defer func() {
		_ = file.Close()
	}()

	r, err := Load(file)
	if err != nil {
		return nil, fmt.Errorf("loading file '%s': %w", name, err)
	}
	return r, nil
}

// Load reads a program image from the reader and validates that it fits
// into the address space.
func Load(reader io.Reader) (*ROM, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading ROM data: %w", err)
	}
	if len(data) > MaxSize {
		return nil, fmt.Errorf("ROM size %d exceeds maximum of %d bytes", len(data), MaxSize)
	}

	return &ROM{data: data}, nil
}

// Data returns the program image bytes.
func (r *ROM) Data() []byte {
	return r.data
}

// Size returns the program image size in bytes.
func (r *ROM) Size() int {
	return len(r.data)
}
