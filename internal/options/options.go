// Package options contains the program options.
package options

// Supported frontend names.
const (
	FrontendSDL      = "sdl"
	FrontendTerminal = "terminal"
)

// Program options of the emulator.
type Program struct {
	ROM      string // name of the ROM file to run
	Frontend string // frontend to present the machine with

	Scale  int // window scale factor of the SDL frontend
	Cycles int // CPU instructions per second

	Mute  bool
	Debug bool
	Quiet bool
}
