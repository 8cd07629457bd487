// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/chip8emu/internal/options"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(flags, args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	opts.ROM = args[0]
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	fmt.Printf("usage: chip8emu [options] <ROM file to run>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(flags *flag.FlagSet, args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Frontend = strings.ToLower(opts.Frontend)

	switch opts.Frontend {
	case options.FrontendSDL, options.FrontendTerminal:
	default:
		return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
			opts.Frontend, strings.Join([]string{options.FrontendSDL, options.FrontendTerminal}, ", "))
	}

	if opts.Cycles <= 0 {
		return fmt.Errorf("invalid cycles value: %d", opts.Cycles)
	}
	if opts.Scale <= 0 {
		return fmt.Errorf("invalid scale value: %d", opts.Scale)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Frontend, "frontend", options.FrontendSDL, "frontend to present the machine with (sdl/terminal)")
	flags.IntVar(&opts.Scale, "scale", 10, "window scale factor of the SDL frontend")
	flags.IntVar(&opts.Cycles, "cycles", 500, "CPU instructions to execute per second")
	flags.BoolVar(&opts.Mute, "mute", false, "disable audio output")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
