// Package main implements the main entry point for a CHIP-8 emulator
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/chip8emu/internal/cli"
	"github.com/retroenv/chip8emu/internal/config"
	"github.com/retroenv/chip8emu/internal/emulator"
	"github.com/retroenv/chip8emu/internal/frontend/sdl"
	"github.com/retroenv/chip8emu/internal/frontend/terminal"
	"github.com/retroenv/chip8emu/internal/options"
	"github.com/retroenv/chip8emu/internal/rom"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			printBanner(opts)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	printBanner(opts)

	if err := run(ctx, logger, opts); err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Emulation stopped")
			return
		}
		logger.Fatal("Emulation failed", log.Err(err))
	}
}

func printBanner(opts options.Program) {
	if opts.Quiet {
		return
	}
	fmt.Println("[------------------------------]")
	fmt.Println("[ chip8emu - CHIP-8 emulator   ]")
	fmt.Printf("[------------------------------]\n\n")
	fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
}

func run(ctx context.Context, logger *log.Logger, opts options.Program) error {
	image, err := rom.LoadFile(opts.ROM)
	if err != nil {
		return err
	}

	logger.Info("Running CHIP-8 ROM",
		log.String("file", opts.ROM),
		log.Int("size", image.Size()),
		log.String("frontend", opts.Frontend),
	)

	cfg := emulator.DefaultConfig()
	cfg.CPUHz = opts.Cycles
	emu := emulator.New(logger, image.Data(), cfg)

	frontend, err := createFrontend(opts)
	if err != nil {
		return fmt.Errorf("creating frontend: %w", err)
	}

	return emu.Run(ctx, frontend)
}

func createFrontend(opts options.Program) (emulator.Frontend, error) {
	switch opts.Frontend {
	case options.FrontendTerminal:
		return terminal.New()
	default:
		return sdl.New("chip8emu - "+opts.ROM, opts.Scale, opts.Mute)
	}
}
