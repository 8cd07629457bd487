// Package emulator drives a CHIP-8 machine: it owns the CPU, the
// peripheral store and the timers and clocks them against a frontend.
package emulator

import (
	"context"
	"time"

	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/retrogolib/log"
)

// Keypad receives key state changes translated from host input events.
type Keypad interface {
	SetKey(key chip8.Key, pressed bool)
}

// Frontend presents the machine state to the user and feeds input back.
// Implementations are driven from the Run loop and need not be safe for
// concurrent use.
type Frontend interface {
	// PollInput processes pending host input events and reports whether
	// the user requested to quit.
	PollInput(keypad Keypad) bool

	// Render presents the video grid.
	Render(pixels [chip8.DisplayWidth][chip8.DisplayHeight]bool)

	// UpdateAudio adjusts audio output to the beeper state.
	UpdateAudio(beeping bool)

	// Close releases the frontend resources.
	Close()
}

// Config holds the clock rates of the emulation loop.
type Config struct {
	CPUHz   int // instructions per second
	TimerHz int // delay and sound timer rate
	VideoHz int // render rate
}

// DefaultConfig returns the commonly used clock rates.
func DefaultConfig() Config {
	return Config{
		CPUHz:   500,
		TimerHz: 60,
		VideoHz: 50,
	}
}

// Emulator is a complete CHIP-8 machine.
type Emulator struct {
	logger *log.Logger
	cfg    Config

	cpu     *chip8.CPU
	mem     *chip8.Memory
	delay   *chip8.DelayTimer
	sound   *chip8.SoundTimer
	program []byte
}

// New returns an emulator with the given program image loaded.
func New(logger *log.Logger, program []byte, cfg Config) *Emulator {
	return &Emulator{
		logger:  logger,
		cfg:     cfg,
		cpu:     chip8.NewCPU(logger),
		mem:     chip8.NewMemory(program),
		delay:   chip8.NewDelayTimer(),
		sound:   chip8.NewSoundTimer(),
		program: program,
	}
}

// Step executes a single CPU instruction.
func (e *Emulator) Step() {
	e.cpu.Step(e.mem)
}

// TickTimers advances the delay and sound timers by one tick.
func (e *Emulator) TickTimers() {
	e.delay.Tick(e.mem)
	e.sound.Tick(e.mem)
}

// Beeping reports whether the sound timer is running.
func (e *Emulator) Beeping() bool {
	return e.sound.Beeping()
}

// Pixels returns a copy of the video grid.
func (e *Emulator) Pixels() [chip8.DisplayWidth][chip8.DisplayHeight]bool {
	return e.mem.Pixels()
}

// SetKey updates the pressed state of one keypad key.
func (e *Emulator) SetKey(key chip8.Key, pressed bool) {
	e.mem.SetKey(key, pressed)
}

// Reset restores the machine to its power-on state with the program
// image reloaded.
func (e *Emulator) Reset() {
	e.cpu.Reset()
	e.mem = chip8.NewMemory(e.program)
	e.delay = chip8.NewDelayTimer()
	e.sound = chip8.NewSoundTimer()
}

// Run clocks the machine against the frontend until the context is
// cancelled or the frontend reports a quit request. The CPU, timers and
// renderer run at their configured rates, catching up after each sleep.
func (e *Emulator) Run(ctx context.Context, frontend Frontend) error {
	defer frontend.Close()

	e.logger.Debug("Starting emulation",
		log.Int("cpu_hz", e.cfg.CPUHz),
		log.Int("timer_hz", e.cfg.TimerHz),
		log.Int("video_hz", e.cfg.VideoHz),
	)

	cpuPeriod := time.Second / time.Duration(e.cfg.CPUHz)
	timerPeriod := time.Second / time.Duration(e.cfg.TimerHz)
	videoPeriod := time.Second / time.Duration(e.cfg.VideoHz)

	var cpuLag, timerLag, videoLag time.Duration
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if frontend.PollInput(e.mem) {
			return nil
		}

		now := time.Now()
		delta := now.Sub(last)
		last = now

		cpuLag += delta
		for cpuLag >= cpuPeriod {
			e.Step()
			cpuLag -= cpuPeriod
		}

		timerLag += delta
		for timerLag >= timerPeriod {
			e.TickTimers()
			timerLag -= timerPeriod
		}
		frontend.UpdateAudio(e.Beeping())

		videoLag += delta
		if videoLag >= videoPeriod {
			frontend.Render(e.Pixels())
			videoLag = 0
		}

		time.Sleep(10 * time.Millisecond)
	}
}
