package chip8

// DelayTimer decrements the delay counter of a peripheral store. The
// driver ticks it at 60 Hz.
type DelayTimer struct{}

// NewDelayTimer returns a new delay timer unit.
func NewDelayTimer() *DelayTimer {
	return &DelayTimer{}
}

// Tick decrements the delay counter by one if it is not zero.
func (d *DelayTimer) Tick(bus DelayBus) {
	if value := bus.ReadDelay(); value > 0 {
		bus.WriteDelay(value - 1)
	}
}

// SoundTimer decrements the sound counter of a peripheral store and
// latches whether the machine is currently audible. The driver ticks it
// at 60 Hz.
type SoundTimer struct {
	beeping bool
}

// NewSoundTimer returns a new sound timer unit.
func NewSoundTimer() *SoundTimer {
	return &SoundTimer{}
}

// Tick latches the audible state and decrements the sound counter by
// one if it is not zero.
func (s *SoundTimer) Tick(bus SoundBus) {
	value := bus.ReadSound()
	s.beeping = value > 0

	if s.beeping {
		bus.WriteSound(value - 1)
	}
}

// Beeping reports whether the sound counter was nonzero at the last
// tick. The audio layer samples this without mutating any state.
func (s *SoundTimer) Beeping() bool {
	return s.beeping
}
