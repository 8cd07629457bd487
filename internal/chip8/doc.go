// Package chip8 implements the CHIP-8 virtual machine core.
//
// The package contains the CPU execution engine, the peripheral access
// contracts and the concrete peripheral store. The CPU reaches its
// peripherals exclusively through the CPUBus interface, so the store can
// be swapped for a test double without touching the execution logic.
//
// Memory layout (4KB total):
//
//	0x000-0x1FF: font sprite table and reserved interpreter area
//	0x200-0xFFF: user program space
//
// The core is single threaded and keeps no notion of time: a driver
// invokes CPU.Step at the CPU clock rate and the timer units at 60 Hz.
// Correctness depends only on call counts, never on elapsed wall clock
// time. See the emulator package for the reference driver.
package chip8
