package chip8

import (
	"math/rand/v2"

	"github.com/retroenv/retrogolib/log"
)

const (
	vRegisters = 16
	stackDepth = 16

	// noKeyAwait marks the CPU as not waiting for a key press.
	noKeyAwait = -1
)

// CPU is the CHIP-8 execution engine. It executes one instruction per
// Step call and accesses its peripherals exclusively through the CPUBus
// contract.
type CPU struct {
	logger *log.Logger

	pc    uint16
	i     uint16
	v     [vRegisters]byte
	stack []uint16

	// keyAwait holds the register index a pressed key gets stored into,
	// or noKeyAwait. While set, Step polls the keypad instead of
	// advancing the instruction stream.
	keyAwait int

	random func() byte
}

// NewCPU returns a CPU in its power-on state.
func NewCPU(logger *log.Logger) *CPU {
	return &CPU{
		logger:   logger,
		pc:       ProgramStart,
		stack:    make([]uint16, 0, stackDepth),
		keyAwait: noKeyAwait,
		random:   func() byte { return byte(rand.UintN(0x100)) },
	}
}

// Reset restores the power-on CPU state: program counter at the program
// start, registers and index zeroed, call stack emptied and the key-wait
// latch cleared. Peripherals are untouched.
func (c *CPU) Reset() {
	c.pc = ProgramStart
	c.i = 0
	c.v = [vRegisters]byte{}
	c.stack = c.stack[:0]
	c.keyAwait = noKeyAwait
}

// Step executes a single fetch/decode/execute cycle. While the CPU
// waits for a key press it polls the keypad instead and does not
// advance the instruction stream.
func (c *CPU) Step(bus CPUBus) {
	if c.keyAwait != noKeyAwait {
		c.pollKeypad(bus)
		return
	}

	addr := c.pc
	op := c.fetch(bus)
	c.logger.Debug("Executing opcode",
		log.Hex("address", addr),
		log.Hex("opcode", uint16(op)),
	)
	c.execute(bus, op)
}

// pollKeypad scans the keypad in ascending key order and stores the
// first pressed key into the awaited register.
func (c *CPU) pollKeypad(bus CPUBus) {
	for key := Key(0); key < KeypadSize; key++ {
		if bus.ReadKeypad(key) {
			c.v[c.keyAwait] = byte(key)
			c.keyAwait = noKeyAwait
			return
		}
	}
}

// readByte reads the byte at the program counter and advances it,
// wrapping at the end of the address space.
func (c *CPU) readByte(bus CPUBus) byte {
	b := bus.ReadByte(c.pc)
	c.pc = (c.pc + 1) & addressMask
	return b
}

// fetch reads the next big-endian instruction word.
func (c *CPU) fetch(bus CPUBus) opcode {
	hi := c.readByte(bus)
	lo := c.readByte(bus)
	return opcode(uint16(hi)<<8 | uint16(lo))
}

// skip jumps over the next instruction.
func (c *CPU) skip() {
	c.pc = (c.pc + 2) & addressMask
}

// execute dispatches one decoded instruction. Opcodes matching none of
// the 35 instruction patterns are ignored.
func (c *CPU) execute(bus CPUBus, op opcode) {
	x, y, n := op.x(), op.y(), op.n()
	nn := op.nn()
	nnn := op.nnn()

	switch op.high() {
	case 0x0:
		switch uint16(op) {
		case 0x00E0:
			c.opcode00E0(bus)
		case 0x00EE:
			c.opcode00EE()
		default:
			c.opcode0NNN(nnn)
		}
	case 0x1:
		c.opcode1NNN(nnn)
	case 0x2:
		c.opcode2NNN(nnn)
	case 0x3:
		c.opcode3XNN(x, nn)
	case 0x4:
		c.opcode4XNN(x, nn)
	case 0x5:
		if n == 0x0 {
			c.opcode5XY0(x, y)
		} else {
			c.unknownOpcode(op)
		}
	case 0x6:
		c.opcode6XNN(x, nn)
	case 0x7:
		c.opcode7XNN(x, nn)
	case 0x8:
		c.executeALU(op, x, y, n)
	case 0x9:
		if n == 0x0 {
			c.opcode9XY0(x, y)
		} else {
			c.unknownOpcode(op)
		}
	case 0xA:
		c.opcodeANNN(nnn)
	case 0xB:
		c.opcodeBNNN(nnn)
	case 0xC:
		c.opcodeCXNN(x, nn)
	case 0xD:
		c.opcodeDXYN(bus, x, y, n)
	case 0xE:
		switch nn {
		case 0x9E:
			c.opcodeEX9E(bus, x)
		case 0xA1:
			c.opcodeEXA1(bus, x)
		default:
			c.unknownOpcode(op)
		}
	case 0xF:
		c.executeMisc(bus, op, x, nn)
	}
}

// executeALU dispatches the register arithmetic instruction group 8XYn.
func (c *CPU) executeALU(op opcode, x, y, n byte) {
	switch n {
	case 0x0:
		c.opcode8XY0(x, y)
	case 0x1:
		c.opcode8XY1(x, y)
	case 0x2:
		c.opcode8XY2(x, y)
	case 0x3:
		c.opcode8XY3(x, y)
	case 0x4:
		c.opcode8XY4(x, y)
	case 0x5:
		c.opcode8XY5(x, y)
	case 0x6:
		c.opcode8XY6(x, y)
	case 0x7:
		c.opcode8XY7(x, y)
	case 0xE:
		c.opcode8XYE(x, y)
	default:
		c.unknownOpcode(op)
	}
}

// executeMisc dispatches the timer, keypad and memory instruction group
// FXnn.
func (c *CPU) executeMisc(bus CPUBus, op opcode, x, nn byte) {
	switch nn {
	case 0x07:
		c.opcodeFX07(bus, x)
	case 0x0A:
		c.opcodeFX0A(x)
	case 0x15:
		c.opcodeFX15(bus, x)
	case 0x18:
		c.opcodeFX18(bus, x)
	case 0x1E:
		c.opcodeFX1E(x)
	case 0x29:
		c.opcodeFX29(x)
	case 0x33:
		c.opcodeFX33(bus, x)
	case 0x55:
		c.opcodeFX55(bus, x)
	case 0x65:
		c.opcodeFX65(bus, x)
	default:
		c.unknownOpcode(op)
	}
}

func (c *CPU) unknownOpcode(op opcode) {
	c.logger.Debug("Ignoring unknown opcode", log.Hex("opcode", uint16(op)))
}

// opcode0NNN would execute a machine language routine on the host
// machine, which no interpreter implements.
func (c *CPU) opcode0NNN(nnn uint16) {
	c.logger.Debug("Machine code call not implemented", log.Hex("address", nnn))
}

// opcode00E0 clears the screen.
func (c *CPU) opcode00E0(bus CPUBus) {
	bus.ClearScreen()
}

// opcode00EE returns from a subroutine. A return with an empty call
// stack is logged and leaves the program counter unchanged.
func (c *CPU) opcode00EE() {
	if len(c.stack) == 0 {
		c.logger.Warn("Unable to return from subroutine, call stack is empty")
		return
	}
	c.pc = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

// opcode1NNN jumps to address NNN.
func (c *CPU) opcode1NNN(nnn uint16) {
	c.pc = nnn
}

// opcode2NNN calls the subroutine at address NNN.
func (c *CPU) opcode2NNN(nnn uint16) {
	c.stack = append(c.stack, c.pc)
	c.pc = nnn
}

// opcode3XNN skips the next instruction if VX equals NN.
func (c *CPU) opcode3XNN(x, nn byte) {
	if c.v[x] == nn {
		c.skip()
	}
}

// opcode4XNN skips the next instruction if VX does not equal NN.
func (c *CPU) opcode4XNN(x, nn byte) {
	if c.v[x] != nn {
		c.skip()
	}
}

// opcode5XY0 skips the next instruction if VX equals VY.
func (c *CPU) opcode5XY0(x, y byte) {
	if c.v[x] == c.v[y] {
		c.skip()
	}
}

// opcode6XNN stores NN in VX.
func (c *CPU) opcode6XNN(x, nn byte) {
	c.v[x] = nn
}

// opcode7XNN adds NN to VX with wraparound. VF is not touched.
func (c *CPU) opcode7XNN(x, nn byte) {
	c.v[x] += nn
}

// opcode8XY0 stores VY in VX.
func (c *CPU) opcode8XY0(x, y byte) {
	c.v[x] = c.v[y]
}

// opcode8XY1 sets VX to VX OR VY.
func (c *CPU) opcode8XY1(x, y byte) {
	c.v[x] |= c.v[y]
}

// opcode8XY2 sets VX to VX AND VY.
func (c *CPU) opcode8XY2(x, y byte) {
	c.v[x] &= c.v[y]
}

// opcode8XY3 sets VX to VX XOR VY.
func (c *CPU) opcode8XY3(x, y byte) {
	c.v[x] ^= c.v[y]
}

// opcode8XY4 adds VY to VX with wraparound and sets VF to 1 on carry,
// 0 otherwise. The flag write happens last and wins if X is 0xF.
func (c *CPU) opcode8XY4(x, y byte) {
	sum := uint16(c.v[x]) + uint16(c.v[y])
	c.v[x] = byte(sum)
	if sum > 0xFF {
		c.v[0xF] = 1
	} else {
		c.v[0xF] = 0
	}
}

// opcode8XY5 subtracts VY from VX with wraparound and sets VF to 0 on
// borrow, 1 otherwise. The flag polarity is inverted relative to
// addition.
func (c *CPU) opcode8XY5(x, y byte) {
	borrow := c.v[y] > c.v[x]
	c.v[x] -= c.v[y]
	if borrow {
		c.v[0xF] = 0
	} else {
		c.v[0xF] = 1
	}
}

// opcode8XY6 stores VY shifted right by one bit in VX and sets VF to
// the shifted out bit. VY is unchanged.
func (c *CPU) opcode8XY6(x, y byte) {
	vy := c.v[y]
	c.v[x] = vy >> 1
	c.v[0xF] = vy & 0x01
}

// opcode8XY7 sets VX to VY minus VX with wraparound and sets VF to 0 on
// borrow, 1 otherwise.
func (c *CPU) opcode8XY7(x, y byte) {
	borrow := c.v[x] > c.v[y]
	c.v[x] = c.v[y] - c.v[x]
	if borrow {
		c.v[0xF] = 0
	} else {
		c.v[0xF] = 1
	}
}

// opcode8XYE stores VY shifted left by one bit in VX and sets VF to the
// shifted out bit. VY is unchanged.
func (c *CPU) opcode8XYE(x, y byte) {
	vy := c.v[y]
	c.v[x] = vy << 1
	c.v[0xF] = vy >> 7
}

// opcode9XY0 skips the next instruction if VX does not equal VY.
func (c *CPU) opcode9XY0(x, y byte) {
	if c.v[x] != c.v[y] {
		c.skip()
	}
}

// opcodeANNN stores NNN in the index register.
func (c *CPU) opcodeANNN(nnn uint16) {
	c.i = nnn
}

// opcodeBNNN jumps to address NNN plus V0.
func (c *CPU) opcodeBNNN(nnn uint16) {
	c.pc = (nnn + uint16(c.v[0])) & addressMask
}

// opcodeCXNN sets VX to a random byte masked with NN.
func (c *CPU) opcodeCXNN(x, nn byte) {
	c.v[x] = c.random() & nn
}

// opcodeDXYN draws the N rows of sprite data at the index register to
// position (VX, VY), XOR-compositing each set sprite bit onto the video
// grid with wraparound. VF is cleared first and set to 1 if any pixel
// is toggled off.
func (c *CPU) opcodeDXYN(bus CPUBus, x, y, n byte) {
	c.v[0xF] = 0

	for row := byte(0); row < n; row++ {
		line := bus.ReadByte(c.i + uint16(row))
		py := c.v[y] + row

		for col := byte(0); col < 8; col++ {
			if (line<<col)&0x80 == 0 {
				continue
			}
			px := c.v[x] + col

			set := bus.ReadPixel(px, py)
			if set {
				c.v[0xF] = 1
			}
			bus.WritePixel(px, py, !set)
		}
	}
}

// opcodeEX9E skips the next instruction if the key named by VX is
// pressed.
func (c *CPU) opcodeEX9E(bus CPUBus, x byte) {
	if bus.ReadKeypad(Key(c.v[x])) {
		c.skip()
	}
}

// opcodeEXA1 skips the next instruction if the key named by VX is not
// pressed.
func (c *CPU) opcodeEXA1(bus CPUBus, x byte) {
	if !bus.ReadKeypad(Key(c.v[x])) {
		c.skip()
	}
}

// opcodeFX07 stores the delay timer in VX.
func (c *CPU) opcodeFX07(bus CPUBus, x byte) {
	c.v[x] = bus.ReadTimer()
}

// opcodeFX0A suspends instruction advancement until a key is pressed
// and stores the key in VX. See Step.
func (c *CPU) opcodeFX0A(x byte) {
	c.keyAwait = int(x)
}

// opcodeFX15 sets the delay timer to VX.
func (c *CPU) opcodeFX15(bus CPUBus, x byte) {
	bus.WriteTimer(c.v[x])
}

// opcodeFX18 sets the sound timer to VX.
func (c *CPU) opcodeFX18(bus CPUBus, x byte) {
	bus.WriteSound(c.v[x])
}

// opcodeFX1E adds VX to the index register, masked to 12 bits.
func (c *CPU) opcodeFX1E(x byte) {
	c.i = (c.i + uint16(c.v[x])) & addressMask
}

// opcodeFX29 points the index register at the font sprite for the
// hexadecimal digit stored in VX.
func (c *CPU) opcodeFX29(x byte) {
	c.i = (FontAddr + uint16(c.v[x])*fontGlyphSize) & addressMask
}

// opcodeFX33 stores the binary-coded decimal digits of VX at I, I+1 and
// I+2, most significant digit first.
func (c *CPU) opcodeFX33(bus CPUBus, x byte) {
	value := c.v[x]
	bus.WriteByte(c.i, value/100)
	bus.WriteByte(c.i+1, (value/10)%10)
	bus.WriteByte(c.i+2, value%10)
}

// opcodeFX55 copies V0 through VX into memory starting at the index
// register, which advances past the written range.
func (c *CPU) opcodeFX55(bus CPUBus, x byte) {
	for r := uint16(0); r <= uint16(x); r++ {
		bus.WriteByte(c.i+r, c.v[r])
	}
	c.i = (c.i + uint16(x) + 1) & addressMask
}

// opcodeFX65 loads V0 through VX from memory starting at the index
// register, which advances past the read range.
func (c *CPU) opcodeFX65(bus CPUBus, x byte) {
	for r := uint16(0); r <= uint16(x); r++ {
		c.v[r] = bus.ReadByte(c.i + r)
	}
	c.i = (c.i + uint16(x) + 1) & addressMask
}
