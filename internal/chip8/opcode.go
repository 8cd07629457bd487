package chip8

// opcode is one 16 bit CHIP-8 instruction word, fetched big-endian from
// two consecutive memory bytes.
type opcode uint16

// high returns the dispatch nibble of the opcode.
func (o opcode) high() byte {
	return byte(o >> 12)
}

// x returns the X register nibble.
func (o opcode) x() byte {
	return byte(o>>8) & 0x0F
}

// y returns the Y register nibble.
func (o opcode) y() byte {
	return byte(o>>4) & 0x0F
}

// n returns the lowest nibble.
func (o opcode) n() byte {
	return byte(o) & 0x0F
}

// nn returns the low byte operand.
func (o opcode) nn() byte {
	return byte(o)
}

// nnn returns the 12 bit address operand.
func (o opcode) nnn() uint16 {
	return uint16(o) & 0x0FFF
}
