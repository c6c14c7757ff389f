package cpu

// Nibbles holds the four 4-bit parts of an instruction word, most significant first.
type Nibbles [4]uint8

// X returns the register index encoded in the second nibble.
func (n Nibbles) X() uint8 { return n[1] }

// Y returns the register index encoded in the third nibble.
func (n Nibbles) Y() uint8 { return n[2] }

// N returns the lowest nibble.
func (n Nibbles) N() uint8 { return n[3] }

// Byte returns the lowest 8 bits.
func (n Nibbles) Byte() uint8 { return n[2]<<4 | n[3] }

// Addr returns the lowest 12 bits.
func (n Nibbles) Addr() uint16 {
	return uint16(n[1])<<8 | uint16(n[2])<<4 | uint16(n[3])
}

// Instruction is a decoded instruction word.
type Instruction struct {
	Word uint16  // raw fetched word
	ID   uint16  // opcode identifier used to select the handler
	Args Nibbles // raw argument nibbles
}

// SplitNibbles splits an instruction word into its four nibbles.
func SplitNibbles(word uint16) Nibbles {
	return Nibbles{
		uint8(word >> 12 & 0xF),
		uint8(word >> 8 & 0xF),
		uint8(word >> 4 & 0xF),
		uint8(word & 0xF),
	}
}

// Decode derives the opcode identifier of an instruction word. The masking
// rule depends on the instruction family in the leading nibble:
//
//	0, E, F: leading nibble and low byte (00E0, E09E, F065)
//	8:       leading and trailing nibble (8004)
//	others:  leading nibble only (1000, D000)
func Decode(word uint16) Instruction {
	n := SplitNibbles(word)

	var id uint16
	switch n[0] {
	case 0x0, 0xE, 0xF:
		id = word & 0xF0FF
	case 0x8:
		id = word & 0xF00F
	default:
		id = word & 0xF000
	}

	return Instruction{
		Word: word,
		ID:   id,
		Args: n,
	}
}
