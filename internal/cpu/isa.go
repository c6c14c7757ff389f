package cpu

// handler executes one instruction with the raw argument nibbles.
type handler struct {
	name string
	exec func(c *CPU, args Nibbles) error
}

// isa maps opcode identifiers to their handlers.
var isa = map[uint16]handler{
	0x0000: {"SYS", (*CPU).sys},
	0x00E0: {"CLS", (*CPU).cls},
	0x00EE: {"RET", (*CPU).ret},
	0x1000: {"JP", (*CPU).jp},
	0x2000: {"CALL", (*CPU).call},
	0x3000: {"SE_BYTE", (*CPU).seByte},
	0x4000: {"SNE_BYTE", (*CPU).sneByte},
	0x5000: {"SE_REG", (*CPU).seReg},
	0x6000: {"LD_BYTE", (*CPU).ldByte},
	0x7000: {"ADD_BYTE", (*CPU).addByte},
	0x8000: {"LD", (*CPU).ld},
	0x8001: {"OR", (*CPU).or},
	0x8002: {"AND", (*CPU).and},
	0x8003: {"XOR", (*CPU).xor},
	0x8004: {"ADD", (*CPU).add},
	0x8005: {"SUB", (*CPU).sub},
	0x8006: {"SHR", (*CPU).shr},
	0x8007: {"SUBN", (*CPU).subn},
	0x800E: {"SHL", (*CPU).shl},
	0x9000: {"SNE_REG", (*CPU).sneReg},
	0xA000: {"LD_I", (*CPU).ldI},
	0xB000: {"LD_V0", (*CPU).jpV0},
	0xC000: {"RND", (*CPU).rnd},
	0xD000: {"DRW", (*CPU).drw},
	0xE09E: {"SKP", (*CPU).skp},
	0xE0A1: {"SKNP", (*CPU).sknp},
	0xF007: {"LD_VX_DT", (*CPU).ldVxDT},
	0xF00A: {"W_KEY", (*CPU).waitKey},
	0xF015: {"LD_DT_VX", (*CPU).ldDTVx},
	0xF018: {"LD_ST_VX", (*CPU).ldSTVx},
	0xF01E: {"ADD_I_VX", (*CPU).addIVx},
	0xF029: {"LD_F_VX", (*CPU).ldFVx},
	0xF033: {"LD_B_VX", (*CPU).ldBVx},
	0xF055: {"LD_I_VX", (*CPU).ldIVx},
	0xF065: {"LD_VX_I", (*CPU).ldVxI},
}

// HandlerName returns the name of the handler registered for the opcode identifier.
func HandlerName(id uint16) (string, bool) {
	h, ok := isa[id]
	return h.name, ok
}

// OpcodeIDs returns the number of registered opcode identifiers.
func OpcodeIDs() int {
	return len(isa)
}
