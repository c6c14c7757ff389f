package cpu

// sys ignores the 0X00 words, 0x0000 included. Other 0NNN machine code
// calls have no handler and are unknown opcodes.
func (c *CPU) sys(_ Nibbles) error {
	return nil
}

// cls clears the display, 00E0.
func (c *CPU) cls(_ Nibbles) error {
	c.display.Clear()
	c.presenter.ClearScreen()
	return nil
}

// ret returns from a subroutine, 00EE.
func (c *CPU) ret(_ Nibbles) error {
	addr, err := c.stack.Pop()
	if err != nil {
		return err
	}
	c.PC = addr
	return nil
}

// jp jumps to NNN, 1NNN.
func (c *CPU) jp(a Nibbles) error {
	c.PC = a.Addr()
	return nil
}

// call calls the subroutine at NNN, 2NNN.
func (c *CPU) call(a Nibbles) error {
	if err := c.stack.Push(c.PC); err != nil {
		return err
	}
	c.PC = a.Addr()
	return nil
}

func (c *CPU) skipIf(cond bool) {
	if cond {
		c.PC += 2
	}
}

// 3XNN
func (c *CPU) seByte(a Nibbles) error {
	c.skipIf(c.V[a.X()] == a.Byte())
	return nil
}

// 4XNN
func (c *CPU) sneByte(a Nibbles) error {
	c.skipIf(c.V[a.X()] != a.Byte())
	return nil
}

// 5XY0
func (c *CPU) seReg(a Nibbles) error {
	c.skipIf(c.V[a.X()] == c.V[a.Y()])
	return nil
}

// 9XY0
func (c *CPU) sneReg(a Nibbles) error {
	c.skipIf(c.V[a.X()] != c.V[a.Y()])
	return nil
}

// 6XNN
func (c *CPU) ldByte(a Nibbles) error {
	c.V[a.X()] = a.Byte()
	return nil
}

// addByte adds NN to VX without touching the flag register, 7XNN.
func (c *CPU) addByte(a Nibbles) error {
	c.V[a.X()] += a.Byte()
	return nil
}

// 8XY0
func (c *CPU) ld(a Nibbles) error {
	c.V[a.X()] = c.V[a.Y()]
	return nil
}

// 8XY1
func (c *CPU) or(a Nibbles) error {
	c.V[a.X()] |= c.V[a.Y()]
	return nil
}

// 8XY2
func (c *CPU) and(a Nibbles) error {
	c.V[a.X()] &= c.V[a.Y()]
	return nil
}

// 8XY3
func (c *CPU) xor(a Nibbles) error {
	c.V[a.X()] ^= c.V[a.Y()]
	return nil
}

// The flag writing arithmetic handlers capture both operands first, X and Y
// may name the same register, and write VF after the result.

// add sets VF on carry, 8XY4.
func (c *CPU) add(a Nibbles) error {
	vx, vy := c.V[a.X()], c.V[a.Y()]
	sum := uint16(vx) + uint16(vy)
	c.V[a.X()] = uint8(sum)
	c.V[VF] = boolToFlag(sum > 0xFF)
	return nil
}

// sub sets VF when no borrow occurs, 8XY5.
func (c *CPU) sub(a Nibbles) error {
	vx, vy := c.V[a.X()], c.V[a.Y()]
	c.V[a.X()] = vx - vy
	c.V[VF] = boolToFlag(vx >= vy)
	return nil
}

// subn stores VY - VX and sets VF when no borrow occurs, 8XY7.
func (c *CPU) subn(a Nibbles) error {
	vx, vy := c.V[a.X()], c.V[a.Y()]
	c.V[a.X()] = vy - vx
	c.V[VF] = boolToFlag(vy >= vx)
	return nil
}

// shr shifts VX right, VF receives the shifted out bit, 8XY6.
func (c *CPU) shr(a Nibbles) error {
	vx := c.V[a.X()]
	c.V[a.X()] = vx >> 1
	c.V[VF] = vx & 0x01
	return nil
}

// shl shifts VX left, VF receives the shifted out bit, 8XYE.
func (c *CPU) shl(a Nibbles) error {
	vx := c.V[a.X()]
	c.V[a.X()] = vx << 1
	c.V[VF] = vx >> 7
	return nil
}

// ANNN
func (c *CPU) ldI(a Nibbles) error {
	c.I = a.Addr()
	return nil
}

// jpV0 jumps to NNN + V0, BNNN. The target is validated by the next fetch.
func (c *CPU) jpV0(a Nibbles) error {
	c.PC = a.Addr() + uint16(c.V[0])
	return nil
}

// CXNN
func (c *CPU) rnd(a Nibbles) error {
	c.V[a.X()] = c.random.NextByte() & a.Byte()
	return nil
}

// drw draws the N byte sprite at I to VX, VY, DXYN.
func (c *CPU) drw(a Nibbles) error {
	sprite, err := c.mem.SpriteSlice(c.I, a.N())
	if err != nil {
		return err
	}
	collision := c.display.BlitSprite(c.V[a.X()], c.V[a.Y()], sprite)
	c.V[VF] = boolToFlag(collision)
	c.presenter.Present(c.display.Rows())
	return nil
}

// EX9E
func (c *CPU) skp(a Nibbles) error {
	c.skipIf(c.input.IsKeyDown(c.V[a.X()] & 0xF))
	return nil
}

// EXA1
func (c *CPU) sknp(a Nibbles) error {
	c.skipIf(!c.input.IsKeyDown(c.V[a.X()] & 0xF))
	return nil
}

// FX07
func (c *CPU) ldVxDT(a Nibbles) error {
	c.V[a.X()] = c.DT
	return nil
}

// waitKey suspends execution until a key is pressed, FX0A.
// The pipeline resolves the wait before fetching the next instruction.
func (c *CPU) waitKey(a Nibbles) error {
	c.keyWait = int(a.X())
	return nil
}

// FX15
func (c *CPU) ldDTVx(a Nibbles) error {
	c.DT = c.V[a.X()]
	return nil
}

// FX18
func (c *CPU) ldSTVx(a Nibbles) error {
	c.ST = c.V[a.X()]
	return nil
}

// FX1E
func (c *CPU) addIVx(a Nibbles) error {
	c.I += uint16(c.V[a.X()])
	return nil
}

// FX29
func (c *CPU) ldFVx(a Nibbles) error {
	addr, err := c.mem.FontGlyphAddress(c.V[a.X()])
	if err != nil {
		return err
	}
	c.I = addr
	return nil
}

// ldBVx stores the decimal digits of VX at I, hundreds first, FX33.
func (c *CPU) ldBVx(a Nibbles) error {
	vx := c.V[a.X()]
	digits := []byte{vx / 100, vx / 10 % 10, vx % 10}
	return c.mem.WriteRange(c.I, digits)
}

// ldIVx stores V0 to VX inclusive at I, FX55.
func (c *CPU) ldIVx(a Nibbles) error {
	return c.mem.WriteRange(c.I, c.V[:a.X()+1])
}

// ldVxI loads V0 to VX inclusive from I, FX65.
func (c *CPU) ldVxI(a Nibbles) error {
	data, err := c.mem.Range(c.I, c.I+uint16(a.X())+1)
	if err != nil {
		return err
	}
	copy(c.V[:], data)
	return nil
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
