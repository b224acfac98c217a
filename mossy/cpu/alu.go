package cpu

import "fmt"

// computeAndStore runs a binary ALU function combining the left register
// with InternalOperand, writes the result back (unless the function is
// flags-only) and updates flags.
func (c *CPU) computeAndStore(fn aluFunc, left, dst dataRegister) error {
	lhs := c.readRegister(left)
	rhs := c.internalOperand

	switch fn {
	case aluOr:
		result := lhs | rhs
		c.writeRegister(dst, result)
		c.setZN(result)

	case aluAnd:
		result := lhs & rhs
		c.writeRegister(dst, result)
		c.setZN(result)

	case aluEor:
		result := lhs ^ rhs
		c.writeRegister(dst, result)
		c.setZN(result)

	case aluAddWithCarry:
		c.writeRegister(dst, c.addWithCarry(lhs, rhs))

	case aluSubtractWithBorrow:
		// subtraction is addition of the complement; the carry flag acts
		// as the inverted borrow
		c.writeRegister(dst, c.addWithCarry(lhs, rhs^0xFF))

	case aluCompare:
		result := lhs - rhs
		c.setFlagToCondition(CarryFlag, lhs >= rhs)
		c.setZN(result)

	case aluBitTest:
		c.setFlagToCondition(ZeroFlag, lhs&rhs == 0)
		c.setFlagToCondition(NegativeFlag, rhs&0x80 != 0)
		c.setFlagToCondition(OverflowFlag, rhs&0x40 != 0)

	default:
		return fmt.Errorf("%w: ALU function %d", ErrUnimplemented, fn)
	}
	return nil
}

// addWithCarry is the shared ADC/SBC core: lhs + rhs + carry-in, setting
// Carry from the unsigned carry-out and Overflow from the signed one.
func (c *CPU) addWithCarry(lhs, rhs uint8) uint8 {
	carryIn := uint16(0)
	if c.isSetFlag(CarryFlag) {
		carryIn = 1
	}

	sum := uint16(lhs) + uint16(rhs) + carryIn
	result := uint8(sum)

	c.setFlagToCondition(CarryFlag, sum > 0xFF)
	c.setFlagToCondition(OverflowFlag, (lhs^result)&(rhs^result)&0x80 != 0)
	c.setZN(result)
	return result
}

// computeUnary applies a single-operand ALU function in place to a
// register, updating flags.
func (c *CPU) computeUnary(fn unaryFunc, target dataRegister) error {
	v := c.readRegister(target)
	var result uint8

	switch fn {
	case unaryShiftLeft:
		c.setFlagToCondition(CarryFlag, v&0x80 != 0)
		result = v << 1

	case unaryShiftRight:
		c.setFlagToCondition(CarryFlag, v&0x01 != 0)
		result = v >> 1

	case unaryRotateLeft:
		carryIn := uint8(0)
		if c.isSetFlag(CarryFlag) {
			carryIn = 1
		}
		c.setFlagToCondition(CarryFlag, v&0x80 != 0)
		result = v<<1 | carryIn

	case unaryRotateRight:
		carryIn := uint8(0)
		if c.isSetFlag(CarryFlag) {
			carryIn = 0x80
		}
		c.setFlagToCondition(CarryFlag, v&0x01 != 0)
		result = v>>1 | carryIn

	case unaryIncrement:
		result = v + 1

	case unaryDecrement:
		result = v - 1

	default:
		return fmt.Errorf("%w: unary ALU function %d", ErrUnimplemented, fn)
	}

	c.writeRegister(target, result)
	c.setZN(result)
	return nil
}
