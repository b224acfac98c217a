package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newALUTestCPU() *CPU {
	return New()
}

func TestALU_addWithCarry(t *testing.T) {
	testCases := []struct {
		desc     string
		a        uint8
		operand  uint8
		carryIn  bool
		want     uint8
		carry    bool
		overflow bool
		zero     bool
		negative bool
	}{
		{desc: "simple add", a: 0x10, operand: 0x05, want: 0x15},
		{desc: "carry in", a: 0x10, operand: 0x05, carryIn: true, want: 0x16},
		{desc: "unsigned carry out", a: 0xFF, operand: 0x01, want: 0x00, carry: true, zero: true},
		{desc: "signed overflow positive", a: 0x7F, operand: 0x01, want: 0x80, overflow: true, negative: true},
		{desc: "signed overflow negative", a: 0x80, operand: 0xFF, want: 0x7F, carry: true, overflow: true},
		{desc: "no overflow on mixed signs", a: 0x50, operand: 0xD0, want: 0x20, carry: true},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			c := newALUTestCPU()
			c.a = tC.a
			c.internalOperand = tC.operand
			c.setFlagToCondition(CarryFlag, tC.carryIn)

			assert.NoError(t, c.computeAndStore(aluAddWithCarry, regA, regA))

			assert.Equal(t, tC.want, c.a)
			assert.Equal(t, tC.carry, c.isSetFlag(CarryFlag), "carry")
			assert.Equal(t, tC.overflow, c.isSetFlag(OverflowFlag), "overflow")
			assert.Equal(t, tC.zero, c.isSetFlag(ZeroFlag), "zero")
			assert.Equal(t, tC.negative, c.isSetFlag(NegativeFlag), "negative")
		})
	}
}

func TestALU_subtractWithBorrow(t *testing.T) {
	testCases := []struct {
		desc    string
		a       uint8
		operand uint8
		carryIn bool // set carry = no borrow pending
		want    uint8
		carry   bool
	}{
		{desc: "simple subtract", a: 0x10, operand: 0x05, carryIn: true, want: 0x0B, carry: true},
		{desc: "borrow pending", a: 0x10, operand: 0x05, carryIn: false, want: 0x0A, carry: true},
		{desc: "underflow clears carry", a: 0x05, operand: 0x10, carryIn: true, want: 0xF5, carry: false},
		{desc: "equal yields zero", a: 0x42, operand: 0x42, carryIn: true, want: 0x00, carry: true},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			c := newALUTestCPU()
			c.a = tC.a
			c.internalOperand = tC.operand
			c.setFlagToCondition(CarryFlag, tC.carryIn)

			assert.NoError(t, c.computeAndStore(aluSubtractWithBorrow, regA, regA))

			assert.Equal(t, tC.want, c.a)
			assert.Equal(t, tC.carry, c.isSetFlag(CarryFlag), "carry")
		})
	}
}

func TestALU_logical(t *testing.T) {
	testCases := []struct {
		desc     string
		fn       aluFunc
		a        uint8
		operand  uint8
		want     uint8
		zero     bool
		negative bool
	}{
		{desc: "ORA", fn: aluOr, a: 0x0F, operand: 0xF0, want: 0xFF, negative: true},
		{desc: "ORA zero", fn: aluOr, a: 0x00, operand: 0x00, want: 0x00, zero: true},
		{desc: "AND", fn: aluAnd, a: 0x0F, operand: 0x03, want: 0x03},
		{desc: "AND clears", fn: aluAnd, a: 0x0F, operand: 0xF0, want: 0x00, zero: true},
		{desc: "EOR", fn: aluEor, a: 0xFF, operand: 0x0F, want: 0xF0, negative: true},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			c := newALUTestCPU()
			c.a = tC.a
			c.internalOperand = tC.operand

			assert.NoError(t, c.computeAndStore(tC.fn, regA, regA))

			assert.Equal(t, tC.want, c.a)
			assert.Equal(t, tC.zero, c.isSetFlag(ZeroFlag), "zero")
			assert.Equal(t, tC.negative, c.isSetFlag(NegativeFlag), "negative")
		})
	}
}

func TestALU_compare(t *testing.T) {
	testCases := []struct {
		desc     string
		left     uint8
		operand  uint8
		carry    bool
		zero     bool
		negative bool
	}{
		{desc: "greater", left: 0x10, operand: 0x05, carry: true},
		{desc: "equal", left: 0x10, operand: 0x10, carry: true, zero: true},
		{desc: "less", left: 0x05, operand: 0x10, negative: true},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			c := newALUTestCPU()
			c.x = tC.left
			c.internalOperand = tC.operand

			assert.NoError(t, c.computeAndStore(aluCompare, regX, regX))

			assert.Equal(t, tC.left, c.x, "compare must not write back")
			assert.Equal(t, tC.carry, c.isSetFlag(CarryFlag), "carry")
			assert.Equal(t, tC.zero, c.isSetFlag(ZeroFlag), "zero")
			assert.Equal(t, tC.negative, c.isSetFlag(NegativeFlag), "negative")
		})
	}
}

func TestALU_bitTest(t *testing.T) {
	c := newALUTestCPU()
	c.a = 0x01
	c.internalOperand = 0xC0

	assert.NoError(t, c.computeAndStore(aluBitTest, regA, regA))

	assert.Equal(t, uint8(0x01), c.a, "BIT must not change A")
	assert.True(t, c.isSetFlag(ZeroFlag), "A AND operand is zero")
	assert.True(t, c.isSetFlag(NegativeFlag), "bit 7 of operand")
	assert.True(t, c.isSetFlag(OverflowFlag), "bit 6 of operand")
}

func TestALU_shiftsAndRotates(t *testing.T) {
	testCases := []struct {
		desc     string
		fn       unaryFunc
		value    uint8
		carryIn  bool
		want     uint8
		carryOut bool
	}{
		{desc: "ASL", fn: unaryShiftLeft, value: 0x01, want: 0x02},
		{desc: "ASL carries out bit 7", fn: unaryShiftLeft, value: 0x80, want: 0x00, carryOut: true},
		{desc: "LSR", fn: unaryShiftRight, value: 0x02, want: 0x01},
		{desc: "LSR carries out bit 0", fn: unaryShiftRight, value: 0x01, want: 0x00, carryOut: true},
		{desc: "ROL shifts carry in", fn: unaryRotateLeft, value: 0x80, carryIn: true, want: 0x01, carryOut: true},
		{desc: "ROR shifts carry in", fn: unaryRotateRight, value: 0x01, carryIn: true, want: 0x80, carryOut: true},
		{desc: "INC", fn: unaryIncrement, value: 0x7F, want: 0x80},
		{desc: "INC wraps", fn: unaryIncrement, value: 0xFF, want: 0x00},
		{desc: "DEC", fn: unaryDecrement, value: 0x01, want: 0x00},
		{desc: "DEC wraps", fn: unaryDecrement, value: 0x00, want: 0xFF},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			c := newALUTestCPU()
			c.a = tC.value
			c.setFlagToCondition(CarryFlag, tC.carryIn)

			assert.NoError(t, c.computeUnary(tC.fn, regA))

			assert.Equal(t, tC.want, c.a)
			assert.Equal(t, tC.carryOut, c.isSetFlag(CarryFlag), "carry")
			assert.Equal(t, tC.want == 0, c.isSetFlag(ZeroFlag), "zero")
			assert.Equal(t, tC.want&0x80 != 0, c.isSetFlag(NegativeFlag), "negative")
		})
	}
}

func TestALU_incDecLeaveCarryAlone(t *testing.T) {
	c := newALUTestCPU()
	c.setFlagToCondition(CarryFlag, true)
	c.x = 0xFF

	assert.NoError(t, c.computeUnary(unaryIncrement, regX))

	assert.Equal(t, uint8(0), c.x)
	assert.True(t, c.isSetFlag(CarryFlag), "INC/DEC do not touch carry")
}
