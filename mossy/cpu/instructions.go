package cpu

import "fmt"

// addressingMode selects the operand-fetch micro-op prefix prepended to an
// instruction's semantic micro-ops.
type addressingMode uint8

const (
	modeImplied addressingMode = iota
	modeAccumulator
	modeImmediate
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirect
	modeIndexedIndirect // (zp,X)
	modeIndirectIndexed // (zp),Y
	modeRelative
)

// fetchPrefix returns the micro-ops computing the effective address (or
// staging the operand) for an addressing mode. Zero-page indexing wraps
// within the page; absolute indexing carries across the full 16 bits.
func fetchPrefix(mode addressingMode) []op {
	switch mode {
	case modeImplied, modeAccumulator:
		return nil
	case modeImmediate, modeRelative:
		return []op{{kind: opFetchOperand}}
	case modeZeroPage:
		return []op{{kind: opFetchZeroPageAddr}}
	case modeZeroPageX:
		return []op{{kind: opFetchZeroPageAddr}, addIndex(regX, false)}
	case modeZeroPageY:
		return []op{{kind: opFetchZeroPageAddr}, addIndex(regY, false)}
	case modeAbsolute:
		return []op{{kind: opFetchAddrLo}, {kind: opFetchAddrHi}}
	case modeAbsoluteX:
		return []op{{kind: opFetchAddrLo}, {kind: opFetchAddrHi}, addIndex(regX, true)}
	case modeAbsoluteY:
		return []op{{kind: opFetchAddrLo}, {kind: opFetchAddrHi}, addIndex(regY, true)}
	case modeIndirect:
		return []op{{kind: opFetchAddrLo}, {kind: opFetchAddrHi}, {kind: opReadAddressLo}, {kind: opReadAddressHi}}
	case modeIndexedIndirect:
		return []op{{kind: opFetchZeroPageAddr}, addIndex(regX, false), {kind: opReadAddressLo}, {kind: opReadAddressHi}}
	case modeIndirectIndexed:
		return []op{{kind: opFetchZeroPageAddr}, {kind: opReadAddressLo}, {kind: opReadAddressHi}, addIndex(regY, true)}
	}
	panic(fmt.Sprintf("cpu: unknown addressing mode %d", mode))
}

// instruction is the immutable decode result for one opcode: the full
// micro-op sequence (addressing prefix plus semantics) enqueued by
// FetchOpcode.
type instruction struct {
	mnemonic string
	mode     addressingMode
	ops      []op
}

// buildInstructionTable constructs the opcode table once per CPU. Every
// official 6502 opcode expressible without a stack pointer is present;
// absent entries decode to ErrIllegalOpcode.
func buildInstructionTable() *[256]*instruction {
	var table [256]*instruction

	def := func(opcode uint8, mnemonic string, mode addressingMode, semantic ...op) {
		if table[opcode] != nil {
			panic(fmt.Sprintf("cpu: duplicate opcode 0x%02X (%s)", opcode, mnemonic))
		}
		prefix := fetchPrefix(mode)
		ops := make([]op, 0, len(prefix)+len(semantic))
		ops = append(ops, prefix...)
		ops = append(ops, semantic...)
		table[opcode] = &instruction{mnemonic: mnemonic, mode: mode, ops: ops}
	}

	load := func(opcode uint8, mnemonic string, mode addressingMode, dst dataRegister) {
		if mode == modeImmediate {
			def(opcode, mnemonic, mode, storeTo(regOperand, dst))
			return
		}
		def(opcode, mnemonic, mode, op{kind: opLoadOperand}, storeTo(regOperand, dst))
	}

	store := func(opcode uint8, mnemonic string, mode addressingMode, src dataRegister) {
		def(opcode, mnemonic, mode, writeTo(src, regAddress))
	}

	alu := func(opcode uint8, mnemonic string, mode addressingMode, fn aluFunc, left dataRegister) {
		if mode == modeImmediate {
			def(opcode, mnemonic, mode, aluOp(fn, left, left))
			return
		}
		def(opcode, mnemonic, mode, op{kind: opLoadOperand}, aluOp(fn, left, left))
	}

	rmw := func(opcode uint8, mnemonic string, mode addressingMode, fn unaryFunc) {
		if mode == modeAccumulator {
			def(opcode, mnemonic, mode, unaryOp(fn, regA))
			return
		}
		def(opcode, mnemonic, mode, op{kind: opLoadOperand}, unaryOp(fn, regOperand), writeTo(regOperand, regAddress))
	}

	branch := func(opcode uint8, mnemonic string, flag Flag, expect bool) {
		def(opcode, mnemonic, modeRelative, branchOn(flag, expect))
	}

	// loads
	load(0xA9, "LDA", modeImmediate, regA)
	load(0xA5, "LDA", modeZeroPage, regA)
	load(0xB5, "LDA", modeZeroPageX, regA)
	load(0xAD, "LDA", modeAbsolute, regA)
	load(0xBD, "LDA", modeAbsoluteX, regA)
	load(0xB9, "LDA", modeAbsoluteY, regA)
	load(0xA1, "LDA", modeIndexedIndirect, regA)
	load(0xB1, "LDA", modeIndirectIndexed, regA)

	load(0xA2, "LDX", modeImmediate, regX)
	load(0xA6, "LDX", modeZeroPage, regX)
	load(0xB6, "LDX", modeZeroPageY, regX)
	load(0xAE, "LDX", modeAbsolute, regX)
	load(0xBE, "LDX", modeAbsoluteY, regX)

	load(0xA0, "LDY", modeImmediate, regY)
	load(0xA4, "LDY", modeZeroPage, regY)
	load(0xB4, "LDY", modeZeroPageX, regY)
	load(0xAC, "LDY", modeAbsolute, regY)
	load(0xBC, "LDY", modeAbsoluteX, regY)

	// stores
	store(0x85, "STA", modeZeroPage, regA)
	store(0x95, "STA", modeZeroPageX, regA)
	store(0x8D, "STA", modeAbsolute, regA)
	store(0x9D, "STA", modeAbsoluteX, regA)
	store(0x99, "STA", modeAbsoluteY, regA)
	store(0x81, "STA", modeIndexedIndirect, regA)
	store(0x91, "STA", modeIndirectIndexed, regA)

	store(0x86, "STX", modeZeroPage, regX)
	store(0x96, "STX", modeZeroPageY, regX)
	store(0x8E, "STX", modeAbsolute, regX)

	store(0x84, "STY", modeZeroPage, regY)
	store(0x94, "STY", modeZeroPageX, regY)
	store(0x8C, "STY", modeAbsolute, regY)

	// register transfers
	def(0xAA, "TAX", modeImplied, storeTo(regA, regX))
	def(0xA8, "TAY", modeImplied, storeTo(regA, regY))
	def(0x8A, "TXA", modeImplied, storeTo(regX, regA))
	def(0x98, "TYA", modeImplied, storeTo(regY, regA))

	// accumulator ALU
	alu(0x09, "ORA", modeImmediate, aluOr, regA)
	alu(0x05, "ORA", modeZeroPage, aluOr, regA)
	alu(0x15, "ORA", modeZeroPageX, aluOr, regA)
	alu(0x0D, "ORA", modeAbsolute, aluOr, regA)
	alu(0x1D, "ORA", modeAbsoluteX, aluOr, regA)
	alu(0x19, "ORA", modeAbsoluteY, aluOr, regA)
	alu(0x01, "ORA", modeIndexedIndirect, aluOr, regA)
	alu(0x11, "ORA", modeIndirectIndexed, aluOr, regA)

	alu(0x29, "AND", modeImmediate, aluAnd, regA)
	alu(0x25, "AND", modeZeroPage, aluAnd, regA)
	alu(0x35, "AND", modeZeroPageX, aluAnd, regA)
	alu(0x2D, "AND", modeAbsolute, aluAnd, regA)
	alu(0x3D, "AND", modeAbsoluteX, aluAnd, regA)
	alu(0x39, "AND", modeAbsoluteY, aluAnd, regA)
	alu(0x21, "AND", modeIndexedIndirect, aluAnd, regA)
	alu(0x31, "AND", modeIndirectIndexed, aluAnd, regA)

	alu(0x49, "EOR", modeImmediate, aluEor, regA)
	alu(0x45, "EOR", modeZeroPage, aluEor, regA)
	alu(0x55, "EOR", modeZeroPageX, aluEor, regA)
	alu(0x4D, "EOR", modeAbsolute, aluEor, regA)
	alu(0x5D, "EOR", modeAbsoluteX, aluEor, regA)
	alu(0x59, "EOR", modeAbsoluteY, aluEor, regA)
	alu(0x41, "EOR", modeIndexedIndirect, aluEor, regA)
	alu(0x51, "EOR", modeIndirectIndexed, aluEor, regA)

	alu(0x69, "ADC", modeImmediate, aluAddWithCarry, regA)
	alu(0x65, "ADC", modeZeroPage, aluAddWithCarry, regA)
	alu(0x75, "ADC", modeZeroPageX, aluAddWithCarry, regA)
	alu(0x6D, "ADC", modeAbsolute, aluAddWithCarry, regA)
	alu(0x7D, "ADC", modeAbsoluteX, aluAddWithCarry, regA)
	alu(0x79, "ADC", modeAbsoluteY, aluAddWithCarry, regA)
	alu(0x61, "ADC", modeIndexedIndirect, aluAddWithCarry, regA)
	alu(0x71, "ADC", modeIndirectIndexed, aluAddWithCarry, regA)

	alu(0xE9, "SBC", modeImmediate, aluSubtractWithBorrow, regA)
	alu(0xE5, "SBC", modeZeroPage, aluSubtractWithBorrow, regA)
	alu(0xF5, "SBC", modeZeroPageX, aluSubtractWithBorrow, regA)
	alu(0xED, "SBC", modeAbsolute, aluSubtractWithBorrow, regA)
	alu(0xFD, "SBC", modeAbsoluteX, aluSubtractWithBorrow, regA)
	alu(0xF9, "SBC", modeAbsoluteY, aluSubtractWithBorrow, regA)
	alu(0xE1, "SBC", modeIndexedIndirect, aluSubtractWithBorrow, regA)
	alu(0xF1, "SBC", modeIndirectIndexed, aluSubtractWithBorrow, regA)

	// compares (flags only)
	alu(0xC9, "CMP", modeImmediate, aluCompare, regA)
	alu(0xC5, "CMP", modeZeroPage, aluCompare, regA)
	alu(0xD5, "CMP", modeZeroPageX, aluCompare, regA)
	alu(0xCD, "CMP", modeAbsolute, aluCompare, regA)
	alu(0xDD, "CMP", modeAbsoluteX, aluCompare, regA)
	alu(0xD9, "CMP", modeAbsoluteY, aluCompare, regA)
	alu(0xC1, "CMP", modeIndexedIndirect, aluCompare, regA)
	alu(0xD1, "CMP", modeIndirectIndexed, aluCompare, regA)

	alu(0xE0, "CPX", modeImmediate, aluCompare, regX)
	alu(0xE4, "CPX", modeZeroPage, aluCompare, regX)
	alu(0xEC, "CPX", modeAbsolute, aluCompare, regX)

	alu(0xC0, "CPY", modeImmediate, aluCompare, regY)
	alu(0xC4, "CPY", modeZeroPage, aluCompare, regY)
	alu(0xCC, "CPY", modeAbsolute, aluCompare, regY)

	// bit test
	alu(0x24, "BIT", modeZeroPage, aluBitTest, regA)
	alu(0x2C, "BIT", modeAbsolute, aluBitTest, regA)

	// shifts and rotates
	rmw(0x0A, "ASL", modeAccumulator, unaryShiftLeft)
	rmw(0x06, "ASL", modeZeroPage, unaryShiftLeft)
	rmw(0x16, "ASL", modeZeroPageX, unaryShiftLeft)
	rmw(0x0E, "ASL", modeAbsolute, unaryShiftLeft)
	rmw(0x1E, "ASL", modeAbsoluteX, unaryShiftLeft)

	rmw(0x4A, "LSR", modeAccumulator, unaryShiftRight)
	rmw(0x46, "LSR", modeZeroPage, unaryShiftRight)
	rmw(0x56, "LSR", modeZeroPageX, unaryShiftRight)
	rmw(0x4E, "LSR", modeAbsolute, unaryShiftRight)
	rmw(0x5E, "LSR", modeAbsoluteX, unaryShiftRight)

	rmw(0x2A, "ROL", modeAccumulator, unaryRotateLeft)
	rmw(0x26, "ROL", modeZeroPage, unaryRotateLeft)
	rmw(0x36, "ROL", modeZeroPageX, unaryRotateLeft)
	rmw(0x2E, "ROL", modeAbsolute, unaryRotateLeft)
	rmw(0x3E, "ROL", modeAbsoluteX, unaryRotateLeft)

	rmw(0x6A, "ROR", modeAccumulator, unaryRotateRight)
	rmw(0x66, "ROR", modeZeroPage, unaryRotateRight)
	rmw(0x76, "ROR", modeZeroPageX, unaryRotateRight)
	rmw(0x6E, "ROR", modeAbsolute, unaryRotateRight)
	rmw(0x7E, "ROR", modeAbsoluteX, unaryRotateRight)

	// memory increment / decrement
	rmw(0xE6, "INC", modeZeroPage, unaryIncrement)
	rmw(0xF6, "INC", modeZeroPageX, unaryIncrement)
	rmw(0xEE, "INC", modeAbsolute, unaryIncrement)
	rmw(0xFE, "INC", modeAbsoluteX, unaryIncrement)

	rmw(0xC6, "DEC", modeZeroPage, unaryDecrement)
	rmw(0xD6, "DEC", modeZeroPageX, unaryDecrement)
	rmw(0xCE, "DEC", modeAbsolute, unaryDecrement)
	rmw(0xDE, "DEC", modeAbsoluteX, unaryDecrement)

	// register increment / decrement
	def(0xE8, "INX", modeImplied, unaryOp(unaryIncrement, regX))
	def(0xC8, "INY", modeImplied, unaryOp(unaryIncrement, regY))
	def(0xCA, "DEX", modeImplied, unaryOp(unaryDecrement, regX))
	def(0x88, "DEY", modeImplied, unaryOp(unaryDecrement, regY))

	// flag instructions
	def(0x18, "CLC", modeImplied, setFlag(CarryFlag, false))
	def(0x38, "SEC", modeImplied, setFlag(CarryFlag, true))
	def(0x58, "CLI", modeImplied, setFlag(InterruptFlag, false))
	def(0x78, "SEI", modeImplied, setFlag(InterruptFlag, true))
	def(0xB8, "CLV", modeImplied, setFlag(OverflowFlag, false))
	def(0xD8, "CLD", modeImplied, setFlag(DecimalFlag, false))
	def(0xF8, "SED", modeImplied, setFlag(DecimalFlag, true))

	// branches
	branch(0x10, "BPL", NegativeFlag, false)
	branch(0x30, "BMI", NegativeFlag, true)
	branch(0x50, "BVC", OverflowFlag, false)
	branch(0x70, "BVS", OverflowFlag, true)
	branch(0x90, "BCC", CarryFlag, false)
	branch(0xB0, "BCS", CarryFlag, true)
	branch(0xD0, "BNE", ZeroFlag, false)
	branch(0xF0, "BEQ", ZeroFlag, true)

	// jumps
	def(0x4C, "JMP", modeAbsolute, op{kind: opJumpToAddress})
	def(0x6C, "JMP", modeIndirect, op{kind: opJumpToAddress})

	def(0xEA, "NOP", modeImplied, op{kind: opNop})
	def(0x00, "BRK", modeImplied, op{kind: opBreak})

	// Stack instructions (PHA/PLA/PHP/PLP, JSR/RTS/RTI) are not part of
	// this register model and decode as illegal opcodes, as do the
	// undocumented ones.

	return &table
}
