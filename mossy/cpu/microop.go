package cpu

import "fmt"

// dataRegister identifies an 8-bit register used as a micro-op payload.
type dataRegister uint8

const (
	regA dataRegister = iota
	regX
	regY
	// regOperand is the InternalOperand scratch register, staging a fetched
	// or loaded byte before an instruction consumes it.
	regOperand
)

func (r dataRegister) String() string {
	switch r {
	case regA:
		return "A"
	case regX:
		return "X"
	case regY:
		return "Y"
	case regOperand:
		return "operand"
	}
	return fmt.Sprintf("dataRegister(%d)", uint8(r))
}

// addressRegister identifies a 16-bit register used as a micro-op payload.
type addressRegister uint8

const (
	regPC addressRegister = iota
	// regAddress is the InternalAddress scratch register, staging a
	// partially assembled effective address.
	regAddress
)

func (r addressRegister) String() string {
	switch r {
	case regPC:
		return "PC"
	case regAddress:
		return "address"
	}
	return fmt.Sprintf("addressRegister(%d)", uint8(r))
}

// aluFunc selects the ALU operation for a compute micro-op. The left
// operand is a register payload; the right operand is always
// InternalOperand.
type aluFunc uint8

const (
	aluOr aluFunc = iota
	aluAnd
	aluEor
	aluAddWithCarry
	aluSubtractWithBorrow
	// aluCompare is a flags-only subtraction, no writeback.
	aluCompare
	// aluBitTest is the BIT semantics: Z from left AND operand, N and V
	// copied from operand bits 7 and 6. Flags only.
	aluBitTest
)

// unaryFunc selects a single-operand ALU operation applied in place to a
// register or to InternalOperand (for memory read-modify-write forms).
type unaryFunc uint8

const (
	unaryShiftLeft unaryFunc = iota
	unaryShiftRight
	unaryRotateLeft
	unaryRotateRight
	unaryIncrement
	unaryDecrement
)

// opKind tags a micro-op. One micro-op executes per tick.
type opKind uint8

const (
	opNop opKind = iota

	// opFetchOpcode reads the byte at PC, advances PC, and enqueues the
	// decoded instruction's micro-ops. Enqueued automatically whenever the
	// queue runs dry.
	opFetchOpcode

	// opFetchOperand reads the byte at PC into InternalOperand and
	// advances PC. Used by immediate operands and branch displacements.
	opFetchOperand

	// opFetchAddrLo replaces InternalAddress with the byte at PC (high
	// byte forced to zero) and advances PC. Always a full overwrite so no
	// stale address bits survive between instructions.
	opFetchAddrLo

	// opFetchAddrHi shifts the byte at PC into the high half of
	// InternalAddress, keeping the low byte, and advances PC.
	opFetchAddrHi

	// opFetchZeroPageAddr replaces InternalAddress with the byte at PC,
	// high byte zero, and advances PC.
	opFetchZeroPageAddr

	// opAddIndexToAddress adds an index register to InternalAddress. With
	// carry=false the sum wraps within the current page (zero-page
	// indexing); with carry=true it propagates across all 16 bits.
	opAddIndexToAddress

	// opReadAddressLo reads the byte at InternalAddress into
	// InternalOperand, staging the low half of a pointer.
	opReadAddressLo

	// opReadAddressHi reads the pointer's high byte at InternalAddress+1
	// and completes the indirection: InternalAddress becomes
	// high<<8 | InternalOperand. The +1 wraps within the current page,
	// matching the hardware's pointer reads.
	opReadAddressHi

	// opLoadOperand reads the byte at InternalAddress into
	// InternalOperand.
	opLoadOperand

	// opStoreToRegister copies src into dst and refreshes N and Z from the
	// value. Copying a register onto itself is a programmer error.
	opStoreToRegister

	// opWriteToAddress writes src to the bus at the given address
	// register's value.
	opWriteToAddress

	// opJumpToAddress sets PC to InternalAddress.
	opJumpToAddress

	// opCompute runs the ALU: left register combined with InternalOperand,
	// result written back to dst (except for the flags-only functions),
	// flags updated.
	opCompute

	// opComputeUnary applies a single-operand ALU function in place to the
	// target register.
	opComputeUnary

	// opBranchOnFlag adds the signed displacement in InternalOperand to PC
	// when the selected flag matches expect, otherwise does nothing.
	opBranchOnFlag

	// opSetFlag sets or clears a single status flag.
	opSetFlag

	// opBreak raises the halted flag.
	opBreak
)

func (k opKind) String() string {
	switch k {
	case opNop:
		return "NOP"
	case opFetchOpcode:
		return "FetchOpcode"
	case opFetchOperand:
		return "FetchOperand"
	case opFetchAddrLo:
		return "FetchAddrLo"
	case opFetchAddrHi:
		return "FetchAddrHi"
	case opFetchZeroPageAddr:
		return "FetchZeroPageAddr"
	case opAddIndexToAddress:
		return "AddIndexToAddress"
	case opReadAddressLo:
		return "ReadAddressLo"
	case opReadAddressHi:
		return "ReadAddressHi"
	case opLoadOperand:
		return "LoadOperand"
	case opStoreToRegister:
		return "StoreToRegister"
	case opWriteToAddress:
		return "WriteToAddress"
	case opJumpToAddress:
		return "JumpToAddress"
	case opCompute:
		return "Compute"
	case opComputeUnary:
		return "ComputeUnary"
	case opBranchOnFlag:
		return "BranchOnFlag"
	case opSetFlag:
		return "SetFlag"
	case opBreak:
		return "Break"
	}
	return fmt.Sprintf("opKind(%d)", uint8(k))
}

// op is one atomic unit of processor work, a kind tag plus whatever typed
// payload that kind needs. Dispatch is a single switch in execute.
type op struct {
	kind opKind

	src dataRegister
	dst dataRegister

	addr addressRegister

	fn    aluFunc
	unary unaryFunc

	index dataRegister // register added by opAddIndexToAddress
	carry bool         // whether the index add propagates into the high byte

	flag   Flag // flag selected by opBranchOnFlag / opSetFlag
	expect bool // branch condition / flag value to set
}

// payload constructors used by the instruction table

func storeTo(src, dst dataRegister) op {
	return op{kind: opStoreToRegister, src: src, dst: dst}
}

func writeTo(src dataRegister, addr addressRegister) op {
	return op{kind: opWriteToAddress, src: src, addr: addr}
}

func aluOp(fn aluFunc, left, dst dataRegister) op {
	return op{kind: opCompute, fn: fn, src: left, dst: dst}
}

func unaryOp(fn unaryFunc, target dataRegister) op {
	return op{kind: opComputeUnary, unary: fn, dst: target}
}

func addIndex(index dataRegister, carry bool) op {
	return op{kind: opAddIndexToAddress, index: index, carry: carry}
}

func branchOn(flag Flag, expect bool) op {
	return op{kind: opBranchOnFlag, flag: flag, expect: expect}
}

func setFlag(flag Flag, value bool) op {
	return op{kind: opSetFlag, flag: flag, expect: value}
}
