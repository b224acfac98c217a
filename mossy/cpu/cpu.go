package cpu

import (
	"errors"
	"fmt"

	"github.com/valerio/go-mossy/mossy/bit"
)

// Bus is the CPU's view of the address space.
type Bus interface {
	Read(address uint16) byte
	Write(address uint16, value byte)
}

// Flag is one of the status register bits, in the 6502 bit layout.
type Flag uint8

const (
	CarryFlag     Flag = 0x01
	ZeroFlag      Flag = 0x02
	InterruptFlag Flag = 0x04
	DecimalFlag   Flag = 0x08
	BreakFlag     Flag = 0x10
	OverflowFlag  Flag = 0x40
	NegativeFlag  Flag = 0x80
)

// ResetVector is where the boot sequence reads the little-endian initial
// program counter from.
const ResetVector uint16 = 0xFFFC

// bootCycles is the length of the reset micro-sequence. UserCycles
// subtracts it from the total so callers can time programs without the
// reset overhead.
const bootCycles = 3

var (
	// ErrIllegalOpcode is returned by Tick when the fetched opcode has no
	// entry in the instruction table.
	ErrIllegalOpcode = errors.New("illegal opcode")

	// ErrUnimplemented is returned by Tick when a queued micro-op or ALU
	// function has no implementation. It indicates a bug in the
	// instruction table, never a silently skipped operation.
	ErrUnimplemented = errors.New("unimplemented operation")
)

// CPU is a cycle-stepped 6502 core. Each instruction decomposes into
// micro-ops and Tick consumes exactly one of them, so execution can pause
// and resume mid-instruction.
type CPU struct {
	pc uint16
	a  uint8
	x  uint8
	y  uint8
	// flags holds the status register bits (NV-BDIZC)
	flags uint8

	// scratch registers staging multi-cycle addressing results
	internalAddress uint16
	internalOperand uint8

	halted bool
	cycles uint64

	// queue holds the pending micro-ops of the in-flight instruction;
	// empty means the CPU is between instructions
	queue []op

	instructions *[256]*instruction
}

// New returns a CPU primed with the boot sequence: the first three ticks
// read the reset vector at 0xFFFC/0xFFFD and jump to it.
func New() *CPU {
	c := &CPU{instructions: buildInstructionTable()}
	c.Reset()
	return c
}

// Reset clears registers, re-primes the boot micro-sequence and restarts
// the cycle counters. Bus devices and their contents are untouched.
func (c *CPU) Reset() {
	c.pc = ResetVector
	c.a = 0
	c.x = 0
	c.y = 0
	c.flags = 0
	c.internalAddress = 0
	c.internalOperand = 0
	c.halted = false
	c.cycles = 0
	c.queue = append(c.queue[:0], bootSequence...)
}

// bootSequence reads the reset vector little-endian and jumps there,
// mirroring what the hardware does over its first cycles.
var bootSequence = []op{
	{kind: opFetchAddrLo},
	{kind: opFetchAddrHi},
	{kind: opJumpToAddress},
}

// Tick advances the CPU by one cycle: it refills an empty queue with a
// single opcode fetch, then executes exactly one micro-op. It returns the
// current PC and the halted flag; once halted is true the caller should
// stop driving the CPU. A non-nil error (illegal opcode, unimplemented
// operation) is fatal to the run.
func (c *CPU) Tick(bus Bus) (pc uint16, halted bool, err error) {
	c.cycles++

	if len(c.queue) == 0 {
		c.queue = append(c.queue, op{kind: opFetchOpcode})
	}

	next := c.queue[0]
	c.queue = c.queue[1:]

	if err := c.execute(bus, next); err != nil {
		return c.pc, c.halted, err
	}
	return c.pc, c.halted, nil
}

func (c *CPU) execute(bus Bus, o op) error {
	switch o.kind {
	case opNop:

	case opFetchOpcode:
		opcode := bus.Read(c.pc)
		c.pc++
		inst := c.instructions[opcode]
		if inst == nil {
			return fmt.Errorf("%w: 0x%02X at 0x%04X", ErrIllegalOpcode, opcode, c.pc-1)
		}
		c.queue = append(c.queue, inst.ops...)

	case opFetchOperand:
		c.internalOperand = bus.Read(c.pc)
		c.pc++

	case opFetchAddrLo, opFetchZeroPageAddr:
		// full overwrite: the high byte is dropped so nothing stale
		// survives from a previous instruction
		c.internalAddress = bit.Combine(0, bus.Read(c.pc))
		c.pc++

	case opFetchAddrHi:
		c.internalAddress = bit.Combine(bus.Read(c.pc), bit.Low(c.internalAddress))
		c.pc++

	case opAddIndexToAddress:
		index := c.readRegister(o.index)
		if o.carry {
			c.internalAddress += uint16(index)
		} else {
			// zero-page indexing wraps within the page
			lo, _ := bit.CheckedAdd(bit.Low(c.internalAddress), index)
			c.internalAddress = bit.Combine(bit.High(c.internalAddress), lo)
		}

	case opReadAddressLo, opLoadOperand:
		c.internalOperand = bus.Read(c.internalAddress)

	case opReadAddressHi:
		// the high byte read does not cross a page (hardware pointer
		// quirk, also what makes ($FF),Y and JMP ($xxFF) behave like the
		// real chip)
		hiAddr := bit.Combine(bit.High(c.internalAddress), bit.Low(c.internalAddress)+1)
		c.internalAddress = bit.Combine(bus.Read(hiAddr), c.internalOperand)

	case opStoreToRegister:
		if o.src == o.dst {
			panic(fmt.Sprintf("cpu: store of register %v onto itself", o.src))
		}
		v := c.readRegister(o.src)
		c.writeRegister(o.dst, v)
		c.setZN(v)

	case opWriteToAddress:
		bus.Write(c.readAddressRegister(o.addr), c.readRegister(o.src))

	case opJumpToAddress:
		c.pc = c.internalAddress

	case opCompute:
		return c.computeAndStore(o.fn, o.src, o.dst)

	case opComputeUnary:
		return c.computeUnary(o.unary, o.dst)

	case opBranchOnFlag:
		if c.isSetFlag(o.flag) == o.expect {
			c.pc += uint16(int16(int8(c.internalOperand)))
		}

	case opSetFlag:
		c.setFlagToCondition(o.flag, o.expect)

	case opBreak:
		c.halted = true

	default:
		return fmt.Errorf("%w: micro-op %v", ErrUnimplemented, o.kind)
	}
	return nil
}

func (c *CPU) readRegister(reg dataRegister) uint8 {
	switch reg {
	case regA:
		return c.a
	case regX:
		return c.x
	case regY:
		return c.y
	case regOperand:
		return c.internalOperand
	}
	panic(fmt.Sprintf("cpu: unknown data register %d", reg))
}

func (c *CPU) writeRegister(reg dataRegister, value uint8) {
	switch reg {
	case regA:
		c.a = value
	case regX:
		c.x = value
	case regY:
		c.y = value
	case regOperand:
		c.internalOperand = value
	default:
		panic(fmt.Sprintf("cpu: unknown data register %d", reg))
	}
}

func (c *CPU) readAddressRegister(reg addressRegister) uint16 {
	switch reg {
	case regPC:
		return c.pc
	case regAddress:
		return c.internalAddress
	}
	panic(fmt.Sprintf("cpu: unknown address register %d", reg))
}

func (c *CPU) isSetFlag(flag Flag) bool {
	return c.flags&uint8(flag) != 0
}

func (c *CPU) setFlagToCondition(flag Flag, condition bool) {
	if condition {
		c.flags |= uint8(flag)
	} else {
		c.flags &= ^uint8(flag)
	}
}

// setZN refreshes the Zero and Negative flags from a value, which nearly
// every data-moving and ALU micro-op does.
func (c *CPU) setZN(value uint8) {
	c.setFlagToCondition(ZeroFlag, value == 0)
	c.setFlagToCondition(NegativeFlag, value&0x80 != 0)
}

// Halted reports whether a BRK has executed.
func (c *CPU) Halted() bool { return c.halted }

// Cycles returns the total number of ticks since construction or the last
// Reset, including the boot sequence.
func (c *CPU) Cycles() uint64 { return c.cycles }

// UserCycles returns the cycles consumed by the program itself: total
// cycles minus the fixed boot sequence, saturating at 0.
func (c *CPU) UserCycles() uint64 {
	if c.cycles < bootCycles {
		return 0
	}
	return c.cycles - bootCycles
}

// Register and state getters for debug tools.
func (c *CPU) GetPC() uint16 { return c.pc }
func (c *CPU) GetA() uint8   { return c.a }
func (c *CPU) GetX() uint8   { return c.x }
func (c *CPU) GetY() uint8   { return c.y }

// FlagString returns a human-readable view of the status register.
func (c *CPU) FlagString() string {
	s := make([]byte, 0, 8)
	for _, f := range []struct {
		flag Flag
		set  byte
	}{
		{NegativeFlag, 'N'},
		{OverflowFlag, 'V'},
		{BreakFlag, 'B'},
		{DecimalFlag, 'D'},
		{InterruptFlag, 'I'},
		{ZeroFlag, 'Z'},
		{CarryFlag, 'C'},
	} {
		if c.isSetFlag(f.flag) {
			s = append(s, f.set)
		} else {
			s = append(s, '-')
		}
	}
	return string(s)
}
