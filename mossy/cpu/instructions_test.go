package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstructionTable_entries(t *testing.T) {
	table := buildInstructionTable()

	count := 0
	for opcode, inst := range table {
		if inst == nil {
			continue
		}
		count++
		assert.NotEmpty(t, inst.mnemonic, "opcode 0x%02X has no mnemonic", opcode)
		assert.NotEmpty(t, inst.ops, "opcode 0x%02X has no micro-ops", opcode)
	}
	assert.Equal(t, 142, count, "number of implemented opcodes")
}

func TestInstructionTable_knownOpcodes(t *testing.T) {
	table := buildInstructionTable()

	testCases := []struct {
		opcode   uint8
		mnemonic string
		mode     addressingMode
		cycles   int // micro-ops excluding the opcode fetch
	}{
		{0xEA, "NOP", modeImplied, 1},
		{0x00, "BRK", modeImplied, 1},
		{0xA9, "LDA", modeImmediate, 2},
		{0xAD, "LDA", modeAbsolute, 4},
		{0xBD, "LDA", modeAbsoluteX, 5},
		{0xB1, "LDA", modeIndirectIndexed, 6},
		{0x95, "STA", modeZeroPageX, 3},
		{0x8D, "STA", modeAbsolute, 3},
		{0x4C, "JMP", modeAbsolute, 3},
		{0x6C, "JMP", modeIndirect, 5},
		{0xD0, "BNE", modeRelative, 2},
		{0xE6, "INC", modeZeroPage, 4},
		{0x0A, "ASL", modeAccumulator, 1},
	}
	for _, tC := range testCases {
		inst := table[tC.opcode]
		require.NotNil(t, inst, "opcode 0x%02X missing", tC.opcode)
		assert.Equal(t, tC.mnemonic, inst.mnemonic, "opcode 0x%02X", tC.opcode)
		assert.Equal(t, tC.mode, inst.mode, "opcode 0x%02X", tC.opcode)
		assert.Len(t, inst.ops, tC.cycles, "opcode 0x%02X", tC.opcode)
	}
}

func TestInstructionTable_stackOpcodesAbsent(t *testing.T) {
	table := buildInstructionTable()

	// no stack pointer in this register model
	for _, opcode := range []uint8{0x48, 0x68, 0x08, 0x28, 0x20, 0x60, 0x40, 0x9A, 0xBA} {
		assert.Nil(t, table[opcode], "opcode 0x%02X should not decode", opcode)
	}
}

func TestFetchPrefix_lengths(t *testing.T) {
	testCases := []struct {
		mode addressingMode
		len  int
	}{
		{modeImplied, 0},
		{modeAccumulator, 0},
		{modeImmediate, 1},
		{modeRelative, 1},
		{modeZeroPage, 1},
		{modeZeroPageX, 2},
		{modeZeroPageY, 2},
		{modeAbsolute, 2},
		{modeAbsoluteX, 3},
		{modeAbsoluteY, 3},
		{modeIndirect, 4},
		{modeIndexedIndirect, 4},
		{modeIndirectIndexed, 4},
	}
	for _, tC := range testCases {
		assert.Len(t, fetchPrefix(tC.mode), tC.len, "mode %d", tC.mode)
	}
}
