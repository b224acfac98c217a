package mossy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-mossy/mossy/cpu"
	"github.com/valerio/go-mossy/mossy/memory"
)

func TestMachine_resetVectorBoot(t *testing.T) {
	m := NewMachine()
	m.SetResetVector(0x0200)

	for i := 0; i < 3; i++ {
		_, _, err := m.Tick()
		require.NoError(t, err)
	}
	assert.Equal(t, uint16(0x0200), m.CPU.GetPC())
}

func TestMachine_runToHalt(t *testing.T) {
	m := NewMachine()
	m.SetResetVector(0x0200)
	// NOP; LDX #$05; LDA #$AA; STA $01,X; NOP; BRK
	require.NoError(t, m.LoadBlock(0x0200, []byte{0xEA, 0xA2, 0x05, 0xA9, 0xAA, 0x95, 0x01, 0xEA, 0x00}))

	ticks, err := m.RunToHalt(1000)
	require.NoError(t, err)
	assert.Equal(t, byte(0xAA), m.RAM.Read(0x0006))
	assert.Equal(t, ticks, m.CPU.Cycles())
}

func TestMachine_tickLimit(t *testing.T) {
	m := NewMachine()
	m.SetResetVector(0x0200)
	// JMP $0200 spins forever
	require.NoError(t, m.LoadBlock(0x0200, []byte{0x4C, 0x00, 0x02}))

	_, err := m.RunToHalt(50)
	assert.ErrorIs(t, err, ErrTickLimit)
}

func TestMachine_illegalOpcodeStopsRun(t *testing.T) {
	m := NewMachine()
	m.SetResetVector(0x0200)
	require.NoError(t, m.LoadBlock(0x0200, []byte{0xFF}))

	_, err := m.RunToHalt(100)
	assert.ErrorIs(t, err, cpu.ErrIllegalOpcode)
}

func TestMachine_writeFanOutThroughRun(t *testing.T) {
	// a second device mirroring the zero page sees the program's stores
	m := NewMachine()
	mirror := memory.New(0x0000, 0x00FF)
	m.Bus.Register(mirror)

	m.SetResetVector(0x0200)
	// LDA #$5A; STA $10; BRK
	require.NoError(t, m.LoadBlock(0x0200, []byte{0xA9, 0x5A, 0x85, 0x10, 0x00}))

	_, err := m.RunToHalt(1000)
	require.NoError(t, err)

	assert.Equal(t, byte(0x5A), m.RAM.Read(0x0010))
	assert.Equal(t, byte(0x5A), mirror.Read(0x0010))
	// reads resolve to the first registered device
	assert.Equal(t, byte(0x5A), m.Bus.Read(0x0010))
}

func TestMachine_state(t *testing.T) {
	m := NewMachine()
	assert.Contains(t, m.State(), "PC=FFFC")
	assert.Contains(t, m.State(), "cycles=0")
}
