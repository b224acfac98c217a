package mossy

import (
	"errors"
	"fmt"

	"github.com/valerio/go-mossy/mossy/bit"
	"github.com/valerio/go-mossy/mossy/cpu"
	"github.com/valerio/go-mossy/mossy/memory"
)

// ErrTickLimit is returned by RunToHalt when the program has not halted
// within the allowed number of ticks.
var ErrTickLimit = errors.New("tick limit reached")

// Machine is the canonical wiring of the core: a CPU driving a bus with a
// single full-range RAM. Additional devices can be registered on the bus
// before ticking starts.
type Machine struct {
	CPU *cpu.CPU
	Bus *Bus
	RAM *memory.RAM
}

// NewMachine wires up a machine with 64K of RAM.
func NewMachine() *Machine {
	m := &Machine{
		CPU: cpu.New(),
		Bus: NewBus(),
		RAM: memory.New(0x0000, 0xFFFF),
	}
	m.Bus.Register(m.RAM)
	return m
}

// LoadBlock bulk-loads a program block through the RAM device.
func (m *Machine) LoadBlock(origin uint16, data []byte) error {
	return m.RAM.Load(origin, data)
}

// SetResetVector points the little-endian reset vector at target, so the
// boot sequence jumps there.
func (m *Machine) SetResetVector(target uint16) {
	m.Bus.Write(cpu.ResetVector, bit.Low(target))
	m.Bus.Write(cpu.ResetVector+1, bit.High(target))
}

// Tick advances the machine by one cycle.
func (m *Machine) Tick() (pc uint16, halted bool, err error) {
	return m.CPU.Tick(m.Bus)
}

// RunToHalt ticks until the CPU halts, returning the number of ticks
// consumed. A maxTicks of 0 means no limit; otherwise exceeding it returns
// ErrTickLimit.
func (m *Machine) RunToHalt(maxTicks uint64) (uint64, error) {
	var ticks uint64
	for maxTicks == 0 || ticks < maxTicks {
		_, halted, err := m.Tick()
		ticks++
		if err != nil {
			return ticks, err
		}
		if halted {
			return ticks, nil
		}
	}
	return ticks, fmt.Errorf("%w after %d ticks", ErrTickLimit, maxTicks)
}

// State returns a one-line register summary for debug tools.
func (m *Machine) State() string {
	c := m.CPU
	return fmt.Sprintf("PC=%04X A=%02X X=%02X Y=%02X [%s] cycles=%d user=%d",
		c.GetPC(), c.GetA(), c.GetX(), c.GetY(), c.FlagString(), c.Cycles(), c.UserCycles())
}

// Dump formats a memory range through the RAM device, read-only.
func (m *Machine) Dump(lo, hi uint16) string {
	return m.RAM.Dump(lo, hi)
}
