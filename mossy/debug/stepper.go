// Package debug provides a minimal line-oriented stepper for driving a
// machine interactively: step, run to halt, inspect registers, dump
// memory. It talks to the core only through its public surface, so it
// works against anything implementing Target.
package debug

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Target is the slice of the machine the stepper needs.
type Target interface {
	Tick() (pc uint16, halted bool, err error)
	State() string
	Dump(lo, hi uint16) string
}

// Stepper reads commands line by line and drives the target.
type Stepper struct {
	target Target
	in     *bufio.Scanner
	out    io.Writer
}

// NewStepper creates a stepper reading commands from in and writing
// responses to out.
func NewStepper(target Target, in io.Reader, out io.Writer) *Stepper {
	return &Stepper{
		target: target,
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

// Run processes commands until quit, EOF, or a fatal machine error.
//
// Commands: s/step [n], r/run [max], regs, d/dump <lo> <hi>, q/quit.
func (s *Stepper) Run() error {
	fmt.Fprintln(s.out, s.target.State())

	for {
		fmt.Fprint(s.out, "> ")
		if !s.in.Scan() {
			return s.in.Err()
		}
		fields := strings.Fields(s.in.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "s", "step":
			n := uint64(1)
			if len(fields) > 1 {
				parsed, err := strconv.ParseUint(fields[1], 10, 64)
				if err != nil {
					fmt.Fprintf(s.out, "bad count %q\n", fields[1])
					continue
				}
				n = parsed
			}
			if err := s.step(n); err != nil {
				return err
			}

		case "r", "run":
			max := uint64(1_000_000)
			if len(fields) > 1 {
				parsed, err := strconv.ParseUint(fields[1], 10, 64)
				if err != nil {
					fmt.Fprintf(s.out, "bad limit %q\n", fields[1])
					continue
				}
				max = parsed
			}
			if err := s.run(max); err != nil {
				return err
			}

		case "regs":
			fmt.Fprintln(s.out, s.target.State())

		case "d", "dump":
			lo, hi, err := parseRange(fields[1:])
			if err != nil {
				fmt.Fprintln(s.out, err)
				continue
			}
			fmt.Fprint(s.out, s.target.Dump(lo, hi))

		case "q", "quit":
			return nil

		default:
			fmt.Fprintf(s.out, "unknown command %q\n", fields[0])
		}
	}
}

func (s *Stepper) step(n uint64) error {
	for i := uint64(0); i < n; i++ {
		_, halted, err := s.target.Tick()
		if err != nil {
			return err
		}
		if halted {
			fmt.Fprintln(s.out, "halted")
			break
		}
	}
	fmt.Fprintln(s.out, s.target.State())
	return nil
}

func (s *Stepper) run(max uint64) error {
	for i := uint64(0); i < max; i++ {
		_, halted, err := s.target.Tick()
		if err != nil {
			return err
		}
		if halted {
			fmt.Fprintln(s.out, "halted")
			fmt.Fprintln(s.out, s.target.State())
			return nil
		}
	}
	fmt.Fprintf(s.out, "no halt within %d ticks\n", max)
	fmt.Fprintln(s.out, s.target.State())
	return nil
}

func parseRange(fields []string) (lo, hi uint16, err error) {
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("usage: dump <lo> <hi>")
	}
	l, err := strconv.ParseUint(fields[0], 16, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("bad address %q", fields[0])
	}
	h, err := strconv.ParseUint(fields[1], 16, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("bad address %q", fields[1])
	}
	return uint16(l), uint16(h), nil
}
