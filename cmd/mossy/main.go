package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"github.com/valerio/go-mossy/mossy"
	"github.com/valerio/go-mossy/mossy/debug"
	"github.com/valerio/go-mossy/mossy/hexfile"
)

func main() {
	app := cli.NewApp()
	app.Name = "Mossy"
	app.Description = "A cycle-stepped 6502 emulator"
	app.Usage = "mossy [options] <image file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "image",
			Usage: "Path to a hex dump image file",
		},
		cli.Uint64Flag{
			Name:  "max-ticks",
			Usage: "Stop after this many ticks if the program has not halted (0 = no limit)",
			Value: 10_000_000,
		},
		cli.BoolFlag{
			Name:  "trace",
			Usage: "Log the program counter on every tick",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "Start an interactive stepper instead of running to halt",
		},
		cli.StringFlag{
			Name:  "dump",
			Usage: "Memory range to print after the run, as lo:hi in hex (e.g. 0000:00FF)",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("Error running emulator", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	path := c.String("image")
	if path == "" {
		if c.NArg() > 0 {
			path = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return errors.New("no image path provided")
		}
	}

	machine, err := buildMachine(path)
	if err != nil {
		return err
	}

	if c.Bool("debug") {
		return debug.NewStepper(machine, os.Stdin, os.Stdout).Run()
	}

	ticks, err := runLoop(machine, c.Uint64("max-ticks"), c.Bool("trace"))
	if err != nil {
		return err
	}
	slog.Info("Halted", "ticks", ticks, "userCycles", machine.CPU.UserCycles())
	fmt.Println(machine.State())

	if r := c.String("dump"); r != "" {
		var lo, hi uint16
		if _, err := fmt.Sscanf(r, "%04x:%04x", &lo, &hi); err != nil {
			return fmt.Errorf("bad dump range %q: %w", r, err)
		}
		fmt.Print(machine.Dump(lo, hi))
	}
	return nil
}

func buildMachine(path string) (*mossy.Machine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := hexfile.Parse(f)
	if err != nil {
		return nil, err
	}

	machine := mossy.NewMachine()
	total := 0
	for _, rec := range records {
		if err := machine.LoadBlock(rec.Origin, rec.Data); err != nil {
			return nil, err
		}
		total += len(rec.Data)
	}
	slog.Info("Loaded image", "path", path, "blocks", len(records), "bytes", total)
	return machine, nil
}

func runLoop(machine *mossy.Machine, maxTicks uint64, trace bool) (uint64, error) {
	if !trace {
		return machine.RunToHalt(maxTicks)
	}

	var ticks uint64
	for maxTicks == 0 || ticks < maxTicks {
		pc, halted, err := machine.Tick()
		ticks++
		if err != nil {
			return ticks, err
		}
		slog.Info("tick", "n", ticks, "pc", fmt.Sprintf("%04X", pc))
		if halted {
			return ticks, nil
		}
	}
	return ticks, fmt.Errorf("%w after %d ticks", mossy.ErrTickLimit, maxTicks)
}
