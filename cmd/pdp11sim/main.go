// Command pdp11sim is the batch driver: read an octal memory image from
// stdin, run it to completion, print a trace (if requested) and the final
// statistics block.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pdp11sim/cpu"
	"pdp11sim/internal/loader"
	"pdp11sim/internal/report"
	"pdp11sim/mem"
)

var (
	traceFlag   bool
	verboseFlag bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pdp11sim",
		Short: "Simulate a subset of the PDP-11 instruction set",
		Args:  cobra.NoArgs,
		RunE:  run,
		// main prints the one-line diagnostic itself.
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w (usage: pdp11sim [-t] [-v] < image)", err)
	})
	cmd.Flags().BoolVarP(&traceFlag, "trace", "t", false, "emit a one-line instruction trace")
	cmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "emit a verbose instruction trace")
	return cmd
}

func run(cmd *cobra.Command, _ []string) error {
	m := mem.New()
	if _, err := loader.Load(os.Stdin, m); err != nil {
		return err
	}

	c := cpu.New(m, newCache())

	emit := traceFlag || verboseFlag
	if err := c.Run(func(d cpu.Decoded, _ error) {
		if emit {
			fmt.Fprintln(cmd.OutOrStdout(), report.TraceLine(d, c, verboseFlag))
		}
	}); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprint(cmd.OutOrStdout(), report.StatsBlock(c, c.Cache))
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "pdp11sim:", err)
		os.Exit(1)
	}
}
