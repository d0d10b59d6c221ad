// Package report formats per-instruction trace lines and the final
// statistics block. It only ever reads a cpu.Cpu's exported state and a
// cache.Cache's exported Counters -- it never reaches into either package's
// internals, keeping the CPU core oblivious to how (or whether) it is
// reported on.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pdp11sim/cache"
	"pdp11sim/cpu"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	flagStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// TraceLine formats one executed instruction. verbose adds the flag quad
// and a full register dump alongside the base trace fields.
func TraceLine(d cpu.Decoded, c *cpu.Cpu, verbose bool) string {
	base := fmt.Sprintf("pc=%06o word=%06o op=%-4s", c.Registers[cpu.PC], d.Word, d.Op)
	if !verbose {
		return base
	}
	flags := flagStyle.Render(flagString(c.Flags))
	return lipgloss.JoinHorizontal(lipgloss.Top, base, "  ", flags, "  ", registerDump(c))
}

func flagString(f cpu.Flags) string {
	render := func(bit bool, ch byte) byte {
		if bit {
			return ch
		}
		return '-'
	}
	return string([]byte{
		render(f.N, 'N'),
		render(f.Z, 'Z'),
		render(f.V, 'V'),
		render(f.C, 'C'),
	})
}

func registerDump(c *cpu.Cpu) string {
	var parts []string
	for i, r := range c.Registers {
		parts = append(parts, fmt.Sprintf("R%d=%06o", i, r))
	}
	return strings.Join(parts, " ")
}

// StatsBlock renders the final human-readable statistics dump: CPU
// counters, the first 20 memory words, and -- when ch is non-nil -- the
// cache counters block.
func StatsBlock(c *cpu.Cpu, ch *cache.Cache) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("-- execution statistics --"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "instructions executed : %d\n", c.Counters.InstExecs)
	fmt.Fprintf(&b, "instruction fetches   : %d\n", c.Counters.InstFetches)
	fmt.Fprintf(&b, "data words read       : %d\n", c.Counters.MemoryReads)
	fmt.Fprintf(&b, "data words written    : %d\n", c.Counters.MemoryWrites)
	takenPct := 0.0
	if c.Counters.BranchExecs > 0 {
		takenPct = 100 * float64(c.Counters.BranchTaken) / float64(c.Counters.BranchExecs)
	}
	fmt.Fprintf(&b, "branches executed     : %d\n", c.Counters.BranchExecs)
	fmt.Fprintf(&b, "branches taken        : %d (%.1f%%)\n", c.Counters.BranchTaken, takenPct)

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("-- first 20 memory words --"))
	b.WriteString("\n")
	for i := 0; i < 20; i++ {
		fmt.Fprintf(&b, "%06o: %06o\n", 2*i, c.Mem.WordAt(i))
	}

	if ch != nil {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render("-- cache statistics --"))
		b.WriteString("\n")
		fmt.Fprintf(&b, "cache reads  : %d\n", ch.Counters.CacheReads)
		fmt.Fprintf(&b, "cache writes : %d\n", ch.Counters.CacheWrites)
		fmt.Fprintf(&b, "hits         : %d\n", ch.Counters.Hits)
		fmt.Fprintf(&b, "misses       : %d\n", ch.Counters.Misses)
		fmt.Fprintf(&b, "write-backs  : %d\n", ch.Counters.WriteBacks)
	}

	return b.String()
}
