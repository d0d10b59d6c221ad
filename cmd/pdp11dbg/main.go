// Command pdp11dbg is an interactive single-step debugger: it renders
// memory as an octal word table with the program counter highlighted, a
// register/flag panel, and a dump of the most recently decoded instruction.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"pdp11sim/cpu"
	"pdp11sim/internal/loader"
	"pdp11sim/mem"
)

func main() {
	m := mem.New()
	if _, err := loader.Load(os.Stdin, m); err != nil {
		fmt.Fprintln(os.Stderr, "pdp11dbg:", err)
		os.Exit(1)
	}
	c := cpu.New(m, nil)
	if _, err := tea.NewProgram(newModel(c)).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "pdp11dbg:", err)
		os.Exit(1)
	}
}
