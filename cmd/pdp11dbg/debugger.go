package main

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"pdp11sim/cpu"
	"pdp11sim/mask"
)

const wordsPerRow = 8
const rows = 8

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	pcStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213"))
	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

type model struct {
	cpu     *cpu.Cpu
	last    cpu.Decoded
	lastErr error
	halted  bool
}

func newModel(c *cpu.Cpu) model {
	return model{cpu: c}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ", "j":
		if !m.halted {
			d, err := m.cpu.Step()
			m.last = d
			if err != nil {
				m.halted = true
				if !errors.Is(err, cpu.Halt) {
					m.lastErr = err
				}
			}
		}
	}
	return m, nil
}

func (m model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("pdp11dbg"),
		m.pageTable(),
		m.status(),
		panelStyle.Render(spew.Sdump(m.last)),
		"space/j: step   q: quit",
	)
}

// renderRow renders one row of wordsPerRow words starting at word index
// base, highlighting the current PC if it falls within the row.
func (m model) renderRow(base int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%06o: ", 2*base)
	pcWord := int(m.cpu.Registers[cpu.PC]) / 2
	for i := 0; i < wordsPerRow; i++ {
		idx := base + i
		word := fmt.Sprintf("%06o", m.cpu.Mem.WordAt(idx))
		if idx == pcWord {
			word = pcStyle.Render("[" + word + "]")
		}
		sb.WriteString(word)
		sb.WriteString(" ")
	}
	return sb.String()
}

func (m model) pageTable() string {
	pcWord := int(m.cpu.Registers[cpu.PC]) / 2
	base := (pcWord / wordsPerRow) * wordsPerRow
	start := base - (rows/2)*wordsPerRow
	if start < 0 {
		start = 0
	}
	var lines []string
	for r := 0; r < rows; r++ {
		lines = append(lines, m.renderRow(start+r*wordsPerRow))
	}
	return strings.Join(lines, "\n")
}

func (m model) status() string {
	var regs []string
	nonzero := 0
	for i, v := range m.cpu.Registers {
		regs = append(regs, fmt.Sprintf("R%d=%06o", i, v))
		if mask.PopCount(v) > 0 {
			nonzero++
		}
	}
	f := m.cpu.Flags
	flagStr := fmt.Sprintf("N=%v Z=%v V=%v C=%v  (%d/8 registers nonzero)", f.N, f.Z, f.V, f.C, nonzero)
	errStr := ""
	if m.lastErr != nil {
		errStr = "  error: " + m.lastErr.Error()
	} else if m.halted {
		errStr = "  halted"
	}
	return panelStyle.Render(strings.Join(regs, " ") + "\n" + flagStr + errStr)
}
