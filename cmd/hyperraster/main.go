// Command hyperraster is a terminal raster-plot renderer: it drives an
// engine one tick per animation frame and renders the fired-neuron
// history as a scrolling grid, one column per tick and one row per
// neuron. It reaches into the engine only through Step, CurrentTime,
// and NeuronCount.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/meronrudy/hyperspike/config"
	"github.com/meronrudy/hyperspike/engine"
	"github.com/meronrudy/hyperspike/raster"
)

const defaultColumns = 64

var (
	firedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	restStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
)

type tickMsg time.Time

type model struct {
	eng    *engine.Engine
	buffer *raster.ColumnBuffer
}

func newModel(eng *engine.Engine) model {
	return model{
		eng:    eng,
		buffer: raster.NewColumnBuffer(defaultColumns),
	}
}

func tickEvery() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return tickEvery()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tickMsg:
		fired := m.eng.Step()
		ids := make([]int, 0, len(fired))
		for _, ev := range fired {
			ids = append(ids, ev.NeuronID)
		}
		m.buffer.Push(raster.Column{Tick: m.eng.CurrentTime() - 1, Fired: ids})
		return m, tickEvery()
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("hyperraster — t=%d neurons=%d", m.eng.CurrentTime(), m.eng.NeuronCount())))
	b.WriteString("\n")

	n := int(m.eng.NeuronCount())
	cols := m.buffer.Columns()
	for row := 0; row < n; row++ {
		var line strings.Builder
		for _, col := range cols {
			if containsNeuron(col.Fired, row) {
				line.WriteString(firedStyle.Render("#"))
			} else {
				line.WriteString(restStyle.Render("."))
			}
		}
		b.WriteString(line.String())
		b.WriteString("\n")
	}
	b.WriteString("\nq to quit\n")
	return b.String()
}

func containsNeuron(fired []int, id int) bool {
	for _, f := range fired {
		if f == id {
			return true
		}
	}
	return false
}

func main() {
	configPath := os.Getenv("HYPERSPIKE_CONFIG")
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hyperraster: loading config:", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "hyperraster: invalid config:", err)
		os.Exit(1)
	}

	eng, err := config.BuildEngine(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hyperraster: building engine:", err)
		os.Exit(1)
	}

	p := tea.NewProgram(newModel(eng))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "hyperraster:", err)
		os.Exit(1)
	}
}
