// Package tui provides a live terminal view of a running simulation built
// on bubbletea: orbit traces on a braille canvas beside a stats panel.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/W-A-James/G-SIM/internal/nbody"
	"github.com/W-A-James/G-SIM/internal/sim"
	"github.com/W-A-James/G-SIM/internal/viz"
)

const (
	canvasWidth  = 60
	canvasHeight = 22
	trailFrames  = 600
	fps          = 30
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/fps, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model drives one simulation and renders its recent trajectory.
type Model struct {
	simulation   *sim.Simulation
	scenario     string
	stepsPerTick int

	trail         [][]nbody.Body
	initialEnergy float64
	hasEnergy     bool

	running bool
	err     error
}

// NewModel wraps s for live viewing. stepsPerTick sets how many integration
// steps run between frames; higher values fast-forward slow scenarios.
func NewModel(s *sim.Simulation, scenario string, stepsPerTick int) Model {
	if stepsPerTick < 1 {
		stepsPerTick = 1
	}
	e, ok := s.Energy()
	return Model{
		simulation:    s,
		scenario:      scenario,
		stepsPerTick:  stepsPerTick,
		trail:         [][]nbody.Body{s.Snapshot()},
		initialEnergy: e,
		hasEnergy:     ok,
		running:       true,
	}
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		}
	case tickMsg:
		if m.running && m.err == nil {
			for i := 0; i < m.stepsPerTick; i++ {
				if err := m.simulation.Step(); err != nil {
					m.err = err
					m.running = false
					break
				}
			}
			m.trail = append(m.trail, m.simulation.Snapshot())
			if len(m.trail) > trailFrames {
				m.trail = m.trail[len(m.trail)-trailFrames:]
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	canvas := viz.OrbitPlot(m.trail, canvasWidth, canvasHeight)

	var stats strings.Builder
	row := func(label, value string) {
		stats.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("scenario", m.scenario)
	row("time", fmt.Sprintf("%.6g", m.simulation.Time()))
	row("steps", fmt.Sprintf("%d", m.simulation.StepCount()))
	row("dt", fmt.Sprintf("%.6g", m.simulation.Dt()))
	if e, ok := m.simulation.Energy(); ok {
		row("energy", fmt.Sprintf("%.6g", e))
		if m.hasEnergy && m.initialEnergy != 0 {
			drift := math.Abs(e-m.initialEnergy) / math.Abs(m.initialEnergy)
			row("drift", fmt.Sprintf("%.3e", drift))
		}
	}
	if !m.running && m.err == nil {
		row("state", "paused")
	}
	if m.err != nil {
		stats.WriteString(errStyle.Render(m.err.Error()) + "\n")
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, canvas, statsStyle.Render(stats.String()))
	return headerStyle.Render("g-sim live") + "\n" +
		body +
		helpStyle.Render("space pause · q quit") + "\n"
}

// Run blocks until the live view exits.
func Run(s *sim.Simulation, scenario string, stepsPerTick int) error {
	_, err := tea.NewProgram(NewModel(s, scenario, stepsPerTick)).Run()
	return err
}
