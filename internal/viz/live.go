// Package viz renders a running cluster in the terminal: an x-y
// projection on a braille canvas next to live energy diagnostics.
package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/physics"
)

const (
	canvasWidth     = 70
	canvasHeight    = 22
	historyCapacity = 400
)

type TickMsg time.Time

// Model drives the live view. It owns the cluster and steps it between
// frames; the runner in internal/sim is not involved.
type Model struct {
	cluster    *physics.Cluster
	integrator integrators.Integrator
	dt         float64
	t          float64
	step       int

	stepsPerFrame int
	scale         float64
	running       bool

	canvas        *Canvas
	energy0       float64
	energyHistory []float64
}

func NewModel(c *physics.Cluster, integ integrators.Integrator, dt float64) Model {
	// Warmup evaluation so the first frame steps from a consistent state.
	c.Accelerate()

	return Model{
		cluster:       c,
		integrator:    integ,
		dt:            dt,
		stepsPerFrame: 10,
		scale:         autoScale(c),
		running:       true,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		energy0:       c.Energy(),
		energyHistory: make([]float64, 0, historyCapacity),
	}
}

// autoScale picks a half-width that keeps every body on screen with some
// margin.
func autoScale(c *physics.Cluster) float64 {
	max := 1.0
	for i := range c.Bodies {
		p := c.Bodies[i].Pos
		max = math.Max(max, math.Max(math.Abs(p.X), math.Abs(p.Y)))
	}
	return max * 1.3
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "+", "=":
			m.scale /= 1.25
		case "-", "_":
			m.scale *= 1.25
		case "up", "k":
			m.stepsPerFrame *= 2
		case "down", "j":
			if m.stepsPerFrame > 1 {
				m.stepsPerFrame /= 2
			}
		case "a":
			m.scale = autoScale(m.cluster)
		}
	case TickMsg:
		if m.running {
			m.advance()
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) advance() {
	for i := 0; i < m.stepsPerFrame; i++ {
		m.integrator.Step(m.cluster, m.dt)
		m.step++
		m.t += m.dt
	}

	energy := m.cluster.Energy()
	m.energyHistory = append(m.energyHistory, energy)
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}

	if !m.cluster.IsValid() {
		m.running = false
	}
}

func (m *Model) drawCluster() {
	m.canvas.Clear()
	subW := float64(canvasWidth * 2)
	subH := float64(canvasHeight * 4)

	for i := range m.cluster.Bodies {
		p := m.cluster.Bodies[i].Pos
		x := int((p.X/m.scale + 1) / 2 * subW)
		y := int((1 - p.Y/m.scale) / 2 * subH)
		m.canvas.Set(x, y)
	}
}

func (m Model) View() string {
	m.drawCluster()

	energy := m.energy0
	if len(m.energyHistory) > 0 {
		energy = m.energyHistory[len(m.energyHistory)-1]
	}
	drift := 0.0
	if m.energy0 != 0 {
		drift = (energy - m.energy0) / m.energy0
	}
	p := m.cluster.Momentum()

	var stats strings.Builder
	stats.WriteString(headerStyle.Render("gravsim live"))
	stats.WriteByte('\n')
	row := func(label, value string) {
		stats.WriteString(labelStyle.Render(label))
		stats.WriteString(valueStyle.Render(value))
		stats.WriteByte('\n')
	}
	row("bodies", fmt.Sprintf("%d", m.cluster.Len()))
	row("t", fmt.Sprintf("%.3f", m.t))
	row("steps", fmt.Sprintf("%d (x%d/frame)", m.step, m.stepsPerFrame))
	row("E", fmt.Sprintf("%.10f", energy))
	row("dE/E", fmt.Sprintf("%.3e", drift))
	row("|P|", fmt.Sprintf("%.3e", p.Norm()))
	row("scale", fmt.Sprintf("%.2f", m.scale))
	if !m.running {
		row("status", "paused")
	}

	if len(m.energyHistory) > 2 {
		graph := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(6),
			asciigraph.Width(36),
			asciigraph.Caption("total energy"),
		)
		stats.WriteByte('\n')
		stats.WriteString(graphStyle.Render(graph))
	}

	view := lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		statsStyle.Render(stats.String()),
	)
	help := helpStyle.Render("space pause · +/- zoom · k/j speed · a autoscale · q quit")
	return view + "\n" + help + "\n"
}
