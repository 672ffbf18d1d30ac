package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/PyLops/curvelops/bridge"
	"github.com/PyLops/curvelops/buffer"
	"github.com/PyLops/curvelops/native"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateScales modelState = iota
	stateAngles
	stateEditQuery
)

type interactiveModel struct {
	lib native.Library

	dims   []int
	scales int
	angles int
	all    bool

	geom *bridge.Geometry
	err  error

	state    modelState
	selected int
	angle    int
	inputs   []textinput.Model
	focusIdx int
}

type queriedMsg struct {
	err  error
	geom *bridge.Geometry
	dims []int
}

func newInteractiveModel(lib native.Library, dims []int, scales, angles int, all bool) *interactiveModel {
	return &interactiveModel{
		lib:    lib,
		dims:   dims,
		scales: scales,
		angles: angles,
		all:    all,
		state:  stateScales,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.query
}

func (m *interactiveModel) query() tea.Msg {
	p, err := newPipeline(m.lib, len(m.dims))
	if err != nil {
		return queriedMsg{err: err}
	}
	g, err := p.QueryParams(m.dims, m.scales, m.angles, m.all)
	if err != nil {
		return queriedMsg{err: err}
	}
	return queriedMsg{geom: g, dims: m.dims}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state != stateEditQuery {
				return m, tea.Quit
			}

		case "up", "k":
			switch m.state {
			case stateScales:
				if m.selected > 0 {
					m.selected--
				}
			case stateAngles:
				if m.angle > 0 {
					m.angle--
				}
			}

		case "down", "j":
			switch m.state {
			case stateScales:
				if m.geom != nil && m.selected < m.geom.NumScales()-1 {
					m.selected++
				}
			case stateAngles:
				if m.geom != nil && m.angle < m.geom.NumAngles(m.selected)-1 {
					m.angle++
				}
			}

		case "enter":
			switch m.state {
			case stateScales:
				if m.geom != nil {
					m.angle = 0
					m.state = stateAngles
				}
			case stateEditQuery:
				return m, m.applyInputs()
			}

		case "e":
			if m.state != stateEditQuery {
				m.prepareInputs()
				m.state = stateEditQuery
				return m, nil
			}

		case "tab":
			if m.state == stateEditQuery && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "esc":
			switch m.state {
			case stateAngles:
				m.state = stateScales
			case stateEditQuery:
				m.state = stateScales
				m.inputs = nil
			}
		}

	case queriedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.geom = msg.geom
		m.dims = msg.dims
		if m.selected >= m.geom.NumScales() {
			m.selected = 0
		}
		m.state = stateScales
	}

	if m.state == stateEditQuery {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *interactiveModel) prepareInputs() {
	fields := []struct{ prompt, value string }{
		{"dims: ", shapeString(m.dims)},
		{"scales: ", strconv.Itoa(m.scales)},
		{"angles: ", strconv.Itoa(m.angles)},
	}
	m.inputs = make([]textinput.Model, len(fields))
	for i, f := range fields {
		ti := textinput.New()
		ti.Prompt = f.prompt
		ti.SetValue(f.value)
		ti.Width = 24
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

// applyInputs parses the edit fields and re-runs the parameter query.
func (m *interactiveModel) applyInputs() tea.Cmd {
	dims, err := parseDims(m.inputs[0].Value())
	if err != nil {
		m.err = err
		return nil
	}
	scales, err := strconv.Atoi(strings.TrimSpace(m.inputs[1].Value()))
	if err != nil || scales < 1 {
		m.err = fmt.Errorf("invalid scales %q", m.inputs[1].Value())
		return nil
	}
	angles, err := strconv.Atoi(strings.TrimSpace(m.inputs[2].Value()))
	if err != nil || angles < 1 {
		m.err = fmt.Errorf("invalid angles %q", m.inputs[2].Value())
		return nil
	}
	m.dims = dims
	m.scales = scales
	m.angles = angles
	m.inputs = nil
	return m.query
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(headStyle.Render("Curvelet geometry"))
	fmt.Fprintf(&b, " %s  scales=%d angles=%d\n\n", shapeString(m.dims), m.scales, m.angles)

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	if m.geom == nil {
		b.WriteString("Querying geometry...\n")
		return b.String()
	}

	switch m.state {
	case stateScales:
		fmt.Fprintf(&b, "Total coefficients: %d\n\n", m.geom.TotalCoefficients())
		for s, sc := range m.geom.Scales {
			line := fmt.Sprintf("scale %d  %d angles  %d coefficients",
				s, len(sc.Angles), scaleCoefficients(sc))
			if s == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter angles • e edit query • q quit"))

	case stateAngles:
		sc := m.geom.Scales[m.selected]
		fmt.Fprintf(&b, "%s\n\n", scaleStyle.Render(fmt.Sprintf("scale %d", m.selected)))
		for a, ag := range sc.Angles {
			line := fmt.Sprintf("angle %2d  %s  %s",
				a, shapeString(ag.Extents), freqString(ag.Frequency))
			if ag.Sample != nil {
				line += "  s" + strings.TrimPrefix(freqString(ag.Sample), "f")
			}
			if a == m.angle {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • esc back • q quit"))

	case stateEditQuery:
		b.WriteString("Edit query:\n\n")
		for i := range m.inputs {
			b.WriteString(m.inputs[i].View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter apply • esc cancel"))
	}

	return b.String()
}

func scaleCoefficients(sc bridge.ScaleGeometry) int {
	n := 0
	for _, ag := range sc.Angles {
		n += buffer.ElemCount(ag.Extents)
	}
	return n
}

func runInteractive(lib native.Library, dimsStr string, scales, angles int, all bool) error {
	dims, err := parseDims(dimsStr)
	if err != nil {
		return err
	}
	p := tea.NewProgram(newInteractiveModel(lib, dims, scales, angles, all), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
