package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 1).Width(panelWidth - 1)
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(9)
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	helpBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("86")).Padding(0, 2)
)

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "starting..."
	}
	if m.help {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.helpView())
	}

	w, h := m.canvasPixels()
	frame := m.renderFrame(w, h, m.view, true)
	canvas := strings.Join(halfBlocks(frame.Image()), "\n")

	_, rows := m.canvasCells()
	panel := panelStyle.Height(rows).MaxHeight(rows).Render(m.panelView())
	body := lipgloss.JoinHorizontal(lipgloss.Top, canvas, panel)
	return body + "\n" + m.statusLine()
}

func (m model) panelView() string {
	var s strings.Builder

	state := "RUNNING"
	if !m.running {
		state = "PAUSED"
	}
	s.WriteString(headerStyle.Render("PENDULA") + "  " + dimStyle.Render(state) + "\n\n")

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("tick", fmt.Sprintf("%d", m.chain.Ticks()))
	row("scale", fmt.Sprintf("%g rad", m.chain.TickScale()))
	row("trail", fmt.Sprintf("%d / %d", len(m.chain.Trail()), m.chain.MaxTrails()))
	row("zoom", fmt.Sprintf("%.2fx", m.view.zoom))
	s.WriteString("\n")

	ids := m.chain.IDs()
	if len(ids) == 0 {
		s.WriteString(dimStyle.Render("(empty chain, 'a' to add)") + "\n")
	}
	for i, id := range ids {
		seg, _ := m.chain.Segment(id)
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor(seg.LineColor))).Render("━") +
			lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor(seg.BallColor))).Render("●")
		line := fmt.Sprintf("%d L%-5.1f v%-5.2f %s", i+1, seg.Length, seg.Velocity, formatDegrees(seg.Angle))
		if id == m.selected {
			s.WriteString(selectedStyle.Render("> "+line) + " " + swatch + "\n")
		} else {
			s.WriteString("  " + valueStyle.Render(line) + " " + swatch + "\n")
		}
	}

	s.WriteString("\n" + dimStyle.Render("SP run  a add  x del  ? help"))
	return s.String()
}

func (m model) statusLine() string {
	var line string
	switch m.mode {
	case ModeTextInput:
		prompt := map[InputKind]string{
			InputAngle:     "Angle (degrees): ",
			InputLineColor: "Line color (#rrggbb): ",
			InputBallColor: "Ball color (#rrggbb): ",
			InputExportPNG: "Export PNG as: ",
			InputExportTXT: "Export text as: ",
		}[m.inputKind]
		line = prompt + m.inputText + "█"
	case ModeConfirm:
		switch m.confirmAction {
		case ConfirmQuit:
			line = "Quit? (y/n)"
		case ConfirmRemoveSegment:
			line = "Remove selected segment? (y/n)"
		case ConfirmOverwriteFile:
			line = fmt.Sprintf("Overwrite %s? (y/n)", m.pendingFile)
		}
	default:
		switch {
		case m.errorMessage != "":
			line = errorStyle.Render(m.errorMessage)
		case m.successMessage != "":
			line = successStyle.Render(m.successMessage)
		default:
			line = dimStyle.Render(fmt.Sprintf("%d segments | tab select | +/- length | </> speed | [/] angle | t/T trail", m.chain.Len()))
		}
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(line)
}

func (m model) helpView() string {
	helpLines := []string{
		"Pendula Help",
		"============",
		"",
		"Animation:",
		"  space        Start/stop",
		"  .            Single step while stopped",
		"  m / M        Double/halve tick scale",
		"",
		"Chain:",
		"  a            Append segment at the tail",
		"  x            Remove selected segment",
		"  tab / S-tab  Select next/previous segment",
		"  y / p        Copy selected / paste as new segment",
		"",
		"Selected segment:",
		"  + / -        Length",
		"  > / <        Speed",
		"  ] / [        Angle by 15°",
		"  r            Reset angle to 0°",
		"  A            Enter angle in degrees",
		"  c / C        Cycle line/ball color",
		"  # / @        Enter line/ball color",
		"",
		"Trail:",
		"  t / T        Grow/shrink capacity",
		"  0            Clear trail",
		"",
		"View:",
		"  arrows/hjkl  Pan",
		"  z / Z        Zoom in/out",
		"  f            Fit chain",
		"",
		"General:",
		"  u / U        Undo/redo edits",
		"  s / S        Export PNG / braille text",
		"  ?            Toggle this help",
		"  q / Ctrl+C   Quit",
	}
	return helpBoxStyle.Render(strings.Join(helpLines, "\n"))
}
