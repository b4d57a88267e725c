package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pendula/pendulum"
)

// tickMsg carries the tag of the start() that scheduled it; ticks from an
// earlier run are dropped.
type tickMsg struct {
	tag  int
	time time.Time
}

// demo chain shown on startup: length, speed, angle in degrees
var demoChain = [][3]float64{
	{60, 1, 0},
	{35, -3, 90},
	{18, 7, 180},
}

func initialModel(config *Config) model {
	chain := pendulum.NewChain(0, 0, config.MaxTrails)
	chain.SetTickScale(config.TickScale)
	chain.SetTrailColor(config.TrailColor)

	m := model{
		chain:  chain,
		config: config,
		view:   viewport{zoom: 1},
	}
	for _, d := range demoChain {
		m.appendSegment(d[0], d[1], d[2]*math.Pi/180)
	}
	m.ensureSelection()
	if config.StartRunning {
		m.running = true
		m.tickTag = 1
	}
	return m
}

func (m model) Init() tea.Cmd {
	if m.running {
		return m.tick()
	}
	return nil
}

func (m model) tick() tea.Cmd {
	tag := m.tickTag
	return tea.Tick(m.frameInterval(), func(t time.Time) tea.Msg {
		return tickMsg{tag: tag, time: t}
	})
}

func (m model) frameInterval() time.Duration {
	fps := m.config.FPS
	if fps <= 0 {
		fps = 30
	}
	return time.Second / time.Duration(fps)
}

// start begins ticking. Calling it while running is a no-op.
func (m *model) start() tea.Cmd {
	if m.running {
		return nil
	}
	m.running = true
	m.tickTag++
	return m.tick()
}

// stop halts ticking by not scheduling the next frame. Idempotent.
func (m *model) stop() {
	m.running = false
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		first := m.width == 0 && m.height == 0
		m.width = msg.Width
		m.height = msg.Height
		if first {
			w, h := m.canvasPixels()
			m.view.fit(m.chain, w, h)
		}
		return m, nil

	case tickMsg:
		if !m.running || msg.tag != m.tickTag {
			return m, nil
		}
		m.chain.Update()
		return m, m.tick()

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.help {
			m.help = false
			return m, nil
		}
		switch m.mode {
		case ModeTextInput:
			return m.handleTextInput(msg)
		case ModeConfirm:
			return m.handleConfirm(msg)
		default:
			return m.handleNormal(msg)
		}
	}
	return m, nil
}

func (m model) handleNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errorMessage = ""
	m.successMessage = ""

	key := msg.String()
	switch key {
	case "q":
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return m, nil
		}
		return m, tea.Quit
	case "?":
		m.help = true
	case " ":
		if m.running {
			m.stop()
			return m, nil
		}
		return m, m.start()
	case ".":
		if !m.running {
			m.chain.Update()
		}
	case "a":
		m.appendNext()
	case "x":
		if _, ok := m.chain.Segment(m.selected); !ok {
			m.errorMessage = "No segment selected"
			return m, nil
		}
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmRemoveSegment
			return m, nil
		}
		m.removeSelected()
	case "tab":
		m.cycleSelection(1)
	case "shift+tab":
		m.cycleSelection(-1)
	case "+", "=":
		m.editSelected(func(p *segmentParams) { p.Length += lengthStep })
	case "-", "_":
		m.editSelected(func(p *segmentParams) { p.Length -= lengthStep })
	case ">":
		m.editSelected(func(p *segmentParams) { p.Velocity += speedStep })
	case "<":
		m.editSelected(func(p *segmentParams) { p.Velocity -= speedStep })
	case "]":
		m.editSelected(func(p *segmentParams) { p.Angle += angleStep * math.Pi / 180 })
	case "[":
		m.editSelected(func(p *segmentParams) { p.Angle -= angleStep * math.Pi / 180 })
	case "r":
		m.editSelected(func(p *segmentParams) { p.Angle = 0 })
	case "c":
		m.editSelected(func(p *segmentParams) { p.LineColor = nextPaletteColor(p.LineColor, 1) })
	case "C":
		m.editSelected(func(p *segmentParams) { p.BallColor = nextPaletteColor(p.BallColor, 1) })
	case "A":
		m.beginInput(InputAngle, "")
	case "#":
		m.beginInput(InputLineColor, "")
	case "@":
		m.beginInput(InputBallColor, "")
	case "t":
		m.setTrailCapacity(m.chain.MaxTrails() + trailStep)
	case "T":
		m.setTrailCapacity(m.chain.MaxTrails() - trailStep)
	case "0":
		m.chain.ClearTrail()
	case "m":
		m.setTickScale(m.chain.TickScale() * 2)
	case "M":
		m.setTickScale(m.chain.TickScale() / 2)
	case "left", "right", "up", "down", "h", "j", "k", "l":
		m.handlePan(key)
	case "z", "Z", "f":
		m.handleZoom(key)
	case "u":
		m.undo()
	case "U":
		m.redo()
	case "y":
		m.yankSelected()
	case "p":
		m.pasteSegment()
	case "s":
		m.beginInput(InputExportPNG, "pendula")
	case "S":
		m.beginInput(InputExportTXT, "pendula")
	}
	return m, nil
}

func (m *model) beginInput(kind InputKind, initial string) {
	if kind == InputAngle || kind == InputLineColor || kind == InputBallColor {
		if _, ok := m.chain.Segment(m.selected); !ok {
			m.errorMessage = "No segment selected"
			return
		}
	}
	m.mode = ModeTextInput
	m.inputKind = kind
	m.inputText = initial
}

func (m model) handleTextInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeNormal
		m.inputText = ""
	case tea.KeyEnter:
		m.mode = ModeNormal
		text := strings.TrimSpace(m.inputText)
		m.inputText = ""
		m.commitInput(text)
	case tea.KeyBackspace:
		if r := []rune(m.inputText); len(r) > 0 {
			m.inputText = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.inputText += " "
	case tea.KeyRunes:
		m.inputText += string(msg.Runes)
	}
	return m, nil
}

func (m *model) commitInput(text string) {
	switch m.inputKind {
	case InputAngle:
		deg, err := parseFinite(text)
		if err != nil {
			m.errorMessage = "Bad angle: " + err.Error()
			return
		}
		m.editSelected(func(p *segmentParams) { p.Angle = deg * math.Pi / 180 })
	case InputLineColor, InputBallColor:
		c, err := parseHexColor(text)
		if err != nil {
			m.errorMessage = statusError(err)
			return
		}
		if m.inputKind == InputLineColor {
			m.editSelected(func(p *segmentParams) { p.LineColor = c })
		} else {
			m.editSelected(func(p *segmentParams) { p.BallColor = c })
		}
	case InputExportPNG, InputExportTXT:
		if text == "" {
			m.errorMessage = "No filename given"
			return
		}
		ext := ".png"
		if m.inputKind == InputExportTXT {
			ext = ".txt"
		}
		if !strings.HasSuffix(strings.ToLower(text), ext) {
			text += ext
		}
		path := m.config.GetSavePath(text)
		if _, err := os.Stat(path); err == nil && m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmOverwriteFile
			m.pendingFile = path
			m.pendingKind = m.inputKind
			return
		}
		m.export(m.inputKind, path)
	}
}

func (m model) handleConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmQuit:
			return m, tea.Quit
		case ConfirmRemoveSegment:
			m.removeSelected()
		case ConfirmOverwriteFile:
			m.export(m.pendingKind, m.pendingFile)
			m.pendingFile = ""
		}
	case "n", "N", "esc":
		m.mode = ModeNormal
		m.pendingFile = ""
	}
	return m, nil
}

func (m *model) export(kind InputKind, path string) {
	var err error
	if kind == InputExportTXT {
		err = m.exportVisualTXT(path)
	} else {
		err = m.exportPNG(path)
	}
	if err != nil {
		m.errorMessage = "Export failed: " + err.Error()
		return
	}
	m.successMessage = "Saved " + filepath.Base(path)
}

// appendSegment adds a segment styled from the config and selects it.
func (m *model) appendSegment(length, velocity, angle float64) (pendulum.SegmentID, error) {
	id, err := m.chain.Append(length, velocity, angle)
	if err != nil {
		return 0, err
	}
	m.chain.SetLineColor(id, m.config.LineColor)
	m.chain.SetBallColor(id, m.config.BallColor)
	m.chain.SetBallRadius(id, m.config.BallRadius)
	m.selected = id
	m.forgetHistory()
	return id, nil
}

// appendNext adds a segment shorter and faster than the current tail,
// turning the other way.
func (m *model) appendNext() {
	length, velocity := 40.0, 1.0
	if id, ok := m.chain.Tail(); ok {
		tail, _ := m.chain.Segment(id)
		length = math.Max(tail.Length*0.6, lengthStep)
		velocity = -tail.Velocity * 2
		if velocity == 0 {
			velocity = 1
		}
	}
	if _, err := m.appendSegment(length, velocity, 0); err != nil {
		m.errorMessage = statusError(err)
	}
}

func (m *model) removeSelected() {
	next, hasNext := m.chain.Next(m.selected)
	if err := m.chain.Remove(m.selected); err != nil {
		m.errorMessage = statusError(err)
		return
	}
	m.forgetHistory()
	if hasNext {
		m.selected = next
	}
	m.ensureSelection()
}

// editSelected applies fn to the selected segment's parameters and records
// the change for undo. Rejected input leaves the segment as it was.
func (m *model) editSelected(fn func(p *segmentParams)) {
	s, ok := m.chain.Segment(m.selected)
	if !ok {
		m.errorMessage = "No segment selected"
		return
	}
	old := paramsOf(s)
	next := old
	fn(&next)
	if err := next.apply(m.chain, m.selected); err != nil {
		old.apply(m.chain, m.selected)
		m.errorMessage = statusError(err)
		return
	}
	s, _ = m.chain.Segment(m.selected)
	if paramsOf(s) == old {
		return
	}
	m.recordAction(ActionEditSegment,
		EditSegmentData{ID: m.selected, Params: paramsOf(s)},
		EditSegmentData{ID: m.selected, Params: old})
}

func (m *model) setTrailCapacity(n int) {
	old := m.chain.MaxTrails()
	m.chain.SetMaxTrails(n)
	if m.chain.MaxTrails() == old {
		return
	}
	m.recordAction(ActionTrailCapacity,
		TrailCapacityData{Capacity: m.chain.MaxTrails()},
		TrailCapacityData{Capacity: old})
}

func (m *model) setTickScale(v float64) {
	old := m.chain.TickScale()
	if err := m.chain.SetTickScale(v); err != nil {
		m.errorMessage = statusError(err)
		return
	}
	if m.chain.TickScale() == old {
		return
	}
	m.recordAction(ActionTickScale, TickScaleData{Scale: v}, TickScaleData{Scale: old})
}

func (m *model) yankSelected() {
	s, ok := m.chain.Segment(m.selected)
	if !ok {
		m.errorMessage = "No segment selected"
		return
	}
	p := paramsOf(s)
	m.clipboard = &p
	if err := writeClipboardText(p.String()); err != nil {
		m.successMessage = "Copied segment (system clipboard unavailable)"
		return
	}
	m.successMessage = "Copied segment"
}

// pasteSegment appends a segment using parameters from the system clipboard,
// falling back to the last yanked segment.
func (m *model) pasteSegment() {
	base := segmentParams{
		Length:     40,
		Velocity:   1,
		LineColor:  m.config.LineColor,
		BallColor:  m.config.BallColor,
		BallRadius: m.config.BallRadius,
	}
	if m.clipboard != nil {
		base = *m.clipboard
	}
	p := base
	if text, err := readClipboardText(); err == nil {
		if parsed, err := parseSegmentParams(text, base); err == nil {
			p = parsed
		} else if m.clipboard == nil {
			m.errorMessage = "Nothing to paste: " + err.Error()
			return
		}
	} else if m.clipboard == nil {
		m.errorMessage = "Nothing to paste"
		return
	}

	id, err := m.appendSegment(p.Length, p.Velocity, p.Angle)
	if err != nil {
		m.errorMessage = statusError(err)
		return
	}
	if err := p.apply(m.chain, id); err != nil {
		m.errorMessage = statusError(err)
		return
	}
	m.successMessage = fmt.Sprintf("Pasted segment %d", id)
}

// statusError formats err for the status line, naming the error class.
func statusError(err error) string {
	switch {
	case errors.Is(err, pendulum.ErrInvalidGeometry):
		return "Invalid value: " + err.Error()
	case errors.Is(err, pendulum.ErrSegmentNotFound):
		return "No such segment: " + err.Error()
	}
	return err.Error()
}

func formatDegrees(rad float64) string {
	return strconv.FormatFloat(rad*180/math.Pi, 'f', 1, 64) + "°"
}
