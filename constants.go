package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeTextInput
	ModeConfirm
)

type InputKind int

const (
	InputAngle InputKind = iota
	InputLineColor
	InputBallColor
	InputExportPNG
	InputExportTXT
)

type ConfirmAction int

const (
	ConfirmRemoveSegment ConfirmAction = iota
	ConfirmQuit
	ConfirmOverwriteFile
)

type ActionType int

const (
	ActionEditSegment ActionType = iota
	ActionTrailCapacity
	ActionTickScale
)

const (
	lengthStep    = 5.0
	speedStep     = 0.25
	angleStep     = 15.0 // degrees
	trailStep     = 25
	panStep       = 4.0
	zoomFactor    = 1.25
	minZoom       = 0.02
	maxZoom       = 50.0
	panelWidth    = 34
	exportScale   = 6.0 // png pixels per terminal half-block
	exportMargin  = 12.0
	maxExportSide = 8192 // png pixels per side
)

// palette cycled by c / C
var palette = []string{
	"#dddddd",
	"#ff5f87",
	"#5fd7ff",
	"#afff5f",
	"#ffd75f",
	"#d787ff",
	"#ff8700",
	"#00d7af",
}
