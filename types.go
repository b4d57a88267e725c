package main

import (
	"image/color"

	"pendula/pendulum"
)

// model is the application context handed to bubbletea. The chain itself
// holds no global state; everything the driver needs lives here.
type model struct {
	width    int
	height   int
	chain    *pendulum.Chain
	view     viewport
	selected pendulum.SegmentID
	running  bool
	tickTag  int
	config   *Config

	mode          Mode
	help          bool
	inputKind     InputKind
	inputText     string
	confirmAction ConfirmAction
	pendingFile   string
	pendingKind   InputKind

	undoStack []Action
	redoStack []Action
	clipboard *segmentParams

	errorMessage   string
	successMessage string
}

type Action struct {
	Type    ActionType
	Data    interface{}
	Inverse interface{}
}

// segmentParams is the editable part of a segment. Base positions are
// owned by the chain and never part of an edit.
type segmentParams struct {
	Length     float64
	Velocity   float64
	Angle      float64
	LineColor  color.RGBA
	BallColor  color.RGBA
	BallRadius float64
}

type EditSegmentData struct {
	ID     pendulum.SegmentID
	Params segmentParams
}

type TrailCapacityData struct {
	Capacity int
}

type TickScaleData struct {
	Scale float64
}

type viewport struct {
	panX, panY float64
	zoom       float64
}
