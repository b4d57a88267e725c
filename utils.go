package main

import (
	"fmt"
	"image/color"
	"math"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/lucasb-eyer/go-colorful"

	"pendula/pendulum"
)

func parseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("bad color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// nextPaletteColor returns the palette entry after c, or the first entry
// when c is not in the palette.
func nextPaletteColor(c color.RGBA, dir int) color.RGBA {
	idx := -1
	cur := hexColor(c)
	for i, p := range palette {
		if p == cur {
			idx = i
			break
		}
	}
	idx = ((idx+dir)%len(palette) + len(palette)) % len(palette)
	next, _ := parseHexColor(palette[idx])
	return next
}

func paramsOf(s pendulum.Segment) segmentParams {
	return segmentParams{
		Length:     s.Length,
		Velocity:   s.Velocity,
		Angle:      s.Angle,
		LineColor:  s.LineColor,
		BallColor:  s.BallColor,
		BallRadius: s.BallRadius,
	}
}

// apply writes every field through the chain setters so each one cascades.
func (p segmentParams) apply(c *pendulum.Chain, id pendulum.SegmentID) error {
	if err := c.SetLength(id, p.Length); err != nil {
		return err
	}
	if err := c.SetVelocity(id, p.Velocity); err != nil {
		return err
	}
	if err := c.SetAngle(id, p.Angle); err != nil {
		return err
	}
	if err := c.SetBallRadius(id, p.BallRadius); err != nil {
		return err
	}
	if err := c.SetLineColor(id, p.LineColor); err != nil {
		return err
	}
	return c.SetBallColor(id, p.BallColor)
}

func (p segmentParams) String() string {
	return fmt.Sprintf("length=%g speed=%g angle=%g radius=%g line=%s ball=%s",
		p.Length, p.Velocity, p.Angle*180/math.Pi, p.BallRadius, hexColor(p.LineColor), hexColor(p.BallColor))
}

// parseSegmentParams reads the format written by segmentParams.String.
// Missing keys keep the values from base.
func parseSegmentParams(text string, base segmentParams) (segmentParams, error) {
	p := base
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return p, fmt.Errorf("no segment parameters in clipboard")
	}
	for _, field := range fields {
		kv := strings.SplitN(field, "=", 2)
		if len(kv) != 2 {
			return p, fmt.Errorf("bad field %q", field)
		}
		key, value := strings.ToLower(kv[0]), kv[1]
		var err error
		switch key {
		case "length":
			p.Length, err = parseFinite(value)
		case "speed", "velocity":
			p.Velocity, err = parseFinite(value)
		case "angle":
			var deg float64
			deg, err = parseFinite(value)
			p.Angle = deg * math.Pi / 180
		case "radius":
			p.BallRadius, err = parseFinite(value)
		case "line":
			p.LineColor, err = parseHexColor(value)
		case "ball":
			p.BallColor, err = parseHexColor(value)
		default:
			err = fmt.Errorf("unknown key %q", key)
		}
		if err != nil {
			return base, err
		}
	}
	return p, nil
}

func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q: %w", s, pendulum.ErrInvalidGeometry)
	}
	return v, nil
}

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

func writeClipboardText(text string) error {
	return clipboard.WriteAll(text)
}

// blend mixes fg over bg by t in [0, 1].
func blend(bg, fg color.RGBA, t float64) color.RGBA {
	a, _ := colorful.MakeColor(bg)
	b, _ := colorful.MakeColor(fg)
	r, g, bl := a.BlendRgb(b, t).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: bl, A: 0xff}
}
