package main

import (
	"bufio"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"pendula/pendulum"
)

type Config struct {
	SaveDirectory string
	FPS           int
	TickScale     float64
	MaxTrails     int
	LineColor     color.RGBA
	BallColor     color.RGBA
	TrailColor    color.RGBA
	Background    color.RGBA
	BallRadius    float64
	StartRunning  bool
	Confirmations bool
}

func defaultConfig() *Config {
	bg, _ := parseHexColor("#101018")
	return &Config{
		SaveDirectory: "",
		FPS:           30,
		TickScale:     pendulum.DefaultTickScale,
		MaxTrails:     400,
		LineColor:     pendulum.DefaultLineColor,
		BallColor:     pendulum.DefaultBallColor,
		TrailColor:    pendulum.DefaultBallColor,
		Background:    bg,
		BallRadius:    pendulum.DefaultBallRadius,
		StartRunning:  true,
		Confirmations: true,
	}
}

func defaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".pendularc")
}

// loadConfig reads key = value lines from path. A missing file or an
// unparsable value leaves the default in place.
func loadConfig(path string) *Config {
	config := defaultConfig()
	if path == "" {
		return config
	}

	file, err := os.Open(path)
	if err != nil {
		return config
	}
	defer file.Close()

	homeDir, _ := os.UserHomeDir()
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch strings.ToLower(key) {
		case "savedirectory", "save_directory", "savedir":
			if strings.HasPrefix(value, "~") && homeDir != "" {
				value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
			}
			if !filepath.IsAbs(value) {
				if absPath, err := filepath.Abs(value); err == nil {
					value = absPath
				}
			}
			config.SaveDirectory = value
		case "fps":
			if v, err := strconv.Atoi(value); err == nil && v > 0 && v <= 240 {
				config.FPS = v
			}
		case "tick_scale", "tickscale":
			if v, err := strconv.ParseFloat(value, 64); err == nil && v > 0 {
				config.TickScale = v
			}
		case "max_trails", "maxtrails", "trails":
			if v, err := strconv.Atoi(value); err == nil {
				if v < 0 {
					v = 0
				}
				config.MaxTrails = v
			}
		case "ball_radius", "ballradius":
			if v, err := strconv.ParseFloat(value, 64); err == nil && v >= 0 {
				config.BallRadius = v
			}
		case "line_color", "linecolor":
			if c, err := parseHexColor(value); err == nil {
				config.LineColor = c
			}
		case "ball_color", "ballcolor":
			if c, err := parseHexColor(value); err == nil {
				config.BallColor = c
			}
		case "trail_color", "trailcolor":
			if c, err := parseHexColor(value); err == nil {
				config.TrailColor = c
			}
		case "background", "bg":
			if c, err := parseHexColor(value); err == nil {
				config.Background = c
			}
		case "startrunning", "start_running":
			config.StartRunning = strings.ToLower(value) == "true"
		case "confirmations", "confirm":
			config.Confirmations = strings.ToLower(value) == "true"
		}
	}

	return config
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}
