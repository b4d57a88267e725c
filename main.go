package main

import (
	"flag"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	logDir      = "logs"
	logFileName = "pendula.log"
)

var (
	debugFlag  = flag.Bool("debug", false, "Write debug log to logs/pendula.log")
	configFlag = flag.String("config", "", "Config file (default ~/.pendularc)")
)

func main() {
	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	path := *configFlag
	if path == "" {
		path = defaultConfigPath()
	}
	config := loadConfig(path)
	log.Printf("config %s: fps=%d tick_scale=%g max_trails=%d", path, config.FPS, config.TickScale, config.MaxTrails)

	p := tea.NewProgram(
		initialModel(config),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

// setupLogging sends log output to a file when debug is set and discards it
// otherwise, since the alt screen owns stdout.
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := tea.LogToFile(filepath.Join(logDir, logFileName), "pendula")
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	return f
}
