// Package config provides configuration for the Montage engine.
// Configuration is loaded from environment variables with sensible defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const (
	// Default values
	DefaultPort      = 8790
	DefaultLogLevel  = "info"
	DefaultDataDir   = ".montage"
	DefaultWidth     = 1920
	DefaultHeight    = 1080
	DefaultFrameRate = 30.0

	// Environment variable names
	EnvPort      = "MONTAGE_PORT"
	EnvLogLevel  = "MONTAGE_LOG_LEVEL"
	EnvDataDir   = "MONTAGE_DATA_DIR"
	EnvWidth     = "MONTAGE_CANVAS_WIDTH"
	EnvHeight    = "MONTAGE_CANVAS_HEIGHT"
	EnvFrameRate = "MONTAGE_FRAME_RATE"

	// Database filename
	DBFilename = "montage.db"
)

// Config defines the application configuration interface
type Config interface {
	Port() int
	LogLevel() string
	DataDir() string
	DBPath() string
	CanvasWidth() int
	CanvasHeight() int
	FrameRate() float64
}

// EnvConfig reads configuration from environment variables
type EnvConfig struct {
	port      int
	logLevel  string
	dataDir   string
	width     int
	height    int
	frameRate float64
}

// New creates a new EnvConfig with defaults and environment variable overrides
func New() (*EnvConfig, error) {
	cfg := &EnvConfig{
		port:      DefaultPort,
		logLevel:  DefaultLogLevel,
		dataDir:   defaultDataDir(),
		width:     DefaultWidth,
		height:    DefaultHeight,
		frameRate: DefaultFrameRate,
	}

	if p := os.Getenv(EnvPort); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvPort, err)
		}
		if port < 1 || port > 65535 {
			return nil, fmt.Errorf("invalid %s: port must be between 1 and 65535", EnvPort)
		}
		cfg.port = port
	}

	if ll := os.Getenv(EnvLogLevel); ll != "" {
		cfg.logLevel = ll
	}

	if dd := os.Getenv(EnvDataDir); dd != "" {
		cfg.dataDir = dd
	}

	if w := os.Getenv(EnvWidth); w != "" {
		width, err := strconv.Atoi(w)
		if err != nil || width <= 0 {
			return nil, fmt.Errorf("invalid %s: must be a positive integer", EnvWidth)
		}
		cfg.width = width
	}

	if h := os.Getenv(EnvHeight); h != "" {
		height, err := strconv.Atoi(h)
		if err != nil || height <= 0 {
			return nil, fmt.Errorf("invalid %s: must be a positive integer", EnvHeight)
		}
		cfg.height = height
	}

	if fr := os.Getenv(EnvFrameRate); fr != "" {
		rate, err := strconv.ParseFloat(fr, 64)
		if err != nil || rate <= 0 {
			return nil, fmt.Errorf("invalid %s: must be a positive number", EnvFrameRate)
		}
		cfg.frameRate = rate
	}

	return cfg, nil
}

// Port returns the HTTP server port
func (c *EnvConfig) Port() int {
	return c.port
}

// LogLevel returns the log level (debug, info, warn, error)
func (c *EnvConfig) LogLevel() string {
	return c.logLevel
}

// DataDir returns the data directory path
func (c *EnvConfig) DataDir() string {
	return c.dataDir
}

// DBPath returns the full path to the SQLite database file
func (c *EnvConfig) DBPath() string {
	return filepath.Join(c.dataDir, DBFilename)
}

// CanvasWidth returns the default canvas width for new projects
func (c *EnvConfig) CanvasWidth() int {
	return c.width
}

// CanvasHeight returns the default canvas height for new projects
func (c *EnvConfig) CanvasHeight() int {
	return c.height
}

// FrameRate returns the default frame rate for new projects
func (c *EnvConfig) FrameRate() float64 {
	return c.frameRate
}

// defaultDataDir returns the default data directory path
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home is not available
		return DefaultDataDir
	}
	return filepath.Join(home, DefaultDataDir)
}

// Version information (set at build time via ldflags)
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)
