package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/atomicstack/storefront-account/internal/app"
	"github.com/atomicstack/storefront-account/internal/config"
	"github.com/atomicstack/storefront-account/internal/logging"
	"github.com/atomicstack/storefront-account/internal/logging/events"
)

const embeddedData = "embedded seed"

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	events.App.Start(newStartupInfo(runtimeCfg, stdoutSize()))

	err := app.Run(runtimeCfg.App)
	if err != nil {
		logging.Error(err)
	}
	logging.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// startupInfo is the trace record of one console session.
type startupInfo struct {
	Session        string            `json:"session"`
	Data           string            `json:"data"`
	Role           string            `json:"role,omitempty"`
	Section        string            `json:"section"`
	PollInterval   time.Duration     `json:"pollInterval"`
	CommandTimeout time.Duration     `json:"commandTimeout"`
	DownloadDir    string            `json:"downloadDir,omitempty"`
	LogFile        string            `json:"logFile"`
	Flags          map[string]string `json:"flags"`
	Args           []string          `json:"args"`
	Terminal       *terminalSize     `json:"terminal,omitempty"`
}

type terminalSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func newStartupInfo(cfg config.Config, size *terminalSize) startupInfo {
	data := cfg.App.DataPath
	if data == "" {
		data = embeddedData
	}
	return startupInfo{
		Session:        uuid.NewString(),
		Data:           data,
		Role:           string(cfg.App.Role),
		Section:        string(cfg.App.Section),
		PollInterval:   cfg.App.PollInterval,
		CommandTimeout: cfg.App.CommandTimeout,
		DownloadDir:    cfg.App.DownloadDir,
		LogFile:        cfg.Logging.FilePath,
		Flags:          cfg.Flags,
		Args:           cfg.Args,
		Terminal:       size,
	}
}

// stdoutSize returns the terminal the console will draw on, or nil when
// stdout is not a terminal.
func stdoutSize() *terminalSize {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return nil
	}
	width, height, err := term.GetSize(fd)
	if err != nil {
		return nil
	}
	return &terminalSize{Width: width, Height: height}
}
