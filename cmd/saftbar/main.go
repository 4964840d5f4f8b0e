// saftbar is a multi-monitor X11 status bar with powerline separators.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/1broseidon/saftbar/internal/config"
	"github.com/1broseidon/saftbar/internal/logging"
	"github.com/1broseidon/saftbar/internal/runtimepath"
)

func main() {
	configPath := flag.String("config", "", "config file path (default: ~/.config/saftbar/config.yaml)")
	checkConfig := flag.Bool("check-config", false, "validate the configuration and exit")
	bottom := flag.Bool("bottom", false, "place the bar at the bottom edge (overrides config)")
	instance := flag.String("instance", "", "instance name for WM_NAME/WM_CLASS (overrides config)")
	logFile := flag.Bool("log-file", false, "also log to the state directory when the config names no file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "saftbar: %v\n", err)
		os.Exit(2)
	}
	if *checkConfig {
		fmt.Println("config OK")
		return
	}

	if *bottom {
		cfg.Position = config.PositionBottom
	}
	if *instance != "" {
		cfg.Instance = *instance
	}

	logPath := cfg.Logging.File
	if logPath == "" && *logFile {
		logPath, err = runtimepath.DefaultLogPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "saftbar: %v\n", err)
			os.Exit(1)
		}
	}
	logger, err := logging.New(logging.Options{
		Level:     cfg.Logging.Level,
		File:      logPath,
		MaxSizeMB: cfg.Logging.MaxSizeMB,
		MaxFiles:  cfg.Logging.MaxFiles,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "saftbar: %v\n", err)
		os.Exit(1)
	}

	if err := run(logger, cfg); err != nil {
		logger.WithField("module", "main").Fatalf("%v", err)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}
