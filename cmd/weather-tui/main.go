// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

//go:build linux

// Package main implements the weather-tui client.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/wneessen/weather-tui/internal/config"
	"github.com/wneessen/weather-tui/internal/i18n"
	"github.com/wneessen/weather-tui/internal/logger"
	"github.com/wneessen/weather-tui/internal/service"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGABRT, os.Interrupt)
	defer cancel()

	// Initialize Logger
	log := logger.New(slog.LevelError)

	// A .env file is optional, it only provides environment overrides like the API key
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Error("failed to load .env file", logger.Err(err))
	}

	// Read config
	confRead := false
	confPath := flag.String("config", "", "path to the config file")
	output := flag.String("output", service.OutputTUI, "output mode: tui or json")
	flag.Parse()

	// Read default config
	conf, err := config.New()
	if err != nil {
		log.Error("failed to load config", logger.Err(err))
		os.Exit(1)
	}

	// If config file was specified, read it
	if *confPath != "" {
		file := filepath.Base(*confPath)
		path := filepath.Dir(*confPath)
		conf, err = config.NewFromFile(path, file)
		if err != nil {
			log.Error("failed to load config from file", logger.Err(err))
			os.Exit(1)
		}
		confRead = true
	}

	// Check if we have a config file in the default location
	if path, file := findConfigFile(); !confRead && (path != "" && file != "") {
		conf, err = config.NewFromFile(path, file)
		if err != nil {
			log.Error("failed to load config from file", logger.Err(err))
			os.Exit(1)
		}
	}

	// The terminal UI owns the screen, so logs go to a file
	logOutput, closeLog, err := openLogOutput(*output, conf.LogFile)
	if err != nil {
		log.Error("failed to open log file", logger.Err(err))
		os.Exit(1)
	}
	defer closeLog()
	log = logger.NewLogger(conf.LogLevel, logOutput)

	t, err := i18n.New(conf.Locale)
	if err != nil {
		log.Error("failed to initialize localizer", logger.Err(err))
		os.Exit(1)
	}

	// Initialize the service
	serv, err := service.New(conf, log, t, service.Options{Output: *output})
	if err != nil {
		log.Error("failed to initialize weather-tui", logger.Err(err))
		if *output == service.OutputTUI {
			_, _ = fmt.Fprintf(os.Stderr, "weather-tui: %s\n", err)
		}
		closeLog()
		os.Exit(1)
	}

	log.Info("starting weather-tui", slog.String("version", version), slog.String("commit", commit),
		slog.String("date", date), slog.String("output", *output))
	if err = serv.Run(ctx); err != nil {
		log.Error("weather-tui failed", logger.Err(err))
	}
	log.Info("shutting down weather-tui")
}

func openLogOutput(output, logFile string) (io.Writer, func(), error) {
	if output != service.OutputTUI {
		return os.Stderr, func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(logFile), 0o750); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}
	return file, func() { _ = file.Close() }, nil
}

func findConfigFile() (string, string) {
	homedir, err := os.UserHomeDir()
	if err != nil {
		return "", ""
	}
	exts := []string{"toml", "yaml", "yml", "json"}
	for _, ext := range exts {
		path := filepath.Join(homedir, ".config", "weather-tui", "config."+ext)
		if _, err = os.Stat(path); err == nil {
			return filepath.Dir(path), filepath.Base(path)
		}
	}
	return "", ""
}
