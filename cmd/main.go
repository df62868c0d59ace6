package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"murmur/internal/config"
	"murmur/internal/logger"
	"murmur/internal/runner"
	"murmur/pkg/color"
	"murmur/pkg/repl"
)

// Main entry point for the murmur interpreter. With a file argument the
// file runs to completion; without one an interactive session starts.
func main() {
	var (
		help       bool
		debug      bool
		noColor    bool
		maxSteps   uint64
		configPath string
	)

	flag.BoolVar(&help, "h", false, "Show help")
	flag.BoolVar(&debug, "debug", false, "Log every driver step")
	flag.BoolVar(&noColor, "no-color", false, "Disable colored output")
	flag.Uint64Var(&maxSteps, "max-steps", 0, "Abort evaluation after N driver steps (0 = unbounded)")
	flag.StringVar(&configPath, "config", config.DefaultPath(), "Config file path")
	flag.Parse()

	if help {
		fmt.Printf("Usage: %s [options] [file.mur]\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Init(debug, noColor)
		log.Fatal("Cannot load config", "error", err)
	}

	// flags win over config file values
	debug = debug || cfg.Debug
	noColor = noColor || cfg.NoColor
	if maxSteps == 0 {
		maxSteps = cfg.MaxSteps
	}

	logger.Init(debug, noColor)
	if noColor {
		color.EnableColor(false)
	}

	args := flag.Args()
	if len(args) == 0 {
		session := repl.New(maxSteps, cfg.Prompt)
		if err := session.Run(); err != nil {
			log.Fatal("Session failed", "error", err)
		}
		return
	}

	run := &runner.Runner{SourceFile: args[0], MaxSteps: maxSteps, Debug: debug}
	if err := run.Run(); err != nil {
		os.Exit(1)
	}
}
