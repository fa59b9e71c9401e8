package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/halcyonlab/packmon/internal/config"
	"github.com/halcyonlab/packmon/internal/packager"
	"github.com/halcyonlab/packmon/internal/supervisor"
)

func runStart(args []string) int {
	fs := flag.NewFlagSet("start", flag.ExitOnError)
	port := fs.Int("port", 0, "port the packager listens on")
	resetCache := fs.Bool("reset-cache", false, "clear the packager cache on start")
	noColor := fs.Bool("no-color", false, "disable styled output")
	configPath := fs.String("config", "", "path to a config file (skips discovery)")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "packmon: %v\n", err)
		return 1
	}

	// Flags win over config file and environment.
	if *port != 0 {
		cfg.Packager.Port = *port
	}
	if *resetCache {
		t := true
		cfg.Packager.ResetCache = &t
	}
	if *noColor {
		f := false
		cfg.UI.Color = &f
	}

	pkg := packager.NewCommandPackager(cfg.Packager)
	return supervisor.New(cfg, pkg).Run(context.Background())
}
