package main

import (
	"fmt"
	"os"
	"strings"
)

func main() {
	args := os.Args[1:]
	cmd := "start"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd = args[0]
		args = args[1:]
	}

	switch cmd {
	case "start":
		os.Exit(runStart(args))
	case "version":
		runVersion()
	case "update":
		os.Exit(runUpdate())
	case "schema":
		os.Exit(runSchema(args))
	case "help":
		usage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "packmon: unknown command %q\n\n", cmd)
		usage(os.Stderr)
		os.Exit(1)
	}
}

func usage(w *os.File) {
	fmt.Fprint(w, `packmon supervises a mobile app packager and its log stream.

Usage:
  packmon [start] [--port N] [--reset-cache] [--no-color] [--config FILE]
  packmon version
  packmon update
  packmon schema [--check]
  packmon help
`)
}
