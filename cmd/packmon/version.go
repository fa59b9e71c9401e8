package main

import (
	"context"
	"fmt"

	"github.com/halcyonlab/packmon/internal/config"
	"github.com/halcyonlab/packmon/internal/update"
)

// Version is set at build time via -ldflags "-X main.Version=...".
var Version = "dev"

func runVersion() {
	fmt.Printf("packmon version %s\n", Version)

	if Version == "dev" {
		fmt.Println("Development build, update check skipped.")
		return
	}

	rel, err := update.Check(context.Background(), Version, config.DefaultConfig().Update.Repo)
	if err != nil {
		fmt.Printf("Update check failed: %v\n", err)
		return
	}

	if rel != nil {
		fmt.Printf("Update available: v%s. Run \"packmon update\" to install.\n", rel.Version)
	} else {
		fmt.Println("You are up to date.")
	}
}
