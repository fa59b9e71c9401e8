package main

import (
	"context"
	"fmt"
	"os"

	"github.com/halcyonlab/packmon/internal/config"
	"github.com/halcyonlab/packmon/internal/update"
)

func runUpdate() int {
	repo := config.DefaultConfig().Update.Repo
	if cfg, err := config.Load(); err == nil {
		repo = cfg.Update.Repo
	}

	fmt.Printf("Checking %s for updates...\n", repo)
	rel, err := update.Apply(context.Background(), Version, repo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "packmon: %v\n", err)
		return 1
	}

	fmt.Printf("Updated to v%s.\n", rel.Version)
	if rel.Notes != "" {
		fmt.Printf("\n%s\n", rel.Notes)
	}
	return 0
}
