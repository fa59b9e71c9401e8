package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/halcyonlab/packmon/schema"
)

func runSchema(args []string) int {
	fs := flag.NewFlagSet("schema", flag.ExitOnError)
	check := fs.Bool("check", false, "structurally check the schema instead of printing it")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *check {
		if err := schema.Check(schema.Mock); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("Schema looks structurally sound.")
		return 0
	}

	fmt.Print(schema.Mock)
	return 0
}
