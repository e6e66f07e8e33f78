// Command minidb is the interactive entrypoint: one positional argument
// (the database file path), no flags, exit status 0 on a clean ".exit".
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"minidb/internal/config"
	"minidb/internal/repl"
	"minidb/internal/table"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Must supply a database filename.")
		os.Exit(1)
	}
	filename := os.Args[1]

	sidecar := config.SidecarPath(filepath.Join(filepath.Dir(filename), "minidb.yaml"))
	cfg, err := config.Load(sidecar)
	if err != nil {
		fmt.Printf("db message: %v\n", err)
		os.Exit(1)
	}

	tb, err := table.OpenWithLogger(filename, cfg.Logger())
	if err != nil {
		fmt.Printf("db message: %v\n", err)
		os.Exit(1)
	}

	r := repl.New(tb, os.Stdout, cfg)
	if err := r.Run(os.Stdin); err != nil {
		fmt.Printf("db message: %v\n", err)
		os.Exit(1)
	}
}
