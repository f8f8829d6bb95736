// Package main provides the entry point for the pmlite CLI.
package main

import (
	"context"
	"os"

	"github.com/pmlite/pmlite/internal/cli"
	"github.com/pmlite/pmlite/internal/signal"
)

// Build information set via ldflags, e.g.
//
//	go build -ldflags "-X main.version=1.0.0 -X main.commit=$(git rev-parse --short HEAD)"
var (
	version = "dev"     //nolint:gochecknoglobals // set via ldflags
	commit  = "none"    //nolint:gochecknoglobals // set via ldflags
	date    = "unknown" //nolint:gochecknoglobals // set via ldflags
)

func main() {
	handler := signal.NewHandler(context.Background())
	defer handler.Stop()

	err := cli.Execute(handler.Context(), cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	cli.CloseLogFile()

	if err != nil {
		os.Exit(cli.ExitCodeForError(err))
	}
}
