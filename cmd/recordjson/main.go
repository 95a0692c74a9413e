// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

// Command recordjson prints schema-defined records as canonical JSON.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/recordjson/recordjson/cmd/recordjson/cli"
	"github.com/recordjson/recordjson/cmd/recordjson/commands"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := commands.Root().Execute(ctx, args)
	if err == nil {
		return 0
	}

	// Commands that print their own failure report (schema validate)
	// return an ExitError; don't add an "error:" line for those.
	var exitError *cli.ExitError
	if errors.As(err, &exitError) {
		return exitError.ExitCode()
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	if coder, ok := err.(interface{ ExitCode() int }); ok {
		return coder.ExitCode()
	}
	return 1
}
