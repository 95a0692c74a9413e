// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestToolError_Error(t *testing.T) {
	err := Validation("missing required flag --type")
	if err.Error() != "missing required flag --type" {
		t.Errorf("Error() = %q", err.Error())
	}

	err.WithHint("Run 'recordjson schema describe' to list record types.")
	want := "missing required flag --type\n\nRun 'recordjson schema describe' to list record types."
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestToolError_WithHintReturnsReceiver(t *testing.T) {
	original := NotFound("no such record")
	if original.WithHint("check --type") != original {
		t.Error("WithHint should return the same pointer")
	}
}

func TestToolError_Unwrap(t *testing.T) {
	err := NotFound("opening input: %w", fs.ErrNotExist)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is should see through ToolError")
	}

	wrapped := fmt.Errorf("render: %w", err)
	var toolErr *ToolError
	if !errors.As(wrapped, &toolErr) {
		t.Fatal("errors.As should find ToolError in wrapped chain")
	}
	if toolErr.Category != CategoryNotFound {
		t.Errorf("Category = %q, want %q", toolErr.Category, CategoryNotFound)
	}
}

func TestToolError_Categories(t *testing.T) {
	tests := []struct {
		name     string
		err      *ToolError
		category ErrorCategory
		exitCode int
	}{
		{"Validation", Validation("bad"), CategoryValidation, 2},
		{"NotFound", NotFound("missing"), CategoryNotFound, 2},
		{"Unsupported", Unsupported("bytes field"), CategoryUnsupported, 3},
		{"Internal", Internal("bug"), CategoryInternal, 1},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			if test.err.Category != test.category {
				t.Errorf("Category = %q, want %q", test.err.Category, test.category)
			}
			if got := test.err.ExitCode(); got != test.exitCode {
				t.Errorf("ExitCode() = %d, want %d", got, test.exitCode)
			}
			if strings.Contains(test.err.Error(), "\n\n") {
				t.Error("an error without a hint should not contain a blank line")
			}
		})
	}
}

func TestExitError(t *testing.T) {
	var err error = &ExitError{Code: 4}
	var coder interface{ ExitCode() int }
	if !errors.As(err, &coder) || coder.ExitCode() != 4 {
		t.Errorf("ExitError should report exit code 4")
	}
	if err.Error() != "exit code 4" {
		t.Errorf("Error() = %q", err.Error())
	}
}
