// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

// Package highlight colours rendered JSON and markdown schema
// descriptions for terminal display.
//
// Colouring is presentation only: it is applied after rendering, never
// to text that is written to a file or hashed, and stripping the escape
// sequences always gives back the rendered text byte for byte.
package highlight

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Mode is the user's colour preference.
type Mode string

const (
	// ModeAuto colours only when writing to a terminal that supports
	// colour and NO_COLOR is not set.
	ModeAuto Mode = "auto"

	// ModeAlways colours regardless of the destination.
	ModeAlways Mode = "always"

	// ModeNever never colours.
	ModeNever Mode = "never"
)

// ParseMode parses a colour mode. The empty string means ModeAuto.
func ParseMode(name string) (Mode, error) {
	switch Mode(name) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeAlways, ModeNever:
		return Mode(name), nil
	default:
		return "", fmt.Errorf("unknown colour mode %q (want auto, always, or never)", name)
	}
}

// Style is the chroma style used for JSON.
const Style = "monokai"

// Profile decides the colour profile for output written to file.
// termenv.Ascii means no colour.
func Profile(mode Mode, file *os.File) termenv.Profile {
	switch mode {
	case ModeNever:
		return termenv.Ascii
	case ModeAlways:
		profile := termenv.NewOutput(file).EnvColorProfile()
		if profile == termenv.Ascii {
			// Not a terminal, or a terminal that claims no colour:
			// the user asked for colour anyway.
			return termenv.ANSI256
		}
		return profile
	default:
		if file == nil || !term.IsTerminal(int(file.Fd())) {
			return termenv.Ascii
		}
		return termenv.NewOutput(file).EnvColorProfile()
	}
}

// ProfileFor is Profile for an arbitrary writer. Only an *os.File can
// be a terminal, so ModeAuto means no colour for anything else.
func ProfileFor(mode Mode, w io.Writer) termenv.Profile {
	if file, ok := w.(*os.File); ok {
		return Profile(mode, file)
	}
	if mode == ModeAlways {
		return termenv.ANSI256
	}
	return termenv.Ascii
}

// formatterFor maps a colour profile to a chroma terminal formatter.
func formatterFor(profile termenv.Profile) string {
	switch profile {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI256:
		return "terminal256"
	case termenv.ANSI:
		return "terminal16"
	default:
		return ""
	}
}

// JSON returns text with ANSI colour escapes for profile. text should
// end in a newline, as printed output does. With termenv.Ascii, or if
// highlighting fails, text is returned unchanged.
func JSON(text string, profile termenv.Profile) string {
	formatter := formatterFor(profile)
	if formatter == "" {
		return text
	}
	var buffer strings.Builder
	if err := quick.Highlight(&buffer, text, "json", formatter, Style); err != nil {
		return text
	}
	return buffer.String()
}
