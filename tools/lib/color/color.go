// Copyright 2026 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package color wraps strings in ANSI foreground color escapes when the
// output supports it.
package color

import (
	"fmt"
	"os"

	"go.fuchsia.dev/tracetool/tools/lib/isatty"
)

// Colorfn formats a string and wraps it in a color.
type Colorfn func(format string, a ...interface{}) string

const (
	escape = "\033["
	clear  = escape + "0m"
)

// ColorCode is an ANSI foreground color code.
type ColorCode int

// Foreground text colors
const (
	RedFg ColorCode = iota + 31
	GreenFg
	YellowFg
	BlueFg
	MagentaFg
	CyanFg
	DefaultFg ColorCode = 39
)

// Color formats strings in the handful of colors the tools print with.
type Color interface {
	Red(format string, a ...interface{}) string
	Green(format string, a ...interface{}) string
	Yellow(format string, a ...interface{}) string
	Blue(format string, a ...interface{}) string
	Magenta(format string, a ...interface{}) string
	Cyan(format string, a ...interface{}) string
	WithColor(code ColorCode, format string, a ...interface{}) string
	Enabled() bool
}

// palette implements Color. A disabled palette formats without escapes.
type palette struct {
	enabled bool
}

func (p palette) Red(format string, a ...interface{}) string { return p.WithColor(RedFg, format, a...) }
func (p palette) Green(format string, a ...interface{}) string {
	return p.WithColor(GreenFg, format, a...)
}
func (p palette) Yellow(format string, a ...interface{}) string {
	return p.WithColor(YellowFg, format, a...)
}
func (p palette) Blue(format string, a ...interface{}) string { return p.WithColor(BlueFg, format, a...) }
func (p palette) Magenta(format string, a ...interface{}) string {
	return p.WithColor(MagentaFg, format, a...)
}
func (p palette) Cyan(format string, a ...interface{}) string { return p.WithColor(CyanFg, format, a...) }

func (p palette) WithColor(code ColorCode, format string, a ...interface{}) string {
	s := fmt.Sprintf(format, a...)
	if !p.enabled || code == DefaultFg {
		return s
	}
	return fmt.Sprintf("%s%dm%s%s", escape, code, s, clear)
}

func (p palette) Enabled() bool {
	return p.enabled
}

// EnableColor selects when color output is used. It implements flag.Value.
type EnableColor int

const (
	ColorNever EnableColor = iota
	ColorAuto
	ColorAlways
)

var enableColorNames = map[EnableColor]string{
	ColorNever:  "never",
	ColorAuto:   "auto",
	ColorAlways: "always",
}

func isColorAvailable() bool {
	switch os.Getenv("TERM") {
	case "dumb", "":
		return false
	}
	return isatty.IsTerminal()
}

// NewColor returns a Color honoring enableColor. ColorAuto enables color only
// when stdout is a terminal that is not "dumb".
func NewColor(enableColor EnableColor) Color {
	switch enableColor {
	case ColorAlways:
		return palette{enabled: true}
	case ColorAuto:
		return palette{enabled: isColorAvailable()}
	}
	return palette{}
}

func (ec *EnableColor) String() string {
	return enableColorNames[*ec]
}

func (ec *EnableColor) Set(s string) error {
	for v, name := range enableColorNames {
		if name == s {
			*ec = v
			return nil
		}
	}
	return fmt.Errorf("%s is not a valid color value", s)
}
