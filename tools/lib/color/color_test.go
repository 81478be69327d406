// Copyright 2026 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package color

import (
	"fmt"
	"testing"
)

func TestColors(t *testing.T) {
	c := NewColor(ColorAlways)
	for _, tc := range []struct {
		fn   Colorfn
		code ColorCode
	}{
		{c.Red, RedFg},
		{c.Green, GreenFg},
		{c.Yellow, YellowFg},
		{c.Blue, BlueFg},
		{c.Magenta, MagentaFg},
		{c.Cyan, CyanFg},
	} {
		want := fmt.Sprintf("\033[%dm%s\033[0m", tc.code, "pid 7")
		if got := tc.fn("pid %d", 7); got != want {
			t.Errorf("color %d: got %q, want %q", tc.code, got, want)
		}
		if got := c.WithColor(tc.code, "pid %d", 7); got != want {
			t.Errorf("WithColor(%d): got %q, want %q", tc.code, got, want)
		}
	}
	if got := c.WithColor(DefaultFg, "plain"); got != "plain" {
		t.Errorf("DefaultFg should not be escaped, got %q", got)
	}
	if !c.Enabled() {
		t.Errorf("ColorAlways should be enabled")
	}
}

func TestColorsDisabled(t *testing.T) {
	c := NewColor(ColorNever)
	for _, fn := range []Colorfn{c.Red, c.Green, c.Yellow, c.Blue, c.Magenta, c.Cyan} {
		if got := fn("pid %d", 7); got != "pid 7" {
			t.Errorf("got %q, want unescaped %q", got, "pid 7")
		}
	}
	if c.Enabled() {
		t.Errorf("ColorNever should be disabled")
	}
}

func TestEnableColorFlag(t *testing.T) {
	var ec EnableColor
	for _, name := range []string{"never", "auto", "always"} {
		if err := ec.Set(name); err != nil {
			t.Fatalf("Set(%q) failed: %v", name, err)
		}
		if got := ec.String(); got != name {
			t.Errorf("String() = %q after Set(%q)", got, name)
		}
	}
	if err := ec.Set("sometimes"); err == nil {
		t.Errorf("Set(%q) should fail", "sometimes")
	}
}
