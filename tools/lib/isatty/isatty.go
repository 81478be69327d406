// Copyright 2026 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package isatty reports whether stdout is attached to a terminal.
package isatty

import "os"

// IsTerminal reports whether os.Stdout refers to a terminal.
func IsTerminal() bool {
	return isTerminal(int(os.Stdout.Fd()))
}
