// Copyright 2026 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"io"
	"os"

	"github.com/google/subcommands"

	"go.fuchsia.dev/tracetool/tools/lib/color"
	"go.fuchsia.dev/tracetool/tools/lib/logger"
)

type listCommand struct {
	input  string
	format outputFormat
}

func (*listCommand) Name() string { return "list" }

func (*listCommand) Synopsis() string { return "summarizes a trace and lists its processes." }

func (*listCommand) Usage() string {
	return `tracetool list [-input <path>] [-format text|json|yaml]

flags:
`
}

func (c *listCommand) SetFlags(f *flag.FlagSet) {
	c.format = textFormat
	f.StringVar(&c.input, "input", defaultInput, "path to a JSON trace; a .gz suffix means gzipped.")
	f.Var(&c.format, "format", "output format, can be text, json or yaml.")
}

func (c *listCommand) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		logger.Errorf(ctx, "list takes no arguments, got %q", f.Args())
		return subcommands.ExitUsageError
	}
	if err := c.run(ctx, os.Stdout, color.NewColor(colors)); err != nil {
		logger.Errorf(ctx, "%s", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *listCommand) run(ctx context.Context, w io.Writer, col color.Color) error {
	t, size, err := readTrace(ctx, c.input)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return newSummary(ctx, t, size).print(w, col, c.format)
}
