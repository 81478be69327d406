// Copyright 2026 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"go.fuchsia.dev/tracetool/tools/lib/color"
	"go.fuchsia.dev/tracetool/tools/lib/logger"
	"go.fuchsia.dev/tracetool/tools/lib/osmisc"
)

type filterCommand struct {
	input  string
	output string
}

func (*filterCommand) Name() string { return "filter" }

func (*filterCommand) Synopsis() string {
	return "writes the events of the given processes, and of every non-renderer process, to a new trace."
}

func (*filterCommand) Usage() string {
	return `tracetool filter [-input <path>] [-output <path>] <process-id>...

flags:
`
}

func (c *filterCommand) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "input", defaultInput, "path to a JSON trace; a .gz suffix means gzipped.")
	f.StringVar(&c.output, "output", defaultOutput, "path to write the filtered trace to; a .gz suffix gzips it.")
}

func (c *filterCommand) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		logger.Errorf(ctx, "at least one process id is required")
		return subcommands.ExitUsageError
	}
	if err := c.run(ctx, os.Stdout, color.NewColor(colors), f.Args()); err != nil {
		logger.Errorf(ctx, "%s", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *filterCommand) run(ctx context.Context, w io.Writer, col color.Color, ids []string) error {
	t, _, err := readTrace(ctx, c.input)
	if err != nil {
		return err
	}
	keep := retainedProcessIDs(t, ids)
	logger.Debugf(ctx, "keeping processes %v", keep)
	filtered := t.Filter(keep)
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encodeTrace(filtered)
	if err != nil {
		return err
	}
	if err := newSummary(ctx, filtered, len(data)).print(w, col, textFormat); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := osmisc.WriteFile(c.output, data); err != nil {
		return fmt.Errorf("failed to write filtered trace: %w", err)
	}
	logger.Infof(ctx, "wrote %d of %d events to %s", len(filtered.Events), len(t.Events), c.output)
	return nil
}
