// Copyright 2026 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package command holds helpers shared by the tracetool command line.
package command

import (
	"context"
	"os"
	"os/signal"
)

// CancelOnSignals returns a Context that is canceled when any of sigs is
// received, and a stop function that releases the signal watcher. The
// watcher also exits once the parent context is done.
func CancelOnSignals(ctx context.Context, sigs ...os.Signal) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	c := make(chan os.Signal, 1)
	signal.Notify(c, sigs...)
	go func() {
		defer signal.Stop(c)
		select {
		case <-ctx.Done():
		case <-c:
			cancel()
		}
	}()
	return ctx, cancel
}
