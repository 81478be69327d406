// Copyright 2026 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logger

import (
	"bytes"
	"context"
	"testing"

	"go.fuchsia.dev/tracetool/tools/lib/color"
)

func TestWithContext(t *testing.T) {
	ctx := context.Background()
	if v := LoggerFromContext(ctx); v != nil {
		t.Fatalf("Default context should not carry a logger, got %+v", v)
	}
	l := NewLogger(DebugLevel, color.NewColor(color.ColorNever), nil, nil, "")
	if v := LoggerFromContext(WithLogger(ctx, l)); v != l {
		t.Fatalf("LoggerFromContext() = %p, want %p", v, l)
	}
}

func TestLevels(t *testing.T) {
	for _, tc := range []struct {
		name    string
		level   LogLevel
		log     func(ctx context.Context)
		wantOut string
		wantErr string
	}{
		{
			name:    "info at info",
			level:   InfoLevel,
			log:     func(ctx context.Context) { Infof(ctx, "%d processes", 3) },
			wantOut: "tracetool: 3 processes\n",
		},
		{
			name:  "debug suppressed at info",
			level: InfoLevel,
			log:   func(ctx context.Context) { Debugf(ctx, "hidden") },
		},
		{
			name:    "debug at debug",
			level:   DebugLevel,
			log:     func(ctx context.Context) { Debugf(ctx, "shown") },
			wantOut: "tracetool: DEBUG: shown\n",
		},
		{
			name:    "warning goes to out",
			level:   WarningLevel,
			log:     func(ctx context.Context) { Warningf(ctx, "careful") },
			wantOut: "tracetool: WARN: careful\n",
		},
		{
			name:    "error goes to err",
			level:   ErrorLevel,
			log:     func(ctx context.Context) { Errorf(ctx, "bad input") },
			wantErr: "tracetool: ERROR: bad input\n",
		},
		{
			name:  "nothing at no level",
			level: NoLogLevel,
			log:   func(ctx context.Context) { Errorf(ctx, "bad input") },
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			l := NewLogger(tc.level, color.NewColor(color.ColorNever), &out, &errOut, "tracetool: ")
			l.SetFlags(0)
			tc.log(WithLogger(context.Background(), l))
			if got := out.String(); got != tc.wantOut {
				t.Errorf("stdout = %q, want %q", got, tc.wantOut)
			}
			if got := errOut.String(); got != tc.wantErr {
				t.Errorf("stderr = %q, want %q", got, tc.wantErr)
			}
		})
	}
}

func TestLogLevelFlag(t *testing.T) {
	var l LogLevel
	if err := l.Set("debug"); err != nil {
		t.Fatal(err)
	}
	if l != DebugLevel {
		t.Errorf("Set(debug) = %d, want %d", l, DebugLevel)
	}
	if got := l.String(); got != "debug" {
		t.Errorf("String() = %q, want %q", got, "debug")
	}
	if err := l.Set("verbose"); err == nil {
		t.Errorf("Set(verbose) should fail")
	}
}
