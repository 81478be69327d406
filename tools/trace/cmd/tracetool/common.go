// Copyright 2026 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/kr/pretty"
	"gopkg.in/yaml.v2"

	"go.fuchsia.dev/tracetool/tools/lib/color"
	"go.fuchsia.dev/tracetool/tools/lib/logger"
	"go.fuchsia.dev/tracetool/tools/lib/osmisc"
	"go.fuchsia.dev/tracetool/tools/trace/chrometrace"
	"go.fuchsia.dev/tracetool/tools/trace/histogram"
)

const (
	defaultInput  = "resources/sample_trace.json"
	defaultOutput = "output.json"
)

// outputFormat selects how a summary is printed. It implements flag.Value.
type outputFormat string

const (
	textFormat outputFormat = "text"
	jsonFormat outputFormat = "json"
	yamlFormat outputFormat = "yaml"
)

func (f *outputFormat) String() string {
	if *f == "" {
		return string(textFormat)
	}
	return string(*f)
}

func (f *outputFormat) Set(s string) error {
	switch v := outputFormat(s); v {
	case textFormat, jsonFormat, yamlFormat:
		*f = v
		return nil
	}
	return fmt.Errorf("%s is not a valid format, can be text, json or yaml", s)
}

// readTrace loads and parses the trace at path. It also returns the size of
// the decoded JSON document.
func readTrace(ctx context.Context, path string) (*chrometrace.Trace, int, error) {
	data, err := osmisc.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read trace: %w", err)
	}
	logger.Debugf(ctx, "read %s from %s", humanize.Bytes(uint64(len(data))), path)
	t, err := chrometrace.Parse(data)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", path, err)
	}
	return t, len(data), nil
}

// encodeTrace serializes t as a newline-terminated JSON document.
func encodeTrace(t *chrometrace.Trace) ([]byte, error) {
	b, err := t.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize trace: %w", err)
	}
	return append(b, '\n'), nil
}

// retainedProcessIDs returns ids plus the id of every process that is not a
// renderer. Filtering only ever drops renderers.
func retainedProcessIDs(t *chrometrace.Trace, ids []string) map[string]bool {
	set := chrometrace.ProcessIDs(ids...)
	for _, p := range t.Processes() {
		if !p.IsRenderer() {
			set[strconv.FormatInt(p.ID, 10)] = true
		}
	}
	return set
}

type timingSummary struct {
	StartMicros    uint64 `json:"start_us" yaml:"start_us"`
	EndMicros      uint64 `json:"end_us" yaml:"end_us"`
	DurationMicros uint64 `json:"duration_us" yaml:"duration_us"`
}

type durationSummary struct {
	Count  int     `json:"count" yaml:"count"`
	Mean   float64 `json:"mean_us" yaml:"mean_us"`
	StdDev float64 `json:"stddev_us" yaml:"stddev_us"`
	P50    float64 `json:"p50_us" yaml:"p50_us"`
	P95    float64 `json:"p95_us" yaml:"p95_us"`
	Max    float64 `json:"max_us" yaml:"max_us"`
}

type processSummary struct {
	ID      int64    `json:"pid" yaml:"pid"`
	Name    string   `json:"name" yaml:"name"`
	Label   string   `json:"label,omitempty" yaml:"label,omitempty"`
	Threads []string `json:"threads,omitempty" yaml:"threads,omitempty"`
}

// summary is what list and filter report about a trace.
type summary struct {
	Info      string           `json:"info" yaml:"info"`
	Events    int              `json:"events" yaml:"events"`
	Bytes     int              `json:"bytes" yaml:"bytes"`
	Timing    timingSummary    `json:"timing" yaml:"timing"`
	Durations durationSummary  `json:"complete_event_durations" yaml:"complete_event_durations"`
	Histogram []uint64         `json:"timing_histogram,omitempty" yaml:"timing_histogram,omitempty"`
	Processes []processSummary `json:"processes" yaml:"processes"`

	processes []chrometrace.ProcessInfo
	hist      *histogram.Histogram[uint64]
	histErr   error
}

// newSummary derives a summary of t, a document of size bytes.
func newSummary(ctx context.Context, t *chrometrace.Trace, size int) *summary {
	tm := t.Timing()
	ds := t.DurationStats()
	s := &summary{
		Info:   t.Info(),
		Events: len(t.Events),
		Bytes:  size,
		Timing: timingSummary{
			StartMicros:    tm.Min,
			EndMicros:      tm.Max,
			DurationMicros: tm.Duration,
		},
		Durations: durationSummary(ds),
		Processes: []processSummary{},
		processes: t.Processes(),
	}
	for _, p := range s.processes {
		s.Processes = append(s.Processes, processSummary(p))
	}
	logger.Debugf(ctx, "processes: %# v", pretty.Formatter(s.processes))

	s.hist, s.histErr = t.TimingHistogram()
	if s.histErr != nil {
		logger.Debugf(ctx, "no timing histogram: %v", s.histErr)
	} else {
		s.Histogram = s.hist.Buckets()
	}
	return s
}

func (s *summary) print(w io.Writer, c color.Color, f outputFormat) error {
	switch f {
	case jsonFormat:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case yamlFormat:
		b, err := yaml.Marshal(s)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	}
	s.printText(w, c)
	return nil
}

func (s *summary) printText(w io.Writer, c color.Color) {
	elapsed := chrometrace.Timing{Duration: s.Timing.DurationMicros}.Elapsed()
	fmt.Fprintf(w, "%s with %s and %.2fs duration.\n",
		c.Green("%s", s.Info), english.Plural(len(s.processes), "process", "processes"), elapsed.Seconds())
	fmt.Fprintf(w, "%s %s, %s of JSON.\n",
		humanize.Comma(int64(s.Events)), english.PluralWord(s.Events, "event", ""), humanize.Bytes(uint64(s.Bytes)))

	if d := s.Durations; d.Count == 0 {
		fmt.Fprintln(w, "no complete events.")
	} else {
		fmt.Fprintf(w, "%s %s: mean %.1fµs, stddev %.1fµs, p50 %.0fµs, p95 %.0fµs, max %.0fµs.\n",
			humanize.Comma(int64(d.Count)), english.PluralWord(d.Count, "complete event", "complete events"),
			d.Mean, d.StdDev, d.P50, d.P95, d.Max)
	}

	fmt.Fprintln(w, "timing histogram:")
	if s.histErr != nil {
		fmt.Fprintln(w, c.Yellow("unavailable: %v", s.histErr))
	} else {
		fmt.Fprintln(w, c.Blue("%s", s.hist.Render()))
	}

	for i, p := range s.processes {
		fmt.Fprintf(w, "%s ▶ %s\n", c.Cyan("%2d", i), p)
	}
}
