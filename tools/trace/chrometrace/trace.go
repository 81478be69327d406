// Copyright 2026 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package chrometrace parses, summarizes and filters traces in the Chrome
// Trace Event Format.
package chrometrace

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.fuchsia.dev/tracetool/tools/trace/histogram"
)

const (
	traceEventsKey = "traceEvents"
	metadataKey    = "metadata"

	// TimingBuckets is the number of buckets in TimingHistogram.
	TimingBuckets = 100
)

// ParseError is returned when a document is not a usable trace. Field names
// the offending location, e.g. "traceEvents[3].pid"; it is empty when the
// document as a whole is malformed.
type ParseError struct {
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("parsing trace: %v", e.Err)
	}
	return fmt.Sprintf("parsing trace: %s: %v", e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Trace is the root object of a JSON Object Format trace.
type Trace struct {
	// Events are in file order.
	Events []Event
	// Metadata is the "metadata" object, compacted but otherwise untouched.
	// It is nil when the document has none.
	Metadata json.RawMessage
	// Extra holds other top-level keys such as "displayTimeUnit".
	Extra map[string]json.RawMessage
}

// Parse decodes a trace document. It fails with a *ParseError if data is not
// well-formed JSON, has no "traceEvents" array, or has an event field of an
// unusable type.
func Parse(data []byte) (*Trace, error) {
	var t Trace
	if err := json.Unmarshal(data, &t); err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			return nil, pe
		}
		return nil, &ParseError{Err: err}
	}
	if t.Events == nil {
		// A bare null never reaches UnmarshalJSON's checks.
		return nil, &ParseError{Field: traceEventsKey, Err: errors.New("missing")}
	}
	return &t, nil
}

func (t *Trace) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return &ParseError{Err: err}
	}
	rawEvents, ok := fields[traceEventsKey]
	if !ok {
		return &ParseError{Field: traceEventsKey, Err: errors.New("missing")}
	}
	if trimmed := bytes.TrimSpace(rawEvents); len(trimmed) == 0 || trimmed[0] != '[' {
		return &ParseError{Field: traceEventsKey, Err: errors.New("not an array")}
	}
	var events []json.RawMessage
	if err := json.Unmarshal(rawEvents, &events); err != nil {
		return &ParseError{Field: traceEventsKey, Err: err}
	}

	*t = Trace{Events: make([]Event, len(events))}
	for i, raw := range events {
		if err := t.Events[i].UnmarshalJSON(raw); err != nil {
			field := fmt.Sprintf("%s[%d]", traceEventsKey, i)
			var fe *fieldError
			if errors.As(err, &fe) {
				field += "." + fe.key
				err = fe.err
			}
			return &ParseError{Field: field, Err: err}
		}
	}

	for key, raw := range fields {
		if key == traceEventsKey {
			continue
		}
		c, err := compact(raw)
		if err != nil {
			return &ParseError{Field: key, Err: err}
		}
		if key == metadataKey {
			t.Metadata = c
			continue
		}
		if t.Extra == nil {
			t.Extra = make(map[string]json.RawMessage)
		}
		t.Extra[key] = c
	}
	return nil
}

// MarshalJSON writes "traceEvents", then "metadata" if present, then the
// other preserved top-level keys in sorted order.
func (t *Trace) MarshalJSON() ([]byte, error) {
	var w objectWriter
	events := t.Events
	if events == nil {
		events = []Event{}
	}
	w.field(traceEventsKey, events)
	if t.Metadata != nil {
		w.raw(metadataKey, t.Metadata)
	}
	w.rawFields(t.Extra)
	return w.close()
}

// MetadataEvents returns pointers to the events in the "__metadata" category,
// in file order.
func (t *Trace) MetadataEvents() []*Event {
	var events []*Event
	for i := range t.Events {
		if t.Events[i].IsMetadata() {
			events = append(events, &t.Events[i])
		}
	}
	return events
}

// Info summarizes when and by what the trace was captured, from the
// "trace-capture-datetime" and "product-version" metadata fields.
func (t *Trace) Info() string {
	return fmt.Sprintf("captured=%s, version=%s",
		MetadataString(t.Metadata, "trace-capture-datetime"), MetadataString(t.Metadata, "product-version"))
}

// MetadataString returns the string field key of a raw metadata object, or
// "" unless metadata is an object holding a string under key.
func MetadataString(metadata json.RawMessage, key string) string {
	if len(metadata) == 0 {
		return ""
	}
	v, err := decodeValue(metadata)
	if err != nil {
		return ""
	}
	return ArgString(v, key)
}

// Timing is the span covered by the nonzero event timestamps of a trace, in
// microseconds.
type Timing struct {
	Min      uint64
	Max      uint64
	Duration uint64
}

// Elapsed returns Duration as a time.Duration.
func (tm Timing) Elapsed() time.Duration {
	return time.Duration(tm.Duration) * time.Microsecond
}

// Timing computes the earliest and latest nonzero timestamps. All fields are
// zero if no event has a timestamp.
func (t *Trace) Timing() Timing {
	var tm Timing
	seen := false
	for i := range t.Events {
		ts := t.Events[i].TimestampMicros
		if ts == 0 {
			continue
		}
		if !seen || ts < tm.Min {
			tm.Min = ts
		}
		if !seen || ts > tm.Max {
			tm.Max = ts
		}
		seen = true
	}
	tm.Duration = tm.Max - tm.Min
	return tm
}

// TimingHistogram buckets every nonzero timestamp into TimingBuckets buckets
// spanning Timing().Min to Timing().Max. It returns a
// *histogram.InvalidRangeError when the trace has fewer than two distinct
// timestamps.
func (t *Trace) TimingHistogram() (*histogram.Histogram[uint64], error) {
	tm := t.Timing()
	h, err := histogram.New(tm.Min, tm.Max, TimingBuckets)
	if err != nil {
		return nil, err
	}
	for i := range t.Events {
		if ts := t.Events[i].TimestampMicros; ts != 0 {
			h.Add(ts)
		}
	}
	return h, nil
}

// ProcessIDs builds the set Filter expects from command line ids.
func ProcessIDs(ids ...string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// Filter returns a new trace holding copies of the events whose decimal
// process id is in ids. Metadata and other top-level keys are copied
// unchanged. t is not modified.
func (t *Trace) Filter(ids map[string]bool) *Trace {
	out := &Trace{
		Events:   []Event{},
		Metadata: append(json.RawMessage(nil), t.Metadata...),
		Extra:    cloneRaw(t.Extra),
	}
	for i := range t.Events {
		if ids[strconv.FormatInt(t.Events[i].ProcessID, 10)] {
			out.Events = append(out.Events, t.Events[i].Clone())
		}
	}
	return out
}
