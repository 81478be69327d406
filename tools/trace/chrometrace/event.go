// Copyright 2026 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package chrometrace

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Event phases.
//
// https://docs.google.com/document/d/1CvAClvFfyA5R-PhYUmn5OOQtYMH4h6I0nSsKchNAySU/edit#heading=h.puwqg050lyuy
const (
	BeginEvent     = "B"
	EndEvent       = "E"
	CompleteEvent  = "X"
	InstantEvent   = "i"
	CounterEvent   = "C"
	AsyncBegin     = "b"
	AsyncEnd       = "e"
	FlowEventStart = "s"
	FlowEventEnd   = "f"
	MetadataEvent  = "M"
)

// MetadataCategory is the category of events that name processes and threads.
const MetadataCategory = "__metadata"

// Event is one entry of the "traceEvents" array. Every field is optional in
// the input and takes its zero value when absent.
//
// https://code.google.com/p/trace-viewer/
type Event struct {
	ProcessID int64
	ThreadID  int64
	// TimestampMicros is zero when the event has no timestamp.
	TimestampMicros uint64
	Phase           string
	Category        string
	Name            string
	// Args is usually an object but may be any JSON value. Numbers are kept
	// as json.Number so they are re-emitted exactly.
	Args                 interface{}
	DurationMicros       int64
	ThreadDurationMicros int64
	ThreadTimestamp      int64
	// InstantScope is the "s" field of instant events.
	InstantScope string
	Scope        string
	ID           *ID
	// Extra holds keys this package does not interpret, preserved verbatim.
	Extra map[string]json.RawMessage
}

var _ json.Unmarshaler = (*ID)(nil)

// ID is an async or flow event id. Traces write it as either a string or a
// number; both are kept as text and re-emitted in their original form.
type ID struct {
	Value   string
	Numeric bool
}

func (i ID) String() string {
	return i.Value
}

func (i ID) MarshalJSON() ([]byte, error) {
	if i.Numeric {
		return []byte(i.Value), nil
	}
	return json.Marshal(i.Value)
}

func (i *ID) UnmarshalJSON(b []byte) error {
	v, err := decodeValue(b)
	if err != nil {
		return err
	}
	switch v := v.(type) {
	case json.Number:
		*i = ID{Value: v.String(), Numeric: true}
	case string:
		*i = ID{Value: v}
	default:
		return fmt.Errorf("id must be a string or a number, got %s", describe(v))
	}
	return nil
}

// ArgString returns args[key] if args is an object and that field is a
// string, and "" otherwise.
func ArgString(args interface{}, key string) string {
	m, _ := args.(map[string]interface{})
	s, _ := m[key].(string)
	return s
}

// ArgString returns the string argument key of e, or "" if it is absent or
// not a string.
func (e *Event) ArgString(key string) string {
	return ArgString(e.Args, key)
}

// IsMetadata reports whether e names a process or thread.
func (e *Event) IsMetadata() bool {
	return e.Category == MetadataCategory
}

// Clone returns a deep copy of e.
func (e *Event) Clone() Event {
	c := *e
	c.Args = cloneValue(e.Args)
	if e.ID != nil {
		id := *e.ID
		c.ID = &id
	}
	c.Extra = cloneRaw(e.Extra)
	return c
}

func cloneValue(v interface{}) interface{} {
	switch v := v.(type) {
	case map[string]interface{}:
		m := make(map[string]interface{}, len(v))
		for k, e := range v {
			m[k] = cloneValue(e)
		}
		return m
	case []interface{}:
		s := make([]interface{}, len(v))
		for i, e := range v {
			s[i] = cloneValue(e)
		}
		return s
	}
	return v
}

func cloneRaw(m map[string]json.RawMessage) map[string]json.RawMessage {
	if m == nil {
		return nil
	}
	c := make(map[string]json.RawMessage, len(m))
	for k, v := range m {
		c[k] = append(json.RawMessage(nil), v...)
	}
	return c
}

// fieldError marks which event key failed to decode.
type fieldError struct {
	key string
	err error
}

func (e *fieldError) Error() string { return e.key + ": " + e.err.Error() }

func (e *fieldError) Unwrap() error { return e.err }

func (e *Event) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	*e = Event{}
	for key, raw := range fields {
		var err error
		switch key {
		case "pid":
			e.ProcessID, err = decodeInt(raw)
		case "tid":
			e.ThreadID, err = decodeInt(raw)
		case "ts":
			e.TimestampMicros, err = decodeUint(raw)
		case "ph":
			e.Phase, err = decodeString(raw)
		case "cat":
			e.Category, err = decodeString(raw)
		case "name":
			e.Name, err = decodeString(raw)
		case "args":
			e.Args, err = decodeValue(raw)
		case "dur":
			e.DurationMicros, err = decodeInt(raw)
		case "tdur":
			e.ThreadDurationMicros, err = decodeInt(raw)
		case "tts":
			e.ThreadTimestamp, err = decodeInt(raw)
		case "s":
			e.InstantScope, err = decodeString(raw)
		case "scope":
			e.Scope, err = decodeString(raw)
		case "id":
			if !isNull(raw) {
				e.ID = new(ID)
				err = e.ID.UnmarshalJSON(raw)
			}
		default:
			if e.Extra == nil {
				e.Extra = make(map[string]json.RawMessage)
			}
			e.Extra[key], err = compact(raw)
		}
		if err != nil {
			return &fieldError{key: key, err: err}
		}
	}
	return nil
}

// MarshalJSON writes the known keys in a fixed order followed by the
// preserved unknown keys in sorted order. The numeric fields and the name,
// phase and category are always written; the rest only when set.
func (e Event) MarshalJSON() ([]byte, error) {
	var w objectWriter
	w.field("pid", e.ProcessID)
	w.field("tid", e.ThreadID)
	w.field("ts", e.TimestampMicros)
	w.field("ph", e.Phase)
	w.field("cat", e.Category)
	w.field("name", e.Name)
	if e.Args != nil {
		w.field("args", e.Args)
	}
	w.field("dur", e.DurationMicros)
	w.field("tdur", e.ThreadDurationMicros)
	w.field("tts", e.ThreadTimestamp)
	if e.InstantScope != "" {
		w.field("s", e.InstantScope)
	}
	if e.Scope != "" {
		w.field("scope", e.Scope)
	}
	if e.ID != nil {
		w.field("id", e.ID)
	}
	w.rawFields(e.Extra)
	return w.close()
}

// objectWriter builds a JSON object with a caller-chosen key order. The first
// error sticks and is returned by close.
type objectWriter struct {
	buf bytes.Buffer
	n   int
	err error
}

func (w *objectWriter) key(k string) {
	if w.n == 0 {
		w.buf.WriteByte('{')
	} else {
		w.buf.WriteByte(',')
	}
	w.n++
	w.value(k)
	w.buf.WriteByte(':')
}

// value appends v. Strings are written without HTML escaping.
func (w *objectWriter) value(v interface{}) {
	if w.err != nil {
		return
	}
	enc := json.NewEncoder(&w.buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		w.err = err
		return
	}
	// Encode terminates each value with a newline.
	w.buf.Truncate(w.buf.Len() - 1)
}

func (w *objectWriter) field(k string, v interface{}) {
	w.key(k)
	w.value(v)
}

func (w *objectWriter) raw(k string, v json.RawMessage) {
	w.key(k)
	w.buf.Write(v)
}

func (w *objectWriter) rawFields(m map[string]json.RawMessage) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		w.raw(k, m[k])
	}
}

func (w *objectWriter) close() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	if w.n == 0 {
		w.buf.WriteByte('{')
	}
	w.buf.WriteByte('}')
	return w.buf.Bytes(), nil
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

// compact strips insignificant whitespace from raw and replaces the escapes
// json.Marshal writes for HTML characters and line separators with the
// characters themselves. The result is the same whichever encoder produced
// raw, so raw values survive any number of round trips unchanged.
func compact(raw json.RawMessage) (json.RawMessage, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, err
	}
	return unescapeHTML(buf.Bytes()), nil
}

var htmlEscapes = map[string]string{
	`\u003c`: "<",
	`\u003e`: ">",
	`\u0026`: "&",
	`\u2028`: "\u2028",
	`\u2029`: "\u2029",
}

// unescapeHTML rewrites the escapes in htmlEscapes. b must be valid JSON, so
// every backslash starts an escape inside a string.
func unescapeHTML(b []byte) []byte {
	if !bytes.Contains(b, []byte(`\u`)) {
		return b
	}
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] != '\\' || i+1 == len(b) {
			out = append(out, b[i])
			continue
		}
		if b[i+1] == 'u' && i+6 <= len(b) {
			if c, ok := htmlEscapes[strings.ToLower(string(b[i:i+6]))]; ok {
				out = append(out, c...)
				i += 5
				continue
			}
		}
		out = append(out, b[i], b[i+1])
		i++
	}
	return out
}

// decodeValue decodes raw keeping numbers as json.Number.
func decodeValue(raw json.RawMessage) (interface{}, error) {
	d := json.NewDecoder(bytes.NewReader(raw))
	d.UseNumber()
	var v interface{}
	if err := d.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func describe(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "a boolean"
	case json.Number:
		return "a number"
	case string:
		return "a string"
	case []interface{}:
		return "an array"
	}
	return "an object"
}

// numberText returns the textual number held by raw. Numbers may be written
// bare or quoted. ok is false for null.
func numberText(raw json.RawMessage) (text string, ok bool, err error) {
	v, err := decodeValue(raw)
	if err != nil {
		return "", false, err
	}
	switch v := v.(type) {
	case nil:
		return "", false, nil
	case json.Number:
		return v.String(), true, nil
	case string:
		return v, true, nil
	}
	return "", false, fmt.Errorf("want a number, got %s", describe(v))
}

// decodeInt accepts integers, fractional numbers (truncated toward zero) and
// numeric strings.
func decodeInt(raw json.RawMessage) (int64, error) {
	text, ok, err := numberText(raw)
	if !ok || err != nil {
		return 0, err
	}
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("%q is not a valid integer", text)
	}
	return int64(f), nil
}

// decodeUint is decodeInt for values that may not be negative.
func decodeUint(raw json.RawMessage) (uint64, error) {
	text, ok, err := numberText(raw)
	if !ok || err != nil {
		return 0, err
	}
	if n, err := strconv.ParseUint(text, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || f < 0 || f >= math.MaxUint64 {
		return 0, fmt.Errorf("%q is not a valid non-negative integer", text)
	}
	return uint64(f), nil
}

// decodeString accepts strings, and numbers as their literal text.
func decodeString(raw json.RawMessage) (string, error) {
	v, err := decodeValue(raw)
	if err != nil {
		return "", err
	}
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	}
	return "", fmt.Errorf("want a string, got %s", describe(v))
}
