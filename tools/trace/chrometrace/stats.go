// Copyright 2026 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package chrometrace

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// DurationStats summarizes the durations of complete ("X") events, in
// microseconds. It is the zero value when the trace has no complete events.
type DurationStats struct {
	Count  int
	Mean   float64
	StdDev float64
	P50    float64
	P95    float64
	Max    float64
}

// DurationStats computes statistics over the "dur" field of complete events.
func (t *Trace) DurationStats() DurationStats {
	var durs []float64
	for i := range t.Events {
		if e := &t.Events[i]; e.Phase == CompleteEvent {
			durs = append(durs, float64(e.DurationMicros))
		}
	}
	if len(durs) == 0 {
		return DurationStats{}
	}
	sort.Float64s(durs)

	s := DurationStats{
		Count: len(durs),
		Mean:  stat.Mean(durs, nil),
		P50:   stat.Quantile(0.5, stat.Empirical, durs, nil),
		P95:   stat.Quantile(0.95, stat.Empirical, durs, nil),
		Max:   durs[len(durs)-1],
	}
	// The sample standard deviation is undefined for a single value.
	if len(durs) > 1 {
		s.StdDev = stat.StdDev(durs, nil)
	}
	return s
}
