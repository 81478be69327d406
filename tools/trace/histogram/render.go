// Copyright 2026 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package histogram

import (
	"math"
	"strings"
)

// DefaultLevels is the number of rows Render draws.
const DefaultLevels = 10

const (
	barChar   = '#'
	emptyChar = ' '
)

// Render draws the histogram as a DefaultLevels-row ASCII bar chart, one
// column per bucket.
func (h *Histogram[T]) Render() string {
	return h.RenderLevels(DefaultLevels)
}

// RenderLevels draws the histogram as an ASCII bar chart with the given number
// of rows. Column heights are scaled between the smallest and largest bucket
// count and rounded to the nearest level. Rows are drawn from the top down
// and separated by newlines, without a trailing newline.
func (h *Histogram[T]) RenderLevels(levels int) string {
	if levels < 1 {
		return ""
	}
	heights := Heights(h.counts, levels)

	var b strings.Builder
	b.Grow((len(heights) + 1) * levels)
	for level := levels; level >= 1; level-- {
		for _, height := range heights {
			if height >= level {
				b.WriteByte(barChar)
			} else {
				b.WriteByte(emptyChar)
			}
		}
		if level > 1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Heights quantizes counts into 0..levels, scaling each count by
// (count-min)/(max-min). When every count is equal there is no scale; the
// columns are all full if the counts are nonzero and all empty otherwise.
func Heights(counts []uint64, levels int) []int {
	heights := make([]int, len(counts))
	if len(counts) == 0 {
		return heights
	}
	lo, hi := counts[0], counts[0]
	for _, c := range counts[1:] {
		if c < lo {
			lo = c
		}
		if c > hi {
			hi = c
		}
	}
	if lo == hi {
		if hi > 0 {
			for i := range heights {
				heights[i] = levels
			}
		}
		return heights
	}
	span := float64(hi - lo)
	for i, c := range counts {
		heights[i] = int(math.Round(float64(c-lo) / span * float64(levels)))
	}
	return heights
}
