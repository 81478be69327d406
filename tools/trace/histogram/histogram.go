// Copyright 2026 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package histogram counts samples into a fixed number of uniform buckets
// over a numeric range.
package histogram

import (
	"fmt"
	"math"
	"math/bits"
)

// Number is any integer or floating point type a Histogram can bucket.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// InvalidRangeError is returned when a Histogram cannot divide its range into
// buckets, either because max <= min or because no buckets were requested.
type InvalidRangeError struct {
	Min, Max float64
	Buckets  int
}

func (e *InvalidRangeError) Error() string {
	if e.Buckets < 1 {
		return fmt.Sprintf("invalid histogram bucket count %d", e.Buckets)
	}
	return fmt.Sprintf("invalid histogram range [%v, %v): max must be greater than min", e.Min, e.Max)
}

// Histogram counts samples in [min, max) into n buckets of width (max-min)/n.
// One extra bucket at the end collects every sample >= max, so Buckets has
// n+1 entries.
type Histogram[T Number] struct {
	min, max T
	width    float64
	// For integer T, span is max-min as an unsigned offset and buckets are
	// found exactly as (v-min)*n/span.
	integer   bool
	span      uint64
	n         uint64
	counts    []uint64
	underflow uint64
}

// New returns a Histogram with buckets buckets spanning [min, max).
func New[T Number](min, max T, buckets int) (*Histogram[T], error) {
	if buckets < 1 || !(max > min) {
		return nil, &InvalidRangeError{Min: float64(min), Max: float64(max), Buckets: buckets}
	}
	h := &Histogram[T]{
		min:    min,
		max:    max,
		width:  (float64(max) - float64(min)) / float64(buckets),
		n:      uint64(buckets),
		counts: make([]uint64, buckets+1),
	}
	var half T = 1
	if half /= 2; half == 0 {
		h.integer = true
		h.span = offset(min, max)
	}
	return h, nil
}

// offset returns to-from for integer values with to >= from. The
// subtraction wraps correctly for signed types, whose conversion to uint64
// sign extends.
func offset[T Number](from, to T) uint64 {
	return uint64(to) - uint64(from)
}

// Index returns the bucket v falls into. Samples at or above max map to the
// last bucket. ok is false for samples below min.
func (h *Histogram[T]) Index(v T) (i int, ok bool) {
	if v < h.min {
		return 0, false
	}
	last := len(h.counts) - 1
	if v >= h.max {
		return last, true
	}
	if h.integer {
		hi, lo := bits.Mul64(offset(h.min, v), h.n)
		// offset(min, v) < span, so the quotient is below n and Div64 cannot
		// overflow.
		q, _ := bits.Div64(hi, lo, h.span)
		return int(q), true
	}
	i = int(math.Floor(float64(v-h.min) / h.width))
	if i < 0 {
		// NaN.
		return 0, false
	}
	if i > last {
		i = last
	}
	return i, true
}

// Add counts one sample. Samples below min are not bucketed; they are
// tallied separately and reported by Underflow.
func (h *Histogram[T]) Add(v T) {
	i, ok := h.Index(v)
	if !ok {
		h.underflow++
		return
	}
	h.counts[i]++
}

// Buckets returns the per-bucket counts, including the trailing overflow
// bucket. The slice is a copy.
func (h *Histogram[T]) Buckets() []uint64 {
	return append([]uint64(nil), h.counts...)
}

// Count returns the number of samples added, including those below min.
func (h *Histogram[T]) Count() uint64 {
	n := h.underflow
	for _, c := range h.counts {
		n += c
	}
	return n
}

// Underflow returns the number of samples rejected for being below min.
func (h *Histogram[T]) Underflow() uint64 {
	return h.underflow
}

func (h *Histogram[T]) Min() T { return h.min }

func (h *Histogram[T]) Max() T { return h.max }

// Width returns the width of one bucket.
func (h *Histogram[T]) Width() float64 { return h.width }
