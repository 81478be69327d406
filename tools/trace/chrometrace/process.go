// Copyright 2026 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package chrometrace

import (
	"fmt"
	"sort"
)

// Names of the metadata events that describe processes and threads.
const (
	processNameEvent   = "process_name"
	processLabelsEvent = "process_labels"
	threadNameEvent    = "thread_name"
)

// RendererName is the process name Chrome gives its renderer processes.
const RendererName = "Renderer"

// ProcessInfo describes one process, as named by the trace's metadata events.
type ProcessInfo struct {
	ID    int64
	Name  string
	Label string
	// Threads are thread names in the order their metadata events appear.
	Threads []string
}

// IsRenderer reports whether p is a Chrome renderer process.
func (p ProcessInfo) IsRenderer() bool {
	return p.Name == RendererName
}

func (p ProcessInfo) rank() int {
	if p.IsRenderer() {
		return 1
	}
	return 0
}

// String renders p on one line, with the label cut to 40 characters.
func (p ProcessInfo) String() string {
	return fmt.Sprintf("%6d - %-10s (%2d thread): %.40s", p.ID, p.Name, len(p.Threads), p.Label)
}

// Processes derives one ProcessInfo per process id that has a "process_name"
// metadata event. The name comes from the first such event, the label from
// the first "process_labels" event with that id and the threads from every
// "thread_name" event with that id. Renderer processes sort after all others;
// the order is otherwise that of the first "process_name" events.
func (t *Trace) Processes() []ProcessInfo {
	type meta struct {
		label    string
		hasLabel bool
		threads  []string
	}
	var order []int64
	names := make(map[int64]string)
	byPid := make(map[int64]*meta)
	metaFor := func(pid int64) *meta {
		m, ok := byPid[pid]
		if !ok {
			m = &meta{}
			byPid[pid] = m
		}
		return m
	}

	for _, e := range t.MetadataEvents() {
		switch e.Name {
		case processNameEvent:
			if _, ok := names[e.ProcessID]; !ok {
				names[e.ProcessID] = e.ArgString("name")
				order = append(order, e.ProcessID)
			}
		case processLabelsEvent:
			if m := metaFor(e.ProcessID); !m.hasLabel {
				m.label, m.hasLabel = e.ArgString("labels"), true
			}
		case threadNameEvent:
			m := metaFor(e.ProcessID)
			m.threads = append(m.threads, e.ArgString("name"))
		}
	}

	processes := make([]ProcessInfo, 0, len(order))
	for _, pid := range order {
		p := ProcessInfo{ID: pid, Name: names[pid]}
		if m, ok := byPid[pid]; ok {
			p.Label, p.Threads = m.label, m.threads
		}
		processes = append(processes, p)
	}
	sort.SliceStable(processes, func(i, j int) bool {
		return processes[i].rank() < processes[j].rank()
	})
	return processes
}
