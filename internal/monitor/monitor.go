// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package monitor exports the statistics of a congruence table and its
// equivalence engine as prometheus metrics.
package monitor

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/irifrance/emon"
	"github.com/irifrance/emon/eqs"
)

const namespace = "emon"

// Snapshot is a consistent reading of table and engine statistics.
type Snapshot struct {
	Table emon.Stats
	Eqs   eqs.Stats
}

// Monitor is a prometheus.Collector reporting the last Snapshot given
// to Update.  Tables are not safe for concurrent use, so the owner of
// the table calls Update and the registry only ever sees copies.
type Monitor struct {
	mu   sync.Mutex
	snap Snapshot

	monomials *prometheus.Desc
	cells     *prometheus.Desc
	entries   *prometheus.Desc
	level     *prometheus.Desc
	vars      *prometheus.Desc
	ops       *prometheus.Desc
	merges    *prometheus.Desc
}

// New creates a Monitor with an empty snapshot.  constLabels are
// attached to every metric, such as the name of the scenario.
func New(constLabels prometheus.Labels) *Monitor {
	desc := func(name, help string, labels ...string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, labels, constLabels)
	}
	return &Monitor{
		monomials: desc("monomials", "Number of declared monomials."),
		cells:     desc("use_list_cells", "Number of use list cells."),
		entries:   desc("congruence_entries", "Number of distinct canonical forms."),
		level:     desc("scope_level", "Number of open scopes."),
		vars:      desc("eqs_vars", "Variables known to the equivalence engine."),
		ops:       desc("table_operations_total", "Table operations by kind.", "op"),
		merges:    desc("eqs_merges_total", "Equivalence engine merges by outcome.", "outcome")}
}

// Update records the current statistics of t and e.
func (m *Monitor) Update(t *emon.Table, e *eqs.E) {
	var s Snapshot
	t.ReadStats(&s.Table)
	e.ReadStats(&s.Eqs)
	m.Set(s)
}

// Set replaces the reported snapshot.
func (m *Monitor) Set(s Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = s
}

// Snapshot returns the reported snapshot.
func (m *Monitor) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap
}

// Describe implements prometheus.Collector.
func (m *Monitor) Describe(ch chan<- *prometheus.Desc) {
	ch <- m.monomials
	ch <- m.cells
	ch <- m.entries
	ch <- m.level
	ch <- m.vars
	ch <- m.ops
	ch <- m.merges
}

// Collect implements prometheus.Collector.
func (m *Monitor) Collect(ch chan<- prometheus.Metric) {
	s := m.Snapshot()
	gauge := func(d *prometheus.Desc, v int) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, float64(v))
	}
	gauge(m.monomials, s.Table.Monomials)
	gauge(m.cells, s.Table.Cells)
	gauge(m.entries, s.Table.Entries)
	gauge(m.level, s.Table.Level)
	gauge(m.vars, s.Eqs.Vars)

	for _, op := range []struct {
		name string
		n    int64
	}{
		{"declare", s.Table.Declares},
		{"retract", s.Table.Retracts},
		{"merge", s.Table.Merges},
		{"unmerge", s.Table.Unmerges},
		{"rehash", s.Table.Rehashes},
		{"canonize", s.Table.Canonizes},
	} {
		ch <- prometheus.MustNewConstMetric(m.ops, prometheus.CounterValue, float64(op.n), op.name)
	}
	ch <- prometheus.MustNewConstMetric(m.merges, prometheus.CounterValue, float64(s.Eqs.Merges), "merged")
	ch <- prometheus.MustNewConstMetric(m.merges, prometheus.CounterValue, float64(s.Eqs.Redundant), "redundant")
	ch <- prometheus.MustNewConstMetric(m.merges, prometheus.CounterValue, float64(s.Eqs.Unmerges), "undone")
}
