// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package monitor

import (
	"strings"
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/irifrance/emon"
	"github.com/irifrance/emon/eqs"
	"github.com/irifrance/emon/z"
)

func TestCollect(t *testing.T) {
	e := eqs.New()
	tb := emon.New(e)
	tb.Declare(3, 1, 2)
	tb.Declare(4, 2, 1)
	tb.Push()
	e.Merge(z.Var(1).Pos(), z.Var(5).Neg(), 1)
	e.Merge(z.Var(1).Pos(), z.Var(5).Neg(), 2)

	m := New(prometheus.Labels{"scenario": "t"})
	m.Update(tb, e)

	reg := prometheus.NewPedanticRegistry()
	qt.Assert(t, qt.IsNil(reg.Register(m)))
	n, err := testutil.GatherAndCount(reg)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(n, 5+6+3))

	want := `
# HELP emon_monomials Number of declared monomials.
# TYPE emon_monomials gauge
emon_monomials{scenario="t"} 2
# HELP emon_scope_level Number of open scopes.
# TYPE emon_scope_level gauge
emon_scope_level{scenario="t"} 1
# HELP emon_eqs_merges_total Equivalence engine merges by outcome.
# TYPE emon_eqs_merges_total counter
emon_eqs_merges_total{outcome="merged",scenario="t"} 1
emon_eqs_merges_total{outcome="redundant",scenario="t"} 1
emon_eqs_merges_total{outcome="undone",scenario="t"} 0
`
	err = testutil.GatherAndCompare(reg, strings.NewReader(want),
		"emon_monomials", "emon_scope_level", "emon_eqs_merges_total")
	qt.Assert(t, qt.IsNil(err))

	tb.Pop(1)
	m.Update(tb, e)
	qt.Assert(t, qt.Equals(m.Snapshot().Table.Level, 0))
	qt.Assert(t, qt.Equals(m.Snapshot().Eqs.Unmerges, int64(1)))
	qt.Assert(t, qt.Equals(testutil.ToFloat64(gaugeOf(m, m.entries)), 1.0))
}

// gaugeOf isolates the metric of d so testutil.ToFloat64 sees a single
// one.
func gaugeOf(m *Monitor, d *prometheus.Desc) prometheus.Collector {
	return single{m, d}
}

type single struct {
	m *Monitor
	d *prometheus.Desc
}

func (s single) Describe(ch chan<- *prometheus.Desc) { ch <- s.d }

func (s single) Collect(ch chan<- prometheus.Metric) {
	all := make(chan prometheus.Metric, 32)
	s.m.Collect(all)
	close(all)
	for x := range all {
		if x.Desc() == s.d {
			ch <- x
		}
	}
}
