// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package emon

import (
	"iter"

	"github.com/irifrance/emon/z"
)

// Factors returns the monomials of which v is a proper factor: those
// w != v such that Divides(v, w).
//
// Candidates are drawn from the use list of the first representative
// in v's canonical form, and each is visited at most once per
// traversal.  Traversals may nest.
func (t *Table) Factors(v z.Var) iter.Seq[z.Var] {
	return func(yield func(z.Var) bool) {
		i := t.index(v)
		f := t.form(i)
		stamp := t.nextVisited()
		for w := range t.Uses(f.Vars[0]) {
			j := t.var2mon[w]
			if j == i {
				continue
			}
			m := &t.mons[j]
			if m.visited == stamp {
				continue
			}
			m.visited = stamp
			if !subset(f.Vars, t.form(j).Vars) {
				continue
			}
			if !yield(w) {
				return
			}
		}
	}
}

func (t *Table) nextVisited() uint32 {
	t.visited++
	if t.visited == 0 {
		for i := range t.mons {
			t.mons[i].visited = 0
		}
		t.visited = 1
	}
	return t.visited
}
