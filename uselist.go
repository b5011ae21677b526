// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package emon

import (
	"fmt"
	"iter"

	"github.com/irifrance/emon/z"
)

// cell is an occurrence of monomial mon in the use list of class root
// v, v being the root at the time the cell was made.  Cells form
// cyclic lists through next; cell 0 is the null cell.
type cell struct {
	next uint32
	mon  uint32
	v    z.Var
}

// ring locates a cyclic list of cells.  For a root the list is the
// use list of its class; for a variable which was merged into some
// other class, head..tail is the segment the variable brought along.
type ring struct {
	head uint32
	tail uint32
}

func (t *Table) ensureRing(v z.Var) {
	for int(v) >= len(t.rings) {
		t.rings = append(t.rings, ring{})
	}
}

// insertCell makes a new cell for monomial i at the head of r's list.
func (t *Table) insertCell(r z.Var, i uint32) {
	t.ensureRing(r)
	c := uint32(len(t.cells))
	rg := &t.rings[r]
	if rg.head == 0 {
		t.cells = append(t.cells, cell{next: c, mon: i, v: r})
		rg.head, rg.tail = c, c
		return
	}
	t.cells = append(t.cells, cell{next: rg.head, mon: i, v: r})
	t.cells[rg.tail].next = c
	rg.head = c
}

// removeCell unlinks c, which must be the head of its list.  The cell
// itself stays in the arena until truncation.
func (t *Table) removeCell(c uint32) {
	cl := &t.cells[c]
	rg := &t.rings[cl.v]
	if rg.head != c {
		panic(fmt.Sprintf("emon: removing cell %d of %s, head is %d", c, cl.v, rg.head))
	}
	if rg.tail == c {
		rg.head, rg.tail = 0, 0
		return
	}
	rg.head = cl.next
	t.cells[rg.tail].next = rg.head
}

// mergeRings splices o's list after r's tail and returns the journal
// entry which undoes it.
//
//	r.head .. r.tail -> o.head .. o.tail -> r.head
func (t *Table) mergeRings(r, o z.Var) jent {
	t.ensureRing(r)
	t.ensureRing(o)
	rr, or := &t.rings[r], &t.rings[o]
	j := jent{r: r, o: o, tail: rr.tail}
	switch {
	case or.head == 0:
	case rr.head == 0:
		rr.head, rr.tail = or.head, or.tail
	default:
		t.cells[rr.tail].next = or.head
		t.cells[or.tail].next = rr.head
		rr.tail = or.tail
	}
	return j
}

// splitRings undoes mergeRings.  All splices and insertions done after
// j must have been undone already.
func (t *Table) splitRings(j jent) {
	rr, or := &t.rings[j.r], &t.rings[j.o]
	switch {
	case or.head == 0:
	case j.tail == 0:
		rr.head, rr.tail = 0, 0
	default:
		t.cells[j.tail].next = rr.head
		t.cells[or.tail].next = or.head
		rr.tail = j.tail
	}
}

// segment calls f for each cell from v's head to v's tail.
func (t *Table) segment(v z.Var, f func(c uint32)) {
	if int(v) >= len(t.rings) {
		return
	}
	rg := t.rings[v]
	if rg.head == 0 {
		return
	}
	for c := rg.head; ; c = t.cells[c].next {
		f(c)
		if c == rg.tail {
			return
		}
	}
}

// dup returns whether an earlier cell of c's monomial lies in the list
// of root r.  Such a cell stands for the same occurrence.
func (t *Table) dup(c uint32, r z.Var) bool {
	m := &t.mons[t.cells[c].mon]
	for d := m.cell; d < c; d++ {
		if t.eqs.Find(t.cells[d].v).Var() == r {
			return true
		}
	}
	return false
}

// Uses returns the monomials whose canonical form mentions the
// representative of v, each once.
func (t *Table) Uses(v z.Var) iter.Seq[z.Var] {
	return func(yield func(z.Var) bool) {
		r := t.eqs.Find(v).Var()
		if int(r) >= len(t.rings) {
			return
		}
		rg := t.rings[r]
		if rg.head == 0 {
			return
		}
		for c := rg.head; ; c = t.cells[c].next {
			if !t.dup(c, r) && !yield(t.mons[t.cells[c].mon].v) {
				return
			}
			if c == rg.tail {
				return
			}
		}
	}
}
