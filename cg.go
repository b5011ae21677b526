// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package emon

import (
	"encoding/binary"
	"iter"

	"github.com/irifrance/emon/z"
)

// The congruence table maps the sorted representatives of a canonical
// form to the monomial representing all monomials with that form.
// Monomials sharing a key are linked in a ring through next/prev,
// ordered by declaration index; the representative is the first one.

func (t *Table) key(vs []z.Var) string {
	b := t.keyBuf[:0]
	for _, v := range vs {
		b = binary.LittleEndian.AppendUint32(b, uint32(v))
	}
	t.keyBuf = b
	return string(b)
}

func (t *Table) insertCg(i uint32) {
	f := t.form(i)
	k := t.key(f.Vars)
	m := &t.mons[i]
	m.key = k
	m.inCg = true
	rep, ok := t.cg[k]
	if !ok {
		t.cg[k] = i
		m.next, m.prev = i, i
		return
	}
	if i < rep {
		t.link(i, t.mons[rep].prev, rep)
		t.cg[k] = i
		return
	}
	p := rep
	for {
		n := t.mons[p].next
		if n == rep || n > i {
			break
		}
		p = n
	}
	t.link(i, p, t.mons[p].next)
}

// link places i between p and n.
func (t *Table) link(i, p, n uint32) {
	m := &t.mons[i]
	m.prev, m.next = p, n
	t.mons[p].next = i
	t.mons[n].prev = i
}

func (t *Table) removeCg(i uint32) {
	m := &t.mons[i]
	if !m.inCg {
		return
	}
	n, p := m.next, m.prev
	if n == i {
		delete(t.cg, m.key)
	} else {
		t.mons[p].next = n
		t.mons[n].prev = p
		if t.cg[m.key] == i {
			t.cg[m.key] = n
		}
	}
	m.next, m.prev = i, i
	m.key = ""
	m.inCg = false
}

// rehash moves i to the entry of its current canonical form.
func (t *Table) rehash(i uint32) {
	t.removeCg(i)
	t.mons[i].valid = false
	t.insertCg(i)
	t.stRehashes++
}

// Rep returns the canonical form of the representative of the
// monomials whose canonical form equals v's up to sign.
func (t *Table) Rep(v z.Var) Form {
	m := &t.mons[t.index(v)]
	return t.form(t.cg[m.key])
}

// RepSign returns the sign s such that the monomial of v equals s times
// the monomial of the representative, given that their factors are
// pairwise equal: 1 if their canonical signs agree and -1 otherwise.
func (t *Table) RepSign(v z.Var) int {
	i := t.index(v)
	if t.form(i).Neg != t.form(t.cg[t.mons[i].key]).Neg {
		return -1
	}
	return 1
}

// Find returns the canonical form of the representative monomial whose
// sorted representatives are exactly vs, if there is one.  vs is not
// sorted by Find.
func (t *Table) Find(vs []z.Var) (Form, bool) {
	i, ok := t.cg[t.key(vs)]
	if !ok {
		return Form{}, false
	}
	return t.form(i), true
}

// SignEquiv returns the monomials whose canonical form equals v's up to
// sign, including v, starting from v.
func (t *Table) SignEquiv(v z.Var) iter.Seq[z.Var] {
	return func(yield func(z.Var) bool) {
		i := t.index(v)
		j := i
		for {
			if !yield(t.mons[j].v) {
				return
			}
			j = t.mons[j].next
			if j == i {
				return
			}
		}
	}
}
