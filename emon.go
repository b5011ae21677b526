// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package emon

import (
	"context"
	"fmt"
	"iter"
	"log/slog"

	"github.com/irifrance/emon/inter"
	"github.com/irifrance/emon/z"
)

const noMon = ^uint32(0)

// Monomial is a declared product: Var := Factors[0] * Factors[1] * ...
//
// Factors is shared with the table and must not be modified.
type Monomial struct {
	Var     z.Var
	Factors []z.Var
}

type mon struct {
	v       z.Var
	factors []z.Var

	// use list cells, contiguous in Table.cells
	cell   uint32
	ncells uint32

	// canonical form cache
	form  []z.Var
	neg   bool
	valid bool

	// congruence table membership
	key     string
	inCg    bool
	next    uint32
	prev    uint32
	visited uint32
}

// jent is a journal entry: either a declaration (o == z.VarNull)
// or the splice of o's use list into r's, r's tail being tail before.
type jent struct {
	r, o z.Var
	tail uint32
}

type scope struct {
	mons    int
	cells   int
	journal int
}

// Table is a congruence table of monomials.
type Table struct {
	eqs     inter.Eqs
	mons    []mon
	var2mon []uint32

	cells []cell
	rings []ring

	cg     map[string]uint32
	keyBuf []byte

	journal []jent
	lims    []scope
	visited uint32

	log *slog.Logger

	stDeclares  int64
	stRetracts  int64
	stMerges    int64
	stUnmerges  int64
	stRehashes  int64
	stCanonizes int64
}

// New creates a Table over the equivalence engine e with a default
// capacity.
func New(e inter.Eqs) *Table {
	return NewCap(e, 128)
}

// NewCap creates a Table over e with capacity hint capHint for the
// number of monomials.
//
// The Table installs itself as e's merge handler and drives e's scopes
// from then on.  e must not have open scopes.
func NewCap(e inter.Eqs, capHint int) *Table {
	if e.Level() != 0 {
		panic(fmt.Sprintf("emon: binding engine at level %d", e.Level()))
	}
	t := &Table{
		eqs:     e,
		mons:    make([]mon, 0, capHint),
		var2mon: make([]uint32, 0, capHint*2),
		cells:   make([]cell, 1, capHint*3),
		rings:   make([]ring, 0, capHint*2),
		cg:      make(map[string]uint32, capHint),
		log:     slog.Default()}
	e.SetMergeHandler(t)
	return t
}

// SetLogger replaces the logger, which is slog.Default() initially.
func (t *Table) SetLogger(l *slog.Logger) {
	t.log = l
}

// Eqs returns the equivalence engine of t.
func (t *Table) Eqs() inter.Eqs {
	return t.eqs
}

// Declare declares v := factors[0] * factors[1] * ...
//
// Declare panics if v is already declared or if there are no factors.
// A monomial declared under a scope is forgotten when the scope is
// popped.
func (t *Table) Declare(v z.Var, factors ...z.Var) {
	if v == z.VarNull {
		panic("emon: declare null variable")
	}
	if t.IsMonomial(v) {
		panic(fmt.Sprintf("emon: %s already declared", v))
	}
	if len(factors) == 0 {
		panic(fmt.Sprintf("emon: %s declared without factors", v))
	}
	i := uint32(len(t.mons))
	t.mons = append(t.mons, mon{
		v:       v,
		factors: append([]z.Var(nil), factors...),
		cell:    uint32(len(t.cells)),
		next:    i,
		prev:    i})
	t.setVar2mon(v, i)
	m := &t.mons[i]
	t.canonize(m)
	last := z.VarNull
	for _, r := range m.form {
		if r == last {
			continue
		}
		t.insertCell(r, i)
		last = r
	}
	m.ncells = uint32(len(t.cells)) - m.cell
	t.insertCg(i)
	if len(t.lims) > 0 {
		t.journal = append(t.journal, jent{})
	}
	t.stDeclares++
	if t.log.Enabled(context.Background(), slog.LevelDebug) {
		t.log.Debug("declare", "var", v, "factors", m.factors, "canon", t.form(i))
	}
}

// IsMonomial returns whether v is the variable of a declared monomial.
func (t *Table) IsMonomial(v z.Var) bool {
	return int(v) < len(t.var2mon) && t.var2mon[v] != noMon
}

// Monomial returns the monomial declared for v.  Monomial panics if
// there is none.
func (t *Table) Monomial(v z.Var) Monomial {
	m := &t.mons[t.index(v)]
	return Monomial{Var: m.v, Factors: m.factors}
}

// Len returns the number of declared monomials.
func (t *Table) Len() int {
	return len(t.mons)
}

// Monomials returns the variables of all declared monomials in
// declaration order.
func (t *Table) Monomials() iter.Seq[z.Var] {
	return func(yield func(z.Var) bool) {
		for i := range t.mons {
			if !yield(t.mons[i].v) {
				return
			}
		}
	}
}

// Push opens a scope in t and in its equivalence engine.
func (t *Table) Push() {
	t.checkLevel()
	t.lims = append(t.lims, scope{
		mons:    len(t.mons),
		cells:   len(t.cells),
		journal: len(t.journal)})
	t.eqs.Push()
}

// Level returns the number of open scopes.
func (t *Table) Level() int {
	return len(t.lims)
}

// Pop closes the last n scopes, undoing the merges of the equivalence
// engine and the declarations made since they were opened.
//
// Pop panics if n is greater than Level().
func (t *Table) Pop(n int) {
	if n < 0 || n > len(t.lims) {
		panic(fmt.Sprintf("emon: pop %d scopes at level %d", n, len(t.lims)))
	}
	t.checkLevel()
	if n == 0 {
		return
	}
	lvl := len(t.lims) - n
	lim := t.lims[lvl]
	t.eqs.Pop(n)
	for len(t.journal) > lim.journal {
		j := t.journal[len(t.journal)-1]
		if j.o != z.VarNull {
			panic(fmt.Sprintf("emon: merge of %s into %s survived pop", j.o, j.r))
		}
		t.retract()
	}
	if len(t.mons) != lim.mons || len(t.cells) != lim.cells {
		panic(fmt.Sprintf("emon: pop to %d monomials, %d cells left %d, %d",
			lim.mons, lim.cells, len(t.mons), len(t.cells)))
	}
	t.lims = t.lims[:lvl]
}

func (t *Table) checkLevel() {
	if t.eqs.Level() != len(t.lims) {
		panic(fmt.Sprintf("emon: level %d, engine level %d", len(t.lims), t.eqs.Level()))
	}
}

// retract forgets the last declared monomial, whose journal entry is on top.
func (t *Table) retract() {
	t.journal = t.journal[:len(t.journal)-1]
	i := uint32(len(t.mons) - 1)
	m := &t.mons[i]
	t.removeCg(i)
	for c := m.cell + m.ncells; c > m.cell; c-- {
		t.removeCell(c - 1)
	}
	t.cells = t.cells[:m.cell]
	t.var2mon[m.v] = noMon
	t.mons = t.mons[:i]
	t.stRetracts++
}

func (t *Table) index(v z.Var) uint32 {
	if !t.IsMonomial(v) {
		panic(fmt.Sprintf("emon: %s is not a monomial", v))
	}
	return t.var2mon[v]
}

func (t *Table) setVar2mon(v z.Var, i uint32) {
	for int(v) >= len(t.var2mon) {
		t.var2mon = append(t.var2mon, noMon)
	}
	t.var2mon[v] = i
}
