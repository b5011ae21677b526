// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package eqs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/irifrance/emon/inter"
	"github.com/irifrance/emon/z"
)

// link records the equality a = b with justification d which made
// some old root a child of some new root.  a is in the old root's class.
type link struct {
	a, b z.SVar
	d    z.Dep
}

// E is a signed union-find with scopes.
type E struct {
	parent []z.SVar // v = parent[v] (signed); roots are their own positive parent
	size   []uint32
	why    []link
	marks  []uint32
	stamp  uint32

	trail  []z.Var // old roots, in merge order
	levels []int   // len(trail) at each Push

	handler inter.MergeHandler
	log     *slog.Logger

	stMerges   int64
	stUnmerges int64
	stRedund   int64
}

// New creates a new E with a default capacity.
func New() *E {
	return NewCap(128)
}

// NewCap creates a new E with capacity hint capHint for the number of
// variables.
func NewCap(capHint int) *E {
	e := &E{
		parent: make([]z.SVar, 0, capHint),
		size:   make([]uint32, 0, capHint),
		why:    make([]link, 0, capHint),
		marks:  make([]uint32, 0, capHint),
		trail:  make([]z.Var, 0, capHint),
		levels: make([]int, 0, 32),
		log:    slog.Default()}
	return e
}

// SetLogger replaces the logger, which is slog.Default() initially.
func (e *E) SetLogger(l *slog.Logger) {
	e.log = l
}

// SetMergeHandler implements inter.Eqs.
func (e *E) SetMergeHandler(h inter.MergeHandler) {
	e.handler = h
}

// MaxVar returns the maximum variable e has seen.
func (e *E) MaxVar() z.Var {
	if len(e.parent) == 0 {
		return z.VarNull
	}
	return z.Var(len(e.parent) - 1)
}

// Find implements inter.Finder.
func (e *E) Find(v z.Var) z.SVar {
	m := v.Pos()
	for int(v) < len(e.parent) {
		p := e.parent[v]
		if p.Var() == v {
			break
		}
		m = p.Xor(m.IsNeg())
		v = p.Var()
	}
	return m
}

// Root returns the representative variable of v's class.
func (e *E) Root(v z.Var) z.Var {
	return e.Find(v).Var()
}

// IsRoot returns whether v represents its class.
func (e *E) IsRoot(v z.Var) bool {
	return int(v) >= len(e.parent) || e.parent[v].Var() == v
}

// Same returns whether a and b are in the same class.
func (e *E) Same(a, b z.Var) bool {
	return e.Find(a).Var() == e.Find(b).Var()
}

// ClassSize returns the number of variables in v's class.
func (e *E) ClassSize(v z.Var) int {
	r := e.Find(v).Var()
	if int(r) >= len(e.size) {
		return 1
	}
	return int(e.size[r])
}

// Merge asserts a = b with justification d.
//
// Merge returns true if two classes were merged.  If a and b are
// already in the same class, nothing happens and Merge returns false,
// whether or not the signs agree; a sign conflict (a = -a) is for the
// caller to interpret.
//
// When both classes have the same size, the root of b's class becomes
// the root of the merged class.
func (e *E) Merge(a, b z.SVar, d z.Dep) bool {
	e.ensure(a.Var())
	e.ensure(b.Var())
	ra := e.Find(a.Var()).Xor(a.IsNeg())
	rb := e.Find(b.Var()).Xor(b.IsNeg())
	if ra.Var() == rb.Var() {
		e.stRedund++
		return false
	}
	if e.size[ra.Var()] > e.size[rb.Var()] {
		a, b = b, a
		ra, rb = rb, ra
	}
	// sign(ra) * ra.Var() = sign(rb) * rb.Var()
	neg := ra.IsNeg() != rb.IsNeg()
	r2 := rb.Var().Pos()
	r1 := ra.Var().Signed(neg)
	if e.handler != nil {
		e.handler.OnMerge(r2, r1, b, a)
	}
	ov := ra.Var()
	e.parent[ov] = r2.Xor(neg)
	e.size[r2.Var()] += e.size[ov]
	e.why[ov] = link{a: a, b: b, d: d}
	e.trail = append(e.trail, ov)
	e.stMerges++
	if e.log.Enabled(context.Background(), slog.LevelDebug) {
		e.log.Debug("merge", "root", r2, "old", r1, "a", a, "b", b, "dep", d, "level", len(e.levels))
	}
	if e.handler != nil {
		e.handler.OnMergeComplete(r2, r1, b, a)
	}
	return true
}

// Push implements inter.Scoped.
func (e *E) Push() {
	e.levels = append(e.levels, len(e.trail))
}

// Level implements inter.Scoped.
func (e *E) Level() int {
	return len(e.levels)
}

// Pop implements inter.Scoped.  Merges are undone last first, each
// one reported to the merge handler once Find no longer reflects it.
func (e *E) Pop(n int) {
	if n < 0 || n > len(e.levels) {
		panic(fmt.Sprintf("eqs: pop %d scopes at level %d", n, len(e.levels)))
	}
	if n == 0 {
		return
	}
	lvl := len(e.levels) - n
	tlen := e.levels[lvl]
	for i := len(e.trail) - 1; i >= tlen; i-- {
		ov := e.trail[i]
		p := e.parent[ov]
		r2 := p.Var().Pos()
		r1 := ov.Signed(p.IsNeg())
		e.parent[ov] = ov.Pos()
		e.size[r2.Var()] -= e.size[ov]
		e.why[ov] = link{}
		e.stUnmerges++
		if e.log.Enabled(context.Background(), slog.LevelDebug) {
			e.log.Debug("unmerge", "root", r2, "old", r1, "level", lvl)
		}
		if e.handler != nil {
			e.handler.OnUnmerge(r2, r1)
		}
	}
	e.trail = e.trail[:tlen]
	e.levels = e.levels[:lvl]
}

// Stats holds counters about an E.
type Stats struct {
	Vars      int
	Merges    int64
	Unmerges  int64
	Redundant int64
	Level     int
}

// ReadStats places the statistics of e in st and returns st.
func (e *E) ReadStats(st *Stats) *Stats {
	st.Vars = len(e.parent)
	st.Merges = e.stMerges
	st.Unmerges = e.stUnmerges
	st.Redundant = e.stRedund
	st.Level = len(e.levels)
	return st
}

func (e *E) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "eqs@%d:", len(e.levels))
	for i := 1; i < len(e.parent); i++ {
		v := z.Var(i)
		if e.parent[v].Var() == v {
			continue
		}
		fmt.Fprintf(&sb, " %s->%s", v, e.parent[v])
	}
	return sb.String()
}

func (e *E) ensure(v z.Var) {
	for int(v) >= len(e.parent) {
		w := z.Var(len(e.parent))
		e.parent = append(e.parent, w.Pos())
		e.size = append(e.size, 1)
		e.why = append(e.why, link{})
		e.marks = append(e.marks, 0)
	}
}
