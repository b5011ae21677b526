// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package emon

import (
	"bytes"
	"slices"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/irifrance/emon/eqs"
	"github.com/irifrance/emon/inter"
	"github.com/irifrance/emon/z"
)

const (
	x1 z.Var = iota + 1
	x2
	x3
	x4
	x5
	x6
)

func newTable() (*Table, *eqs.E) {
	e := eqs.New()
	return New(e), e
}

func collect(seq func(func(z.Var) bool)) []z.Var {
	var res []z.Var
	for v := range seq {
		res = append(res, v)
	}
	slices.Sort(res)
	return res
}

func TestCanonMergePop(t *testing.T) {
	tb, e := newTable()
	tb.Declare(x3, x1, x2)
	qt.Assert(t, qt.DeepEquals(tb.Canon(x3), Form{Var: x3, Vars: []z.Var{x1, x2}}))

	tb.Push()
	e.Merge(x1.Pos(), x4.Pos(), 1)
	qt.Assert(t, qt.DeepEquals(tb.Canon(x3), Form{Var: x3, Vars: []z.Var{x2, x4}}))
	qt.Assert(t, qt.DeepEquals(collect(tb.Uses(x1)), []z.Var{x3}))
	qt.Assert(t, qt.DeepEquals(collect(tb.Uses(x4)), []z.Var{x3}))

	tb.Pop(1)
	qt.Assert(t, qt.DeepEquals(tb.Canon(x3), Form{Var: x3, Vars: []z.Var{x1, x2}}))
	qt.Assert(t, qt.HasLen(collect(tb.Uses(x4)), 0))
	qt.Assert(t, qt.DeepEquals(collect(tb.Uses(x1)), []z.Var{x3}))
}

func TestDivides(t *testing.T) {
	tb, _ := newTable()
	tb.Declare(x3, x1, x2)
	tb.Declare(x5, x1, x1, x2)
	qt.Assert(t, qt.IsTrue(tb.Divides(x3, x5)))
	qt.Assert(t, qt.IsFalse(tb.Divides(x5, x3)))
	qt.Assert(t, qt.IsFalse(tb.Divides(x3, x3)))
	qt.Assert(t, qt.DeepEquals(collect(tb.Factors(x3)), []z.Var{x5}))
	qt.Assert(t, qt.HasLen(collect(tb.Factors(x5)), 0))
}

func TestNestedFactors(t *testing.T) {
	tb, _ := newTable()
	tb.Declare(x3, x1, x2)
	tb.Declare(x5, x1, x1, x2)
	tb.Declare(x6, x1, x1, x2, x2)
	var outer []z.Var
	inner := map[z.Var][]z.Var{}
	for w := range tb.Factors(x3) {
		outer = append(outer, w)
		inner[w] = collect(tb.Factors(w))
	}
	slices.Sort(outer)
	qt.Assert(t, qt.DeepEquals(outer, []z.Var{x5, x6}))
	qt.Assert(t, qt.DeepEquals(inner[x5], []z.Var{x6}))
	qt.Assert(t, qt.HasLen(inner[x6], 0))
	// the inner traversal may not reuse the outer one's marks either
	var self []z.Var
	for range tb.Factors(x5) {
		for w := range tb.Factors(x3) {
			self = append(self, w)
		}
	}
	slices.Sort(self)
	qt.Assert(t, qt.DeepEquals(self, []z.Var{x5, x6}))
}

func TestSignEquiv(t *testing.T) {
	tb, _ := newTable()
	tb.Declare(x3, x1, x2)
	tb.Declare(x6, x2, x1)
	qt.Assert(t, qt.IsTrue(tb.Canon(x6).Equal(tb.Canon(x3))))
	qt.Assert(t, qt.DeepEquals(collect(tb.SignEquiv(x3)), []z.Var{x3, x6}))
	qt.Assert(t, qt.DeepEquals(collect(tb.SignEquiv(x6)), []z.Var{x3, x6}))
	for i := 0; i < 3; i++ {
		f, ok := tb.Find([]z.Var{x1, x2})
		qt.Assert(t, qt.IsTrue(ok))
		qt.Assert(t, qt.Equals(f.Var, x3))
		qt.Assert(t, qt.Equals(tb.Rep(x6).Var, x3))
	}
	_, ok := tb.Find([]z.Var{x2, x1})
	qt.Assert(t, qt.IsFalse(ok))
	_, ok = tb.Find([]z.Var{x1})
	qt.Assert(t, qt.IsFalse(ok))
}

func TestNegatedMerge(t *testing.T) {
	tb, e := newTable()
	tb.Declare(x3, x1, x2)
	tb.Declare(x6, x2, x4)
	qt.Assert(t, qt.IsFalse(tb.Canon(x3).Neg))
	tb.Push()
	e.Merge(x1.Pos(), x4.Neg(), 7)
	qt.Assert(t, qt.DeepEquals(tb.Canon(x3), Form{Var: x3, Vars: []z.Var{x2, x4}, Neg: true}))
	qt.Assert(t, qt.Equals(tb.Canon(x3).Sign(), -1))

	// x3 = -x2*x4 and x6 = x2*x4 now share an entry represented by x3.
	qt.Assert(t, qt.DeepEquals(collect(tb.SignEquiv(x6)), []z.Var{x3, x6}))
	qt.Assert(t, qt.Equals(tb.Rep(x6).Var, x3))
	qt.Assert(t, qt.Equals(tb.RepSign(x6), -1))
	qt.Assert(t, qt.Equals(tb.RepSign(x3), 1))
	qt.Assert(t, qt.DeepEquals(tb.Explain(x3, nil), []z.Dep{7}))
	qt.Assert(t, qt.HasLen(tb.Explain(x6, nil), 0))

	tb.Pop(1)
	qt.Assert(t, qt.DeepEquals(collect(tb.SignEquiv(x6)), []z.Var{x6}))
	qt.Assert(t, qt.Equals(tb.Rep(x6).Var, x6))
	qt.Assert(t, qt.HasLen(tb.Explain(x3, nil), 0))
}

func TestExplainDedup(t *testing.T) {
	tb, e := newTable()
	tb.Declare(x5, x1, x2, x1)
	e.Merge(x1.Pos(), x3.Pos(), 4)
	e.Merge(x2.Pos(), x3.Pos(), 9)
	deps := tb.Explain(x5, []z.Dep{100})
	qt.Assert(t, qt.DeepEquals(deps, []z.Dep{100, 4, 9}))
}

func TestRepPromotion(t *testing.T) {
	tb, e := newTable()
	tb.Declare(x4, x1, x2)
	tb.Declare(x5, x1, x2)
	tb.Declare(x6, x1, x3)
	qt.Assert(t, qt.Equals(tb.Rep(x5).Var, x4))
	tb.Push()
	// x4 leaves nothing, x6 joins {x4,x5}: the earliest declared stays
	e.Merge(x3.Pos(), x2.Pos(), 1)
	qt.Assert(t, qt.DeepEquals(collect(tb.SignEquiv(x6)), []z.Var{x4, x5, x6}))
	qt.Assert(t, qt.Equals(tb.Rep(x6).Var, x4))
	tb.Pop(1)
	tb.Push()
	// x2 and x3 merge the other way
	e.Merge(x2.Pos(), x3.Pos(), 1)
	qt.Assert(t, qt.Equals(tb.Rep(x6).Var, x4))
	f, ok := tb.Find([]z.Var{x1, x3})
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(f.Var, x4))
	tb.Pop(1)
	qt.Assert(t, qt.Equals(tb.Rep(x6).Var, x6))
}

func TestSquareInClass(t *testing.T) {
	tb, e := newTable()
	tb.Declare(x5, x1, x2)
	tb.Declare(x6, x1, x1)
	tb.Push()
	e.Merge(x1.Pos(), x2.Neg(), 1)
	// x5 has two cells in the merged list, but is used once.
	qt.Assert(t, qt.DeepEquals(collect(tb.Uses(x1)), []z.Var{x5, x6}))
	qt.Assert(t, qt.IsTrue(tb.Canon(x5).Equal(tb.Canon(x6))))
	qt.Assert(t, qt.IsTrue(tb.Canon(x5).Neg))
	qt.Assert(t, qt.IsFalse(tb.Canon(x6).Neg))
	tb.Pop(1)
	qt.Assert(t, qt.IsFalse(tb.Canon(x5).Equal(tb.Canon(x6))))
}

func TestDeclareUnderScope(t *testing.T) {
	tb, e := newTable()
	tb.Declare(x3, x1, x2)
	tb.Push()
	e.Merge(x1.Pos(), x2.Pos(), 1)
	tb.Declare(x5, x2, x2)
	qt.Assert(t, qt.IsTrue(tb.Canon(x3).Equal(tb.Canon(x5))))
	e.Merge(x4.Pos(), x2.Pos(), 2)
	tb.Declare(x6, x4)
	qt.Assert(t, qt.Equals(tb.Len(), 3))
	qt.Assert(t, qt.DeepEquals(collect(tb.Uses(x1)), []z.Var{x3, x5, x6}))
	tb.Pop(1)
	qt.Assert(t, qt.Equals(tb.Len(), 1))
	qt.Assert(t, qt.IsFalse(tb.IsMonomial(x5)))
	qt.Assert(t, qt.IsFalse(tb.IsMonomial(x6)))
	qt.Assert(t, qt.DeepEquals(collect(tb.Uses(x2)), []z.Var{x3}))
	qt.Assert(t, qt.HasLen(collect(tb.Uses(x4)), 0))
	// x5 may be declared again, differently
	tb.Declare(x5, x4)
	qt.Assert(t, qt.DeepEquals(tb.Monomial(x5), Monomial{Var: x5, Factors: []z.Var{x4}}))
}

func TestNestedScopes(t *testing.T) {
	tb, e := newTable()
	tb.Declare(x5, x1, x2, x3)
	tb.Push()
	e.Merge(x1.Pos(), x2.Pos(), 1)
	tb.Push()
	e.Merge(x2.Pos(), x3.Neg(), 2)
	tb.Declare(x6, x3, x3, x3)
	qt.Assert(t, qt.IsTrue(tb.Canon(x5).Equal(tb.Canon(x6))))
	qt.Assert(t, qt.Equals(tb.Level(), 2))
	qt.Assert(t, qt.Equals(e.Level(), 2))
	tb.Pop(2)
	qt.Assert(t, qt.Equals(e.Level(), 0))
	qt.Assert(t, qt.DeepEquals(tb.Canon(x5).Vars, []z.Var{x1, x2, x3}))
	qt.Assert(t, qt.IsFalse(tb.IsMonomial(x6)))
}

func TestMonomials(t *testing.T) {
	tb, e := newTable()
	qt.Assert(t, qt.IsTrue(tb.Eqs() == inter.Eqs(e)))
	tb.Declare(x6, x1)
	tb.Declare(x3, x2, x1)
	var vs []z.Var
	for v := range tb.Monomials() {
		vs = append(vs, v)
	}
	qt.Assert(t, qt.DeepEquals(vs, []z.Var{x6, x3}))
	qt.Assert(t, qt.IsTrue(tb.IsMonomial(x3)))
	qt.Assert(t, qt.IsFalse(tb.IsMonomial(x1)))
	qt.Assert(t, qt.IsFalse(tb.IsMonomial(1000)))
	qt.Assert(t, qt.DeepEquals(tb.Monomial(x3).Factors, []z.Var{x2, x1}))
}

func TestDefects(t *testing.T) {
	tb, e := newTable()
	tb.Declare(x3, x1, x2)
	qt.Assert(t, qt.PanicMatches(func() { tb.Declare(x3, x1) }, `emon: v3 already declared`))
	qt.Assert(t, qt.PanicMatches(func() { tb.Declare(x4) }, `emon: v4 declared without factors`))
	qt.Assert(t, qt.PanicMatches(func() { tb.Canon(x1) }, `emon: v1 is not a monomial`))
	qt.Assert(t, qt.PanicMatches(func() { tb.Pop(1) }, `emon: pop 1 scopes at level 0`))
	e.Push()
	qt.Assert(t, qt.PanicMatches(func() { tb.Push() }, `emon: level 0, engine level 1`))
	e.Pop(1)
	qt.Assert(t, qt.PanicMatches(func() { New(e2()) }, `emon: binding engine at level 1`))
}

func e2() *eqs.E {
	e := eqs.New()
	e.Push()
	return e
}

func TestDisplay(t *testing.T) {
	tb, e := newTable()
	tb.Declare(x3, x1, x2)
	tb.Declare(x6, x2, x4)
	e.Merge(x1.Pos(), x4.Neg(), 1)
	var buf bytes.Buffer
	qt.Assert(t, qt.IsNil(tb.Display(&buf)))
	want := `monomials:
  v3 := v1 v2
    canon v3 := - v2 v4
  v6 := v2 v4
    canon v6 := v2 v4
use lists:
  v2: v6 v3
  v4: v6 v3
congruences:
  [v2 v4]: v3 v6
`
	qt.Assert(t, qt.Equals(buf.String(), want))
	qt.Assert(t, qt.Equals(tb.String(), "<emon@0 2 monomials 1 classes>"))
}

func TestReadStats(t *testing.T) {
	tb, e := newTable()
	tb.Declare(x3, x1, x2)
	tb.Push()
	e.Merge(x1.Pos(), x2.Pos(), 1)
	tb.Pop(1)
	st := tb.ReadStats(&Stats{})
	qt.Assert(t, qt.Equals(st.Monomials, 1))
	qt.Assert(t, qt.Equals(st.Cells, 2))
	qt.Assert(t, qt.Equals(st.Entries, 1))
	qt.Assert(t, qt.Equals(st.Merges, int64(1)))
	qt.Assert(t, qt.Equals(st.Unmerges, int64(1)))
	qt.Assert(t, qt.Equals(st.Rehashes, int64(2)))
}
