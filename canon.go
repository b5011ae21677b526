// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package emon

import (
	"fmt"
	"slices"
	"strings"

	"github.com/irifrance/emon/z"
)

// Form is the canonical form of a monomial: the sorted representatives
// of its factors and the product of the factor signs.
//
// Vars is shared with the table and must not be modified.  A Form is a
// snapshot: a later merge gives the monomial a new Form rather than
// changing this one.
type Form struct {
	Var  z.Var
	Vars []z.Var
	Neg  bool
}

// Sign returns -1 if f is negated and 1 otherwise.
func (f Form) Sign() int {
	if f.Neg {
		return -1
	}
	return 1
}

// Equal returns whether f and g have the same sorted representatives,
// ignoring signs and defining variables.
func (f Form) Equal(g Form) bool {
	return slices.Equal(f.Vars, g.Vars)
}

func (f Form) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s :=", f.Var)
	if f.Neg {
		sb.WriteString(" -")
	}
	for _, v := range f.Vars {
		fmt.Fprintf(&sb, " %s", v)
	}
	return sb.String()
}

// Canon returns the canonical form of the monomial declared for v
// under the current equivalences.  Canon panics if v is not a monomial.
//
// Forms are cached and recomputed only after v's factors change class.
func (t *Table) Canon(v z.Var) Form {
	return t.form(t.index(v))
}

func (t *Table) form(i uint32) Form {
	m := &t.mons[i]
	if !m.valid {
		t.canonize(m)
	}
	return Form{Var: m.v, Vars: m.form, Neg: m.neg}
}

// canonize always allocates, so that Forms handed out earlier keep
// their contents.
func (t *Table) canonize(m *mon) {
	vs := make([]z.Var, 0, len(m.factors))
	neg := false
	for _, f := range m.factors {
		r := t.eqs.Find(f)
		neg = neg != r.IsNeg()
		vs = append(vs, r.Var())
	}
	slices.Sort(vs)
	m.form = vs
	m.neg = neg
	m.valid = true
	t.stCanonizes++
}

// Divides returns whether the canonical form of u divides that of v,
// counting multiplicities, and u and v are different monomials.
func (t *Table) Divides(u, v z.Var) bool {
	i, j := t.index(u), t.index(v)
	if i == j {
		return false
	}
	return subset(t.form(i).Vars, t.form(j).Vars)
}

// subset tests multiset inclusion of sorted a in sorted b.
func subset(a, b []z.Var) bool {
	if len(a) > len(b) {
		return false
	}
	j := 0
	for _, x := range a {
		for j < len(b) && b[j] < x {
			j++
		}
		if j == len(b) || b[j] != x {
			return false
		}
		j++
	}
	return true
}

// Explain appends to dst the dependencies justifying the canonical form
// of v: for each factor which is not its own representative, those
// relating it to its representative.  The appended dependencies are
// sorted and free of duplicates.
func (t *Table) Explain(v z.Var, dst []z.Dep) []z.Dep {
	m := &t.mons[t.index(v)]
	n := len(dst)
	for _, f := range m.factors {
		if t.eqs.Find(f).Var() == f {
			continue
		}
		dst = t.eqs.Explain(f, dst)
	}
	added := dst[n:]
	slices.Sort(added)
	added = slices.Compact(added)
	return dst[:n+len(added)]
}
