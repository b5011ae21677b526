// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package eqs

import (
	"fmt"

	"github.com/irifrance/emon/z"
)

// Explain implements inter.Explainer.
//
// The result contains the dependency of every link between v and its
// root together with, recursively, the dependencies placing the
// endpoints of each link's equation in the classes it joined.  Each
// link is visited once per call, so no dependency is appended twice
// unless the caller supplied the same Dep for several merges.
func (e *E) Explain(v z.Var, dst []z.Dep) []z.Dep {
	e.nextStamp()
	return e.explain(v, e.Find(v).Var(), dst)
}

// ExplainEq appends to dst the dependencies justifying that a and b
// are in the same class.  ExplainEq panics if they are not.
func (e *E) ExplainEq(a, b z.Var, dst []z.Dep) []z.Dep {
	r := e.Find(a).Var()
	if e.Find(b).Var() != r {
		panic(fmt.Sprintf("eqs: explain %s = %s in different classes", a, b))
	}
	e.nextStamp()
	dst = e.explain(a, r, dst)
	return e.explain(b, r, dst)
}

// explain walks from v up to its ancestor r.
func (e *E) explain(v, r z.Var, dst []z.Dep) []z.Dep {
	for v != r && int(v) < len(e.parent) {
		p := e.parent[v].Var()
		if p == v {
			break
		}
		if e.marks[v] != e.stamp {
			e.marks[v] = e.stamp
			w := e.why[v]
			if w.d != z.DepNull {
				dst = append(dst, w.d)
			}
			// at link time, w.a was under v and w.b under p.
			dst = e.explain(w.a.Var(), v, dst)
			dst = e.explain(w.b.Var(), p, dst)
		}
		v = p
	}
	return dst
}

func (e *E) nextStamp() {
	e.stamp++
	if e.stamp == 0 {
		for i := range e.marks {
			e.marks[i] = 0
		}
		e.stamp = 1
	}
}
