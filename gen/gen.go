// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package gen

import (
	"math/rand"
	"sync"

	"github.com/irifrance/emon/z"
)

// Declarer is something to which monomials can be declared, such as
// an *emon.Table.
type Declarer interface {
	Declare(v z.Var, factors ...z.Var)
}

// Merger is something in which variables can be equated, such as an
// *eqs.E.
type Merger interface {
	Merge(a, b z.SVar, d z.Dep) bool
}

// rng backs the generators without an explicit source; mu guards it.
var (
	rng = rand.New(rand.NewSource(33))
	mu  sync.Mutex
)

// Seed resets the source of RandMonomials and RandMerges, so that a
// sequence of calls after Seed(s) is reproducible.
func Seed(s int64) {
	mu.Lock()
	defer mu.Unlock()
	rng = rand.New(rand.NewSource(s))
}

// Powers declares x^2, x^3, ... x^n using variables first, first+1, ...
// and returns the declared variables.
func Powers(dst Declarer, x, first z.Var, n int) []z.Var {
	res := make([]z.Var, 0, n)
	fs := []z.Var{x}
	for i := 2; i <= n; i++ {
		fs = append(fs, x)
		v := first + z.Var(len(res))
		dst.Declare(v, fs...)
		res = append(res, v)
	}
	return res
}

// Products declares xi*xj for 1 <= i <= j <= n using variables first,
// first+1, ... and returns the declared variables.
func Products(dst Declarer, n int, first z.Var) []z.Var {
	res := make([]z.Var, 0, n*(n+1)/2)
	for i := 1; i <= n; i++ {
		for j := i; j <= n; j++ {
			v := first + z.Var(len(res))
			dst.Declare(v, z.Var(i), z.Var(j))
			res = append(res, v)
		}
	}
	return res
}

// Chain asserts x1 = x2 = ... = xn, with dependency i for xi = x(i+1).
// When alt is true, the signs alternate: x1 = -x2 = x3 ...
func Chain(dst Merger, n int, alt bool) {
	for i := 1; i < n; i++ {
		dst.Merge(z.Var(i).Pos(), z.Var(i+1).Signed(alt), z.Dep(i))
	}
}
