// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package gen

import (
	"math/rand"

	"github.com/irifrance/emon/z"
)

// RandMonomials declares m random monomials over variables 1..n, each
// with 1 to maxDeg factors (repetitions allowed), using variables
// first, first+1, ...  It returns the declared variables.
func RandMonomials(dst Declarer, n, m, maxDeg int, first z.Var) []z.Var {
	mu.Lock() // for package rng
	defer mu.Unlock()
	return RandMonomialsR(dst, rng, n, m, maxDeg, first)
}

// RandMonomialsR is like RandMonomials with a supplied random source.
func RandMonomialsR(dst Declarer, r *rand.Rand, n, m, maxDeg int, first z.Var) []z.Var {
	res := make([]z.Var, 0, m)
	fs := make([]z.Var, 0, maxDeg)
	for i := 0; i < m; i++ {
		fs = fs[:0]
		d := r.Intn(maxDeg) + 1
		for j := 0; j < d; j++ {
			fs = append(fs, z.Var(r.Intn(n)+1))
		}
		v := first + z.Var(i)
		dst.Declare(v, fs...)
		res = append(res, v)
	}
	return res
}

// RandMerges asserts m random signed equalities between variables
// 1..n, with dependencies d0, d0+1, ...  It returns how many of them
// merged two classes.
func RandMerges(dst Merger, n, m int, d0 z.Dep) int {
	mu.Lock()
	defer mu.Unlock()
	return RandMergesR(dst, rng, n, m, d0)
}

// RandMergesR is like RandMerges with a supplied random source.
func RandMergesR(dst Merger, r *rand.Rand, n, m int, d0 z.Dep) int {
	k := 0
	for i := 0; i < m; i++ {
		a := z.Var(r.Intn(n) + 1).Signed(r.Intn(2) == 1)
		b := z.Var(r.Intn(n) + 1).Signed(r.Intn(2) == 1)
		if dst.Merge(a, b, d0+z.Dep(i)) {
			k++
		}
	}
	return k
}
