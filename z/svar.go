// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package z

import "fmt"

// SVar is a signed variable: a variable together with a sign.  The sign is
// held in the low bit so that v.Pos() and v.Neg() are adjacent.
type SVar uint32

// SVarNull is the null signed variable.
const SVarNull SVar = 0

// Int2SVar converts a non-zero signed integer in dimacs notation
// to a signed variable.
func Int2SVar(i int) SVar {
	if i < 0 {
		return Var(-i).Neg()
	}
	return Var(i).Pos()
}

// Int returns the dimacs notation of m.
func (m SVar) Int() int {
	v := int(m >> 1)
	if m&1 == 1 {
		return -v
	}
	return v
}

// Var returns the variable of m.
func (m SVar) Var() Var {
	return Var(m >> 1)
}

// IsPos returns whether m is not negated.
func (m SVar) IsPos() bool {
	return m&1 == 0
}

// IsNeg returns whether m is negated.
func (m SVar) IsNeg() bool {
	return m&1 == 1
}

// Sign returns 1 if m is positive and -1 otherwise.
func (m SVar) Sign() int {
	if m&1 == 0 {
		return 1
	}
	return -1
}

// Not returns m with the opposite sign.
func (m SVar) Not() SVar {
	return m ^ 1
}

// Xor flips the sign of m if neg is true.
func (m SVar) Xor(neg bool) SVar {
	if neg {
		return m ^ 1
	}
	return m
}

func (m SVar) String() string {
	if m&1 == 1 {
		return fmt.Sprintf("-%s", m.Var())
	}
	return m.Var().String()
}
