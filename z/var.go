// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package z

import "fmt"

// Var is a variable of an arithmetic problem.  Variables are small
// unsigned integers; the zero value is reserved and means "no variable".
type Var uint32

// VarNull is the null variable.
const VarNull Var = 0

// Pos returns the positive signed variable of v.
func (v Var) Pos() SVar {
	return SVar(v << 1)
}

// Neg returns the negated signed variable of v.
func (v Var) Neg() SVar {
	return SVar(v<<1 | 1)
}

// Signed returns v negated if neg is true, v otherwise.
func (v Var) Signed(neg bool) SVar {
	if neg {
		return v.Neg()
	}
	return v.Pos()
}

func (v Var) String() string {
	return fmt.Sprintf("v%d", uint32(v))
}
