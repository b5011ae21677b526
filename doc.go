// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package emon provides a congruence table for monomials modulo a
// backtrackable equivalence relation over signed variables.
//
// A monomial is declared as a variable v together with the variables
// whose product it stands for:
//
//	t.Declare(v, x, y, y)
//
// The table keeps every monomial in canonical form with respect to the
// current equivalences of its inter.Eqs: each factor is replaced by the
// representative of its class, the factor signs are combined into one
// sign, and the result is sorted.  From that it answers which
// monomials are equal up to sign (SignEquiv, Rep, Find), which
// monomials have a given one as a proper factor (Factors), and which
// monomials mention a class (Uses).
//
// The table follows the merges of the equivalence engine through the
// inter.MergeHandler callbacks, and it owns the engine's scopes: Push
// and Pop on the table push and pop the engine as well, and undo
// everything done since, exactly.
//
// A Table is not safe for concurrent use.  Sequences it returns must be
// consumed before the next declaration, merge or Pop; Forms stay valid.
package emon
