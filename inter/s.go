// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package inter

import "github.com/irifrance/emon/z"

// Interface Scoped provides backtracking scopes.
//
// Every change made after a call to Push is undone by the matching
// Pop.  Scopes nest; Pop(n) undoes the last n of them at once.
// Pop with n greater than Level() is a programming error and panics.
type Scoped interface {
	Push()
	Pop(n int)

	// Level returns the number of open scopes.
	Level() int
}

// Finder gives the current representative of a variable's
// equivalence class.
//
// Find(v) returns r.Var() the representative and r's sign is the
// sign of v relative to it: v = r when r is positive and v = -r
// otherwise.  A variable which was never merged is its own
// positive representative.
type Finder interface {
	Find(v z.Var) z.SVar
}

// Explainer produces justifications for equalities between a
// variable and its representative.
type Explainer interface {
	// Explain appends to dst the dependencies justifying
	// v = Find(v) and returns the result.
	Explain(v z.Var, dst []z.Dep) []z.Dep
}

// Interface Eqs encapsulates an equivalence engine over signed
// variables: a union-find structure whose classes relate members up
// to sign.
//
// An Eqs reports class merges to at most one MergeHandler.  Once a
// handler is set, the Eqs scopes are driven by the handler's owner
// and by nobody else.
type Eqs interface {
	Finder
	Explainer
	Scoped

	// SetMergeHandler installs h as the observer of merges.
	// A nil h removes the observer.
	SetMergeHandler(h MergeHandler)
}

// MergeHandler observes merges and unmerges of equivalence classes.
//
// In all methods r2 is the new root, positive, and r1 is the old root
// signed relative to r2, so that r1.Var() = r1.Sign() * r2.Var() once
// the merge is done.  v2 and v1 are the signed variables whose
// equality caused the merge, with v1 in the class of r1 and v2 in the
// class of r2.
//
// Calls are synchronous and never reentrant.  Every OnMerge is
// followed by exactly one OnMergeComplete before any other call, and
// unmerges arrive in the reverse order of merges.
type MergeHandler interface {
	// OnMerge is called before the merge takes effect, while r1 and
	// r2 are still both roots.
	OnMerge(r2, r1, v2, v1 z.SVar)

	// OnMergeComplete is called once Find reflects the merge.
	OnMergeComplete(r2, r1, v2, v1 z.SVar)

	// OnUnmerge is called once Find no longer reflects the merge
	// of r1 into r2.
	OnUnmerge(r2, r1 z.SVar)
}
