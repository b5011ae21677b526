// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package eqs provides a backtrackable union-find over signed variables.
//
// Each class has a root variable and every member is equal to the root or
// to its negation.  Merges are recorded on a trail and undone by Pop in
// reverse order.  There is no path compression: undoing a merge is a
// matter of resetting the one link it created, and Find walks at most
// O(log n) links thanks to union by size.
//
// E implements inter.Eqs and reports class merges to an
// inter.MergeHandler, which is how emon.Table keeps its indices in sync.
package eqs
