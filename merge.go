// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package emon

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/irifrance/emon/z"
)

// OnMerge implements inter.MergeHandler.  It splices the use list of
// r1 into that of r2.
func (t *Table) OnMerge(r2, r1, v2, v1 z.SVar) {
	j := t.mergeRings(r2.Var(), r1.Var())
	if len(t.lims) > 0 {
		t.journal = append(t.journal, j)
	}
	t.stMerges++
}

// OnMergeComplete implements inter.MergeHandler.  It rehashes the
// monomials which mention r1's former class, the only ones whose
// canonical form changes.
func (t *Table) OnMergeComplete(r2, r1, v2, v1 z.SVar) {
	n := t.stRehashes
	t.segment(r1.Var(), func(c uint32) {
		t.rehash(t.cells[c].mon)
	})
	if t.log.Enabled(context.Background(), slog.LevelDebug) {
		t.log.Debug("merged", "root", r2, "old", r1, "v2", v2, "v1", v1,
			"rehashed", t.stRehashes-n, "level", len(t.lims))
	}
}

// OnUnmerge implements inter.MergeHandler.  Declarations made after
// the merge are retracted, the monomials rehashed by the merge are
// rehashed back and the use lists are split again.
func (t *Table) OnUnmerge(r2, r1 z.SVar) {
	for {
		if len(t.journal) == 0 {
			panic(fmt.Sprintf("emon: unmerge of %s from %s without merge", r1, r2))
		}
		if t.journal[len(t.journal)-1].o != z.VarNull {
			break
		}
		t.retract()
	}
	j := t.journal[len(t.journal)-1]
	if j.r != r2.Var() || j.o != r1.Var() {
		panic(fmt.Sprintf("emon: unmerge of %s from %s, last merge %s into %s", r1, r2, j.o, j.r))
	}
	t.journal = t.journal[:len(t.journal)-1]
	t.segment(j.o, func(c uint32) {
		t.rehash(t.cells[c].mon)
	})
	t.splitRings(j)
	t.stUnmerges++
	if t.log.Enabled(context.Background(), slog.LevelDebug) {
		t.log.Debug("unmerged", "root", r2, "old", r1, "level", len(t.lims))
	}
}
