// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package emon

// Stats holds counters and sizes of a Table.
type Stats struct {
	Monomials int
	Cells     int
	Entries   int
	Level     int

	Declares  int64
	Retracts  int64
	Merges    int64
	Unmerges  int64
	Rehashes  int64
	Canonizes int64
}

// ReadStats places the statistics of t in st and returns st.
func (t *Table) ReadStats(st *Stats) *Stats {
	st.Monomials = len(t.mons)
	st.Cells = len(t.cells) - 1
	st.Entries = len(t.cg)
	st.Level = len(t.lims)
	st.Declares = t.stDeclares
	st.Retracts = t.stRetracts
	st.Merges = t.stMerges
	st.Unmerges = t.stUnmerges
	st.Rehashes = t.stRehashes
	st.Canonizes = t.stCanonizes
	return st
}
