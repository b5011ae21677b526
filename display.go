// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package emon

import (
	"fmt"
	"io"
	"strings"

	"github.com/irifrance/emon/z"
)

// Display writes the monomials of t, their canonical forms, the
// non-empty use lists of representatives and the congruence classes.
func (t *Table) Display(w io.Writer) error {
	var sb strings.Builder
	sb.WriteString("monomials:\n")
	for i := range t.mons {
		m := &t.mons[i]
		fmt.Fprintf(&sb, "  %s :=", m.v)
		for _, f := range m.factors {
			fmt.Fprintf(&sb, " %s", f)
		}
		fmt.Fprintf(&sb, "\n    canon %s\n", t.form(uint32(i)))
	}
	sb.WriteString("use lists:\n")
	for i := range t.rings {
		v := z.Var(i)
		if t.eqs.Find(v).Var() != v {
			continue
		}
		first := true
		for u := range t.Uses(v) {
			if first {
				fmt.Fprintf(&sb, "  %s:", v)
				first = false
			}
			fmt.Fprintf(&sb, " %s", u)
		}
		if !first {
			sb.WriteString("\n")
		}
	}
	sb.WriteString("congruences:\n")
	for i := range t.mons {
		m := &t.mons[i]
		if t.cg[m.key] != uint32(i) {
			continue
		}
		fmt.Fprintf(&sb, "  %v:", t.form(uint32(i)).Vars)
		for u := range t.SignEquiv(m.v) {
			fmt.Fprintf(&sb, " %s", u)
		}
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func (t *Table) String() string {
	return fmt.Sprintf("<emon@%d %d monomials %d classes>", len(t.lims), len(t.mons), len(t.cg))
}
