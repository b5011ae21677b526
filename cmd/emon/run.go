// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/irifrance/emon"
	"github.com/irifrance/emon/eqs"
	"github.com/irifrance/emon/internal/monitor"
	"github.com/irifrance/emon/z"
)

var errMismatch = errors.New("unexpected result")

type runner struct {
	log   *slog.Logger
	out   *printer
	mon   *monitor.Monitor
	stats bool
}

// run replays s against a fresh table and equivalence engine.
func (r *runner) run(s *Scenario) error {
	e := eqs.New()
	e.SetLogger(r.log)
	tb := emon.New(e)
	tb.SetLogger(r.log)
	r.out.title(s.Name)
	for i := range s.Steps {
		if err := r.step(tb, e, &s.Steps[i]); err != nil {
			return fmt.Errorf("%s: step %d: %w", s.Name, i+1, err)
		}
		if r.mon != nil {
			r.mon.Update(tb, e)
		}
	}
	if r.stats {
		var st emon.Stats
		var est eqs.Stats
		tb.ReadStats(&st)
		e.ReadStats(&est)
		r.log.Info("stats", "scenario", s.Name,
			"monomials", st.Monomials, "cells", st.Cells, "entries", st.Entries,
			"declares", st.Declares, "retracts", st.Retracts,
			"merges", st.Merges, "unmerges", st.Unmerges, "redundant", est.Redundant,
			"rehashes", st.Rehashes, "canonizes", st.Canonizes)
	}
	return nil
}

func (r *runner) step(tb *emon.Table, e *eqs.E, s *Step) error {
	k, err := s.kind()
	if err != nil {
		return err
	}
	switch k {
	case "declare":
		return declare(tb, s.Declare)
	case "merge":
		if s.Merge.A == 0 || s.Merge.B == 0 {
			return fmt.Errorf("merge: zero variable")
		}
		for _, i := range []int{s.Merge.A, s.Merge.B} {
			if int64(i) <= -maxVar || int64(i) >= maxVar {
				return fmt.Errorf("merge: invalid variable %d", i)
			}
		}
		a, b := z.Int2SVar(s.Merge.A), z.Int2SVar(s.Merge.B)
		ok := e.Merge(a, b, z.Dep(s.Merge.Dep))
		r.log.Debug("merge", "a", a, "b", b, "dep", s.Merge.Dep, "merged", ok)
		return nil
	case "push":
		if *s.Push < 1 {
			return fmt.Errorf("push %d", *s.Push)
		}
		for i := 0; i < *s.Push; i++ {
			tb.Push()
		}
		return nil
	case "pop":
		if *s.Pop < 0 || *s.Pop > tb.Level() {
			return fmt.Errorf("pop %d at level %d", *s.Pop, tb.Level())
		}
		tb.Pop(*s.Pop)
		return nil
	case "dump":
		var sb strings.Builder
		if err := tb.Display(&sb); err != nil {
			return err
		}
		return r.out.result("dump", "", sb.String(), s.Expect)
	}
	arg, res, err := query(tb, k, s)
	if err != nil {
		return err
	}
	return r.out.result(k, arg, res, s.Expect)
}

func declare(tb *emon.Table, d *Declare) error {
	v, err := toVar(d.Var)
	if err != nil {
		return fmt.Errorf("declare: %w", err)
	}
	if tb.IsMonomial(v) {
		return fmt.Errorf("declare: %s already declared", v)
	}
	if len(d.Factors) == 0 {
		return fmt.Errorf("declare: %s without factors", v)
	}
	fs := make([]z.Var, len(d.Factors))
	for i, f := range d.Factors {
		if fs[i], err = toVar(f); err != nil {
			return fmt.Errorf("declare %s: %w", v, err)
		}
	}
	tb.Declare(v, fs...)
	return nil
}

// query runs the query k of s and returns its argument and result as
// printed.
func query(tb *emon.Table, k string, s *Step) (string, string, error) {
	switch k {
	case "find":
		vs, err := toVars(s.Find)
		if err != nil {
			return "", "", err
		}
		slices.Sort(vs)
		arg := joinVars(slices.Values(vs))
		f, ok := tb.Find(vs)
		if !ok {
			return arg, "none", nil
		}
		return arg, f.String(), nil
	case "divides":
		if len(s.Divides) != 2 {
			return "", "", fmt.Errorf("divides: want 2 variables, got %d", len(s.Divides))
		}
		vs, err := toMonomials(tb, s.Divides)
		if err != nil {
			return "", "", err
		}
		return vs[0].String() + " " + vs[1].String(), strconv.FormatBool(tb.Divides(vs[0], vs[1])), nil
	}
	var n int
	switch k {
	case "canon":
		n = *s.Canon
	case "rep":
		n = *s.Rep
	case "sign":
		n = *s.Sign
	case "uses":
		n = *s.Uses
	case "factors":
		n = *s.Factors
	case "equiv":
		n = *s.Equiv
	case "explain":
		n = *s.Explain
	default:
		panic(fmt.Sprintf("unknown query %q", k))
	}
	if k == "uses" {
		v, err := toVar(n)
		if err != nil {
			return "", "", err
		}
		return v.String(), joinVars(tb.Uses(v)), nil
	}
	vs, err := toMonomials(tb, []int{n})
	if err != nil {
		return "", "", err
	}
	v := vs[0]
	switch k {
	case "canon":
		return v.String(), tb.Canon(v).String(), nil
	case "rep":
		return v.String(), tb.Rep(v).String(), nil
	case "sign":
		return v.String(), strconv.Itoa(tb.RepSign(v)), nil
	case "factors":
		return v.String(), joinVars(tb.Factors(v)), nil
	case "equiv":
		return v.String(), joinVars(tb.SignEquiv(v)), nil
	default:
		ds := tb.Explain(v, nil)
		parts := make([]string, len(ds))
		for i, d := range ds {
			parts[i] = d.String()
		}
		return v.String(), strings.Join(parts, " "), nil
	}
}

// maxVar bounds variables so that their signed form fits a z.SVar.
const maxVar = 1 << 31

func toVar(i int) (z.Var, error) {
	if i <= 0 || int64(i) >= maxVar {
		return z.VarNull, fmt.Errorf("invalid variable %d", i)
	}
	return z.Var(i), nil
}

func toVars(is []int) ([]z.Var, error) {
	res := make([]z.Var, len(is))
	for j, i := range is {
		v, err := toVar(i)
		if err != nil {
			return nil, err
		}
		res[j] = v
	}
	return res, nil
}

func toMonomials(tb *emon.Table, is []int) ([]z.Var, error) {
	vs, err := toVars(is)
	if err != nil {
		return nil, err
	}
	for _, v := range vs {
		if !tb.IsMonomial(v) {
			return nil, fmt.Errorf("%s is not a monomial", v)
		}
	}
	return vs, nil
}

// joinVars prints the variables of seq sorted and space separated.
func joinVars(seq iter.Seq[z.Var]) string {
	vs := slices.Sorted(seq)
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return strings.Join(parts, " ")
}
