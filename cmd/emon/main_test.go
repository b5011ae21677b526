// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--color", "never"}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunScenarios(t *testing.T) {
	out, _, err := execute(t, "--stats", "testdata/basic.yaml")
	qt.Assert(t, qt.IsNil(err))
	for _, s := range []string{
		"== merge and pop\n",
		"canon v3: v3 := v2 v4\n",
		"== negated merge\n",
		"sign v6: -1\n",
		"explain v3: d7\n",
		"find v2 v4: v3 := - v2 v4\n",
		"divides v5 v3: false\n",
		"dump: \n    monomials:\n",
	} {
		qt.Check(t, qt.StringContains(out, s))
	}
}

func TestMetricsServer(t *testing.T) {
	out, logs, err := execute(t, "--metrics-addr", "127.0.0.1:0", "testdata/basic.yaml")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.StringContains(out, "== divides\n"))
	qt.Assert(t, qt.StringContains(logs, "serving metrics"))
	qt.Assert(t, qt.Not(qt.StringContains(logs, "metrics shutdown")))
}

func TestMismatchFails(t *testing.T) {
	out, logs, err := execute(t, "testdata/mismatch.yaml", "testdata/basic.yaml")
	qt.Assert(t, qt.IsTrue(errors.Is(err, errMismatch)))
	qt.Assert(t, qt.ErrorMatches(err, `1 failures: wrong canon: step 2: .*`))
	qt.Assert(t, qt.StringContains(out, `(expected "v3 := v2 v1")`))
	qt.Assert(t, qt.StringContains(logs, "scenario failed"))
	// the following file still runs
	qt.Assert(t, qt.StringContains(out, "== divides\n"))
}

func TestBadArgs(t *testing.T) {
	_, _, err := execute(t)
	qt.Assert(t, qt.IsNotNil(err))
	_, _, err = execute(t, "--color", "sometimes", "testdata/basic.yaml")
	qt.Assert(t, qt.ErrorMatches(err, `invalid color mode "sometimes".*`))
	_, _, err = execute(t, "testdata/missing.yaml")
	qt.Assert(t, qt.IsTrue(errors.Is(err, os.ErrNotExist)))
}

func TestDecodeErrors(t *testing.T) {
	for _, tc := range []struct {
		name, src, err string
	}{{
		name: "two actions",
		src:  "steps:\n  - push: 1\n    pop: 1\n",
		err:  `scenario 1 step 1: several actions: push, pop`,
	}, {
		name: "no action",
		src:  "steps:\n  - expect: x\n",
		err:  `scenario 1 step 1: no action`,
	}, {
		name: "unknown field",
		src:  "steps:\n  - shout: 1\n",
		err:  `(?s)scenario 1: .*field shout not found.*`,
	}} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeScenarios(strings.NewReader(tc.src))
			qt.Assert(t, qt.ErrorMatches(err, tc.err))
		})
	}
}

func TestStepErrors(t *testing.T) {
	for _, tc := range []struct {
		name, src, err string
	}{{
		name: "redeclare",
		src:  "steps:\n  - declare: {var: 3, factors: [1]}\n  - declare: {var: 3, factors: [2]}\n",
		err:  `.*step 2: declare: v3 already declared`,
	}, {
		name: "no factors",
		src:  "steps:\n  - declare: {var: 3, factors: []}\n",
		err:  `.*step 1: declare: v3 without factors`,
	}, {
		name: "pop",
		src:  "steps:\n  - push: 1\n  - pop: 2\n",
		err:  `.*step 2: pop 2 at level 1`,
	}, {
		name: "not a monomial",
		src:  "steps:\n  - canon: 4\n",
		err:  `.*step 1: v4 is not a monomial`,
	}, {
		name: "zero merge",
		src:  "steps:\n  - merge: {a: 0, b: 1}\n",
		err:  `.*step 1: merge: zero variable`,
	}, {
		name: "wide declare",
		src:  "steps:\n  - declare: {var: 4294967296, factors: [1]}\n",
		err:  `.*step 1: declare: invalid variable 4294967296`,
	}, {
		name: "wide factor",
		src:  "steps:\n  - declare: {var: 3, factors: [2147483648]}\n",
		err:  `.*step 1: declare v3: invalid variable 2147483648`,
	}, {
		name: "wide merge",
		src:  "steps:\n  - merge: {a: 1, b: -2147483648}\n",
		err:  `.*step 1: merge: invalid variable -2147483648`,
	}} {
		t.Run(tc.name, func(t *testing.T) {
			ss, err := decodeScenarios(strings.NewReader(tc.src))
			qt.Assert(t, qt.IsNil(err))
			var out bytes.Buffer
			r := &runner{log: discardLogger(), out: newPrinter(&out)}
			qt.Assert(t, qt.ErrorMatches(r.run(ss[0]), tc.err))
		})
	}
}

func TestLoadGzip(t *testing.T) {
	src, err := os.ReadFile("testdata/basic.yaml")
	qt.Assert(t, qt.IsNil(err))
	p := filepath.Join(t.TempDir(), "basic.yaml.gz")
	f, err := os.Create(p)
	qt.Assert(t, qt.IsNil(err))
	w := gzip.NewWriter(f)
	_, err = w.Write(src)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsNil(w.Close()))
	qt.Assert(t, qt.IsNil(f.Close()))

	ss, err := loadScenarios(p)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(ss, 3))
	qt.Assert(t, qt.Equals(ss[2].Name, "divides"))
}
