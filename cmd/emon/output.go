// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// setColor sets the global color mode from the --color flag value.
func setColor(mode string, out *os.File) error {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	case "auto":
		fd := out.Fd()
		color.NoColor = !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
	default:
		return fmt.Errorf("invalid color mode %q, want auto, always or never", mode)
	}
	return nil
}

type printer struct {
	w io.Writer

	head func(a ...any) string
	key  func(a ...any) string
	ok   func(a ...any) string
	bad  func(a ...any) string
}

func newPrinter(w io.Writer) *printer {
	return &printer{
		w:    w,
		head: color.New(color.Bold).SprintFunc(),
		key:  color.New(color.FgCyan).SprintFunc(),
		ok:   color.New(color.FgGreen).SprintFunc(),
		bad:  color.New(color.FgRed, color.Bold).SprintFunc()}
}

func (p *printer) title(name string) {
	fmt.Fprintf(p.w, "%s\n", p.head("== "+name))
}

// result prints the result res of query k on arg and checks it against
// expect, if any.  Multi-line results are indented under the query.
func (p *printer) result(k, arg, res string, expect *string) error {
	q := k
	if arg != "" {
		q += " " + arg
	}
	shown := res
	if strings.Contains(res, "\n") {
		shown = "\n" + indent(res)
	}
	if expect == nil {
		fmt.Fprintf(p.w, "%s: %s\n", p.key(q), shown)
		return nil
	}
	if strings.TrimSpace(*expect) == strings.TrimSpace(res) {
		fmt.Fprintf(p.w, "%s: %s\n", p.key(q), p.ok(shown))
		return nil
	}
	fmt.Fprintf(p.w, "%s: %s (expected %q)\n", p.key(q), p.bad(shown), *expect)
	return fmt.Errorf("%s: got %q, expected %q: %w", q, res, *expect, errMismatch)
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "    " + l
	}
	return strings.Join(lines, "\n")
}
