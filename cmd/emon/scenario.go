// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

import (
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scenario is a named sequence of steps replayed against a fresh table.
type Scenario struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step holds exactly one action.  Variables are positive integers,
// signed variables are non-zero integers whose sign is the sign of the
// variable.
type Step struct {
	Declare *Declare `yaml:"declare,omitempty"`
	Merge   *Merge   `yaml:"merge,omitempty"`
	Push    *int     `yaml:"push,omitempty"`
	Pop     *int     `yaml:"pop,omitempty"`

	Canon   *int  `yaml:"canon,omitempty"`
	Rep     *int  `yaml:"rep,omitempty"`
	Sign    *int  `yaml:"sign,omitempty"`
	Uses    *int  `yaml:"uses,omitempty"`
	Factors *int  `yaml:"factors,omitempty"`
	Equiv   *int  `yaml:"equiv,omitempty"`
	Explain *int  `yaml:"explain,omitempty"`
	Find    []int `yaml:"find,omitempty"`
	Divides []int `yaml:"divides,omitempty"`
	Dump    bool  `yaml:"dump,omitempty"`

	// Expect, if present, is compared with the printed result of a
	// query.
	Expect *string `yaml:"expect,omitempty"`
}

type Declare struct {
	Var     int   `yaml:"var"`
	Factors []int `yaml:"factors"`
}

type Merge struct {
	A   int    `yaml:"a"`
	B   int    `yaml:"b"`
	Dep uint32 `yaml:"dep"`
}

// kind returns the name of the action of s, or an error if there is
// not exactly one.
func (s *Step) kind() (string, error) {
	var ks []string
	add := func(present bool, k string) {
		if present {
			ks = append(ks, k)
		}
	}
	add(s.Declare != nil, "declare")
	add(s.Merge != nil, "merge")
	add(s.Push != nil, "push")
	add(s.Pop != nil, "pop")
	add(s.Canon != nil, "canon")
	add(s.Rep != nil, "rep")
	add(s.Sign != nil, "sign")
	add(s.Uses != nil, "uses")
	add(s.Factors != nil, "factors")
	add(s.Equiv != nil, "equiv")
	add(s.Explain != nil, "explain")
	add(s.Find != nil, "find")
	add(s.Divides != nil, "divides")
	add(s.Dump, "dump")
	switch len(ks) {
	case 0:
		return "", errors.New("no action")
	case 1:
		return ks[0], nil
	default:
		return "", fmt.Errorf("several actions: %s", strings.Join(ks, ", "))
	}
}

// decodeScenarios reads all yaml documents of r, each a Scenario.
func decodeScenarios(r io.Reader) ([]*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var res []*Scenario
	for {
		s := &Scenario{}
		err := dec.Decode(s)
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		if err != nil {
			return nil, fmt.Errorf("scenario %d: %w", len(res)+1, err)
		}
		for i := range s.Steps {
			if _, err := s.Steps[i].kind(); err != nil {
				return nil, fmt.Errorf("scenario %d step %d: %w", len(res)+1, i+1, err)
			}
		}
		res = append(res, s)
	}
}

// loadScenarios reads the scenarios in the file at path p, which may be
// "-" for stdin and may be compressed with gzip (.gz) or bzip2 (.bz2).
func loadScenarios(p string) ([]*Scenario, error) {
	r, closer, err := path2Reader(p)
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	ss, err := decodeScenarios(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	for i, s := range ss {
		if s.Name == "" {
			s.Name = fmt.Sprintf("%s#%d", p, i+1)
		}
	}
	return ss, nil
}

func path2Reader(p string) (io.Reader, io.Closer, error) {
	if p == "-" {
		return os.Stdin, io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, nil, err
	}
	switch {
	case strings.HasSuffix(p, ".gz"):
		r, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("%s: %w", p, err)
		}
		return r, f, nil
	case strings.HasSuffix(p, ".bz2"):
		return bzip2.NewReader(f), f, nil
	}
	return f, f, nil
}
