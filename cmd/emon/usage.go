// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

var usage = `emon replays scenarios against an incremental monomial congruence table.

Each argument is a yaml file, "-" for stdin, possibly compressed with
gzip (.gz) or bzip2 (.bz2).  A file holds one or more scenarios
separated by "---".  A scenario has a name and a list of steps, each
with exactly one action:

	declare: {var: 5, factors: [1, 2, 2]}   v5 := v1 * v2 * v2
	merge: {a: 1, b: -4, dep: 7}            v1 = -v4, justified by d7
	push: 1                                 open scopes
	pop: 1                                  close scopes

or one query, whose result is printed:

	canon: 5        canonical form of v5
	rep: 5          canonical form of the representative of v5
	sign: 5         1 or -1, sign of v5 relative to its representative
	uses: 1         monomials mentioning the class of v1
	factors: 5      monomials which v5 properly divides
	equiv: 5        monomials equal to v5 up to sign
	explain: 5      dependencies justifying the canonical form of v5
	find: [2, 4]    representative with canonical variables v2 v4
	divides: [3, 5] whether v3 divides v5
	dump: true      the whole table

A query with an expect field, such as

	canon: 5
	expect: "v5 := - v2 v2 v4"

fails the scenario when the printed result differs.  emon exits with
status 1 if any scenario fails.
`
