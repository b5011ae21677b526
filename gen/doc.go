// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package gen contains generators of monomial declarations and of
// equalities between variables, for tests and benchmarks.
package gen
