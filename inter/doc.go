// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package inter contains the interfaces through which the monomial table
// and its equivalence engine talk to each other.
package inter
