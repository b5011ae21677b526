// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package z provides the small encodings shared by the rest of emon:
// variables, signed variables and justification tokens.
package z
