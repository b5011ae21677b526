// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package z

import "fmt"

// Dep identifies a justification fact supplied by whoever asserts an
// equality between variables.  Deps are opaque to this module; they are
// handed back by explanations.
type Dep uint32

// DepNull is the absence of a justification.
const DepNull Dep = 0

func (d Dep) String() string {
	return fmt.Sprintf("d%d", uint32(d))
}
