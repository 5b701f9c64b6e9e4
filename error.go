// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aseq

import "errors"

// ErrClosed reports an operation on a disposed bridge or iterator:
// evaluating a pull sequence after its bridge was torn down, or pulling
// from a blocking iterator after Close.
var ErrClosed = errors.New("aseq: closed")
