// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package enco

import (
	"code.hybscloud.com/kont"
)

// Step evaluates a codec protocol until the first effect suspension.
// Returns (result, nil) on completion, or (zero, suspension) if pending.
func Step[R any](protocol kont.Expr[R]) (R, *kont.Suspension[R]) {
	return kont.StepExpr(protocol)
}

// Advance dispatches the suspended codec operation on e and resumes the
// protocol to its next suspension or completion.
//
// Codec dispatch never blocks, so every call consumes susp. Between calls
// the caller may interleave other work on e, such as serving a Pipe.
func Advance[T Enum, R any](e *Encoder[T], susp *kont.Suspension[R]) (R, *kont.Suspension[R]) {
	cop, ok := susp.Op().(codecDispatcher[T])
	if !ok {
		panic("enco: unhandled effect in Advance")
	}
	return susp.Resume(cop.DispatchCodec(e))
}
