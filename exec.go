// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package enco

import (
	"code.hybscloud.com/kont"
)

// Exec runs a Cont-world codec protocol against e and returns its result.
// Codec effects never block; Exec runs on the calling goroutine and
// requires exclusive access to e for its duration.
func Exec[T Enum, R any](e *Encoder[T], protocol kont.Eff[R]) R {
	h := codecHandler[T, R]{enc: e}
	return kont.Handle(protocol, h)
}

// ExecExpr runs an Expr-world codec protocol against e and returns its
// result. It requires exclusive access to e for its duration.
func ExecExpr[T Enum, R any](e *Encoder[T], protocol kont.Expr[R]) R {
	h := codecHandler[T, R]{enc: e}
	return kont.HandleExpr(protocol, h)
}

// Reify converts a Cont-world codec protocol to Expr-world, for use with
// ExecExpr or Step and Advance.
func Reify[A any](m kont.Eff[A]) kont.Expr[A] {
	return kont.Reify(m)
}

// Reflect converts an Expr-world codec protocol to Cont-world, for use
// with Exec.
func Reflect[A any](m kont.Expr[A]) kont.Eff[A] {
	return kont.Reflect(m)
}
