// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package enco

import (
	"code.hybscloud.com/kont"
)

// errorDispatcher is the structural interface of kont Error operations.
type errorDispatcher[E any] interface {
	DispatchError(ctx *kont.ErrorContext[E]) (kont.Resumed, bool)
}

// codecErrorHandler handles both codec and error effects.
// Codec ops dispatch on the encoder. Error ops short-circuit on Throw.
// Value type: passed to evalFrames on the stack, avoiding heap allocation.
type codecErrorHandler[T Enum, E, A any] struct {
	enc    *Encoder[T]
	errCtx *kont.ErrorContext[E]
}

// Dispatch implements kont.Handler for the composed Codec+Error handler.
// Dispatch order: Codec → Error.
func (h codecErrorHandler[T, E, A]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	if cop, ok := op.(codecDispatcher[T]); ok {
		return cop.DispatchCodec(h.enc), true
	}
	if eop, ok := op.(errorDispatcher[E]); ok {
		v, _ := eop.DispatchError(h.errCtx)
		if h.errCtx.HasErr {
			return kont.Left[E, A](h.errCtx.Err), false
		}
		return v, true
	}
	panic("enco: unhandled effect in codecErrorHandler")
}

// ExecError runs a codec protocol with error handling against e.
// Returns Either[E, R]: Right on success, Left on Throw. Items encoded
// before a Throw stay in e.
func ExecError[E any, T Enum, R any](e *Encoder[T], protocol kont.Eff[R]) kont.Either[E, R] {
	wrapped := kont.Map[kont.Resumed, R, kont.Either[E, R]](protocol, func(r R) kont.Either[E, R] {
		return kont.Right[E, R](r)
	})
	var errCtx kont.ErrorContext[E]
	h := codecErrorHandler[T, E, R]{enc: e, errCtx: &errCtx}
	return kont.Handle(wrapped, h)
}

// ExecErrorExpr runs an Expr codec protocol with error handling against e.
// Returns Either[E, R]: Right on success, Left on Throw.
func ExecErrorExpr[E any, T Enum, R any](e *Encoder[T], protocol kont.Expr[R]) kont.Either[E, R] {
	wrapped := kont.ExprMap(protocol, func(r R) kont.Either[E, R] {
		return kont.Right[E, R](r)
	})
	var errCtx kont.ErrorContext[E]
	h := codecErrorHandler[T, E, R]{enc: e, errCtx: &errCtx}
	return kont.HandleExpr(wrapped, h)
}

// StepError evaluates a codec protocol with error support until the first
// effect suspension. Returns (Either[E, R], nil) on completion or error,
// or (zero, suspension) if pending.
func StepError[E, R any](protocol kont.Expr[R]) (kont.Either[E, R], *kont.Suspension[kont.Either[E, R]]) {
	wrapped := kont.ExprMap(protocol, func(r R) kont.Either[E, R] {
		return kont.Right[E, R](r)
	})
	return kont.StepExpr(wrapped)
}

// AdvanceError dispatches the suspended operation on e. Codec ops resume
// the protocol; Throw discards the suspension and returns Left.
func AdvanceError[E any, T Enum, R any](e *Encoder[T], susp *kont.Suspension[kont.Either[E, R]]) (kont.Either[E, R], *kont.Suspension[kont.Either[E, R]]) {
	if cop, ok := susp.Op().(codecDispatcher[T]); ok {
		return susp.Resume(cop.DispatchCodec(e))
	}
	if eop, ok := susp.Op().(errorDispatcher[E]); ok {
		var ctx kont.ErrorContext[E]
		v, _ := eop.DispatchError(&ctx)
		if ctx.HasErr {
			susp.Discard()
			return kont.Left[E, R](ctx.Err), nil
		}
		return susp.Resume(v)
	}
	panic("enco: unhandled effect in AdvanceError")
}
