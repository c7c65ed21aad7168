// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package enco

import (
	"code.hybscloud.com/kont"
)

// exprReturnFrame is boxed once to keep ReturnFrame{} off the heap in
// every constructor below.
var exprReturnFrame kont.Frame = kont.ReturnFrame{}

// identityResume is the identity resume function for EffectFrame construction.
func identityResume(v kont.Erased) kont.Erased { return v }

// bindUnwind resumes an ExprXxxBind continuation with the dispatched value.
func bindUnwind[A, B any](data, _, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	f := data.(func(A) kont.Expr[B])
	result := f(current.(A))
	return kont.Erased(result.Value), result.Frame
}

// exprBind suspends on op and continues with f applied to its result.
func exprBind[A, B any](op kont.Erased, f func(A) kont.Expr[B]) kont.Expr[B] {
	bf := kont.AcquireUnwindFrame()
	bf.Data1 = f
	bf.Unwind = bindUnwind[A, B]
	ef := kont.AcquireEffectFrame()
	ef.Operation = op
	ef.Resume = identityResume
	ef.Next = bf
	return kont.ExprSuspend[B](ef)
}

// exprThen suspends on op, discards its result and continues with next.
func exprThen[B any](op kont.Erased, next kont.Expr[B]) kont.Expr[B] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = op
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[B](ef)
}

// ExprEncodeBind stores v and passes its key to f.
// Fuses ExprPerform(Encode[T]{Value: v}) + ExprBind.
func ExprEncodeBind[T Enum, B any](v T, f func(Key[Encoder[T], T]) kont.Expr[B]) kont.Expr[B] {
	return exprBind(Encode[T]{Value: v}, f)
}

// ExprEncodeThen stores v, discards its key and continues with next.
// Fuses ExprPerform(Encode[T]{Value: v}) + ExprThen.
func ExprEncodeThen[T Enum, B any](v T, next kont.Expr[B]) kont.Expr[B] {
	return exprThen(Encode[T]{Value: v}, next)
}

// ExprDecodeBind reads the value keyed by k and passes the lookup to f.
// Fuses ExprPerform(Decode[T]{Key: k}) + ExprBind.
func ExprDecodeBind[T Enum, B any](k Key[Encoder[T], T], f func(kont.Either[RawKey, T]) kont.Expr[B]) kont.Expr[B] {
	return exprBind(Decode[T]{Key: k}, f)
}

// ExprUpdateBind overwrites the value keyed by k and passes the outcome to f.
// Fuses ExprPerform(Update[T]{Key: k, Value: v}) + ExprBind.
func ExprUpdateBind[T Enum, B any](k Key[Encoder[T], T], v T, f func(bool) kont.Expr[B]) kont.Expr[B] {
	return exprBind(Update[T]{Key: k, Value: v}, f)
}

// ExprUpdateThen overwrites the value keyed by k, discards the outcome and
// continues with next.
// Fuses ExprPerform(Update[T]{Key: k, Value: v}) + ExprThen.
func ExprUpdateThen[T Enum, B any](k Key[Encoder[T], T], v T, next kont.Expr[B]) kont.Expr[B] {
	return exprThen(Update[T]{Key: k, Value: v}, next)
}

// ExprVisitBind visits the value keyed by k and passes the result to f.
// Fuses ExprPerform(Visit[T, O]{Key: k, Visitor: v}) + ExprBind.
func ExprVisitBind[T Enum, O, B any](k Key[Encoder[T], T], v *Visitor[T, O], f func(O) kont.Expr[B]) kont.Expr[B] {
	return exprBind(Visit[T, O]{Key: k, Visitor: v}, f)
}
