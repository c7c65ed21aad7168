// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package enco

import (
	"code.hybscloud.com/kont"
)

// EncodeBind stores v and passes its key to f.
// Fuses Perform(Encode[T]{Value: v}) + Bind.
func EncodeBind[T Enum, B any](v T, f func(Key[Encoder[T], T]) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Encode[T]{Value: v}), f)
}

// EncodeThen stores v, discards its key and continues with next.
// Fuses Perform(Encode[T]{Value: v}) + Then.
func EncodeThen[T Enum, B any](v T, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Encode[T]{Value: v}), next)
}

// DecodeBind reads the value keyed by k and passes the lookup to f.
// Fuses Perform(Decode[T]{Key: k}) + Bind.
func DecodeBind[T Enum, B any](k Key[Encoder[T], T], f func(kont.Either[RawKey, T]) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Decode[T]{Key: k}), f)
}

// UpdateBind overwrites the value keyed by k and passes the outcome to f.
// Fuses Perform(Update[T]{Key: k, Value: v}) + Bind.
func UpdateBind[T Enum, B any](k Key[Encoder[T], T], v T, f func(bool) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Update[T]{Key: k, Value: v}), f)
}

// UpdateThen overwrites the value keyed by k, discards the outcome and
// continues with next.
// Fuses Perform(Update[T]{Key: k, Value: v}) + Then.
func UpdateThen[T Enum, B any](k Key[Encoder[T], T], v T, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Update[T]{Key: k, Value: v}), next)
}

// VisitBind visits the value keyed by k and passes the result to f.
// Fuses Perform(Visit[T, O]{Key: k, Visitor: v}) + Bind.
func VisitBind[T Enum, O, B any](k Key[Encoder[T], T], v *Visitor[T, O], f func(O) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Visit[T, O]{Key: k, Visitor: v}), f)
}
