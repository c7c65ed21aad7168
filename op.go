// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package enco

import (
	"code.hybscloud.com/kont"
)

// Encode is the effect operation for storing a value.
// Perform(Encode[T]{Value: v}) resumes with the key of v.
type Encode[T Enum] struct {
	kont.Phantom[Key[Encoder[T], T]]
	Value T
}

// DispatchCodec handles Encode on the encoder.
func (o Encode[T]) DispatchCodec(e *Encoder[T]) kont.Resumed {
	return e.Encode(o.Value)
}

// Decode is the effect operation for reading a stored value.
// Perform(Decode[T]{Key: k}) resumes with Right(value), or Left(raw key)
// when k does not resolve.
type Decode[T Enum] struct {
	kont.Phantom[kont.Either[RawKey, T]]
	Key Key[Encoder[T], T]
}

// DispatchCodec handles Decode on the encoder.
func (o Decode[T]) DispatchCodec(e *Encoder[T]) kont.Resumed {
	if v, ok := e.Decode(o.Key); ok {
		return kont.Right[RawKey](v)
	}
	return kont.Left[RawKey, T](o.Key.Raw())
}

// Update is the effect operation for overwriting a stored value in place.
// Perform(Update[T]{Key: k, Value: v}) resumes with true if the slot
// exists and v is the same variant.
type Update[T Enum] struct {
	kont.Phantom[bool]
	Key   Key[Encoder[T], T]
	Value T
}

// DispatchCodec handles Update on the encoder.
func (o Update[T]) DispatchCodec(e *Encoder[T]) kont.Resumed {
	m, ok := e.DecodeMut(o.Key)
	return ok && m.Store(o.Value)
}

// Visit is the effect operation for in-place visiting.
// Perform(Visit[T, O]{Key: k, Visitor: v}) resumes with DecodeVisit's result.
type Visit[T Enum, O any] struct {
	kont.Phantom[O]
	Key     Key[Encoder[T], T]
	Visitor *Visitor[T, O]
}

// DispatchCodec handles Visit on the encoder.
func (o Visit[T, O]) DispatchCodec(e *Encoder[T]) kont.Resumed {
	return DecodeVisit(e, o.Key, o.Visitor)
}

// codecDispatcher is the structural interface for codec operations over T.
// DispatchCodec never blocks.
type codecDispatcher[T Enum] interface {
	DispatchCodec(e *Encoder[T]) kont.Resumed
}

// codecHandler implements kont.Handler for codec effects.
// Value type: passed to evalFrames on the stack, avoiding heap allocation.
// R is the result type in kont.Handler[H, R]; the handler instance is
// bound to one protocol result type and stores nothing of type R.
type codecHandler[T Enum, R any] struct {
	enc *Encoder[T]
}

// Dispatch implements kont.Handler via structural interface assertion.
func (h codecHandler[T, R]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	cop, ok := op.(codecDispatcher[T])
	if !ok {
		panic("enco: unhandled effect in codecHandler")
	}
	return cop.DispatchCodec(h.enc), true
}
