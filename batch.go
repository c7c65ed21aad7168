// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package enco

import (
	"code.hybscloud.com/kont"
)

// EncodeAll is a Cont-world protocol that encodes values in order and
// returns their keys.
func EncodeAll[T Enum](values []T) kont.Eff[[]Key[Encoder[T], T]] {
	return encodeFrom(values, make([]Key[Encoder[T], T], 0, len(values)))
}

func encodeFrom[T Enum](rest []T, acc []Key[Encoder[T], T]) kont.Eff[[]Key[Encoder[T], T]] {
	if len(rest) == 0 {
		return kont.Pure(acc)
	}
	return EncodeBind(rest[0], func(k Key[Encoder[T], T]) kont.Eff[[]Key[Encoder[T], T]] {
		return encodeFrom(rest[1:], append(acc, k))
	})
}

// ExprEncodeAll is the Expr-world form of EncodeAll.
func ExprEncodeAll[T Enum](values []T) kont.Expr[[]Key[Encoder[T], T]] {
	return exprEncodeFrom(values, make([]Key[Encoder[T], T], 0, len(values)))
}

func exprEncodeFrom[T Enum](rest []T, acc []Key[Encoder[T], T]) kont.Expr[[]Key[Encoder[T], T]] {
	if len(rest) == 0 {
		return kont.ExprReturn(acc)
	}
	return ExprEncodeBind(rest[0], func(k Key[Encoder[T], T]) kont.Expr[[]Key[Encoder[T], T]] {
		return exprEncodeFrom(rest[1:], append(acc, k))
	})
}

// DecodeAll is a Cont-world protocol that looks up every key in order.
// Each lookup is Right(value), or Left(raw key) when absent.
func DecodeAll[T Enum](keys []Key[Encoder[T], T]) kont.Eff[[]kont.Either[RawKey, T]] {
	return decodeFrom(keys, make([]kont.Either[RawKey, T], 0, len(keys)))
}

func decodeFrom[T Enum](rest []Key[Encoder[T], T], acc []kont.Either[RawKey, T]) kont.Eff[[]kont.Either[RawKey, T]] {
	if len(rest) == 0 {
		return kont.Pure(acc)
	}
	return DecodeBind(rest[0], func(r kont.Either[RawKey, T]) kont.Eff[[]kont.Either[RawKey, T]] {
		return decodeFrom(rest[1:], append(acc, r))
	})
}

// ExprDecodeAll is the Expr-world form of DecodeAll.
func ExprDecodeAll[T Enum](keys []Key[Encoder[T], T]) kont.Expr[[]kont.Either[RawKey, T]] {
	return exprDecodeFrom(keys, make([]kont.Either[RawKey, T], 0, len(keys)))
}

func exprDecodeFrom[T Enum](rest []Key[Encoder[T], T], acc []kont.Either[RawKey, T]) kont.Expr[[]kont.Either[RawKey, T]] {
	if len(rest) == 0 {
		return kont.ExprReturn(acc)
	}
	return ExprDecodeBind(rest[0], func(r kont.Either[RawKey, T]) kont.Expr[[]kont.Either[RawKey, T]] {
		return exprDecodeFrom(rest[1:], append(acc, r))
	})
}

// Loop runs a recursive codec protocol (Cont-world).
// step returns Left(nextState) to continue or Right(result) to finish.
func Loop[S, A any](initial S, step func(S) kont.Eff[kont.Either[S, A]]) kont.Eff[A] {
	return kont.Bind(step(initial), func(e kont.Either[S, A]) kont.Eff[A] {
		if next, ok := e.GetLeft(); ok {
			return Loop(next, step)
		}
		result, _ := e.GetRight()
		return kont.Pure(result)
	})
}

// ExprLoop runs a recursive codec protocol (Expr-world).
// step returns Left(nextState) to continue or Right(result) to finish.
// A step that completes without effects is unrolled in place.
func ExprLoop[S, A any](initial S, step func(S) kont.Expr[kont.Either[S, A]]) kont.Expr[A] {
	m := step(initial)
	if _, ok := m.Frame.(kont.ReturnFrame); ok {
		if next, ok := m.Value.GetLeft(); ok {
			return ExprLoop(next, step)
		}
		result, _ := m.Value.GetRight()
		return kont.ExprReturn(result)
	}
	bf := kont.AcquireBindFrame()
	bf.F = func(a kont.Erased) kont.Expr[kont.Erased] {
		e := a.(kont.Either[S, A])
		if next, ok := e.GetLeft(); ok {
			r := ExprLoop(next, step)
			return kont.Expr[kont.Erased]{Value: kont.Erased(r.Value), Frame: r.Frame}
		}
		result, _ := e.GetRight()
		return kont.Expr[kont.Erased]{Value: kont.Erased(result), Frame: kont.ReturnFrame{}}
	}
	bf.Next = kont.ReturnFrame{}
	var zero A
	return kont.Expr[A]{Value: zero, Frame: kont.ChainFrames(m.Frame, bf)}
}

// whileState is the loop state of EncodeWhile.
type whileState[T Enum] struct {
	rest []T
	acc  []Key[Encoder[T], T]
}

// EncodeWhile encodes values in order while keep, applied to the visited
// payload of each freshly stored value, reports true. It returns the keys
// of every stored value, including the one that stopped the loop.
func EncodeWhile[T Enum, O any](values []T, v *Visitor[T, O], keep func(O) bool) kont.Eff[[]Key[Encoder[T], T]] {
	return Loop(whileState[T]{rest: values}, func(s whileState[T]) kont.Eff[kont.Either[whileState[T], []Key[Encoder[T], T]]] {
		if len(s.rest) == 0 {
			return kont.Pure(kont.Right[whileState[T]](s.acc))
		}
		return EncodeBind(s.rest[0], func(k Key[Encoder[T], T]) kont.Eff[kont.Either[whileState[T], []Key[Encoder[T], T]]] {
			acc := append(s.acc, k)
			return VisitBind(k, v, func(o O) kont.Eff[kont.Either[whileState[T], []Key[Encoder[T], T]]] {
				if !keep(o) {
					return kont.Pure(kont.Right[whileState[T]](acc))
				}
				return kont.Pure(kont.Left[whileState[T], []Key[Encoder[T], T]](whileState[T]{rest: s.rest[1:], acc: acc}))
			})
		})
	})
}
