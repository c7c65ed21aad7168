// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package enco

import "fmt"

// arm handles one variant.
// run reports false when the slot is gone; fits reports whether the arm's
// payload type matches s.
type arm[T Enum, O any] struct {
	run  func(s slot[T], i uint64) (O, bool)
	fits func(s slot[T]) bool
}

// Visitor is a tag-indexed table of per-variant handlers producing O.
//
// Each handler receives a pointer to the payload in place; no T value is
// built. Handlers must not retain the pointer or append to the encoder.
// Every Visitor carries an absent handler, which runs when a key no
// longer resolves to a slot.
//
// A Visitor is immutable once populated and may be shared across
// goroutines.
type Visitor[T Enum, O any] struct {
	arms   []arm[T, O]
	absent func(RawKey) O
}

// NewVisitor creates a Visitor whose absent handler is absent.
func NewVisitor[T Enum, O any](absent func(RawKey) O) *Visitor[T, O] {
	if absent == nil {
		panic("enco: visitor requires an absent handler")
	}
	return &Visitor[T, O]{absent: absent}
}

// On registers f as the handler for variant c and returns v.
// A later registration for the same tag replaces the earlier one.
func On[T Enum, P, O any](v *Visitor[T, O], c *Case[T, P], f func(*P) O) *Visitor[T, O] {
	if int(c.tag) >= len(v.arms) {
		arms := make([]arm[T, O], int(c.tag)+1)
		copy(arms, v.arms)
		v.arms = arms
	}
	tag := c.tag
	v.arms[tag] = arm[T, O]{
		run: func(s slot[T], i uint64) (O, bool) {
			cs, ok := s.(*caseSlot[T, P])
			if !ok {
				if s.live(i) {
					panic(fmt.Sprintf("enco: visitor handler for variant %d expects a different payload", tag))
				}
				var zero O
				return zero, false
			}
			p, ok := cs.store.slot(i)
			if !ok {
				var zero O
				return zero, false
			}
			return f(p), true
		},
		fits: func(s slot[T]) bool {
			_, ok := s.(*caseSlot[T, P])
			return ok
		},
	}
	return v
}

// Covers reports whether v has a handler for every variant of e, each
// expecting the payload type e stores for that variant.
func (v *Visitor[T, O]) Covers(e *Encoder[T]) bool {
	if len(v.arms) < len(e.slots) {
		return false
	}
	for tag := range e.slots {
		if a := v.arms[tag]; a.run == nil || !a.fits(e.slots[tag]) {
			return false
		}
	}
	return true
}

// DecodeVisit dispatches the payload keyed by k to the handler of its
// variant and returns the handler's result. When k does not resolve, it
// returns the visitor's absent result instead.
//
// A live key whose variant has no handler is a programming error and
// panics.
func DecodeVisit[T Enum, O any](e *Encoder[T], k Key[Encoder[T], T], v *Visitor[T, O]) O {
	raw := k.Raw()
	s := e.slotOf(raw.Tag())
	if s == nil {
		return v.absent(raw)
	}
	tag := raw.Tag()
	if int(tag) >= len(v.arms) || v.arms[tag].run == nil {
		if !s.live(raw.Index()) {
			return v.absent(raw)
		}
		panic(fmt.Sprintf("enco: visitor has no handler for variant %d", tag))
	}
	out, ok := v.arms[tag].run(s, raw.Index())
	if !ok {
		return v.absent(raw)
	}
	return out
}
