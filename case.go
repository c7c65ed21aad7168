// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package enco

import (
	"fmt"

	"go.uber.org/zap"
)

// Variant describes one declared case of the sum type T.
// Variants are built with NewCase, CaseOf or UnitCase and passed to New.
// A code generator emits one Variant per enum case.
type Variant[T Enum] interface {
	// Tag returns the variant's discriminant.
	Tag() Tag

	newSlot(o *options) slot[T]
}

// slot is the type-erased view of one variant store inside an Encoder.
type slot[T Enum] interface {
	push(v T) uint64
	load(i uint64) (T, bool)
	replace(i uint64, v T) bool
	ptr(i uint64) (any, bool)
	live(i uint64) bool
	each(yield func(uint64, T) bool) bool
	size() int
	chunks() int
	reset()
}

// Case binds variant tag to a payload of type P.
//
// extract borrows the payload out of a T holding this variant; project
// rebuilds the T view from a stored payload.
type Case[T Enum, P any] struct {
	tag     Tag
	extract func(T) (P, bool)
	project func(P) T
}

// NewCase declares a variant whose payload P is mapped to and from T by
// extract and project.
func NewCase[T Enum, P any](tag Tag, extract func(T) (P, bool), project func(P) T) *Case[T, P] {
	if extract == nil || project == nil {
		panic("enco: NewCase requires extract and project")
	}
	return &Case[T, P]{tag: tag, extract: extract, project: project}
}

// CaseOf declares a variant whose concrete type P implements T.
// The payload is stored as a P; no conversion functions are needed.
func CaseOf[T Enum, P any](tag Tag) *Case[T, P] {
	var zero P
	if _, ok := any(zero).(T); !ok {
		panic(fmt.Sprintf("enco: %T does not implement the sum type", zero))
	}
	return &Case[T, P]{
		tag: tag,
		extract: func(v T) (P, bool) {
			p, ok := any(v).(P)
			return p, ok
		},
		project: func(p P) T {
			return any(p).(T)
		},
	}
}

// UnitCase declares a payload-free variant. Its store only counts slots;
// every decode yields value.
func UnitCase[T Enum](tag Tag, value T) *Case[T, struct{}] {
	return &Case[T, struct{}]{
		tag: tag,
		extract: func(v T) (struct{}, bool) {
			return struct{}{}, v.EnumTag() == tag
		},
		project: func(struct{}) T {
			return value
		},
	}
}

// Tag returns the variant's discriminant.
func (c *Case[T, P]) Tag() Tag {
	return c.tag
}

func (c *Case[T, P]) newSlot(o *options) slot[T] {
	s := &caseSlot[T, P]{c: c, logger: o.logger}
	s.store.init(o.chunkBits)
	if o.capacity > 0 {
		s.store.reserve(o.capacity)
	}
	return s
}

// resolve finds c's store in e for key k.
// It fails when k carries another tag or e was built from another table.
func (c *Case[T, P]) resolve(e *Encoder[T], k Key[Encoder[T], T]) (*caseSlot[T, P], bool) {
	raw := k.Raw()
	if raw.Tag() != c.tag {
		return nil, false
	}
	s, ok := e.slotOf(raw.Tag()).(*caseSlot[T, P])
	if !ok || s.c != c {
		return nil, false
	}
	return s, true
}

// Decode returns a copy of the payload keyed by k, typed as P.
func (c *Case[T, P]) Decode(e *Encoder[T], k Key[Encoder[T], T]) (P, bool) {
	s, ok := c.resolve(e, k)
	if !ok {
		var zero P
		return zero, false
	}
	return s.store.Get(k.Raw().Index())
}

// DecodeMut returns a pointer to the payload keyed by k, typed as P.
// The caller must hold exclusive access to e while using it.
func (c *Case[T, P]) DecodeMut(e *Encoder[T], k Key[Encoder[T], T]) (*P, bool) {
	s, ok := c.resolve(e, k)
	if !ok {
		return nil, false
	}
	return s.store.GetMut(k.Raw().Index())
}

// caseSlot is the per-encoder store of one Case.
type caseSlot[T Enum, P any] struct {
	c      *Case[T, P]
	store  Store[P]
	logger *zap.Logger
}

func (s *caseSlot[T, P]) push(v T) uint64 {
	p, ok := s.c.extract(v)
	if !ok {
		panic(fmt.Sprintf("enco: value %T does not match variant %d", v, s.c.tag))
	}
	grow := s.store.n>>s.store.bits == uint64(len(s.store.chunks))
	i := s.store.Append(p)
	if grow {
		s.logger.Debug("store grew",
			zap.Uint8("tag", uint8(s.c.tag)),
			zap.Int("chunk", len(s.store.chunks)-1),
			zap.Int("items", s.store.Len()),
		)
	}
	return i
}

func (s *caseSlot[T, P]) load(i uint64) (T, bool) {
	p, ok := s.store.slot(i)
	if !ok {
		var zero T
		return zero, false
	}
	return s.c.project(*p), true
}

func (s *caseSlot[T, P]) replace(i uint64, v T) bool {
	p, ok := s.store.slot(i)
	if !ok {
		return false
	}
	np, ok := s.c.extract(v)
	if !ok {
		return false
	}
	*p = np
	return true
}

func (s *caseSlot[T, P]) ptr(i uint64) (any, bool) {
	p, ok := s.store.slot(i)
	if !ok {
		return nil, false
	}
	return p, true
}

func (s *caseSlot[T, P]) live(i uint64) bool {
	_, ok := s.store.slot(i)
	return ok
}

func (s *caseSlot[T, P]) each(yield func(uint64, T) bool) bool {
	for i, p := range s.store.All() {
		if !yield(i, s.c.project(*p)) {
			return false
		}
	}
	return true
}

func (s *caseSlot[T, P]) size() int   { return s.store.Len() }
func (s *caseSlot[T, P]) chunks() int { return s.store.Chunks() }
func (s *caseSlot[T, P]) reset()      { s.store.Reset() }
