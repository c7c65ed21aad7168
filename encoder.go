// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package enco

import (
	"errors"
	"fmt"
	"iter"

	"code.hybscloud.com/atomix"
	"go.uber.org/zap"
)

// Serial identifies an Encoder instance. New hands out serials in
// increasing order, starting at 1.
type Serial = uint32

var serials atomix.Uint32

var (
	// ErrNoVariants is returned by New when the variant table is empty.
	ErrNoVariants = errors.New("enco: no variants declared")
	// ErrTooManyVariants is returned by New for more than MaxVariants variants.
	ErrTooManyVariants = errors.New("enco: too many variants")
	// ErrNilVariant is returned by New when the table holds a nil entry.
	ErrNilVariant = errors.New("enco: nil variant")
	// ErrDuplicateTag is returned by New when two variants share a tag.
	ErrDuplicateTag = errors.New("enco: duplicate variant tag")
	// ErrTagGap is returned by New when the tags are not exactly 0..n-1.
	ErrTagGap = errors.New("enco: variant tags are not dense")
)

// Encoder stores sum-type values in one compact store per variant and
// hands out typed keys to them.
//
// The set of variant stores is fixed by New; stores only grow in length.
// An Encoder exclusively owns every payload it stores.
//
// Encoder is not safe for concurrent use. Decode and DecodeVisit may run
// concurrently with each other, but not with Encode, DecodeMut, Mut
// methods or Reset. Use Shared for locking, or Pipe to confine the
// Encoder to one goroutine and pass keys around instead.
//
// Keys are only meaningful to the Encoder that produced them. A key from
// another Encoder[T] type-checks but decodes to an unspecified result;
// keeping keys with their encoder is the caller's responsibility.
type Encoder[T Enum] struct {
	slots  []slot[T]
	serial Serial
	logger *zap.Logger
}

// New creates an Encoder for the variants of T.
// Each variant's tag must be unique and the tags must cover 0..len(cases)-1.
func New[T Enum](cases []Variant[T], opts ...Option) (*Encoder[T], error) {
	if len(cases) == 0 {
		return nil, ErrNoVariants
	}
	if len(cases) > MaxVariants {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyVariants, len(cases), MaxVariants)
	}
	byTag := make([]Variant[T], len(cases))
	for i, c := range cases {
		if c == nil {
			return nil, fmt.Errorf("%w: position %d", ErrNilVariant, i)
		}
		tag := int(c.Tag())
		if tag >= len(cases) {
			return nil, fmt.Errorf("%w: tag %d with %d variants", ErrTagGap, tag, len(cases))
		}
		if byTag[tag] != nil {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateTag, tag)
		}
		byTag[tag] = c
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	serial := serials.Add(1)
	o.logger = o.logger.With(zap.Uint32("serial", serial))

	slots := make([]slot[T], len(byTag))
	for tag, c := range byTag {
		slots[tag] = c.newSlot(&o)
	}

	o.logger.Debug("encoder created",
		zap.Int("variants", len(slots)),
		zap.Uint("chunk_bits", o.chunkBits),
		zap.Int("capacity", o.capacity),
	)
	return &Encoder[T]{slots: slots, serial: serial, logger: o.logger}, nil
}

// MustNew is like New but panics on an invalid variant table.
func MustNew[T Enum](cases []Variant[T], opts ...Option) *Encoder[T] {
	e, err := New(cases, opts...)
	if err != nil {
		panic(err)
	}
	return e
}

func (e *Encoder[T]) slotOf(tag Tag) slot[T] {
	if int(tag) >= len(e.slots) {
		return nil
	}
	return e.slots[tag]
}

// Encode appends v to the store of its variant and returns its key.
// Encode never fails; a value whose tag was not declared, or whose payload
// does not match its declared case, is a programming error and panics.
func (e *Encoder[T]) Encode(v T) Key[Encoder[T], T] {
	tag := v.EnumTag()
	s := e.slotOf(tag)
	if s == nil {
		panic(fmt.Sprintf("enco: undeclared variant tag %d", tag))
	}
	return keyFrom[Encoder[T], T](NewRawKey(tag, s.push(v)))
}

// Decode returns the value keyed by k.
// It reports false for out-of-range and stale keys.
func (e *Encoder[T]) Decode(k Key[Encoder[T], T]) (T, bool) {
	s := e.slotOf(k.Tag())
	if s == nil {
		var zero T
		return zero, false
	}
	return s.load(k.raw.Index())
}

// DecodeMut returns an exclusive view of the value keyed by k.
// The view must not be used concurrently with any other access to e.
func (e *Encoder[T]) DecodeMut(k Key[Encoder[T], T]) (Mut[T], bool) {
	s := e.slotOf(k.Tag())
	if s == nil || !s.live(k.raw.Index()) {
		return Mut[T]{}, false
	}
	return Mut[T]{s: s, raw: k.raw}, true
}

// Len returns the number of live items across all variants.
func (e *Encoder[T]) Len() int {
	n := 0
	for _, s := range e.slots {
		n += s.size()
	}
	return n
}

// LenOf returns the number of live items of variant tag.
func (e *Encoder[T]) LenOf(tag Tag) int {
	s := e.slotOf(tag)
	if s == nil {
		return 0
	}
	return s.size()
}

// Chunks returns the number of chunks allocated across all stores.
func (e *Encoder[T]) Chunks() int {
	n := 0
	for _, s := range e.slots {
		n += s.chunks()
	}
	return n
}

// Variants returns the number of declared variants.
func (e *Encoder[T]) Variants() int {
	return len(e.slots)
}

// Serial returns the encoder's instance serial.
func (e *Encoder[T]) Serial() Serial {
	return e.serial
}

// Reset drops every stored item. All keys issued before the call become
// invalid: decoding them reports absence, and they are never reissued.
func (e *Encoder[T]) Reset() {
	n := e.Len()
	for _, s := range e.slots {
		s.reset()
	}
	e.logger.Debug("encoder reset", zap.Int("items", n))
}

// All yields every live item with its key, in key order.
// The encoder must not be modified during iteration.
func (e *Encoder[T]) All() iter.Seq2[Key[Encoder[T], T], T] {
	return func(yield func(Key[Encoder[T], T], T) bool) {
		for tag, s := range e.slots {
			more := s.each(func(i uint64, v T) bool {
				return yield(keyFrom[Encoder[T], T](NewRawKey(Tag(tag), i)), v)
			})
			if !more {
				return
			}
		}
	}
}

// Mut is an exclusive, in-place view of one stored value.
// It stays bound to its slot; after a Reset every method reports absence.
type Mut[T Enum] struct {
	s   slot[T]
	raw RawKey
}

// Raw returns the key of the viewed slot.
func (m Mut[T]) Raw() RawKey {
	return m.raw
}

// Tag returns the variant tag of the viewed value.
func (m Mut[T]) Tag() Tag {
	return m.raw.Tag()
}

// Load returns the current value of the slot.
func (m Mut[T]) Load() (T, bool) {
	if m.s == nil {
		var zero T
		return zero, false
	}
	return m.s.load(m.raw.Index())
}

// Store overwrites the slot with v. It reports false, leaving the slot
// unchanged, if v is a different variant or the slot is gone.
func (m Mut[T]) Store(v T) bool {
	if m.s == nil || v.EnumTag() != m.raw.Tag() {
		return false
	}
	return m.s.replace(m.raw.Index(), v)
}

// Payload returns a pointer to the stored payload, or nil if the slot is
// gone. Use MutPayload for a typed pointer.
func (m Mut[T]) Payload() any {
	if m.s == nil {
		return nil
	}
	p, _ := m.s.ptr(m.raw.Index())
	return p
}

// MutPayload returns the payload viewed by m as a *P.
// It reports false if the slot is gone or does not hold a P.
func MutPayload[P any, T Enum](m Mut[T]) (*P, bool) {
	p, ok := m.Payload().(*P)
	return p, ok
}
