// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package enco

import "sync"

// Shared guards an Encoder with a single-writer, multi-reader lock.
// Encode, Modify and Reset take the write lock; Decode, Len and
// VisitShared take the read lock.
type Shared[T Enum] struct {
	mu  sync.RWMutex
	enc *Encoder[T]
}

// NewShared wraps enc. The caller must not use enc directly afterwards.
func NewShared[T Enum](enc *Encoder[T]) *Shared[T] {
	return &Shared[T]{enc: enc}
}

// Encode stores v and returns its key.
func (s *Shared[T]) Encode(v T) Key[Encoder[T], T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enc.Encode(v)
}

// Decode returns the value keyed by k.
func (s *Shared[T]) Decode(k Key[Encoder[T], T]) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enc.Decode(k)
}

// Modify runs f with an exclusive view of the value keyed by k.
// The view is valid only inside f. Modify reports false, without calling
// f, if k does not resolve.
func (s *Shared[T]) Modify(k Key[Encoder[T], T], f func(Mut[T])) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.enc.DecodeMut(k)
	if !ok {
		return false
	}
	f(m)
	return true
}

// Len returns the number of live items.
func (s *Shared[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enc.Len()
}

// Reset drops every stored item and invalidates all issued keys.
func (s *Shared[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enc.Reset()
}

// VisitShared runs DecodeVisit under the read lock.
func VisitShared[T Enum, O any](s *Shared[T], k Key[Encoder[T], T], v *Visitor[T, O]) O {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return DecodeVisit(s.enc, k, v)
}
