// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package enco

import "iter"

const (
	// DefaultChunkBits is the default log2 of slots per store chunk.
	DefaultChunkBits = 10

	minChunkBits = 4
	maxChunkBits = 24
)

// Store is a compact append-only array holding the payloads of one variant.
//
// Slots live in fixed-size chunks that are never reallocated, so a pointer
// returned by GetMut stays valid across later appends. A slot's index never
// changes. Index 0 is never issued, so a zero index always resolves to
// absent. Reset forgets every slot and moves the base past all issued
// indices, so stale indices resolve to absent instead of aliasing new data.
//
// A Store is not safe for concurrent use; see Shared and Pipe.
type Store[P any] struct {
	chunks [][]P
	bits   uint
	mask   uint64
	base   uint64 // first index issued since the last Reset, at least 1
	n      uint64 // slots in use since base
}

// NewStore creates an empty store with 1<<chunkBits slots per chunk.
// A chunkBits of 0 selects DefaultChunkBits.
func NewStore[P any](chunkBits uint) *Store[P] {
	s := &Store[P]{}
	s.init(chunkBits)
	return s
}

func (s *Store[P]) init(chunkBits uint) {
	s.bits = clampChunkBits(chunkBits)
	s.mask = 1<<s.bits - 1
	if s.base == 0 {
		s.base = 1
	}
}

func clampChunkBits(bits uint) uint {
	switch {
	case bits == 0:
		return DefaultChunkBits
	case bits < minChunkBits:
		return minChunkBits
	case bits > maxChunkBits:
		return maxChunkBits
	}
	return bits
}

// Append stores p and returns its index.
// Panics when the 56-bit index space is exhausted.
func (s *Store[P]) Append(p P) uint64 {
	idx := s.base + s.n
	if idx > MaxIndex {
		panic("enco: store index space exhausted")
	}
	c := s.n >> s.bits
	if c == uint64(len(s.chunks)) {
		s.grow()
	}
	s.chunks[c][s.n&s.mask] = p
	s.n++
	return idx
}

// grow adds one chunk. Existing chunks are never copied.
func (s *Store[P]) grow() {
	s.chunks = append(s.chunks, make([]P, 1<<s.bits))
}

// reserve allocates chunks until at least n slots fit without growing.
func (s *Store[P]) reserve(n int) {
	for uint64(len(s.chunks))<<s.bits < uint64(n) {
		s.grow()
	}
}

// slot resolves index i to its position, or false if i is out of range.
func (s *Store[P]) slot(i uint64) (*P, bool) {
	if i < s.base || i-s.base >= s.n {
		return nil, false
	}
	off := i - s.base
	return &s.chunks[off>>s.bits][off&s.mask], true
}

// Get returns a copy of the payload at index i.
func (s *Store[P]) Get(i uint64) (P, bool) {
	p, ok := s.slot(i)
	if !ok {
		var zero P
		return zero, false
	}
	return *p, true
}

// GetMut returns a pointer to the payload at index i.
// The caller must hold exclusive access to the store while using it.
func (s *Store[P]) GetMut(i uint64) (*P, bool) {
	return s.slot(i)
}

// Len returns the number of live slots.
func (s *Store[P]) Len() int {
	return int(s.n)
}

// Cap returns the number of slots reserved by allocated chunks.
func (s *Store[P]) Cap() int {
	return len(s.chunks) << s.bits
}

// Chunks returns the number of allocated chunks.
func (s *Store[P]) Chunks() int {
	return len(s.chunks)
}

// All yields every live slot in index order.
// The store must not be appended to during iteration.
func (s *Store[P]) All() iter.Seq2[uint64, *P] {
	return func(yield func(uint64, *P) bool) {
		for off := uint64(0); off < s.n; off++ {
			if !yield(s.base+off, &s.chunks[off>>s.bits][off&s.mask]) {
				return
			}
		}
	}
}

// Reset forgets every slot. Indices issued before the call are never
// reissued and resolve to absent afterwards.
//
// Chunks are released rather than reused, so pointers obtained before the
// reset keep observing the old payloads.
func (s *Store[P]) Reset() {
	s.base += s.n
	s.n = 0
	clear(s.chunks)
	s.chunks = s.chunks[:0]
}
