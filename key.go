// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package enco

import (
	"cmp"
	"strconv"
)

// Tag is the discriminant of a sum-type value among its declared variants.
// Tags are dense, starting at 0 in declaration order.
type Tag uint8

// Enum is implemented by sum-type values that an Encoder can store.
type Enum interface {
	EnumTag() Tag
}

const (
	// MaxVariants is the largest number of variants one Encoder can hold.
	MaxVariants = 1 << 8

	indexBits = 56
	indexMask = 1<<indexBits - 1

	// MaxIndex is the largest store index a RawKey can carry.
	MaxIndex uint64 = indexMask
)

// RawKey is the type-erased runtime identity of a stored item.
// The high 8 bits hold the variant tag, the low 56 bits the store index.
//
// A RawKey is inert data: it never validates the index it holds and is
// only meaningful relative to the Encoder instance that produced it.
type RawKey uint64

// NewRawKey packs tag and index into a RawKey.
// Index bits above MaxIndex are discarded.
func NewRawKey(tag Tag, index uint64) RawKey {
	return RawKey(uint64(tag)<<indexBits | index&indexMask)
}

// Tag returns the variant tag.
func (r RawKey) Tag() Tag {
	return Tag(r >> indexBits)
}

// Index returns the index within the variant's store.
func (r RawKey) Index() uint64 {
	return uint64(r) & indexMask
}

// Compare orders raw keys by tag, then by index.
func (r RawKey) Compare(o RawKey) int {
	return cmp.Compare(r, o)
}

// String formats the key as "tag:index".
func (r RawKey) String() string {
	buf := make([]byte, 0, 24)
	buf = strconv.AppendUint(buf, uint64(r.Tag()), 10)
	buf = append(buf, ':')
	buf = strconv.AppendUint(buf, r.Index(), 10)
	return string(buf)
}

// Key is a handle to an item of type T stored in an encoder of type E.
//
// The zero-length markers occupy no memory. They make Key[E1, T] and
// Key[E2, T] distinct underlying types, so a key minted by one codec does
// not convert to another, even explicitly. At runtime a Key is a RawKey:
// it is copyable, ordered, and does not keep the stored payload alive.
//
// Keys are produced only by Encoder.Encode, whose keys have type
// Key[Encoder[T], T]. The zero Key never resolves: index 0 is not issued.
type Key[E, T any] struct {
	_   [0]*E
	_   [0]*T
	raw RawKey
}

func keyFrom[E, T any](raw RawKey) Key[E, T] {
	return Key[E, T]{raw: raw}
}

// Raw returns the type-erased key.
func (k Key[E, T]) Raw() RawKey {
	return k.raw
}

// Tag returns the variant tag of the keyed item.
func (k Key[E, T]) Tag() Tag {
	return k.raw.Tag()
}

// Compare orders keys by their RawKey.
func (k Key[E, T]) Compare(o Key[E, T]) int {
	return k.raw.Compare(o.raw)
}

// Less reports whether k orders before o.
func (k Key[E, T]) Less(o Key[E, T]) bool {
	return k.raw < o.raw
}

func (k Key[E, T]) String() string {
	return k.raw.String()
}
