// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package enco_test

import (
	"reflect"
	"slices"
	"testing"
	"testing/quick"
	"unsafe"

	"code.hybscloud.com/enco"
)

func TestRawKeyRoundTrip(t *testing.T) {
	f := func(tag uint8, index uint64) bool {
		index &= enco.MaxIndex
		r := enco.NewRawKey(enco.Tag(tag), index)
		return r.Tag() == enco.Tag(tag) && r.Index() == index
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestRawKeyMasksIndex(t *testing.T) {
	r := enco.NewRawKey(3, ^uint64(0))
	if r.Tag() != 3 {
		t.Fatalf("tag got %d, want 3", r.Tag())
	}
	if r.Index() != enco.MaxIndex {
		t.Fatalf("index got %d, want %d", r.Index(), enco.MaxIndex)
	}
}

func TestRawKeyOrder(t *testing.T) {
	a0 := enco.NewRawKey(0, 7)
	a1 := enco.NewRawKey(0, 8)
	b0 := enco.NewRawKey(1, 0)
	if a0.Compare(a1) >= 0 {
		t.Fatalf("%v should order before %v", a0, a1)
	}
	if a1.Compare(b0) >= 0 {
		t.Fatalf("%v should order before %v", a1, b0)
	}
	if a0.Compare(a0) != 0 {
		t.Fatalf("%v should equal itself", a0)
	}
	if got := b0.String(); got != "1:0" {
		t.Fatalf("String got %q, want %q", got, "1:0")
	}
}

func TestKeyIsRawSized(t *testing.T) {
	if got := unsafe.Sizeof(itemKey{}); got != unsafe.Sizeof(enco.RawKey(0)) {
		t.Fatalf("Key size got %d, want %d", got, unsafe.Sizeof(enco.RawKey(0)))
	}
}

type otherEncoder struct{}

func TestKeyTypesDoNotConvert(t *testing.T) {
	mine := reflect.TypeFor[itemKey]()
	foreignEncoder := reflect.TypeFor[enco.Key[otherEncoder, item]]()
	foreignItem := reflect.TypeFor[enco.Key[enco.Encoder[item], A]]()
	if mine.ConvertibleTo(foreignEncoder) {
		t.Fatalf("%v converts to %v", mine, foreignEncoder)
	}
	if mine.ConvertibleTo(foreignItem) {
		t.Fatalf("%v converts to %v", mine, foreignItem)
	}
	if !mine.Comparable() {
		t.Fatalf("%v is not comparable", mine)
	}
}

func TestKeyOrderFollowsRaw(t *testing.T) {
	e := newEncoder(t)
	keys := []itemKey{
		e.Encode(C{}),
		e.Encode(B("x")),
		e.Encode(A(1)),
		e.Encode(A(2)),
	}
	slices.SortFunc(keys, func(a, b itemKey) int { return a.Compare(b) })
	for i := 1; i < len(keys); i++ {
		if !keys[i-1].Less(keys[i]) {
			t.Fatalf("keys not strictly ordered at %d: %v, %v", i, keys[i-1], keys[i])
		}
		if keys[i-1].Raw() >= keys[i].Raw() {
			t.Fatalf("raw keys disagree with key order at %d", i)
		}
	}
	if keys[0].Tag() != 0 || keys[len(keys)-1].Tag() != 2 {
		t.Fatalf("tags not ordered: first %d, last %d", keys[0].Tag(), keys[len(keys)-1].Tag())
	}
}

func TestKeysUsableAsMapKeys(t *testing.T) {
	e := newEncoder(t)
	seen := map[itemKey]string{}
	for _, v := range []item{A(1), A(1), B("x"), C{}, C{}} {
		seen[e.Encode(v)] = describe(v)
	}
	if len(seen) != 5 {
		t.Fatalf("distinct keys got %d, want 5", len(seen))
	}
}
