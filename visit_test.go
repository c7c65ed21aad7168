// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package enco_test

import (
	"testing"
	"testing/quick"

	"code.hybscloud.com/enco"
)

// TestPropertyVisitMatchesDecode proves that visiting a key in place gives
// the same result as decoding it and dispatching on the materialised value.
func TestPropertyVisitMatchesDecode(t *testing.T) {
	e := newEncoder(t, enco.WithChunkBits(4))
	v := describeVisitor()
	f := func(kind uint8, n int32, s string) bool {
		k := e.Encode(makeItem(kind, n, s))
		decoded, ok := e.Decode(k)
		if !ok {
			return false
		}
		return enco.DecodeVisit(e, k, v) == describe(decoded)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestVisitSelectsVariantHandler(t *testing.T) {
	e := newEncoder(t)
	var calls [3]int
	v := enco.NewVisitor[item](func(enco.RawKey) int { return -1 })
	enco.On(v, caseA, func(p *A) int { calls[0]++; return int(*p) })
	enco.On(v, caseB, func(p *string) int { calls[1]++; return len(*p) })
	enco.On(v, caseC, func(*struct{}) int { calls[2]++; return 0 })

	if got := enco.DecodeVisit(e, e.Encode(B("four")), v); got != 4 {
		t.Fatalf("B handler got %d, want 4", got)
	}
	if got := enco.DecodeVisit(e, e.Encode(A(-3)), v); got != -3 {
		t.Fatalf("A handler got %d, want -3", got)
	}
	if calls != [3]int{1, 1, 0} {
		t.Fatalf("handler calls got %v, want [1 1 0]", calls)
	}
}

func TestVisitPayloadIsInPlace(t *testing.T) {
	e := newEncoder(t)
	k := e.Encode(A(1))
	addr := enco.NewVisitor[item](func(enco.RawKey) *A { return nil })
	enco.On(addr, caseA, func(p *A) *A { return p })
	enco.On(addr, caseB, func(*string) *A { return nil })
	enco.On(addr, caseC, func(*struct{}) *A { return nil })

	p1 := enco.DecodeVisit(e, k, addr)
	p2, _ := caseA.DecodeMut(e, k)
	if p1 == nil || p1 != p2 {
		t.Fatalf("visit pointer %p differs from store slot %p", p1, p2)
	}
}

func TestVisitAbsentReceivesRawKey(t *testing.T) {
	e := newEncoder(t)
	e.Encode(C{})
	missing := enco.NewRawKey(caseC.Tag(), 2)
	v := enco.NewVisitor[item](func(r enco.RawKey) enco.RawKey { return r })
	enco.On(v, caseC, func(*struct{}) enco.RawKey { return 0 })
	if got := enco.DecodeVisit(e, enco.ForgeKey[item](missing), v); got != missing {
		t.Fatalf("absent handler got %v, want %v", got, missing)
	}
}

func TestVisitMissingHandler(t *testing.T) {
	e := newEncoder(t)
	partial := enco.NewVisitor[item](func(enco.RawKey) string { return "absent" })
	enco.On(partial, caseA, func(*A) string { return "A" })

	if partial.Covers(e) {
		t.Fatal("partial visitor claims to cover all variants")
	}
	if !describeVisitor().Covers(e) {
		t.Fatal("full visitor does not cover all variants")
	}

	// A stale key with no handler still reports absence.
	stale := enco.ForgeKey[item](enco.NewRawKey(caseB.Tag(), 0))
	if got := enco.DecodeVisit(e, stale, partial); got != "absent" {
		t.Fatalf("stale key without handler got %q", got)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("live key without handler did not panic")
		}
	}()
	enco.DecodeVisit(e, e.Encode(B("x")), partial)
}

func TestNewVisitorRequiresAbsent(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("NewVisitor accepted a nil absent handler")
		}
	}()
	enco.NewVisitor[item, int](nil)
}

func TestVisitLaterHandlerReplaces(t *testing.T) {
	e := newEncoder(t)
	k := e.Encode(C{})
	v := enco.NewVisitor[item](func(enco.RawKey) string { return "absent" })
	enco.On(v, caseC, func(*struct{}) string { return "first" })
	enco.On(v, caseC, func(*struct{}) string { return "second" })
	if got := enco.DecodeVisit(e, k, v); got != "second" {
		t.Fatalf("got %q, want %q", got, "second")
	}
}

func TestVisitMismatchedPayloadHandler(t *testing.T) {
	e := newEncoder(t)
	// Tag 0 stores A; this case claims tag 0 with an int64 payload.
	wide := enco.NewCase(0,
		func(v item) (int64, bool) {
			a, ok := v.(A)
			return int64(a), ok
		},
		func(n int64) item { return A(n) },
	)
	v := enco.NewVisitor[item](func(enco.RawKey) string { return "absent" })
	enco.On(v, wide, func(*int64) string { return "wide" })
	enco.On(v, caseB, func(*string) string { return "B" })
	enco.On(v, caseC, func(*struct{}) string { return "C" })

	if v.Covers(e) {
		t.Fatal("visitor with a mismatched payload handler claims coverage")
	}

	stale := enco.ForgeKey[item](enco.NewRawKey(caseA.Tag(), 1))
	if got := enco.DecodeVisit(e, stale, v); got != "absent" {
		t.Fatalf("stale key with mismatched handler got %q", got)
	}

	k := e.Encode(A(3))
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("live key with mismatched handler did not panic")
		}
		want := "enco: visitor handler for variant 0 expects a different payload"
		if msg, ok := r.(string); !ok || msg != want {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()
	enco.DecodeVisit(e, k, v)
}
