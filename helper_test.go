// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package enco_test

import (
	"strconv"
	"testing"

	"code.hybscloud.com/enco"
	"code.hybscloud.com/kont"
)

// item is the three-variant sum type A(int32) | B(string) | C.
type item interface {
	enco.Enum
}

type A int32

type B string

type C struct{}

func (A) EnumTag() enco.Tag { return 0 }
func (B) EnumTag() enco.Tag { return 1 }
func (C) EnumTag() enco.Tag { return 2 }

// itemKey is the key type of an item encoder.
type itemKey = enco.Key[enco.Encoder[item], item]

var (
	caseA = enco.CaseOf[item, A](0)
	// B is stored as its bare string payload.
	caseB = enco.NewCase(1,
		func(v item) (string, bool) {
			b, ok := v.(B)
			return string(b), ok
		},
		func(s string) item { return B(s) },
	)
	caseC = enco.UnitCase[item](2, C{})

	itemCases = []enco.Variant[item]{caseA, caseB, caseC}
)

func newEncoder(tb testing.TB, opts ...enco.Option) *enco.Encoder[item] {
	tb.Helper()
	e, err := enco.New(itemCases, opts...)
	if err != nil {
		tb.Fatalf("New: %v", err)
	}
	return e
}

// makeItem maps arbitrary quick-generated input onto one of the variants.
func makeItem(kind uint8, n int32, s string) item {
	switch kind % 3 {
	case 0:
		return A(n)
	case 1:
		return B(s)
	default:
		return C{}
	}
}

// describe is the reference projection the visitor tests compare against.
func describe(v item) string {
	switch x := v.(type) {
	case A:
		return "A:" + strconv.FormatInt(int64(x), 10)
	case B:
		return "B:" + string(x)
	case C:
		return "C"
	}
	return "?"
}

// describeVisitor computes describe in place, without materialising items.
func describeVisitor() *enco.Visitor[item, string] {
	v := enco.NewVisitor[item](func(enco.RawKey) string { return "absent" })
	enco.On(v, caseA, func(p *A) string { return "A:" + strconv.FormatInt(int64(*p), 10) })
	enco.On(v, caseB, func(p *string) string { return "B:" + *p })
	enco.On(v, caseC, func(*struct{}) string { return "C" })
	return v
}

// stepExpr drives a protocol to completion on e via the Step+Advance loop.
func stepExpr[R any](e *enco.Encoder[item], protocol kont.Expr[R]) R {
	result, susp := enco.Step[R](protocol)
	for susp != nil {
		result, susp = enco.Advance(e, susp)
	}
	return result
}
