// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package enco stores sum-type ("enum") values compactly and hands back
// typed, copyable keys to them.
//
// A sum type is a Go interface T implementing [Enum]. Each variant gets
// its own append-only [Store]. Small variants therefore never pay for the
// size of the largest one, and encode and decode are O(1).
//
// # Architecture
//
//   - Keys: [RawKey] packs a variant [Tag] and a store index into a uint64. [Key] wraps it with
//     zero-size markers binding the encoder and item types at compile time. The zero Key resolves to nothing.
//   - Variants: [NewCase], [CaseOf] and [UnitCase] describe one variant each. A code generator emits the table.
//   - Stores: chunked arrays; appends never move existing payloads. [Encoder.Reset] invalidates every issued key.
//   - Absence: every lookup reports a missing slot as (zero, false), never as an error or a fault.
//
// # API Topologies
//
//   - Direct: [Encoder.Encode], [Encoder.Decode], [Encoder.DecodeMut] with [Mut], and per-variant [Case.Decode].
//   - Visiting: [DecodeVisit] dispatches a payload in place to a [Visitor] built with [NewVisitor] and [On].
//   - Effects: [Encode], [Decode], [Update], [Visit] as [code.hybscloud.com/kont] operations, with fused
//     constructors ([EncodeBind], [ExprEncodeBind], ...) and runners ([Exec], [ExecExpr], [Step], [Advance], [ExecError]).
//
// # Concurrency
//
// An [Encoder] is not synchronised. Either wrap it in [Shared]
// (single writer, many readers), or confine it to one goroutine with
// [NewPipe] and pass keys around. Pipe queues are bounded lock-free SPSC
// queues from [code.hybscloud.com/lfq], and backpressure is reported as
// [code.hybscloud.com/iox.ErrWouldBlock].
//
// # Example
//
//	type Shape interface{ enco.Enum }
//	type Circle struct{ R float64 }
//	type Rect struct{ W, H float64 }
//	func (Circle) EnumTag() enco.Tag { return 0 }
//	func (Rect) EnumTag() enco.Tag   { return 1 }
//
//	enc := enco.MustNew([]enco.Variant[Shape]{
//		enco.CaseOf[Shape, Circle](0),
//		enco.CaseOf[Shape, Rect](1),
//	})
//	k := enc.Encode(Rect{W: 2, H: 3})
//	v, ok := enc.Decode(k) // Rect{W: 2, H: 3}, true
package enco
