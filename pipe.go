// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package enco

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// Producer is the submitting side of a Pipe.
// It must be used by a single goroutine.
type Producer[T Enum] struct {
	values *lfq.SPSC[T]
	keys   *lfq.SPSC[Key[Encoder[T], T]]
	slot   T
}

// Owner is the encoding side of a Pipe. It confines the Encoder to the
// goroutine that calls Poll or Serve.
type Owner[T Enum] struct {
	enc     *Encoder[T]
	values  *lfq.SPSC[T]
	keys    *lfq.SPSC[Key[Encoder[T], T]]
	pending Key[Encoder[T], T]
	held    bool
}

// pipe holds both sides and both queues in a single allocation.
// Queues are embedded as values; only the ring buffers are separate
// heap objects.
type pipe[T Enum] struct {
	producer Producer[T]
	owner    Owner[T]
	values   lfq.SPSC[T]
	keys     lfq.SPSC[Key[Encoder[T], T]]
}

// NewPipe connects a Producer to an Owner of enc.
//
// Values flow from the Producer to the Owner over a bounded lock-free
// SPSC queue; the Owner encodes them in arrival order and sends the keys
// back over a second queue. Keys are plain values, so the Producer may
// hand them to any goroutine, but only the Owner's goroutine may touch
// enc while the pipe is in use.
//
// Only WithPipeCapacity is honoured among opts.
func NewPipe[T Enum](enc *Encoder[T], opts ...Option) (*Producer[T], *Owner[T]) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	p := &pipe[T]{}
	p.values.Init(o.pipeCapacity)
	p.keys.Init(o.pipeCapacity)
	p.producer = Producer[T]{values: &p.values, keys: &p.keys}
	p.owner = Owner[T]{enc: enc, values: &p.values, keys: &p.keys}
	return &p.producer, &p.owner
}

// Submit queues v for encoding.
// Non-blocking: returns iox.ErrWouldBlock if the value queue is full.
func (p *Producer[T]) Submit(v T) error {
	p.slot = v
	return p.values.Enqueue(&p.slot)
}

// Receive returns the key of the oldest encoded value not yet received.
// Non-blocking: returns iox.ErrWouldBlock if no key is ready.
func (p *Producer[T]) Receive() (Key[Encoder[T], T], error) {
	return p.keys.Dequeue()
}

// EncodeWait submits v and waits for its key with adaptive backoff.
// It must not be interleaved with unreceived Submit calls, since keys
// arrive in submission order.
func (p *Producer[T]) EncodeWait(v T) Key[Encoder[T], T] {
	var bo iox.Backoff
	for p.Submit(v) != nil {
		bo.Wait()
	}
	bo.Reset()
	for {
		k, err := p.Receive()
		if err == nil {
			return k
		}
		bo.Wait()
	}
}

// Encoder returns the confined encoder. It may only be used from the
// owner's goroutine.
func (o *Owner[T]) Encoder() *Encoder[T] {
	return o.enc
}

// Poll encodes every queued value and delivers the keys until either
// queue blocks. It returns the number of values encoded.
// Non-blocking: returns iox.ErrWouldBlock if nothing was encoded or
// delivered.
func (o *Owner[T]) Poll() (int, error) {
	n, progress := 0, false
	for {
		if o.held {
			if err := o.keys.Enqueue(&o.pending); err != nil {
				break
			}
			o.held = false
			progress = true
		}
		v, err := o.values.Dequeue()
		if err != nil {
			break
		}
		o.pending = o.enc.Encode(v)
		o.held = true
		n++
		progress = true
	}
	if !progress {
		return 0, iox.ErrWouldBlock
	}
	return n, nil
}

// Serve polls until done is closed, backing off with iox.Backoff while
// the producer is idle. It returns the number of values encoded.
func (o *Owner[T]) Serve(done <-chan struct{}) int {
	var bo iox.Backoff
	total := 0
	for {
		select {
		case <-done:
			return total
		default:
		}
		n, err := o.Poll()
		if err != nil {
			bo.Wait()
			continue
		}
		total += n
		bo.Reset()
	}
}
