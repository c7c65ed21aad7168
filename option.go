// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package enco

import "go.uber.org/zap"

// defaultPipeCapacity is the bounded capacity of Pipe queues.
const defaultPipeCapacity = 64

type options struct {
	chunkBits    uint
	capacity     int
	pipeCapacity int
	logger       *zap.Logger
}

func defaultOptions() options {
	return options{
		chunkBits:    DefaultChunkBits,
		pipeCapacity: defaultPipeCapacity,
		logger:       zap.NewNop(),
	}
}

// Option configures an Encoder or a Pipe.
type Option func(*options)

// WithChunkBits sets log2 of the slots per store chunk.
// Values are clamped to [4, 24]; 0 selects DefaultChunkBits.
func WithChunkBits(bits uint) Option {
	return func(o *options) {
		o.chunkBits = clampChunkBits(bits)
	}
}

// WithCapacity pre-allocates room for n items in every variant store.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithLogger sets the logger used for construction, growth and reset
// events. The default logger discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithPipeCapacity sets the bounded capacity of each Pipe queue.
func WithPipeCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.pipeCapacity = n
		}
	}
}
