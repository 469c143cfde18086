package frame

import (
	"sync"
	"sync/atomic"

	"github.com/opd-ai/framehook/limits"
	"github.com/sirupsen/logrus"
)

// Pool recycles I420 buffers of a fixed size.
//
// Buffers obtained from Get carry one reference. When the last reference is
// released the buffer goes back to the pool instead of to the garbage
// collector, which keeps steady-state capture allocation free.
type Pool struct {
	width  int
	height int
	pool   sync.Pool

	allocated atomic.Int64
	reused    atomic.Int64
	returned  atomic.Int64
}

// PoolStats reports pool activity counters.
type PoolStats struct {
	Allocated int64
	Reused    int64
	Returned  int64
}

// NewPool creates a pool of width×height I420 buffers.
func NewPool(width, height int) (*Pool, error) {
	if err := limits.ValidateDimensions(width, height); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function": "NewPool",
		"width":    width,
		"height":   height,
	}).Debug("Creating buffer pool")

	return &Pool{width: width, height: height}, nil
}

// Get returns a buffer holding one reference. Recycled buffers keep their
// previous pixel contents; callers overwrite every plane.
func (p *Pool) Get() *Buffer {
	if v := p.pool.Get(); v != nil {
		b := v.(*Buffer)
		b.refs.Store(1)
		p.reused.Add(1)
		return b
	}

	// Dimensions were validated in NewPool.
	b, _ := NewI420Buffer(p.width, p.height)
	b.onRelease = p.put
	p.allocated.Add(1)
	return b
}

func (p *Pool) put(b *Buffer) {
	p.returned.Add(1)
	p.pool.Put(b)
}

// Stats returns a snapshot of the pool counters.
func (p *Pool) Stats() PoolStats {
	return PoolStats{
		Allocated: p.allocated.Load(),
		Reused:    p.reused.Load(),
		Returned:  p.returned.Load(),
	}
}
