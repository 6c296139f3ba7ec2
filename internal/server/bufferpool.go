package server

import "sync"

// DefaultReadBufferSize is how many bytes a connection gets for its one read.
const DefaultReadBufferSize = 1024

// BufferPool hands out fixed-size read buffers.
type BufferPool struct {
	size int
	pool sync.Pool
}

// NewBufferPool creates a pool of size-byte buffers.
func NewBufferPool(size int) *BufferPool {
	if size <= 0 {
		size = DefaultReadBufferSize
	}
	bp := &BufferPool{size: size}
	bp.pool.New = func() any {
		buf := make([]byte, size)
		return &buf
	}
	return bp
}

// Get returns a zeroed buffer of the pool's size.
func (bp *BufferPool) Get() []byte {
	buf := *(bp.pool.Get().(*[]byte))
	buf = buf[:bp.size]
	clear(buf)
	return buf
}

// Put returns a buffer to the pool
func (bp *BufferPool) Put(buf []byte) {
	if cap(buf) != bp.size {
		// Non-standard size, let GC handle it
		return
	}
	buf = buf[:bp.size]
	bp.pool.Put(&buf)
}

// Size reports the buffer size handed out by Get.
func (bp *BufferPool) Size() int {
	return bp.size
}
