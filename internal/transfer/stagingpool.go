package transfer

import (
	"sync"

	"github.com/baopinshui/NPGS-sub000/internal/gfxcore"

	vk "github.com/vulkan-go/vulkan"
)

// StagingBufferPool hands out StagingBuffers sized to at least the
// requested capacity, recycling released ones instead of always
// allocating fresh. Free buffers live on one list, buffers currently lent
// out on another; Release moves a buffer back to the free list rather
// than destroying it, so the common case (repeated similarly sized
// uploads) never touches the allocator again after warmup.
//
// A single stagingTexture field allocated once and torn down once is
// enough for a one-shot upload, but not for a frame-overlapped renderer;
// this pool generalizes that into free/busy bookkeeping, guarded by a
// mutex since uploads can originate from more than one goroutine (e.g.
// asset streaming off the render thread).
type StagingBufferPool struct {
	device   vk.Device
	memProps vk.PhysicalDeviceMemoryProperties
	atomSize vk.DeviceSize

	mu   sync.Mutex
	free []*StagingBuffer
	busy map[*StagingBuffer]struct{}
}

// NewStagingBufferPool builds a pool over memProps; atomSize is the
// device's non-coherent atom granularity, forwarded to every buffer it
// allocates.
func NewStagingBufferPool(device vk.Device, memProps vk.PhysicalDeviceMemoryProperties, atomSize vk.DeviceSize) *StagingBufferPool {
	return &StagingBufferPool{
		device:   device,
		memProps: memProps,
		atomSize: atomSize,
		busy:     make(map[*StagingBuffer]struct{}),
	}
}

// Acquire returns a staging buffer with at least minSize bytes of
// capacity, reusing a free buffer of sufficient size if one exists in
// first-fit order, else allocating a new one.
func (p *StagingBufferPool) Acquire(minSize vk.DeviceSize) (*StagingBuffer, gfxcore.Result) {
	p.mu.Lock()
	for i, buf := range p.free {
		if buf.Size() >= minSize {
			p.free = append(p.free[:i], p.free[i+1:]...)
			p.busy[buf] = struct{}{}
			p.mu.Unlock()
			return buf, gfxcore.Success
		}
	}
	p.mu.Unlock()

	buf, res := NewStagingBuffer(p.device, p.memProps, p.atomSize, minSize)
	if res != gfxcore.Success {
		return nil, res
	}
	p.mu.Lock()
	p.busy[buf] = struct{}{}
	p.mu.Unlock()
	return buf, gfxcore.Success
}

// Release returns buf to the free list for reuse by a later Acquire.
// Releasing a buffer not known to the pool is a no-op.
func (p *StagingBufferPool) Release(buf *StagingBuffer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.busy[buf]; !ok {
		return
	}
	delete(p.busy, buf)
	p.free = append(p.free, buf)
}

// Destroy tears down every buffer the pool currently holds, free or busy.
// Callers must ensure no GPU work referencing a busy buffer is still in
// flight.
func (p *StagingBufferPool) Destroy() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, buf := range p.free {
		buf.Destroy()
	}
	for buf := range p.busy {
		buf.Destroy()
	}
	p.free = nil
	p.busy = make(map[*StagingBuffer]struct{})
}
