package libgl

import (
	"encoding/binary"
	"log"

	"github.com/go-gl/gl/v4.5-core/gl"
)

type buffer struct {
	glId      uint32
	size      int
	flags     uint32
	immutable bool
}

type UnboundBuffer interface {
	LabeledGlObject
	Id() uint32
	// Allocate creates immutable storage initialized with data.
	Allocate(data any, flags int)
	// AllocateEmptyMutable creates mutable storage that Reserve can grow.
	AllocateEmptyMutable(size int, usage int)
	Reserve(size int) bool
	Write(offset int, data any)
	Size() int
	Bind(target uint32) BoundBuffer
	Delete()
}

type BoundBuffer interface {
	UnboundBuffer
}

func NewBuffer() UnboundBuffer {
	var id uint32
	gl.CreateBuffers(1, &id)
	return &buffer{
		glId: id,
	}
}

func (b *buffer) Id() uint32 {
	return b.glId
}

func (b *buffer) SetDebugLabel(label string) {
	setObjectLabel(gl.BUFFER, b.glId, label)
}

func (b *buffer) Bind(target uint32) BoundBuffer {
	State.BindBuffer(target, b.glId)
	return BoundBuffer(b)
}

func (b *buffer) Size() int {
	return b.size
}

func (b *buffer) Allocate(data any, flags int) {
	if b.immutable {
		log.Panicf("buffer %d is immutable", b.glId)
	}
	size := binary.Size(data)
	if size == -1 {
		log.Panicf("%T does not have a fixed size", data)
	}
	if b.warnAllocationSizeZero(size) {
		return
	}
	gl.NamedBufferStorage(b.glId, size, Pointer(data), uint32(flags))
	b.size = size
	b.flags = uint32(flags)
	b.immutable = true
}

func (b *buffer) AllocateEmptyMutable(size int, usage int) {
	if b.immutable {
		log.Panicf("buffer %d is immutable", b.glId)
	}
	if b.warnAllocationSizeZero(size) {
		return
	}
	gl.NamedBufferData(b.glId, size, nil, uint32(usage))
	b.size = size
	b.flags = uint32(usage)
}

func (b *buffer) warnAllocationSizeZero(size int) bool {
	if size != 0 {
		return false
	}
	msg := "Zero size buffer allocation\x00"
	gl.DebugMessageInsert(gl.DEBUG_SOURCE_APPLICATION, gl.DEBUG_TYPE_ERROR, 1, gl.DEBUG_SEVERITY_MEDIUM, -1, gl.Str(msg))
	return true
}

// Reserve makes room for at least size bytes, discarding the current contents when the
// storage has to be reallocated. It reports whether a reallocation happened.
func (b *buffer) Reserve(size int) bool {
	if size <= b.size {
		return false
	}
	if b.immutable {
		log.Panicf("buffer %d is immutable", b.glId)
	}
	usage := b.flags
	if usage == 0 {
		usage = gl.DYNAMIC_DRAW
	}
	newSize := growSize(b.size, size)
	gl.NamedBufferData(b.glId, newSize, nil, usage)
	b.size = newSize
	b.flags = usage
	return true
}

// growSize doubles small buffers and grows large ones by a quarter until size fits.
func growSize(current, size int) int {
	if size <= current {
		return current
	}
	newSize := current
	doubleSize := current + current
	if size > doubleSize {
		return size
	}
	if current < 16_384 {
		return doubleSize
	}
	for 0 < newSize && newSize < size {
		newSize += newSize / 4
	}
	// overflow
	if newSize <= 0 {
		newSize = size
	}
	return newSize
}

func (b *buffer) Write(offset int, data any) {
	size := binary.Size(data)
	if size == -1 {
		log.Panicf("%T does not have a fixed size", data)
	}
	if size == 0 {
		return
	}
	gl.NamedBufferSubData(b.glId, offset, size, Pointer(data))
}

func (b *buffer) Delete() {
	gl.DeleteBuffers(1, &b.glId)
	b.glId = 0
}
