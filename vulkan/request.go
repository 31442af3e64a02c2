package vulkan

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/videomem/batch"
	"github.com/vkngwrapper/videomem/memutils"
)

// RequestImage queues image on allocator using the memory requirements the device reports for it
func RequestImage(allocator *batch.Allocator, name string, image Image, requiredFlags core1_0.MemoryPropertyFlags) error {
	requirements := image.MemoryRequirements()
	if requirements == nil {
		return errors.Wrapf(memutils.ErrInvalidRequest, "image %q reported no memory requirements", name)
	}
	memutils.DebugCheckPow2(requirements.Alignment, "image alignment")

	return allocator.RequestMemory(name, *requirements, requiredFlags, BindImage(image))
}

// RequestBuffer queues buffer on allocator using the memory requirements the device reports for it
func RequestBuffer(allocator *batch.Allocator, name string, buffer Buffer, requiredFlags core1_0.MemoryPropertyFlags) error {
	requirements := buffer.MemoryRequirements()
	if requirements == nil {
		return errors.Wrapf(memutils.ErrInvalidRequest, "buffer %q reported no memory requirements", name)
	}
	memutils.DebugCheckPow2(requirements.Alignment, "buffer alignment")

	return allocator.RequestMemory(name, *requirements, requiredFlags, BindBuffer(buffer))
}

// RequestMappedBuffer queues a host visible buffer that will be mapped as soon as it is bound. The
// pointer to the start of the buffer is written to mapped.
func (h *HostMappings) RequestMappedBuffer(allocator *batch.Allocator, name string, buffer Buffer, requiredFlags core1_0.MemoryPropertyFlags, mapped *unsafe.Pointer) error {
	if mapped == nil {
		return errors.Wrapf(memutils.ErrInvalidRequest, "buffer %q has nowhere to store its mapping", name)
	}

	requirements := buffer.MemoryRequirements()
	if requirements == nil {
		return errors.Wrapf(memutils.ErrInvalidRequest, "buffer %q reported no memory requirements", name)
	}
	memutils.DebugCheckPow2(requirements.Alignment, "buffer alignment")

	return allocator.RequestMemory(name, *requirements, requiredFlags|core1_0.MemoryPropertyHostVisible,
		h.BindMappedBuffer(buffer, mapped))
}
