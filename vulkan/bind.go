package vulkan

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/videomem/batch"
)

// BindImage returns a bind callback that binds image to the memory it was placed in
func BindImage(image Image) batch.BindFunc {
	return func(memory core1_0.DeviceMemory, offset int) (common.VkResult, error) {
		return image.BindImageMemory(memory, offset)
	}
}

// BindBuffer returns a bind callback that binds buffer to the memory it was placed in
func BindBuffer(buffer Buffer) batch.BindFunc {
	return func(memory core1_0.DeviceMemory, offset int) (common.VkResult, error) {
		return buffer.BindBufferMemory(memory, offset)
	}
}

// wholeSize maps to VK_WHOLE_SIZE once converted to a VkDeviceSize
const wholeSize = -1

// HostMappings maps each real allocation at most once and hands every mapped buffer placed in it
// a pointer to its own offset. A flush places every request of one memory type in the same
// allocation, and Vulkan does not allow a memory object to be mapped twice, so every mapped buffer
// requested on an allocator should share one HostMappings.
type HostMappings struct {
	mappings *swiss.Map[core1_0.DeviceMemory, unsafe.Pointer]
	mapped   []core1_0.DeviceMemory
}

func NewHostMappings() *HostMappings {
	return &HostMappings{
		mappings: swiss.NewMap[core1_0.DeviceMemory, unsafe.Pointer](uint32(common.MaxMemoryHeaps)),
	}
}

// Len returns the number of memory objects currently mapped
func (h *HostMappings) Len() int {
	return len(h.mapped)
}

// Pointer returns a host pointer to offset within memory. The whole of memory is mapped the first
// time it is seen.
func (h *HostMappings) Pointer(memory core1_0.DeviceMemory, offset int) (unsafe.Pointer, common.VkResult, error) {
	base, ok := h.mappings.Get(memory)
	if !ok {
		data, res, err := memory.Map(0, wholeSize, 0)
		if err != nil {
			return nil, res, errors.Wrap(err, "failed to map device memory")
		}

		base = data
		h.mappings.Put(memory, base)
		h.mapped = append(h.mapped, memory)
	}

	return unsafe.Add(base, offset), core1_0.VKSuccess, nil
}

// Unmap unmaps every memory object mapped so far. Freeing memory unmaps it implicitly, so this is
// only needed for memory that stays allocated.
func (h *HostMappings) Unmap() {
	for _, memory := range h.mapped {
		memory.Unmap()
	}

	h.mappings.Clear()
	h.mapped = nil
}

// BindMappedBuffer returns a bind callback that binds buffer and then writes a host pointer to
// its offset into mapped. The memory type the buffer resolves to must be host visible.
func (h *HostMappings) BindMappedBuffer(buffer Buffer, mapped *unsafe.Pointer) batch.BindFunc {
	return func(memory core1_0.DeviceMemory, offset int) (common.VkResult, error) {
		res, err := buffer.BindBufferMemory(memory, offset)
		if err != nil {
			return res, err
		}

		data, res, err := h.Pointer(memory, offset)
		if err != nil {
			return res, errors.Wrapf(err, "buffer at offset %d", offset)
		}

		*mapped = data
		return res, nil
	}
}
