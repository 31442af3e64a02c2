package batch

import (
	"github.com/vkngwrapper/core/v2/core1_0"
)

// MemoryBlock is a real device memory allocation made by a flush. One is made for each distinct
// memory type the flushed requests resolved to. The caller owns the memory once Flush returns it.
type MemoryBlock struct {
	MemoryTypeIndex int
	Size            int
	Memory          core1_0.DeviceMemory
}

// FreeBlocks releases blocks returned from Flush, in reverse order
func FreeBlocks(device Device, blocks []MemoryBlock) {
	for blockIndex := len(blocks) - 1; blockIndex >= 0; blockIndex-- {
		device.FreeMemory(blocks[blockIndex].MemoryTypeIndex, blocks[blockIndex].Size, blocks[blockIndex].Memory)
	}
}
