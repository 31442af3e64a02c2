package batch

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/videomem/memutils"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
)

// FindMemoryTypeIndex returns the lowest memory type index that is permitted by memoryTypeBits and
// whose property flags contain every flag in requiredFlags.
//
// memoryTypes - The memory types enumerated by the physical device, in index order
//
// memoryTypeBits - A bitmask with one bit set for each permitted memory type, usually
// core1_0.MemoryRequirements.MemoryTypeBits
//
// requiredFlags - Property flags the chosen memory type must carry
func FindMemoryTypeIndex(
	memoryTypes []core1_0.MemoryType,
	memoryTypeBits uint32,
	requiredFlags core1_0.MemoryPropertyFlags,
) (int, common.VkResult, error) {
	for memTypeIndex := 0; memTypeIndex < len(memoryTypes) && memTypeIndex < 32; memTypeIndex++ {
		memTypeBit := uint32(1) << memTypeIndex

		if memTypeBit&memoryTypeBits == 0 {
			// This memory type is banned by the bitmask
			continue
		}

		flags := memoryTypes[memTypeIndex].PropertyFlags
		if requiredFlags&flags != requiredFlags {
			// This memory type is missing required flags
			continue
		}

		return memTypeIndex, core1_0.VKSuccess, nil
	}

	return -1, core1_0.VKErrorFeatureNotPresent, errors.Wrapf(memutils.ErrNoSuitableMemoryType,
		"memory type bits %#x, required flags %v", memoryTypeBits, requiredFlags)
}
