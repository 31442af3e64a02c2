package batch

import (
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
)

// BindFunc attaches a resource to the memory a flush placed it in. It is called exactly once per
// request, and only after every real allocation in the batch has succeeded.
type BindFunc func(memory core1_0.DeviceMemory, offset int) (common.VkResult, error)

// AllocationRequest is a single resource's claim on device memory. MemoryTypeIndex and Offset are
// filled in by Allocator.Flush.
type AllocationRequest struct {
	// Name is optional and only used in logs and stats output
	Name           string
	Size           int
	Alignment      int
	MemoryTypeBits uint32
	RequiredFlags  core1_0.MemoryPropertyFlags
	Bind           BindFunc

	MemoryTypeIndex int
	Offset          int
}

func (r *AllocationRequest) displayName() string {
	if r.Name == "" {
		return "unnamed"
	}
	return r.Name
}
