package batch

import "github.com/vkngwrapper/core/v2/core1_0"

// AllocateDeviceMemoryCallback is called once for each real allocation a flush makes, before any
// request in the batch is bound. memoryType is the memory type index shared by every request
// placed in memory.
type AllocateDeviceMemoryCallback func(
	allocator *Allocator,
	memoryType int,
	memory core1_0.DeviceMemory,
	size int,
	userData interface{},
)

// FreeDeviceMemoryCallback is called just before a flush frees one of its own real allocations
// because a later allocation in the same batch failed. It is not called for blocks the caller
// releases with FreeBlocks.
type FreeDeviceMemoryCallback func(
	allocator *Allocator,
	memoryType int,
	memory core1_0.DeviceMemory,
	size int,
	userData interface{},
)

// MemoryCallbackOptions are hooks executed when a flush makes or releases a real device memory
// allocation. Frees are only reported for rollbacks performed by the allocator itself.
type MemoryCallbackOptions struct {
	Allocate AllocateDeviceMemoryCallback
	Free     FreeDeviceMemoryCallback
	UserData interface{}
}

type memoryCallbacks struct {
	Callbacks *MemoryCallbackOptions
	Allocator *Allocator
}

func (c *memoryCallbacks) Allocate(
	memoryType int,
	memory core1_0.DeviceMemory,
	size int,
) {
	if c.Callbacks != nil && c.Callbacks.Allocate != nil {
		c.Callbacks.Allocate(c.Allocator, memoryType, memory, size, c.Callbacks.UserData)
	}
}

func (c *memoryCallbacks) Free(
	memoryType int,
	memory core1_0.DeviceMemory,
	size int,
) {
	if c.Callbacks != nil && c.Callbacks.Free != nil {
		c.Callbacks.Free(c.Allocator, memoryType, memory, size, c.Callbacks.UserData)
	}
}
