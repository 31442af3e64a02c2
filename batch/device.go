package batch

import (
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
)

// Device is the device context a batch is flushed against. It reports the device's memory type
// table and performs real allocations. The vulkan package provides an implementation backed by a
// core1_0.Device.
type Device interface {
	// MemoryTypes returns the memory types the physical device enumerates, in index order
	MemoryTypes() []core1_0.MemoryType
	// AllocateMemory performs a single real device memory allocation
	AllocateMemory(memoryTypeIndex int, size int) (core1_0.DeviceMemory, common.VkResult, error)
	// FreeMemory releases memory previously returned from AllocateMemory
	FreeMemory(memoryTypeIndex int, size int, memory core1_0.DeviceMemory)
}

//go:generate mockgen -source device.go -destination ./mocks/device.go -package mock_batch
