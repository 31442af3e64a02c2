package vulkan

//go:generate mockgen -source device.go -destination ./mocks/device.go -package mock_vulkan

import (
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/core/v2/driver"
)

// PhysicalDevice is the subset of core1_0.PhysicalDevice used to discover memory types, heaps,
// and device limits
type PhysicalDevice interface {
	Properties() (*core1_0.PhysicalDeviceProperties, error)
	MemoryProperties() *core1_0.PhysicalDeviceMemoryProperties
}

// Device is the subset of core1_0.Device used to allocate device memory
type Device interface {
	APIVersion() common.APIVersion
	IsDeviceExtensionActive(extensionName string) bool
	AllocateMemory(allocationCallbacks *driver.AllocationCallbacks, o core1_0.MemoryAllocateInfo) (core1_0.DeviceMemory, common.VkResult, error)
}

// Image is the subset of core1_0.Image needed to request and bind memory for it
type Image interface {
	MemoryRequirements() *core1_0.MemoryRequirements
	BindImageMemory(memory core1_0.DeviceMemory, offset int) (common.VkResult, error)
}

// Buffer is the subset of core1_0.Buffer needed to request and bind memory for it
type Buffer interface {
	MemoryRequirements() *core1_0.MemoryRequirements
	BindBufferMemory(memory core1_0.DeviceMemory, offset int) (common.VkResult, error)
}
