package vulkan

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/driver"
	"github.com/vkngwrapper/extensions/v2/khr_external_memory"
	"github.com/vkngwrapper/extensions/v2/khr_external_memory_capabilities"
	"github.com/vkngwrapper/videomem/memutils"
	"golang.org/x/exp/slog"
)

// CreateOptions contains optional settings when creating a DeviceMemory
type CreateOptions struct {
	// VulkanCallbacks is an optional set of callbacks that will be passed to Vulkan when memory
	// is allocated or freed
	VulkanCallbacks *driver.AllocationCallbacks

	// HeapSizeLimits can be left empty. If it is provided, though, it must be a slice
	// with a number of entries corresponding to the number of heaps in the PhysicalDevice.
	// Each entry must be either the maximum number of bytes that should be allocated from the
	// corresponding device memory heap, or 0 or -1 indicating no limit.
	//
	// Heap memory limits are enforced at allocation time: an allocation beyond the limit fails
	// with VKErrorOutOfDeviceMemory without calling into Vulkan.
	HeapSizeLimits []int

	// ExternalMemoryHandleTypes can be left empty. If it is provided though, it must be a slice
	// with a number of entries corresponding to the number of memory types in the PhysicalDevice.
	// Each entry must be either 0, indicating not to use external memory, or a memory handle
	// type, indicating which type of memory handles to export for the memory type
	ExternalMemoryHandleTypes []khr_external_memory_capabilities.ExternalMemoryHandleTypeFlags
}

// New creates a DeviceMemory, which allocates and frees real device memory on behalf of
// a batch.Allocator
//
// logger - Receives debug output for each allocation. If nil, output is discarded
//
// physicalDevice - The PhysicalDevice that owns the provided Device
//
// device - The Device that memory will be allocated into
//
// options - Optional parameters: it is valid to leave all the fields blank
func New(logger *slog.Logger, physicalDevice PhysicalDevice, device Device, options CreateOptions) (*DeviceMemory, error) {
	if physicalDevice == nil || device == nil {
		return nil, errors.Wrap(memutils.ErrInvalidConfiguration, "a physical device and device are required")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	deviceProperties, err := physicalDevice.Properties()
	if err != nil {
		return nil, err
	}
	if deviceProperties.Limits == nil {
		return nil, errors.Wrap(memutils.ErrInvalidConfiguration, "physical device reported no limits")
	}

	memoryProperties := physicalDevice.MemoryProperties()
	if memoryProperties == nil || len(memoryProperties.MemoryHeaps) > common.MaxMemoryHeaps {
		return nil, errors.Wrap(memutils.ErrInvalidConfiguration, "physical device reported invalid memory properties")
	}

	heapCount := len(memoryProperties.MemoryHeaps)
	typeCount := len(memoryProperties.MemoryTypes)

	if len(options.HeapSizeLimits) > 0 && len(options.HeapSizeLimits) != heapCount {
		return nil, errors.Wrapf(memutils.ErrInvalidConfiguration,
			"CreateOptions.HeapSizeLimits has %d entries, but the physical device has %d heaps",
			len(options.HeapSizeLimits), heapCount)
	}

	if len(options.ExternalMemoryHandleTypes) > 0 && len(options.ExternalMemoryHandleTypes) != typeCount {
		return nil, errors.Wrapf(memutils.ErrInvalidConfiguration,
			"CreateOptions.ExternalMemoryHandleTypes has %d entries, but the physical device has %d memory types",
			len(options.ExternalMemoryHandleTypes), typeCount)
	}

	// khr_external_memory present by any means
	externalMemory := device.APIVersion().IsAtLeast(common.Vulkan1_1) ||
		device.IsDeviceExtensionActive(khr_external_memory.ExtensionName)
	if len(options.ExternalMemoryHandleTypes) > 0 && !externalMemory {
		return nil, errors.Wrap(memutils.ErrInvalidConfiguration,
			"CreateOptions.ExternalMemoryHandleTypes was provided, but neither core 1.1 nor the extension khr_external_memory are active")
	}

	memory := &DeviceMemory{
		logger:              logger,
		allocationCallbacks: options.VulkanCallbacks,
		device:              device,
		deviceProperties:    deviceProperties,
		memoryProperties:    memoryProperties,
		externalMemory:      externalMemory,
	}

	memory.heapLimits = make([]int, heapCount)
	copy(memory.heapLimits, options.HeapSizeLimits)

	memory.externalMemoryHandleTypes = make([]khr_external_memory_capabilities.ExternalMemoryHandleTypeFlags, typeCount)
	copy(memory.externalMemoryHandleTypes, options.ExternalMemoryHandleTypes)

	return memory, nil
}
