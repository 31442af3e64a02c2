package vulkan

import (
	"fmt"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/core/v2/driver"
	"github.com/vkngwrapper/extensions/v2/khr_external_memory"
	"github.com/vkngwrapper/extensions/v2/khr_external_memory_capabilities"
	"github.com/vkngwrapper/videomem/batch"
	"github.com/vkngwrapper/videomem/memutils"
	"golang.org/x/exp/slog"
)

// HeapBudget reports the real allocations currently made from one memory heap
type HeapBudget struct {
	Statistics memutils.Statistics
	// Usage is the number of bytes currently allocated from the heap
	Usage int
	// Budget is the number of bytes that may be allocated from the heap: the heap size limit
	// if one was provided, otherwise 80% of the heap size
	Budget int
}

// DeviceMemory implements batch.Device on top of a vkngwrapper device. It enforces the device's
// MaxMemoryAllocationCount limit and any heap size limits passed at creation.
type DeviceMemory struct {
	// Number of real allocations that have been made from device memory
	blockCount [common.MaxMemoryHeaps]int32
	// Size of real allocations that have been made from device memory
	blockBytes [common.MaxMemoryHeaps]int64

	memoryCount uint32

	logger                    *slog.Logger
	allocationCallbacks       *driver.AllocationCallbacks
	heapLimits                []int
	externalMemory            bool
	externalMemoryHandleTypes []khr_external_memory_capabilities.ExternalMemoryHandleTypeFlags

	device           Device
	deviceProperties *core1_0.PhysicalDeviceProperties
	memoryProperties *core1_0.PhysicalDeviceMemoryProperties
}

var _ batch.Device = &DeviceMemory{}

func (m *DeviceMemory) MemoryTypes() []core1_0.MemoryType {
	return m.memoryProperties.MemoryTypes
}

func (m *DeviceMemory) MemoryTypeIndexToHeapIndex(memTypeIndex int) int {
	return m.memoryProperties.MemoryTypes[memTypeIndex].HeapIndex
}

func (m *DeviceMemory) DeviceProperties() *core1_0.PhysicalDeviceProperties {
	return m.deviceProperties
}

// AllocationCount is the number of live real allocations made through this object
func (m *DeviceMemory) AllocationCount() uint32 {
	return atomic.LoadUint32(&m.memoryCount)
}

func (m *DeviceMemory) ExternalMemoryTypes(memoryTypeIndex int) khr_external_memory_capabilities.ExternalMemoryHandleTypeFlags {
	return m.externalMemoryHandleTypes[memoryTypeIndex]
}

func (m *DeviceMemory) addBlockAllocation(heapIndex int, allocationSize int) {
	atomic.AddInt64(&m.blockBytes[heapIndex], int64(allocationSize))
	atomic.AddInt32(&m.blockCount[heapIndex], 1)
}

func (m *DeviceMemory) addBlockAllocationWithBudget(heapIndex, allocationSize, maxAllocatable int) (common.VkResult, error) {
	for {
		currentVal := atomic.LoadInt64(&m.blockBytes[heapIndex])
		targetVal := currentVal + int64(allocationSize)

		if targetVal > int64(maxAllocatable) {
			return core1_0.VKErrorOutOfDeviceMemory, core1_0.VKErrorOutOfDeviceMemory.ToError()
		}

		if atomic.CompareAndSwapInt64(&m.blockBytes[heapIndex], currentVal, targetVal) {
			break
		}
	}

	atomic.AddInt32(&m.blockCount[heapIndex], 1)
	return core1_0.VKSuccess, nil
}

func (m *DeviceMemory) removeBlockAllocation(heapIndex, allocationSize int) {
	newVal := atomic.AddInt64(&m.blockBytes[heapIndex], int64(-allocationSize))
	if newVal < 0 {
		panic(fmt.Sprintf("block bytes for heapIndex %d went negative", heapIndex))
	}

	newCountVal := atomic.AddInt32(&m.blockCount[heapIndex], -1)
	if newCountVal < 0 {
		panic(fmt.Sprintf("block count for heapIndex %d went negative", heapIndex))
	}
}

// AllocateMemory makes a single real device memory allocation of the given memory type
func (m *DeviceMemory) AllocateMemory(memoryTypeIndex int, size int) (memory core1_0.DeviceMemory, res common.VkResult, err error) {
	m.logger.Debug("DeviceMemory::AllocateMemory",
		slog.Int("MemoryTypeIndex", memoryTypeIndex),
		slog.String("Size", humanize.IBytes(uint64(size))),
	)

	if memoryTypeIndex < 0 || memoryTypeIndex >= len(m.memoryProperties.MemoryTypes) {
		return nil, core1_0.VKErrorUnknown, errors.Wrapf(memutils.ErrInvalidRequest,
			"memory type %d does not exist on a device with %d memory types", memoryTypeIndex, len(m.memoryProperties.MemoryTypes))
	}

	newDeviceCount := atomic.AddUint32(&m.memoryCount, 1)
	defer func() {
		// If we failed out, roll back the device increment
		if err != nil {
			atomic.AddUint32(&m.memoryCount, ^uint32(0))
		}
	}()

	if int(newDeviceCount) > m.deviceProperties.Limits.MaxMemoryAllocationCount {
		return nil, core1_0.VKErrorTooManyObjects, errors.Wrapf(core1_0.VKErrorTooManyObjects.ToError(),
			"device allows %d allocations", m.deviceProperties.Limits.MaxMemoryAllocationCount)
	}

	heapIndex := m.MemoryTypeIndexToHeapIndex(memoryTypeIndex)
	heapLimit := m.heapLimits[heapIndex]
	if heapLimit <= 0 {
		m.addBlockAllocation(heapIndex, size)
	} else {
		maxSize := heapLimit
		heapSize := m.memoryProperties.MemoryHeaps[heapIndex].Size
		if heapSize < maxSize {
			maxSize = heapSize
		}
		res, err = m.addBlockAllocationWithBudget(heapIndex, size, maxSize)
		if err != nil {
			return nil, res, errors.Wrapf(err, "heap %d is limited to %s", heapIndex, humanize.IBytes(uint64(maxSize)))
		}
	}
	defer func() {
		// If we failed out, roll back the block allocation
		if err != nil {
			m.removeBlockAllocation(heapIndex, size)
		}
	}()

	allocInfo := core1_0.MemoryAllocateInfo{
		MemoryTypeIndex: memoryTypeIndex,
		AllocationSize:  size,
	}

	if m.externalMemory {
		exportMemoryAllocInfo := khr_external_memory.ExportMemoryAllocateInfo{
			HandleTypes: m.ExternalMemoryTypes(memoryTypeIndex),
		}

		if exportMemoryAllocInfo.HandleTypes != 0 {
			exportMemoryAllocInfo.Next = allocInfo.Next
			allocInfo.Next = exportMemoryAllocInfo
		}
	}

	memory, res, err = m.device.AllocateMemory(m.allocationCallbacks, allocInfo)
	if err != nil {
		return nil, res, err
	}

	return memory, res, nil
}

// FreeMemory releases a real allocation previously made by AllocateMemory
func (m *DeviceMemory) FreeMemory(memoryTypeIndex int, size int, memory core1_0.DeviceMemory) {
	m.logger.Debug("DeviceMemory::FreeMemory",
		slog.Int("MemoryTypeIndex", memoryTypeIndex),
		slog.String("Size", humanize.IBytes(uint64(size))),
	)

	memory.Free(m.allocationCallbacks)

	heapIndex := m.MemoryTypeIndexToHeapIndex(memoryTypeIndex)
	m.removeBlockAllocation(heapIndex, size)
	// Decrement
	atomic.AddUint32(&m.memoryCount, ^uint32(0))
}

// HeapBudgets fills budgets with the current usage of consecutive heaps, beginning with firstHeap.
// Entries that fall outside the device's heaps are zeroed.
func (m *DeviceMemory) HeapBudgets(firstHeap int, budgets []HeapBudget) {
	heapCount := len(m.memoryProperties.MemoryHeaps)

	for i := 0; i < len(budgets); i++ {
		heapIndex := firstHeap + i
		if heapIndex < 0 || heapIndex >= heapCount {
			budgets[i] = HeapBudget{}
			continue
		}

		budgets[i].Statistics.Clear()
		budgets[i].Statistics.BlockCount = int(atomic.LoadInt32(&m.blockCount[heapIndex]))
		budgets[i].Statistics.BlockBytes = int(atomic.LoadInt64(&m.blockBytes[heapIndex]))

		budgets[i].Usage = budgets[i].Statistics.BlockBytes

		heapSize := m.memoryProperties.MemoryHeaps[heapIndex].Size
		budgets[i].Budget = heapSize * 8 / 10
		if limit := m.heapLimits[heapIndex]; limit > 0 {
			budgets[i].Budget = limit
			if heapSize < limit {
				budgets[i].Budget = heapSize
			}
		}
	}
}

// TotalStatistics sums the real allocations currently made from every heap
func (m *DeviceMemory) TotalStatistics() memutils.Statistics {
	budgets := make([]HeapBudget, len(m.memoryProperties.MemoryHeaps))
	m.HeapBudgets(0, budgets)

	var total memutils.Statistics
	for i := range budgets {
		total.AddStatistics(&budgets[i].Statistics)
	}

	return total
}
