package batch

import (
	"encoding/json"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/core/v2/mocks"
	mock_batch "github.com/vkngwrapper/videomem/batch/mocks"
	"github.com/vkngwrapper/videomem/memutils"
)

type boundResource struct {
	name   string
	memory core1_0.DeviceMemory
	offset int
}

type bindRecorder struct {
	bound []boundResource
}

func (r *bindRecorder) bindFunc(name string) BindFunc {
	return func(memory core1_0.DeviceMemory, offset int) (common.VkResult, error) {
		r.bound = append(r.bound, boundResource{name: name, memory: memory, offset: offset})
		return core1_0.VKSuccess, nil
	}
}

func readyDevice(ctrl *gomock.Controller) *mock_batch.MockDevice {
	device := mock_batch.NewMockDevice(ctrl)
	device.EXPECT().MemoryTypes().Return(testMemoryTypes).AnyTimes()
	return device
}

func TestFlushSingleGroupAlignsOffsets(t *testing.T) {
	ctrl := gomock.NewController(t)
	device := readyDevice(ctrl)
	allocator := New(nil, CreateOptions{})
	recorder := &bindRecorder{}

	require.NoError(t, allocator.RequestNamed("a", 100, 64, 0b10, core1_0.MemoryPropertyDeviceLocal, recorder.bindFunc("a")))
	require.NoError(t, allocator.RequestNamed("b", 50, 64, 0b10, core1_0.MemoryPropertyDeviceLocal, recorder.bindFunc("b")))
	require.Equal(t, StateCollecting, allocator.State())
	require.Equal(t, 2, allocator.Pending())

	memory := mocks.EasyMockDeviceMemory(ctrl)
	device.EXPECT().AllocateMemory(1, 178).Return(memory, core1_0.VKSuccess, nil)

	blocks, res, err := allocator.Flush(device)
	require.NoError(t, err)
	require.Equal(t, core1_0.VKSuccess, res)
	require.Len(t, blocks, 1)
	require.Equal(t, 1, blocks[0].MemoryTypeIndex)
	require.Equal(t, 178, blocks[0].Size)
	require.Same(t, memory, blocks[0].Memory)

	require.Len(t, recorder.bound, 2)
	require.Equal(t, "a", recorder.bound[0].name)
	require.Equal(t, 0, recorder.bound[0].offset)
	require.Same(t, memory, recorder.bound[0].memory)
	require.Equal(t, "b", recorder.bound[1].name)
	require.Equal(t, 128, recorder.bound[1].offset)
	require.Same(t, memory, recorder.bound[1].memory)

	require.Equal(t, StateIdle, allocator.State())
	require.Equal(t, 0, allocator.Pending())
}

func TestFlushOneAllocationPerMemoryType(t *testing.T) {
	ctrl := gomock.NewController(t)
	device := readyDevice(ctrl)
	allocator := New(nil, CreateOptions{})
	recorder := &bindRecorder{}

	for i := 0; i < 10; i++ {
		flags := core1_0.MemoryPropertyDeviceLocal
		if i%2 == 1 {
			flags = core1_0.MemoryPropertyHostVisible | core1_0.MemoryPropertyHostCoherent
		}
		require.NoError(t, allocator.Request(256, 256, 0xffffffff, flags, recorder.bindFunc("")))
	}

	deviceLocal := mocks.EasyMockDeviceMemory(ctrl)
	hostVisible := mocks.EasyMockDeviceMemory(ctrl)
	gomock.InOrder(
		device.EXPECT().AllocateMemory(1, 1280).Return(deviceLocal, core1_0.VKSuccess, nil),
		device.EXPECT().AllocateMemory(2, 1280).Return(hostVisible, core1_0.VKSuccess, nil),
	)

	blocks, _, err := allocator.Flush(device)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	require.Len(t, recorder.bound, 10)

	for i, bound := range recorder.bound {
		if i%2 == 0 {
			require.Same(t, deviceLocal, bound.memory)
		} else {
			require.Same(t, hostVisible, bound.memory)
		}
		require.Equal(t, (i/2)*256, bound.offset)
	}

	stats := allocator.Statistics()
	require.Equal(t, 2, stats.BlockCount)
	require.Equal(t, 10, stats.AllocationCount)
	require.Equal(t, 2560, stats.BlockBytes)
	require.Equal(t, 2560, stats.AllocationBytes)
}

func TestFlushAllocatesInFirstEncounteredOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	device := readyDevice(ctrl)
	allocator := New(nil, CreateOptions{})
	recorder := &bindRecorder{}

	require.NoError(t, allocator.Request(64, 0, 0b100, 0, recorder.bindFunc("host")))
	require.NoError(t, allocator.Request(32, 0, 0b010, 0, recorder.bindFunc("device")))
	require.NoError(t, allocator.Request(16, 0, 0b100, 0, recorder.bindFunc("host2")))

	hostMemory := mocks.EasyMockDeviceMemory(ctrl)
	deviceMemory := mocks.EasyMockDeviceMemory(ctrl)
	gomock.InOrder(
		device.EXPECT().AllocateMemory(2, 80).Return(hostMemory, core1_0.VKSuccess, nil),
		device.EXPECT().AllocateMemory(1, 32).Return(deviceMemory, core1_0.VKSuccess, nil),
	)

	blocks, _, err := allocator.Flush(device)
	require.NoError(t, err)
	require.Equal(t, 2, blocks[0].MemoryTypeIndex)
	require.Equal(t, 1, blocks[1].MemoryTypeIndex)

	require.Equal(t, []string{"host", "device", "host2"}, []string{
		recorder.bound[0].name, recorder.bound[1].name, recorder.bound[2].name,
	})
	require.Equal(t, 64, recorder.bound[2].offset)
}

var allocationFailureTestCases = map[string]struct {
	Groups       int
	FailingGroup int
}{
	"TestFirstGroupFails": {
		Groups:       3,
		FailingGroup: 0,
	},
	"TestMiddleGroupFails": {
		Groups:       3,
		FailingGroup: 1,
	},
	"TestLastGroupFails": {
		Groups:       4,
		FailingGroup: 3,
	},
}

func TestFlushAllocationFailureRollsBack(t *testing.T) {
	for testName, testCase := range allocationFailureTestCases {
		t.Run(testName, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			device := readyDevice(ctrl)

			var callbackAllocated, callbackFreed []core1_0.DeviceMemory
			allocator := New(nil, CreateOptions{
				MemoryCallbackOptions: &MemoryCallbackOptions{
					Allocate: func(allocator *Allocator, memoryType int, memory core1_0.DeviceMemory, size int, userData interface{}) {
						callbackAllocated = append(callbackAllocated, memory)
					},
					Free: func(allocator *Allocator, memoryType int, memory core1_0.DeviceMemory, size int, userData interface{}) {
						callbackFreed = append(callbackFreed, memory)
					},
				},
			})
			recorder := &bindRecorder{}

			for group := 0; group < testCase.Groups; group++ {
				require.NoError(t, allocator.Request(100, 0, 1<<uint(group), 0, recorder.bindFunc("")))
			}

			var allocated []core1_0.DeviceMemory
			var calls []*gomock.Call
			for group := 0; group < testCase.FailingGroup; group++ {
				memory := mocks.EasyMockDeviceMemory(ctrl)
				allocated = append(allocated, memory)
				calls = append(calls, device.EXPECT().AllocateMemory(group, 100).Return(memory, core1_0.VKSuccess, nil))
			}
			calls = append(calls, device.EXPECT().AllocateMemory(testCase.FailingGroup, 100).
				Return(nil, core1_0.VKErrorOutOfDeviceMemory, core1_0.VKErrorOutOfDeviceMemory.ToError()))

			var freed []core1_0.DeviceMemory
			for group := testCase.FailingGroup - 1; group >= 0; group-- {
				calls = append(calls, device.EXPECT().FreeMemory(group, 100, gomock.Any()).
					Do(func(memoryTypeIndex int, size int, memory core1_0.DeviceMemory) {
						freed = append(freed, memory)
					}))
			}
			gomock.InOrder(calls...)

			blocks, res, err := allocator.Flush(device)
			require.Nil(t, blocks)
			require.Equal(t, core1_0.VKErrorOutOfDeviceMemory, res)
			require.True(t, errors.Is(err, memutils.ErrAllocationFailed))
			require.Empty(t, recorder.bound)

			require.Len(t, freed, testCase.FailingGroup)
			require.Len(t, callbackAllocated, testCase.FailingGroup)
			require.Len(t, callbackFreed, testCase.FailingGroup)
			for i := range freed {
				require.Same(t, allocated[len(allocated)-1-i], freed[i])
				require.Same(t, allocated[len(allocated)-1-i], callbackFreed[i])
			}

			require.Equal(t, StateFailed, allocator.State())

			err = allocator.Request(100, 0, 1, 0, recorder.bindFunc(""))
			require.True(t, errors.Is(err, memutils.ErrAllocatorFailed))

			_, _, err = allocator.Flush(device)
			require.True(t, errors.Is(err, memutils.ErrAllocatorFailed))
		})
	}
}

func TestFlushResolutionFailureAllocatesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	device := readyDevice(ctrl)
	allocator := New(nil, CreateOptions{})
	recorder := &bindRecorder{}

	require.NoError(t, allocator.Request(100, 0, 0b10, 0, recorder.bindFunc("ok")))
	require.NoError(t, allocator.Request(100, 0, 0b01, core1_0.MemoryPropertyHostCached, recorder.bindFunc("bad")))

	blocks, res, err := allocator.Flush(device)
	require.Nil(t, blocks)
	require.Equal(t, core1_0.VKErrorFeatureNotPresent, res)
	require.True(t, errors.Is(err, memutils.ErrNoSuitableMemoryType))
	require.Empty(t, recorder.bound)
	require.Equal(t, StateFailed, allocator.State())
}

func TestFlushBindFailureStopsBinding(t *testing.T) {
	ctrl := gomock.NewController(t)
	device := readyDevice(ctrl)

	var callbackAllocated, callbackFreed int
	allocator := New(nil, CreateOptions{
		MemoryCallbackOptions: &MemoryCallbackOptions{
			Allocate: func(allocator *Allocator, memoryType int, memory core1_0.DeviceMemory, size int, userData interface{}) {
				callbackAllocated++
			},
			Free: func(allocator *Allocator, memoryType int, memory core1_0.DeviceMemory, size int, userData interface{}) {
				callbackFreed++
			},
		},
	})
	recorder := &bindRecorder{}

	require.NoError(t, allocator.Request(100, 0, 0b10, 0, recorder.bindFunc("first")))
	require.NoError(t, allocator.Request(100, 0, 0b10, 0, func(memory core1_0.DeviceMemory, offset int) (common.VkResult, error) {
		return core1_0.VKErrorOutOfDeviceMemory, core1_0.VKErrorOutOfDeviceMemory.ToError()
	}))
	require.NoError(t, allocator.Request(100, 0, 0b10, 0, recorder.bindFunc("third")))

	memory := mocks.EasyMockDeviceMemory(ctrl)
	device.EXPECT().AllocateMemory(1, 300).Return(memory, core1_0.VKSuccess, nil)

	blocks, res, err := allocator.Flush(device)
	require.Equal(t, core1_0.VKErrorOutOfDeviceMemory, res)
	require.True(t, errors.Is(err, memutils.ErrBindFailed))
	require.Len(t, blocks, 1)
	require.Same(t, memory, blocks[0].Memory)

	require.Len(t, recorder.bound, 1)
	require.Equal(t, "first", recorder.bound[0].name)
	require.Equal(t, StateFailed, allocator.State())

	_, _, err = allocator.Flush(device)
	require.True(t, errors.Is(err, memutils.ErrAllocatorFailed))
	require.Len(t, recorder.bound, 1)

	device.EXPECT().FreeMemory(1, 300, gomock.Any())
	FreeBlocks(device, blocks)
	require.Equal(t, 1, callbackAllocated)
	require.Equal(t, 0, callbackFreed)
}

func TestFlushRejectsReentrantUse(t *testing.T) {
	ctrl := gomock.NewController(t)
	device := readyDevice(ctrl)
	allocator := New(nil, CreateOptions{})

	var requestErr, flushErr error
	require.NoError(t, allocator.Request(100, 0, 0b10, 0, func(memory core1_0.DeviceMemory, offset int) (common.VkResult, error) {
		require.Equal(t, StateFlushing, allocator.State())
		requestErr = allocator.Request(10, 0, 0b10, 0, func(core1_0.DeviceMemory, int) (common.VkResult, error) {
			return core1_0.VKSuccess, nil
		})
		_, _, flushErr = allocator.Flush(device)
		return core1_0.VKSuccess, nil
	}))

	device.EXPECT().AllocateMemory(1, 100).Return(mocks.EasyMockDeviceMemory(ctrl), core1_0.VKSuccess, nil)

	_, _, err := allocator.Flush(device)
	require.NoError(t, err)
	require.True(t, errors.Is(requestErr, memutils.ErrFlushInProgress))
	require.True(t, errors.Is(flushErr, memutils.ErrFlushInProgress))
	require.Equal(t, StateIdle, allocator.State())
}

var invalidRequestTestCases = map[string]struct {
	Size      int
	Alignment int
	NilBind   bool
}{
	"TestZeroSize": {
		Size: 0,
	},
	"TestNegativeSize": {
		Size: -4,
	},
	"TestNegativeAlignment": {
		Size:      16,
		Alignment: -1,
	},
	"TestNilBind": {
		Size:    16,
		NilBind: true,
	},
}

func TestRequestRejectsInvalidInput(t *testing.T) {
	for testName, testCase := range invalidRequestTestCases {
		t.Run(testName, func(t *testing.T) {
			allocator := New(nil, CreateOptions{})

			var bind BindFunc
			if !testCase.NilBind {
				bind = (&bindRecorder{}).bindFunc("")
			}

			err := allocator.Request(testCase.Size, testCase.Alignment, 0xffffffff, 0, bind)
			require.True(t, errors.Is(err, memutils.ErrInvalidRequest))
			require.Equal(t, 0, allocator.Pending())
			require.Equal(t, StateIdle, allocator.State())
		})
	}
}

func TestFlushEmptyQueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	device := readyDevice(ctrl)
	allocator := New(nil, CreateOptions{})

	blocks, res, err := allocator.Flush(device)
	require.NoError(t, err)
	require.Equal(t, core1_0.VKSuccess, res)
	require.Empty(t, blocks)
	require.Equal(t, StateIdle, allocator.State())
}

func TestFlushNilDevice(t *testing.T) {
	allocator := New(nil, CreateOptions{})
	_, _, err := allocator.Flush(nil)
	require.True(t, errors.Is(err, memutils.ErrInvalidConfiguration))
}

func TestAllocatorReusableAfterSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	device := readyDevice(ctrl)
	allocator := New(nil, CreateOptions{})
	recorder := &bindRecorder{}

	require.NoError(t, allocator.Request(100, 0, 0b10, 0, recorder.bindFunc("a")))
	device.EXPECT().AllocateMemory(1, 100).Return(mocks.EasyMockDeviceMemory(ctrl), core1_0.VKSuccess, nil)
	_, _, err := allocator.Flush(device)
	require.NoError(t, err)

	require.NoError(t, allocator.Request(40, 0, 0b10, 0, recorder.bindFunc("b")))
	device.EXPECT().AllocateMemory(1, 40).Return(mocks.EasyMockDeviceMemory(ctrl), core1_0.VKSuccess, nil)
	_, _, err = allocator.Flush(device)
	require.NoError(t, err)

	require.Len(t, recorder.bound, 2)
	require.Equal(t, 0, recorder.bound[1].offset)
	require.Equal(t, 1, allocator.Statistics().AllocationCount)
}

func TestRequestMemoryUsesRequirements(t *testing.T) {
	ctrl := gomock.NewController(t)
	device := readyDevice(ctrl)
	allocator := New(nil, CreateOptions{})
	recorder := &bindRecorder{}

	require.NoError(t, allocator.RequestMemory("image", core1_0.MemoryRequirements{
		Size:           1000,
		Alignment:      256,
		MemoryTypeBits: 0b10000,
	}, core1_0.MemoryPropertyDeviceLocal, recorder.bindFunc("image")))
	require.NoError(t, allocator.RequestMemory("buffer", core1_0.MemoryRequirements{
		Size:           24,
		Alignment:      16,
		MemoryTypeBits: 0b10000,
	}, core1_0.MemoryPropertyHostVisible, recorder.bindFunc("buffer")))

	device.EXPECT().AllocateMemory(4, 1032).Return(mocks.EasyMockDeviceMemory(ctrl), core1_0.VKSuccess, nil)

	_, _, err := allocator.Flush(device)
	require.NoError(t, err)
	require.Equal(t, 1008, recorder.bound[1].offset)
}

func TestFlushPlacementsDoNotOverlap(t *testing.T) {
	ctrl := gomock.NewController(t)
	device := readyDevice(ctrl)
	allocator := New(nil, CreateOptions{})

	sizes := []int{7, 300, 1, 64, 65, 4096, 3, 129}
	alignments := []int{0, 256, 1, 64, 32, 4096, 2, 128}

	type placement struct {
		size, alignment int
		memory          core1_0.DeviceMemory
		offset          int
	}
	placements := make([]*placement, len(sizes))

	for i := range sizes {
		p := &placement{size: sizes[i], alignment: alignments[i]}
		placements[i] = p
		require.NoError(t, allocator.Request(sizes[i], alignments[i], 0b110, 0, func(memory core1_0.DeviceMemory, offset int) (common.VkResult, error) {
			p.memory = memory
			p.offset = offset
			return core1_0.VKSuccess, nil
		}))
	}

	var groupSize int
	device.EXPECT().AllocateMemory(1, gomock.Any()).DoAndReturn(func(memoryTypeIndex int, size int) (core1_0.DeviceMemory, common.VkResult, error) {
		groupSize = size
		return mocks.EasyMockDeviceMemory(ctrl), core1_0.VKSuccess, nil
	})

	_, _, err := allocator.Flush(device)
	require.NoError(t, err)

	end := 0
	for _, p := range placements {
		require.GreaterOrEqual(t, p.offset, end)
		if p.alignment > 0 {
			require.Zero(t, p.offset%p.alignment)
		}
		end = p.offset + p.size
		require.LessOrEqual(t, end, groupSize)
	}
	require.Equal(t, end, groupSize)
}

func TestBuildStatsString(t *testing.T) {
	ctrl := gomock.NewController(t)
	device := readyDevice(ctrl)
	allocator := New(nil, CreateOptions{})
	recorder := &bindRecorder{}

	require.NoError(t, allocator.RequestNamed("luma", 100, 64, 0b10, 0, recorder.bindFunc("luma")))
	require.NoError(t, allocator.Request(50, 64, 0b10, 0, recorder.bindFunc("")))
	device.EXPECT().AllocateMemory(1, 178).Return(mocks.EasyMockDeviceMemory(ctrl), core1_0.VKSuccess, nil)

	_, _, err := allocator.Flush(device)
	require.NoError(t, err)

	var stats struct {
		Total struct {
			BlockCount      int
			AllocationCount int
			BlockBytes      int
			AllocationBytes int
		}
		MemoryTypes map[string]struct {
			TotalBytes     int
			Suballocations []struct {
				Offset    int
				Size      int
				Alignment int
				Name      string
			}
		}
	}
	require.NoError(t, json.Unmarshal([]byte(allocator.BuildStatsString()), &stats))

	require.Equal(t, 1, stats.Total.BlockCount)
	require.Equal(t, 2, stats.Total.AllocationCount)
	require.Equal(t, 178, stats.Total.BlockBytes)
	require.Equal(t, 150, stats.Total.AllocationBytes)

	group, ok := stats.MemoryTypes["1"]
	require.True(t, ok)
	require.Equal(t, 178, group.TotalBytes)
	require.Len(t, group.Suballocations, 2)
	require.Equal(t, "luma", group.Suballocations[0].Name)
	require.Equal(t, 128, group.Suballocations[1].Offset)
	require.Empty(t, group.Suballocations[1].Name)
}

func TestStateString(t *testing.T) {
	require.Equal(t, "StateCollecting", StateCollecting.String())
	require.Equal(t, "StateFailed", StateFailed.String())
}

func TestMemoryGroupValidate(t *testing.T) {
	allocator := New(nil, CreateOptions{})
	recorder := &bindRecorder{}
	require.NoError(t, allocator.Request(100, 64, 0b10, 0, recorder.bindFunc("")))
	require.NoError(t, allocator.Request(50, 64, 0b10, 0, recorder.bindFunc("")))

	plan, _, err := allocator.buildPlan(testMemoryTypes)
	require.NoError(t, err)
	require.Len(t, plan.groups, 1)

	group := plan.groups[0]
	require.NoError(t, group.Validate())

	group.requests[1].Offset = 64
	require.Error(t, group.Validate())

	group.requests[1].Offset = 130
	require.Error(t, group.Validate())

	group.requests[1].Offset = 128
	group.size = 200
	require.Error(t, group.Validate())
}
