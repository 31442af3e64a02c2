package batch

import (
	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/dustin/go-humanize"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/videomem/memutils"
	"golang.org/x/exp/slog"
)

// Allocator defers device memory allocation until every resource owner has declared its
// requirements, then places all requests that resolve to the same memory type into a single real
// allocation. An Allocator is not safe for concurrent use, and Flush must not be called from
// inside one of its own bind callbacks.
type Allocator struct {
	logger          *slog.Logger
	memoryCallbacks memoryCallbacks

	state   State
	pending []*AllocationRequest

	lastPlan   []*memoryGroup
	statistics memutils.Statistics
}

// memoryGroup is every request of a flush that resolved to one memory type, and the single real
// allocation backing them
type memoryGroup struct {
	memoryTypeIndex int
	size            int
	memory          core1_0.DeviceMemory
	requests        []*AllocationRequest
}

func (g *memoryGroup) Validate() error {
	end := 0
	for _, request := range g.requests {
		if request.MemoryTypeIndex != g.memoryTypeIndex {
			return errors.Newf("request %s is in the group for memory type %d but resolved to %d",
				request.displayName(), g.memoryTypeIndex, request.MemoryTypeIndex)
		}
		if request.Offset < end {
			return errors.Newf("request %s at offset %d overlaps the previous request ending at %d",
				request.displayName(), request.Offset, end)
		}
		if memutils.AlignUp(request.Offset, uint(request.Alignment)) != request.Offset {
			return errors.Newf("request %s at offset %d does not satisfy alignment %d",
				request.displayName(), request.Offset, request.Alignment)
		}
		end = request.Offset + request.Size
	}

	if end != g.size {
		return errors.Newf("memory type %d group is %d bytes but its last request ends at %d",
			g.memoryTypeIndex, g.size, end)
	}

	return nil
}

// State returns the allocator's current lifecycle stage
func (a *Allocator) State() State {
	return a.state
}

// Pending returns the number of requests waiting for the next flush
func (a *Allocator) Pending() int {
	return len(a.pending)
}

// Statistics returns the blocks and requests placed by the most recent successful flush
func (a *Allocator) Statistics() memutils.Statistics {
	return a.statistics
}

// Request queues a resource's memory requirement for the next flush. No memory is allocated.
//
// size - The number of bytes the resource needs. Must be greater than 0
//
// alignment - The required alignment of the resource's offset. 0 means unconstrained
//
// memoryTypeBits - A bitmask with one bit set for each memory type the resource can live in
//
// requiredFlags - Property flags the chosen memory type must carry
//
// bind - Called exactly once by Flush with the memory and offset the resource was placed at
func (a *Allocator) Request(
	size, alignment int,
	memoryTypeBits uint32,
	requiredFlags core1_0.MemoryPropertyFlags,
	bind BindFunc,
) error {
	return a.RequestNamed("", size, alignment, memoryTypeBits, requiredFlags, bind)
}

// RequestNamed behaves like Request, but attaches a name to the request for logs and stats output
func (a *Allocator) RequestNamed(
	name string,
	size, alignment int,
	memoryTypeBits uint32,
	requiredFlags core1_0.MemoryPropertyFlags,
	bind BindFunc,
) error {
	a.logger.Debug("Allocator::Request", slog.String("Name", name), slog.Int("Size", size), slog.Int("Alignment", alignment))

	switch a.state {
	case StateFailed:
		return errors.WithStack(memutils.ErrAllocatorFailed)
	case StateFlushing:
		return errors.WithStack(memutils.ErrFlushInProgress)
	}

	if size <= 0 {
		return errors.Wrapf(memutils.ErrInvalidRequest, "request %q has size %d", name, size)
	}
	if alignment < 0 {
		return errors.Wrapf(memutils.ErrInvalidRequest, "request %q has alignment %d", name, alignment)
	}
	if bind == nil {
		return errors.Wrapf(memutils.ErrInvalidRequest, "request %q has no bind callback", name)
	}

	a.pending = append(a.pending, &AllocationRequest{
		Name:           name,
		Size:           size,
		Alignment:      alignment,
		MemoryTypeBits: memoryTypeBits,
		RequiredFlags:  requiredFlags,
		Bind:           bind,
	})
	a.state = StateCollecting

	return nil
}

// RequestMemory queues a request for a resource using the requirements the device reported for it
func (a *Allocator) RequestMemory(
	name string,
	requirements core1_0.MemoryRequirements,
	requiredFlags core1_0.MemoryPropertyFlags,
	bind BindFunc,
) error {
	return a.RequestNamed(name, requirements.Size, requirements.Alignment, requirements.MemoryTypeBits, requiredFlags, bind)
}

// Flush resolves a memory type for every pending request, makes one real allocation per distinct
// memory type, and then binds every request in the order it was submitted.
//
// Memory types are allocated in the order they were first resolved. If any real allocation fails,
// the allocations already made are freed in reverse order, no bind callback is called, and the
// error matches memutils.ErrAllocationFailed. If a bind callback fails, Flush returns immediately
// with an error matching memutils.ErrBindFailed along with the blocks it allocated; nothing is
// unbound or freed, so the caller is responsible for the returned blocks.
//
// After any failure the allocator is in StateFailed and rejects further use. On success, the
// pending queue is emptied and the caller owns the returned blocks.
func (a *Allocator) Flush(device Device) (blocks []MemoryBlock, res common.VkResult, err error) {
	a.logger.Debug("Allocator::Flush", slog.Int("Requests", len(a.pending)))

	switch a.state {
	case StateFailed:
		return nil, core1_0.VKErrorUnknown, errors.WithStack(memutils.ErrAllocatorFailed)
	case StateFlushing:
		return nil, core1_0.VKErrorUnknown, errors.WithStack(memutils.ErrFlushInProgress)
	}

	if device == nil {
		return nil, core1_0.VKErrorUnknown, errors.Wrap(memutils.ErrInvalidConfiguration, "flush requires a device")
	}

	a.state = StateFlushing
	defer func() {
		if err != nil {
			a.logger.Debug("    Allocator::Flush FAILED", slog.String("Error", err.Error()))
			a.state = StateFailed
			return
		}

		a.state = StateIdle
	}()

	plan, res, err := a.buildPlan(device.MemoryTypes())
	if err != nil {
		return nil, res, err
	}

	blocks, res, err = a.allocatePlan(device, plan)
	if err != nil {
		return nil, res, err
	}

	for requestIndex, request := range a.pending {
		group := plan.groupFor(request.MemoryTypeIndex)
		res, err = request.Bind(group.memory, request.Offset)
		if err != nil {
			return blocks, res, errors.Wrapf(errors.Mark(err, memutils.ErrBindFailed),
				"bind failed for request %d (%s) at offset %d of memory type %d",
				requestIndex, request.displayName(), request.Offset, request.MemoryTypeIndex)
		}
	}

	a.statistics.Clear()
	for _, group := range plan.groups {
		a.statistics.AddBlock(group.size)
		for _, request := range group.requests {
			a.statistics.AddAllocation(request.Size)
		}
	}

	a.lastPlan = plan.groups
	a.pending = nil

	a.logger.Debug("    Allocator::Flush complete",
		slog.Int("Blocks", a.statistics.BlockCount),
		slog.Int("Requests", a.statistics.AllocationCount),
		slog.String("BlockBytes", humanize.IBytes(uint64(a.statistics.BlockBytes))),
	)

	return blocks, core1_0.VKSuccess, nil
}

type placementPlan struct {
	groups  []*memoryGroup
	byIndex *swiss.Map[int, *memoryGroup]
}

func (p *placementPlan) groupFor(memoryTypeIndex int) *memoryGroup {
	group, _ := p.byIndex.Get(memoryTypeIndex)
	return group
}

// buildPlan resolves each pending request's memory type and bump-allocates its offset within the
// group for that type. Groups are kept in first-encountered order.
func (a *Allocator) buildPlan(memoryTypes []core1_0.MemoryType) (*placementPlan, common.VkResult, error) {
	plan := &placementPlan{
		byIndex: swiss.NewMap[int, *memoryGroup](uint32(len(memoryTypes))),
	}

	for requestIndex, request := range a.pending {
		memoryTypeIndex, res, err := FindMemoryTypeIndex(memoryTypes, request.MemoryTypeBits, request.RequiredFlags)
		if err != nil {
			return nil, res, errors.Wrapf(err, "request %d (%s)", requestIndex, request.displayName())
		}
		request.MemoryTypeIndex = memoryTypeIndex

		group, ok := plan.byIndex.Get(memoryTypeIndex)
		if !ok {
			group = &memoryGroup{memoryTypeIndex: memoryTypeIndex}
			plan.byIndex.Put(memoryTypeIndex, group)
			plan.groups = append(plan.groups, group)
		}

		request.Offset = memutils.AlignUp(group.size, uint(request.Alignment))
		group.size = request.Offset + request.Size
		group.requests = append(group.requests, request)
	}

	for _, group := range plan.groups {
		memutils.DebugValidate(group)
	}

	return plan, core1_0.VKSuccess, nil
}

func (a *Allocator) allocatePlan(device Device, plan *placementPlan) ([]MemoryBlock, common.VkResult, error) {
	blocks := make([]MemoryBlock, 0, len(plan.groups))

	for _, group := range plan.groups {
		memory, res, err := device.AllocateMemory(group.memoryTypeIndex, group.size)
		if err != nil {
			a.logger.Debug("    Allocator::allocatePlan FAILED",
				slog.Int("MemoryTypeIndex", group.memoryTypeIndex),
				slog.String("Size", humanize.IBytes(uint64(group.size))),
			)
			a.rollback(device, blocks)
			return nil, res, errors.Wrapf(errors.Mark(err, memutils.ErrAllocationFailed),
				"device memory allocation failed for %d bytes of memory type %d", group.size, group.memoryTypeIndex)
		}

		group.memory = memory
		blocks = append(blocks, MemoryBlock{
			MemoryTypeIndex: group.memoryTypeIndex,
			Size:            group.size,
			Memory:          memory,
		})
		a.memoryCallbacks.Allocate(group.memoryTypeIndex, memory, group.size)

		a.logger.Debug("    Allocated block",
			slog.Int("MemoryTypeIndex", group.memoryTypeIndex),
			slog.Int("Requests", len(group.requests)),
			slog.String("Size", humanize.IBytes(uint64(group.size))),
		)
	}

	return blocks, core1_0.VKSuccess, nil
}

func (a *Allocator) rollback(device Device, blocks []MemoryBlock) {
	for blockIndex := len(blocks) - 1; blockIndex >= 0; blockIndex-- {
		block := blocks[blockIndex]
		a.memoryCallbacks.Free(block.MemoryTypeIndex, block.Memory, block.Size)
		device.FreeMemory(block.MemoryTypeIndex, block.Size, block.Memory)
	}
}
