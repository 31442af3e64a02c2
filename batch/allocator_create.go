package batch

import (
	"io"

	"golang.org/x/exp/slog"
)

// State is the lifecycle stage of an Allocator
type State uint32

const (
	// StateIdle means no requests are pending
	StateIdle State = iota
	// StateCollecting means requests are pending and no flush has started
	StateCollecting
	// StateFlushing means Flush is executing, including while bind callbacks run
	StateFlushing
	// StateFailed means a flush failed. The allocator rejects all further use and a new one
	// must be created to retry.
	StateFailed
)

var stateMapping = make(map[State]string)

func (s State) String() string {
	return stateMapping[s]
}

func init() {
	stateMapping[StateIdle] = "StateIdle"
	stateMapping[StateCollecting] = "StateCollecting"
	stateMapping[StateFlushing] = "StateFlushing"
	stateMapping[StateFailed] = "StateFailed"
}

// CreateOptions contains optional settings when creating an allocator
type CreateOptions struct {
	// MemoryCallbackOptions is an optional set of callbacks that will be executed when a flush
	// allocates or rolls back real device memory
	MemoryCallbackOptions *MemoryCallbackOptions
}

// New creates a new, empty Allocator
//
// logger - Receives debug output for each operation. If nil, output is discarded
//
// options - Optional parameters: it is valid to leave all the fields blank
func New(logger *slog.Logger, options CreateOptions) *Allocator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	allocator := &Allocator{
		logger: logger,
	}
	allocator.memoryCallbacks = memoryCallbacks{
		Callbacks: options.MemoryCallbackOptions,
		Allocator: allocator,
	}

	return allocator
}
