package memutils

import "github.com/pkg/errors"

// PowerOfTwoError is the error returned from CheckPow2 or other methods if the number being tested is not a power of two
var PowerOfTwoError error = errors.New("number must be a power of two")

// ErrNoSuitableMemoryType is returned when none of the memory types permitted by a request's type bits
// carries all of the request's required property flags
var ErrNoSuitableMemoryType error = errors.New("no suitable memory type")

// ErrAllocationFailed is returned when a real device memory allocation fails during a batch flush. Every
// allocation already made by the same flush has been freed by the time it is returned.
var ErrAllocationFailed error = errors.New("device memory allocation failed")

// ErrBindFailed is returned when a bind callback fails during a batch flush
var ErrBindFailed error = errors.New("memory bind failed")

// ErrInvalidRequest is returned when an allocation request is rejected at enqueue time
var ErrInvalidRequest error = errors.New("invalid allocation request")

// ErrInvalidConfiguration is returned when an object is constructed with options it cannot honor
var ErrInvalidConfiguration error = errors.New("invalid configuration")

// ErrAllocatorFailed is returned from any use of a batch allocator whose flush has already failed
var ErrAllocatorFailed error = errors.New("allocator is in a failed state")

// ErrFlushInProgress is returned when a batch allocator is used from inside its own flush
var ErrFlushInProgress error = errors.New("flush already in progress")

// ErrInvalidSlot is returned when a picture buffer slot index is out of range
var ErrInvalidSlot error = errors.New("invalid slot index")

// ErrReferenceIsVictim is returned when the reference slot chosen for a frame is the slot that frame will overwrite
var ErrReferenceIsVictim error = errors.New("reference slot is the slot being overwritten")
