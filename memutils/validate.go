package memutils

// Validatable is used by DebugValidate to check internal invariants of allocator state, such as a
// batch placement plan, in builds carrying the debug_mem_utils tag
type Validatable interface {
	Validate() error
}
