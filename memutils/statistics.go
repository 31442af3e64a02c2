package memutils

import "github.com/launchdarkly/go-jsonstream/v3/jwriter"

// Statistics counts real device memory allocations (blocks) and the resource ranges placed inside
// them (allocations).
type Statistics struct {
	BlockCount      int
	AllocationCount int
	BlockBytes      int
	AllocationBytes int
}

func (s *Statistics) Clear() {
	s.BlockCount = 0
	s.AllocationCount = 0
	s.BlockBytes = 0
	s.AllocationBytes = 0
}

func (s *Statistics) AddStatistics(other *Statistics) {
	s.BlockCount += other.BlockCount
	s.AllocationCount += other.AllocationCount
	s.BlockBytes += other.BlockBytes
	s.AllocationBytes += other.AllocationBytes
}

func (s *Statistics) AddBlock(size int) {
	s.BlockCount++
	s.BlockBytes += size
}

func (s *Statistics) AddAllocation(size int) {
	s.AllocationCount++
	s.AllocationBytes += size
}

// UnusedBytes is the number of block bytes that no allocation covers, i.e. the alignment padding
func (s *Statistics) UnusedBytes() int {
	return s.BlockBytes - s.AllocationBytes
}

func (s *Statistics) PrintJson(json *jwriter.ObjectState) {
	json.Name("BlockCount").Int(s.BlockCount)
	json.Name("BlockBytes").Int(s.BlockBytes)
	json.Name("AllocationCount").Int(s.AllocationCount)
	json.Name("AllocationBytes").Int(s.AllocationBytes)
	json.Name("UnusedBytes").Int(s.UnusedBytes())
}
