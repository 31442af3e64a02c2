package batch

import (
	"strconv"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
)

// BuildStatsString returns a JSON document describing the blocks and request placements made by
// the most recent successful flush
func (a *Allocator) BuildStatsString() string {
	writer := jwriter.NewWriter()
	a.PrintDetailedMap(&writer)
	return string(writer.Bytes())
}

func (a *Allocator) PrintDetailedMap(writer *jwriter.Writer) {
	objState := writer.Object()
	defer objState.End()

	totalObj := objState.Name("Total").Object()
	a.statistics.PrintJson(&totalObj)
	totalObj.End()

	blocksObj := objState.Name("MemoryTypes").Object()
	defer blocksObj.End()

	for _, group := range a.lastPlan {
		groupObj := blocksObj.Name(strconv.Itoa(group.memoryTypeIndex)).Object()
		groupObj.Name("TotalBytes").Int(group.size)
		group.printDetailedMapAllocations(&groupObj)
		groupObj.End()
	}
}

func (g *memoryGroup) printDetailedMapAllocations(json *jwriter.ObjectState) {
	arrayState := json.Name("Suballocations").Array()
	defer arrayState.End()

	for _, request := range g.requests {
		obj := arrayState.Object()
		obj.Name("Offset").Int(request.Offset)
		obj.Name("Size").Int(request.Size)
		obj.Name("Alignment").Int(request.Alignment)
		if request.Name != "" {
			obj.Name("Name").String(request.Name)
		}
		obj.End()
	}
}
