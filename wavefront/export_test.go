package wavefront

// Test bridge: lets wavefront_test build plans that bypass NewPlan so the
// coverage checks in Validate and Run can be exercised on broken partitions.

// NewPlanForTest assembles a Plan from raw parts without validating it.
func NewPlanForTest(lenX, lenY, workers int, strategy Strategy, ranges []Range) *Plan {
	return &Plan{lenX: lenX, lenY: lenY, workers: workers, strategy: strategy, ranges: ranges}
}

// CellsOnForTest exposes cellsOn.
var CellsOnForTest = cellsOn
