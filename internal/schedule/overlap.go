package schedule

import (
	"sort"

	"github.com/athlemics/athlemics/internal/models"
)

// Positioned is a block annotated with its column within an overlap group,
// for side-by-side rendering. A consumer lays the block out at
// left = OverlapIndex * (100 / OverlapCount) percent of the day column.
type Positioned struct {
	models.Block
	OverlapIndex int
	OverlapCount int
}

// GroupOverlapping partitions one day's blocks into visually-stacked groups
// and assigns each block a column index and column count.
//
// Blocks are stably sorted by start time, then each is placed into the
// first existing group it time-overlaps (half-open intervals), opening a
// new group otherwise. This is a deliberate first-fit scan, not an optimal
// interval coloring: the layout must be deterministic and match what the
// user saw when the blocks were laid down.
func GroupOverlapping(blocks []models.Block) []Positioned {
	if len(blocks) == 0 {
		return nil
	}

	sorted := make([]models.Block, len(blocks))
	copy(sorted, blocks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return ToMinutes(sorted[i].Start) < ToMinutes(sorted[j].Start)
	})

	var groups [][]models.Block
	for _, block := range sorted {
		start := ToMinutes(block.Start)
		end := ToMinutes(block.End)

		placed := false
		for gi, group := range groups {
			for _, member := range group {
				if start < ToMinutes(member.End) && end > ToMinutes(member.Start) {
					groups[gi] = append(groups[gi], block)
					placed = true
					break
				}
			}
			if placed {
				break
			}
		}
		if !placed {
			groups = append(groups, []models.Block{block})
		}
	}

	out := make([]Positioned, 0, len(sorted))
	for _, group := range groups {
		for i, block := range group {
			out = append(out, Positioned{
				Block:        block,
				OverlapIndex: i,
				OverlapCount: len(group),
			})
		}
	}
	return out
}
