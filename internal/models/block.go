package models

// BlockType is the closed set of block categories.
type BlockType string

const (
	TypeStudy   BlockType = "study"
	TypeTrain   BlockType = "train"
	TypeClass   BlockType = "class"
	TypeTask    BlockType = "task"
	TypeMeeting BlockType = "meeting"
)

// BlockTypes lists every valid type in display order.
var BlockTypes = []BlockType{TypeStudy, TypeTrain, TypeClass, TypeTask, TypeMeeting}

// Valid reports whether t is one of the known block types.
func (t BlockType) Valid() bool {
	switch t {
	case TypeStudy, TypeTrain, TypeClass, TypeTask, TypeMeeting:
		return true
	}
	return false
}

// RepeatPolicy selects how a new block is expanded into occurrences.
type RepeatPolicy string

const (
	RepeatNone     RepeatPolicy = "none"
	RepeatEveryDay RepeatPolicy = "every_day"
	RepeatWeekdays RepeatPolicy = "weekdays"
	RepeatWeekly   RepeatPolicy = "weekly"
	RepeatMonthly  RepeatPolicy = "monthly"
	RepeatYearly   RepeatPolicy = "yearly"
)

// RepeatPolicies lists every policy in display order.
var RepeatPolicies = []RepeatPolicy{
	RepeatNone, RepeatEveryDay, RepeatWeekdays, RepeatWeekly, RepeatMonthly, RepeatYearly,
}

// Valid reports whether p is a known repeat policy.
func (p RepeatPolicy) Valid() bool {
	switch p {
	case RepeatNone, RepeatEveryDay, RepeatWeekdays, RepeatWeekly, RepeatMonthly, RepeatYearly:
		return true
	}
	return false
}

// Block represents one scheduled time interval on a specific date.
//
// Start and End are "HH:MM" 24-hour strings at minute granularity; End is
// after Start within the same day (no cross-midnight blocks). Date is the
// local-calendar day key "YYYY-MM-DD". Blocks on the same date may overlap
// in time; that is a rendered state, not an error.
type Block struct {
	ID        string    `gorm:"primarykey" json:"id"`
	ProfileID string    `gorm:"index" json:"-"`
	Title     string    `gorm:"not null" json:"title"`
	Desc      string    `json:"description,omitempty"`
	Start     string    `gorm:"not null" json:"start"`
	End       string    `gorm:"not null" json:"end"`
	Type      BlockType `gorm:"default:study" json:"type"`
	Date      string    `gorm:"index;not null" json:"date"`
	Completed bool      `gorm:"default:false" json:"completed"`

	// RepeatID links every occurrence generated from one recurring
	// creation. Empty for non-repeating blocks.
	RepeatID string `gorm:"index" json:"repeatId,omitempty"`
}
