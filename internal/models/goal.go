package models

import "time"

// Goal represents a longer-term objective on the dashboard.
type Goal struct {
	ID          string     `gorm:"primarykey" json:"id"`
	ProfileID   string     `gorm:"index" json:"-"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt"`
}

// Done reports whether the goal has been toggled complete.
func (g Goal) Done() bool {
	return g.CompletedAt != nil
}
