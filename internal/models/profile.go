package models

// Profile holds the student-athlete's account details.
type Profile struct {
	ProfileID string `gorm:"primarykey" json:"-"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Course    string `json:"course"`
	Sport     string `json:"sport"`
}

// HealthRecord is one day's wellness log entry, keyed by local date.
type HealthRecord struct {
	ProfileID string  `gorm:"primaryKey" json:"-"`
	Date      string  `gorm:"primaryKey" json:"date"`
	Sleep     float64 `json:"sleep"`    // hours
	Energy    int     `json:"energy"`   // 1-10
	Soreness  int     `json:"soreness"` // 1-10
	Note      string  `json:"note,omitempty"`
}
