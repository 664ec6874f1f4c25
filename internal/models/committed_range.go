package models

import "time"

// CommittedRange is one completed selection reported by a picker session.
// StartDate and EndDate are stored exactly as clicked, so EndDate may
// precede StartDate when Backwards is set.
type CommittedRange struct {
	ID          uint      `gorm:"primaryKey"`
	SessionID   string    `gorm:"not null;index:idx_committed_ranges_session"`
	StartDate   time.Time `gorm:"type:date;not null"`
	EndDate     time.Time `gorm:"type:date;not null"`
	Backwards   bool      `gorm:"not null;default:false"`
	Label       string    `gorm:"not null;default:''"`
	CommittedAt time.Time `gorm:"not null"`
}
