package entities

import "time"

// ReturnEntry is one row of the return audit trail. Rows are append-only:
// nothing in the codebase updates or deletes them once written.
type ReturnEntry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ModeratorID int64     `json:"moderator_id"` // who processed the return; equals UserID for self-returns
	UserID      int64     `json:"user_id"`
	ISBN        string    `gorm:"size:32" json:"isbn"`
	Timestamp   time.Time `gorm:"autoCreateTime" json:"timestamp"`
}

func (ReturnEntry) TableName() string {
	return "rueckgabe_log"
}
