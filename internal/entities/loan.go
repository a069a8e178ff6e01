package entities

import "time"

type LoanStatus string

const (
	LoanStatusOverdue LoanStatus = "overdue"
	LoanStatusDueSoon LoanStatus = "due_soon"
	LoanStatusOK      LoanStatus = "ok"
)

// DueSoonDays is the window, in days, within which a loan counts as due soon.
const DueSoonDays = 3

// Loan is one borrowed item. A user may hold at most one loan per ISBN,
// enforced by the composite unique key on (user_id, isbn).
type Loan struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      int64     `gorm:"not null;uniqueIndex:uq_user_isbn" json:"user_id"` // Discord user ID (snowflake)
	Username    string    `gorm:"size:100" json:"username"`                         // denormalized display name
	ISBN        string    `gorm:"size:32;uniqueIndex:uq_user_isbn" json:"isbn"`
	Title       string    `gorm:"size:255" json:"title"`
	Authors     string    `gorm:"type:text" json:"authors,omitempty"`
	Description string    `gorm:"type:longtext" json:"description,omitempty"`
	Cover       string    `gorm:"type:text" json:"cover,omitempty"` // cover image URL
	DueDate     time.Time `gorm:"type:date" json:"due_date"`
	Reminded    bool      `gorm:"default:false" json:"reminded"`
	CreatedOn   time.Time `gorm:"autoCreateTime" json:"created_on"`
}

func (Loan) TableName() string {
	return "books"
}

// DaysLeft reports the calendar-day distance from today to the due date.
// Negative means overdue. Both sides are truncated to dates so the result
// does not depend on the time of day.
func (l *Loan) DaysLeft(today time.Time) int {
	return int(truncateToDay(l.DueDate).Sub(truncateToDay(today)).Hours() / 24)
}

func (l *Loan) Status(today time.Time) LoanStatus {
	switch d := l.DaysLeft(today); {
	case d < 0:
		return LoanStatusOverdue
	case d <= DueSoonDays:
		return LoanStatusDueSoon
	default:
		return LoanStatusOK
	}
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
