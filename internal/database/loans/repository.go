package loans

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Jawollo07/DC-Lib/internal/entities"
)

var (
	// ErrDuplicate is returned when a user already holds a loan for the ISBN.
	ErrDuplicate = errors.New("loan already exists for this user and ISBN")
	// ErrNotFound is returned when no matching loan row exists.
	ErrNotFound = errors.New("loan not found")
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the given transaction handle.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new loan. The composite unique key on (user_id, isbn) is
// the sole duplicate check: a concurrent second checkout loses at the
// database, not in application code.
func (r *Repository) Create(loan *entities.Loan) error {
	err := r.db.Create(loan).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

func (r *Repository) GetByUserAndISBN(userID int64, isbn string) (*entities.Loan, error) {
	var loan entities.Loan
	err := r.db.Where("user_id = ? AND isbn = ?", userID, isbn).First(&loan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// ListByUser retrieves a user's active loans, most urgent first.
func (r *Repository) ListByUser(userID int64) ([]entities.Loan, error) {
	var loans []entities.Loan
	err := r.db.Where("user_id = ?", userID).Order("due_date ASC").Find(&loans).Error
	return loans, err
}

func (r *Repository) ListAll() ([]entities.Loan, error) {
	var loans []entities.Loan
	err := r.db.Order("due_date ASC").Find(&loans).Error
	return loans, err
}

func (r *Repository) CountByUser(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Loan{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// UpdateDueDate moves a loan's due date. The reminded flag is deliberately
// left untouched: a loan that was already reminded stays reminded even if
// its due date moves into the future.
func (r *Repository) UpdateDueDate(userID int64, isbn string, due time.Time) error {
	result := r.db.Model(&entities.Loan{}).
		Where("user_id = ? AND isbn = ?", userID, isbn).
		Update("due_date", due)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkReminded flips the reminded flag to true and reports whether this call
// performed the transition. The reminded = false guard makes the flip
// idempotent: once set, repeat calls return false and write nothing.
func (r *Repository) MarkReminded(id uint) (bool, error) {
	result := r.db.Model(&entities.Loan{}).
		Where("id = ? AND reminded = ?", id, false).
		Update("reminded", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DueForReminder retrieves loans due on or before the cutoff date that have
// not been reminded yet.
func (r *Repository) DueForReminder(cutoff time.Time) ([]entities.Loan, error) {
	var loans []entities.Loan
	err := r.db.Where("reminded = ? AND due_date <= ?", false, cutoff).
		Order("due_date ASC").Find(&loans).Error
	return loans, err
}

// Delete removes a loan row by primary key. Only the return transaction
// calls this.
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&entities.Loan{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Loan{}).Count(&count).Error
	return count, err
}

func (r *Repository) CountOverdue(today time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Loan{}).Where("due_date < ?", today).Count(&count).Error
	return count, err
}

// CountDueSoon counts loans due within the next withinDays days, today
// included, overdue excluded.
func (r *Repository) CountDueSoon(today time.Time, withinDays int) (int64, error) {
	var count int64
	cutoff := today.AddDate(0, 0, withinDays)
	err := r.db.Model(&entities.Loan{}).
		Where("due_date >= ? AND due_date <= ?", today, cutoff).
		Count(&count).Error
	return count, err
}
