// Package returnlog stores the return audit trail. The repository is
// append-only: rows are written once when a loan is returned and never
// updated or deleted afterwards.
package returnlog

import (
	"time"

	"gorm.io/gorm"

	"github.com/Jawollo07/DC-Lib/internal/entities"
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

// Append writes one audit row for a completed return.
func (r *Repository) Append(entry *entities.ReturnEntry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	return r.db.Create(entry).Error
}

// List retrieves paginated return entries, most recent first.
func (r *Repository) List(limit, offset int) ([]entities.ReturnEntry, int64, error) {
	return r.list(r.db.Model(&entities.ReturnEntry{}), limit, offset)
}

// ListByUser retrieves paginated return entries for one user, most recent first.
func (r *Repository) ListByUser(userID int64, limit, offset int) ([]entities.ReturnEntry, int64, error) {
	query := r.db.Model(&entities.ReturnEntry{}).Where("user_id = ?", userID)
	return r.list(query, limit, offset)
}

func (r *Repository) list(query *gorm.DB, limit, offset int) ([]entities.ReturnEntry, int64, error) {
	var entries []entities.ReturnEntry
	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	err := query.Order("timestamp DESC, id DESC").Limit(limit).Offset(offset).Find(&entries).Error
	return entries, total, err
}

func (r *Repository) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&entities.ReturnEntry{}).Count(&count).Error
	return count, err
}
