// Package lending implements the loan lifecycle: checkout, return with
// audit logging, extensions, listings and the dashboard statistics.
package lending

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Jawollo07/DC-Lib/internal/database/loans"
	"github.com/Jawollo07/DC-Lib/internal/database/returnlog"
	"github.com/Jawollo07/DC-Lib/internal/entities"
)

// Policy bundles the tunable lending rules.
type Policy struct {
	DuePeriodDays    int  // Days until a fresh loan is due
	RemindDaysBefore int  // Reminder lead time before the due date
	MaxLoansPerUser  int  // 0 means unlimited
	AllowExtensions  bool // Whether Extend is available at all
	MaxExtensionDays int  // Upper bound for a single extension
}

func DefaultPolicy() Policy {
	return Policy{
		DuePeriodDays:    14,
		RemindDaysBefore: 1,
		MaxLoansPerUser:  10,
		AllowExtensions:  true,
		MaxExtensionDays: 7,
	}
}

// CheckoutRequest carries everything needed to register a loan. Metadata
// fields arrive from the caller; this service does not look anything up.
type CheckoutRequest struct {
	UserID      int64
	Username    string
	ISBN        string
	Title       string
	Authors     string
	Description string
	Cover       string
	// DuePeriodDays overrides the policy period for this one loan when > 0.
	DuePeriodDays int
}

// Stats is the dashboard summary over both tables.
type Stats struct {
	ActiveLoans  int64 `json:"total_loans"`
	OverdueLoans int64 `json:"overdue_count"`
	DueSoonLoans int64 `json:"due_soon_count"`
	TotalReturns int64 `json:"total_returns"`
}

// Service provides the high-level loan operations.
type Service struct {
	db      *gorm.DB
	loans   *loans.Repository
	returns *returnlog.Repository
	policy  Policy
	now     func() time.Time
}

func NewService(db *gorm.DB, loansRepo *loans.Repository, returnsRepo *returnlog.Repository, policy Policy) *Service {
	return &Service{
		db:      db,
		loans:   loansRepo,
		returns: returnsRepo,
		policy:  policy,
		now:     time.Now,
	}
}

func (s *Service) Policy() Policy {
	return s.policy
}

// Checkout validates the request and registers a new loan due
// DuePeriodDays from today. A user holding this ISBN already gets
// ErrAlreadyBorrowed; the unique key on (user_id, isbn) makes that check
// safe against concurrent checkouts.
func (s *Service) Checkout(req CheckoutRequest) (*entities.Loan, error) {
	isbn, err := NormalizeISBN(req.ISBN)
	if err != nil {
		return nil, err
	}
	if req.Title == "" {
		return nil, ErrTitleRequired
	}

	if s.policy.MaxLoansPerUser > 0 {
		count, err := s.loans.CountByUser(req.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to count active loans: %w", err)
		}
		if count >= int64(s.policy.MaxLoansPerUser) {
			return nil, fmt.Errorf("%w (%d of %d)", ErrLoanLimit, count, s.policy.MaxLoansPerUser)
		}
	}

	period := req.DuePeriodDays
	if period <= 0 {
		period = s.policy.DuePeriodDays
	}

	loan := &entities.Loan{
		UserID:      req.UserID,
		Username:    req.Username,
		ISBN:        isbn,
		Title:       req.Title,
		Authors:     req.Authors,
		Description: req.Description,
		Cover:       req.Cover,
		DueDate:     s.today().AddDate(0, 0, period),
	}

	if err := s.loans.Create(loan); err != nil {
		if errors.Is(err, loans.ErrDuplicate) {
			return nil, ErrAlreadyBorrowed
		}
		return nil, fmt.Errorf("failed to create loan: %w", err)
	}
	return loan, nil
}

// Return closes a loan: the row is removed from the loans table and exactly
// one entry is appended to the return log, atomically. moderatorID records
// who processed the return; for self-returns it equals userID.
func (s *Service) Return(moderatorID, userID int64, rawISBN string) (*entities.Loan, error) {
	isbn, err := NormalizeISBN(rawISBN)
	if err != nil {
		return nil, err
	}

	var returned *entities.Loan
	err = s.db.Transaction(func(tx *gorm.DB) error {
		loansTx := s.loans.WithTx(tx)
		returnsTx := s.returns.WithTx(tx)

		loan, err := loansTx.GetByUserAndISBN(userID, isbn)
		if err != nil {
			if errors.Is(err, loans.ErrNotFound) {
				return ErrLoanNotFound
			}
			return err
		}

		if err := loansTx.Delete(loan.ID); err != nil {
			return fmt.Errorf("failed to delete loan: %w", err)
		}

		entry := &entities.ReturnEntry{
			ModeratorID: moderatorID,
			UserID:      userID,
			ISBN:        isbn,
		}
		if err := returnsTx.Append(entry); err != nil {
			return fmt.Errorf("failed to append return log entry: %w", err)
		}

		returned = loan
		return nil
	})
	if err != nil {
		return nil, err
	}
	return returned, nil
}

// Extend pushes a loan's due date forward by the given number of days. The
// reminded flag keeps its value: an extension does not re-arm the reminder.
func (s *Service) Extend(userID int64, rawISBN string, days int) (*entities.Loan, error) {
	isbn, err := NormalizeISBN(rawISBN)
	if err != nil {
		return nil, err
	}
	if !s.policy.AllowExtensions {
		return nil, ErrExtensionsDisabled
	}
	if days < 1 || days > s.policy.MaxExtensionDays {
		return nil, fmt.Errorf("%w: %d days requested, at most %d allowed", ErrExtensionTooLong, days, s.policy.MaxExtensionDays)
	}

	loan, err := s.loans.GetByUserAndISBN(userID, isbn)
	if err != nil {
		if errors.Is(err, loans.ErrNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}

	due := loan.DueDate.AddDate(0, 0, days)
	if err := s.loans.UpdateDueDate(userID, isbn, due); err != nil {
		return nil, fmt.Errorf("failed to update due date: %w", err)
	}
	loan.DueDate = due
	return loan, nil
}

// UserLoans lists the active loans of one user, most urgent first.
func (s *Service) UserLoans(userID int64) ([]entities.Loan, error) {
	return s.loans.ListByUser(userID)
}

// AllLoans lists every active loan, most urgent first.
func (s *Service) AllLoans() ([]entities.Loan, error) {
	return s.loans.ListAll()
}

// History returns completed returns, newest first. A userID of 0 means all
// users.
func (s *Service) History(userID int64, limit, offset int) ([]entities.ReturnEntry, int64, error) {
	if userID > 0 {
		return s.returns.ListByUser(userID, limit, offset)
	}
	return s.returns.List(limit, offset)
}

// Stats aggregates the numbers shown on the dashboard.
func (s *Service) Stats() (*Stats, error) {
	today := s.today()

	active, err := s.loans.CountAll()
	if err != nil {
		return nil, fmt.Errorf("failed to count loans: %w", err)
	}
	overdue, err := s.loans.CountOverdue(today)
	if err != nil {
		return nil, fmt.Errorf("failed to count overdue loans: %w", err)
	}
	dueSoon, err := s.loans.CountDueSoon(today, entities.DueSoonDays)
	if err != nil {
		return nil, fmt.Errorf("failed to count due-soon loans: %w", err)
	}
	returns, err := s.returns.CountAll()
	if err != nil {
		return nil, fmt.Errorf("failed to count returns: %w", err)
	}

	return &Stats{
		ActiveLoans:  active,
		OverdueLoans: overdue,
		DueSoonLoans: dueSoon,
		TotalReturns: returns,
	}, nil
}

// Today reports the current date truncated to midnight UTC. Due dates and
// date comparisons all go through this so they stay time-of-day agnostic.
func (s *Service) Today() time.Time {
	return s.today()
}

func (s *Service) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
