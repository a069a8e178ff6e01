package lending

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Jawollo07/DC-Lib/internal/database/loans"
	"github.com/Jawollo07/DC-Lib/internal/database/returnlog"
	"github.com/Jawollo07/DC-Lib/internal/entities"
)

var testNow = time.Date(2026, 8, 25, 15, 4, 5, 0, time.UTC)

func setupService(t *testing.T, policy Policy) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Loan{}, &entities.ReturnEntry{})
	require.NoError(t, err)

	svc := NewService(db, loans.NewRepository(db), returnlog.NewRepository(db), policy)
	svc.now = func() time.Time { return testNow }
	return svc, db
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestService_Checkout(t *testing.T) {
	svc, _ := setupService(t, DefaultPolicy())

	loan, err := svc.Checkout(CheckoutRequest{
		UserID:   111111,
		Username: "alice",
		ISBN:     "978-3-16-148410-0",
		Title:    "Faust",
		Authors:  "Johann Wolfgang von Goethe",
	})
	require.NoError(t, err)

	assert.Equal(t, "9783161484100", loan.ISBN, "ISBN should be stored normalized")
	assert.True(t, loan.DueDate.Equal(day(2026, 9, 8)), "due date should be 14 days out, got %s", loan.DueDate)
	assert.False(t, loan.Reminded)

	t.Run("second checkout of the same ISBN fails", func(t *testing.T) {
		_, err := svc.Checkout(CheckoutRequest{
			UserID: 111111,
			ISBN:   "9783161484100",
			Title:  "Faust",
		})
		assert.ErrorIs(t, err, ErrAlreadyBorrowed)
	})

	t.Run("hyphenated and plain forms collide", func(t *testing.T) {
		_, err := svc.Checkout(CheckoutRequest{
			UserID: 111111,
			ISBN:   "978-3-16-148410-0",
			Title:  "Faust",
		})
		assert.ErrorIs(t, err, ErrAlreadyBorrowed)
	})

	t.Run("invalid ISBN", func(t *testing.T) {
		_, err := svc.Checkout(CheckoutRequest{UserID: 1, ISBN: "12-34", Title: "X"})
		assert.ErrorIs(t, err, ErrInvalidISBN)
	})

	t.Run("missing title", func(t *testing.T) {
		_, err := svc.Checkout(CheckoutRequest{UserID: 1, ISBN: "9783161484100"})
		assert.ErrorIs(t, err, ErrTitleRequired)
	})

	t.Run("per-loan due period override", func(t *testing.T) {
		loan, err := svc.Checkout(CheckoutRequest{
			UserID:        222222,
			ISBN:          "0134685996",
			Title:         "Effective Java",
			DuePeriodDays: 3,
		})
		require.NoError(t, err)
		assert.True(t, loan.DueDate.Equal(day(2026, 8, 28)), "due date should be 3 days out, got %s", loan.DueDate)
	})
}

func TestService_Checkout_LoanLimit(t *testing.T) {
	policy := DefaultPolicy()
	policy.MaxLoansPerUser = 2
	svc, _ := setupService(t, policy)

	_, err := svc.Checkout(CheckoutRequest{UserID: 1, ISBN: "1111111111", Title: "One"})
	require.NoError(t, err)
	_, err = svc.Checkout(CheckoutRequest{UserID: 1, ISBN: "2222222222", Title: "Two"})
	require.NoError(t, err)

	_, err = svc.Checkout(CheckoutRequest{UserID: 1, ISBN: "3333333333", Title: "Three"})
	assert.ErrorIs(t, err, ErrLoanLimit)

	t.Run("other users are unaffected", func(t *testing.T) {
		_, err := svc.Checkout(CheckoutRequest{UserID: 2, ISBN: "3333333333", Title: "Three"})
		assert.NoError(t, err)
	})

	t.Run("returning frees a slot", func(t *testing.T) {
		_, err := svc.Return(1, 1, "1111111111")
		require.NoError(t, err)

		_, err = svc.Checkout(CheckoutRequest{UserID: 1, ISBN: "4444444444", Title: "Four"})
		assert.NoError(t, err)
	})

	t.Run("zero means unlimited", func(t *testing.T) {
		unlimited := DefaultPolicy()
		unlimited.MaxLoansPerUser = 0
		svc, _ := setupService(t, unlimited)

		for i := 0; i < 15; i++ {
			isbn := fmt.Sprintf("97800000%05d", i)
			_, err := svc.Checkout(CheckoutRequest{UserID: 1, ISBN: isbn, Title: "Bulk"})
			require.NoError(t, err)
		}
	})
}

func TestService_Return(t *testing.T) {
	svc, db := setupService(t, DefaultPolicy())

	_, err := svc.Checkout(CheckoutRequest{
		UserID:   111111,
		Username: "alice",
		ISBN:     "9783161484100",
		Title:    "Faust",
	})
	require.NoError(t, err)

	returned, err := svc.Return(999999, 111111, "978-3-16-148410-0")
	require.NoError(t, err)
	assert.Equal(t, "Faust", returned.Title)

	t.Run("loan row is gone", func(t *testing.T) {
		var count int64
		require.NoError(t, db.Model(&entities.Loan{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("exactly one audit row with matching fields", func(t *testing.T) {
		var entries []entities.ReturnEntry
		require.NoError(t, db.Find(&entries).Error)
		require.Len(t, entries, 1)
		assert.Equal(t, int64(999999), entries[0].ModeratorID)
		assert.Equal(t, int64(111111), entries[0].UserID)
		assert.Equal(t, "9783161484100", entries[0].ISBN)
		assert.False(t, entries[0].Timestamp.IsZero())
	})

	t.Run("missing loan leaves the log untouched", func(t *testing.T) {
		_, err := svc.Return(999999, 111111, "9783161484100")
		assert.ErrorIs(t, err, ErrLoanNotFound)

		var count int64
		require.NoError(t, db.Model(&entities.ReturnEntry{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("checkout after return works again", func(t *testing.T) {
		loan, err := svc.Checkout(CheckoutRequest{
			UserID: 111111,
			ISBN:   "9783161484100",
			Title:  "Faust",
		})
		require.NoError(t, err)
		assert.False(t, loan.Reminded, "a re-created loan starts unreminded")
	})
}

func TestService_Return_RollbackOnAuditFailure(t *testing.T) {
	// Only the loans table is migrated, so the audit append inside the
	// return transaction fails and the whole return must roll back.
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Loan{}))

	svc := NewService(db, loans.NewRepository(db), returnlog.NewRepository(db), DefaultPolicy())
	svc.now = func() time.Time { return testNow }

	_, err = svc.Checkout(CheckoutRequest{UserID: 1, ISBN: "1111111111", Title: "One"})
	require.NoError(t, err)

	_, err = svc.Return(1, 1, "1111111111")
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&entities.Loan{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "the loan row must survive a failed audit append")
}

func TestService_Extend(t *testing.T) {
	svc, db := setupService(t, DefaultPolicy())

	_, err := svc.Checkout(CheckoutRequest{UserID: 1, ISBN: "1111111111", Title: "One"})
	require.NoError(t, err)

	extended, err := svc.Extend(1, "1111111111", 7)
	require.NoError(t, err)
	assert.True(t, extended.DueDate.Equal(day(2026, 9, 15)), "due date should move by 7 days, got %s", extended.DueDate)

	t.Run("reminded flag survives an extension", func(t *testing.T) {
		require.NoError(t, db.Model(&entities.Loan{}).
			Where("user_id = ? AND isbn = ?", 1, "1111111111").
			Update("reminded", true).Error)

		_, err := svc.Extend(1, "1111111111", 2)
		require.NoError(t, err)

		var loan entities.Loan
		require.NoError(t, db.Where("user_id = ? AND isbn = ?", 1, "1111111111").First(&loan).Error)
		assert.True(t, loan.Reminded, "extension must not re-arm the reminder")
	})

	t.Run("too many days", func(t *testing.T) {
		_, err := svc.Extend(1, "1111111111", 8)
		assert.ErrorIs(t, err, ErrExtensionTooLong)
	})

	t.Run("zero days", func(t *testing.T) {
		_, err := svc.Extend(1, "1111111111", 0)
		assert.ErrorIs(t, err, ErrExtensionTooLong)
	})

	t.Run("missing loan", func(t *testing.T) {
		_, err := svc.Extend(42, "1111111111", 3)
		assert.ErrorIs(t, err, ErrLoanNotFound)
	})

	t.Run("disabled by policy", func(t *testing.T) {
		policy := DefaultPolicy()
		policy.AllowExtensions = false
		svc, _ := setupService(t, policy)

		_, err := svc.Checkout(CheckoutRequest{UserID: 1, ISBN: "1111111111", Title: "One"})
		require.NoError(t, err)

		_, err = svc.Extend(1, "1111111111", 3)
		assert.ErrorIs(t, err, ErrExtensionsDisabled)
	})
}

func TestService_Listings(t *testing.T) {
	svc, _ := setupService(t, DefaultPolicy())

	_, err := svc.Checkout(CheckoutRequest{UserID: 1, ISBN: "1111111111", Title: "Late", DuePeriodDays: 20})
	require.NoError(t, err)
	_, err = svc.Checkout(CheckoutRequest{UserID: 1, ISBN: "2222222222", Title: "Soon", DuePeriodDays: 2})
	require.NoError(t, err)
	_, err = svc.Checkout(CheckoutRequest{UserID: 2, ISBN: "3333333333", Title: "Other", DuePeriodDays: 5})
	require.NoError(t, err)

	t.Run("user loans, most urgent first", func(t *testing.T) {
		mine, err := svc.UserLoans(1)
		require.NoError(t, err)
		require.Len(t, mine, 2)
		assert.Equal(t, "Soon", mine[0].Title)
		assert.Equal(t, "Late", mine[1].Title)
	})

	t.Run("all loans", func(t *testing.T) {
		all, err := svc.AllLoans()
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})
}

func TestService_History(t *testing.T) {
	svc, _ := setupService(t, DefaultPolicy())

	for i, isbn := range []string{"1111111111", "2222222222", "3333333333"} {
		userID := int64(1)
		if i == 2 {
			userID = 2
		}
		_, err := svc.Checkout(CheckoutRequest{UserID: userID, ISBN: isbn, Title: "Book"})
		require.NoError(t, err)
		_, err = svc.Return(userID, userID, isbn)
		require.NoError(t, err)
	}

	all, total, err := svc.History(0, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, all, 3)

	mine, total, err := svc.History(1, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, mine, 2)
}

func TestService_Stats(t *testing.T) {
	svc, _ := setupService(t, DefaultPolicy())

	// One overdue, one due soon, one comfortably out, one returned
	_, err := svc.Checkout(CheckoutRequest{UserID: 1, ISBN: "1111111111", Title: "Overdue", DuePeriodDays: 5})
	require.NoError(t, err)
	svc.now = func() time.Time { return testNow.AddDate(0, 0, 10) }

	_, err = svc.Checkout(CheckoutRequest{UserID: 2, ISBN: "2222222222", Title: "Soon", DuePeriodDays: 2})
	require.NoError(t, err)
	_, err = svc.Checkout(CheckoutRequest{UserID: 3, ISBN: "3333333333", Title: "Fine"})
	require.NoError(t, err)
	_, err = svc.Checkout(CheckoutRequest{UserID: 4, ISBN: "4444444444", Title: "Returned"})
	require.NoError(t, err)
	_, err = svc.Return(4, 4, "4444444444")
	require.NoError(t, err)

	stats, err := svc.Stats()
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.ActiveLoans)
	assert.Equal(t, int64(1), stats.OverdueLoans)
	assert.Equal(t, int64(1), stats.DueSoonLoans)
	assert.Equal(t, int64(1), stats.TotalReturns)
}
