package lending

import "errors"

var (
	// ErrInvalidISBN rejects input that does not normalize to a 10 or 13
	// digit ISBN.
	ErrInvalidISBN = errors.New("invalid ISBN, expected 10 or 13 digits")

	// ErrTitleRequired rejects checkouts without a title.
	ErrTitleRequired = errors.New("title is required")

	// ErrAlreadyBorrowed means the user currently holds a loan for this ISBN.
	ErrAlreadyBorrowed = errors.New("this item is already borrowed by the user")

	// ErrLoanNotFound means no active loan matches the user and ISBN.
	ErrLoanNotFound = errors.New("no active loan found for this user and ISBN")

	// ErrLoanLimit means the user is at the configured maximum number of
	// simultaneous loans.
	ErrLoanLimit = errors.New("loan limit reached")

	// ErrExtensionsDisabled means the policy forbids extensions entirely.
	ErrExtensionsDisabled = errors.New("loan extensions are disabled")

	// ErrExtensionTooLong means the requested extension exceeds the allowed
	// number of days.
	ErrExtensionTooLong = errors.New("extension exceeds the allowed number of days")
)
