package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/Jawollo07/DC-Lib/internal/reminder"
)

// Notifier implementations
var _ reminder.Notifier = (*reminder.ConsoleNotifier)(nil)
