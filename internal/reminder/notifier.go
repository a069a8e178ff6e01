// Package reminder implements the due-date reminder sweep. The sweep is a
// single pass: an external scheduler (cron, systemd timer) runs it
// periodically, there is no in-process loop.
package reminder

import (
	"fmt"
	"io"
	"os"

	"github.com/Jawollo07/DC-Lib/internal/entities"
)

// Notifier delivers one reminder to the borrowing user. The Discord bot
// process ships its own implementation that sends a DM; this binary only
// carries a console implementation.
type Notifier interface {
	Notify(loan entities.Loan, daysLeft int) error
}

// ConsoleNotifier writes reminders to an output stream.
type ConsoleNotifier struct {
	Out io.Writer
}

func NewConsoleNotifier() *ConsoleNotifier {
	return &ConsoleNotifier{Out: os.Stdout}
}

func (n *ConsoleNotifier) Notify(loan entities.Loan, daysLeft int) error {
	_, err := fmt.Fprintf(n.Out, "-> user %d (%s): %s\n", loan.UserID, loan.Username, Message(loan, daysLeft))
	return err
}

// Message renders the reminder text for a loan.
func Message(loan entities.Loan, daysLeft int) string {
	due := loan.DueDate.Format("2006-01-02")
	switch {
	case daysLeft < 0:
		return fmt.Sprintf("%q is overdue, it was due on %s", loan.Title, due)
	case daysLeft == 0:
		return fmt.Sprintf("%q is due today (%s)", loan.Title, due)
	case daysLeft == 1:
		return fmt.Sprintf("%q is due tomorrow (%s)", loan.Title, due)
	default:
		return fmt.Sprintf("%q is due in %d days (%s)", loan.Title, daysLeft, due)
	}
}
