package reminder

import (
	"fmt"
	"log"
	"time"

	"github.com/Jawollo07/DC-Lib/internal/database/loans"
	"github.com/Jawollo07/DC-Lib/internal/entities"
)

// Result summarizes one sweep.
type Result struct {
	Due      int // loans inside the reminder window
	Notified int // reminders delivered and marked
	Failed   int // delivery failures, left unmarked for the next sweep
}

// Sweeper finds loans whose due date is at most RemindDaysBefore days away
// and notifies the borrowers once per loan lifecycle.
type Sweeper struct {
	loans    *loans.Repository
	notifier Notifier
	lead     int
	now      func() time.Time
}

func NewSweeper(loansRepo *loans.Repository, notifier Notifier, remindDaysBefore int) *Sweeper {
	return &Sweeper{
		loans:    loansRepo,
		notifier: notifier,
		lead:     remindDaysBefore,
		now:      time.Now,
	}
}

// Due lists the loans the next Run would remind, without touching anything.
func (s *Sweeper) Due() ([]entities.Loan, error) {
	cutoff := s.today().AddDate(0, 0, s.lead)
	return s.loans.DueForReminder(cutoff)
}

// Run performs one sweep. A loan is marked reminded only after its
// notification went out; failed deliveries stay unmarked so the next sweep
// retries them. Delivery failures never abort the sweep.
func (s *Sweeper) Run() (Result, error) {
	due, err := s.Due()
	if err != nil {
		return Result{}, fmt.Errorf("failed to load due loans: %w", err)
	}

	result := Result{Due: len(due)}
	today := s.today()

	for _, loan := range due {
		daysLeft := loan.DaysLeft(today)

		if err := s.notifier.Notify(loan, daysLeft); err != nil {
			log.Printf("Failed to notify user %d about %q: %v", loan.UserID, loan.Title, err)
			result.Failed++
			continue
		}

		flipped, err := s.loans.MarkReminded(loan.ID)
		if err != nil {
			// The user got the reminder but the flag write failed; the next
			// sweep may remind again. Better twice than never.
			log.Printf("Failed to mark loan %d reminded: %v", loan.ID, err)
		} else if !flipped {
			log.Printf("Loan %d was already marked reminded", loan.ID)
		}
		result.Notified++
	}

	return result, nil
}

func (s *Sweeper) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
