package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/Jawollo07/DC-Lib/internal/reminder"
)

// RemindCommand runs one reminder sweep. Scheduling is the host's job
// (cron, systemd timer); each invocation is a single pass.
type RemindCommand struct {
	DryRun bool
}

func NewRemindCommand() *RemindCommand {
	return &RemindCommand{}
}

func (cmd *RemindCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("remind", flag.ExitOnError)

	fs.BoolVar(&cmd.DryRun, "dry-run", false, "List due loans without notifying or marking anything")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s remind [-dry-run]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Notify borrowers whose loans are due within the reminder window.\n")
		fmt.Fprintf(os.Stderr, "Each loan is reminded once; a failed delivery is retried on the\n")
		fmt.Fprintf(os.Stderr, "next sweep. Run this from cron or a systemd timer.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *RemindCommand) Run() error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	lead := app.service.Policy().RemindDaysBefore
	sweeper := reminder.NewSweeper(app.loans, reminder.NewConsoleNotifier(), lead)

	if cmd.DryRun {
		due, err := sweeper.Due()
		if err != nil {
			return err
		}
		if len(due) == 0 {
			fmt.Println("Nothing due, nobody to remind")
			return nil
		}
		fmt.Printf("🔍 %d loan(s) would be reminded:\n", len(due))
		today := app.service.Today()
		for _, loan := range due {
			fmt.Printf("  user %d (%s): %s\n", loan.UserID, loan.Username, reminder.Message(loan, loan.DaysLeft(today)))
		}
		return nil
	}

	fmt.Println("🔔 Reminder sweep")
	result, err := sweeper.Run()
	if err != nil {
		return err
	}

	if result.Due == 0 {
		fmt.Println("Nothing due, nobody to remind")
		return nil
	}

	fmt.Printf("\n✅ Notified %d of %d due loan(s)\n", result.Notified, result.Due)
	if result.Failed > 0 {
		fmt.Printf("⚠️  %d notification(s) failed and will be retried on the next sweep\n", result.Failed)
	}
	return nil
}
