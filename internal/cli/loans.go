package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/Jawollo07/DC-Lib/internal/entities"
)

// LoansCommand lists every active loan
type LoansCommand struct{}

func NewLoansCommand() *LoansCommand {
	return &LoansCommand{}
}

func (cmd *LoansCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("loans", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s loans\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List all active loans, soonest due date first. Markers:\n")
		fmt.Fprintf(os.Stderr, "  ❌ overdue   ⚠️ due within %d days   ✅ on time\n", entities.DueSoonDays)
	}

	return fs.Parse(args)
}

func (cmd *LoansCommand) Run() error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	loanList, err := app.service.AllLoans()
	if err != nil {
		return err
	}

	if len(loanList) == 0 {
		fmt.Println("No active loans")
		return nil
	}

	today := app.service.Today()

	var overdue, dueSoon int
	for _, loan := range loanList {
		switch loan.Status(today) {
		case entities.LoanStatusOverdue:
			overdue++
		case entities.LoanStatusDueSoon:
			dueSoon++
		}
	}

	fmt.Printf("📚 %d active loan(s)", len(loanList))
	if overdue > 0 || dueSoon > 0 {
		fmt.Printf(" (%d overdue, %d due soon)", overdue, dueSoon)
	}
	fmt.Print("\n\n")

	printLoanTable(loanList, today)
	return nil
}
