package cli

import (
	"flag"
	"fmt"
	"os"
)

// BooksCommand lists one user's active loans
type BooksCommand struct {
	UserID int64
}

func NewBooksCommand() *BooksCommand {
	return &BooksCommand{}
}

func (cmd *BooksCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("books", flag.ExitOnError)

	fs.Int64Var(&cmd.UserID, "user", 0, "Discord user ID (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s books -user <id>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List the active loans of one user, soonest due date first.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.UserID == 0 {
		return fmt.Errorf("required flag -user not provided")
	}

	return nil
}

func (cmd *BooksCommand) Run() error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	loanList, err := app.service.UserLoans(cmd.UserID)
	if err != nil {
		return err
	}

	if len(loanList) == 0 {
		fmt.Printf("User %d has no borrowed books\n", cmd.UserID)
		return nil
	}

	fmt.Printf("📚 %d borrowed book(s) for user %d:\n\n", len(loanList), cmd.UserID)
	printLoanTable(loanList, app.service.Today())
	return nil
}
