package cli

import (
	"flag"
	"fmt"
	"os"
)

// ReturnCommand completes a loan: the row leaves the books table and one
// entry lands in the return log.
type ReturnCommand struct {
	UserID      int64
	ISBN        string
	ModeratorID int64
}

func NewReturnCommand() *ReturnCommand {
	return &ReturnCommand{}
}

func (cmd *ReturnCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("return", flag.ExitOnError)

	fs.Int64Var(&cmd.UserID, "user", 0, "Discord user ID of the borrower (required)")
	fs.StringVar(&cmd.ISBN, "isbn", "", "ISBN of the returned book (required)")
	fs.Int64Var(&cmd.ModeratorID, "moderator", 0, "Discord user ID of the acting moderator (default: the borrower, self-return)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s return -user <id> -isbn <isbn> [-moderator <id>]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Mark a borrowed book as returned. The loan is removed and the return\n")
		fmt.Fprintf(os.Stderr, "is recorded in the audit log with the acting moderator.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s return -user 1234 -isbn 9783161484100\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s return -user 1234 -isbn 9783161484100 -moderator 5678\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.UserID == 0 {
		return fmt.Errorf("required flag -user not provided")
	}
	if cmd.ISBN == "" {
		return fmt.Errorf("required flag -isbn not provided")
	}

	// Self-return when no moderator was named
	if cmd.ModeratorID == 0 {
		cmd.ModeratorID = cmd.UserID
	}

	return nil
}

func (cmd *ReturnCommand) Run() error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	loan, err := app.service.Return(cmd.ModeratorID, cmd.UserID, cmd.ISBN)
	if err != nil {
		return err
	}

	fmt.Printf("✅ \"%s\" returned by %s (ISBN %s)\n", loan.Title, loan.Username, loan.ISBN)
	fmt.Println("📋 Return recorded in the audit log")
	return nil
}
