package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/Jawollo07/DC-Lib/internal/lending"
)

// BorrowCommand registers a new loan
type BorrowCommand struct {
	UserID      int64
	Username    string
	ISBN        string
	Title       string
	Authors     string
	Description string
	Cover       string
	Days        int
}

func NewBorrowCommand() *BorrowCommand {
	return &BorrowCommand{}
}

func (cmd *BorrowCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("borrow", flag.ExitOnError)

	fs.Int64Var(&cmd.UserID, "user", 0, "Discord user ID of the borrower (required)")
	fs.StringVar(&cmd.Username, "username", "", "Display name of the borrower (required)")
	fs.StringVar(&cmd.ISBN, "isbn", "", "ISBN of the borrowed book, 10 or 13 digits (required)")
	fs.StringVar(&cmd.Title, "title", "", "Book title (required)")
	fs.StringVar(&cmd.Authors, "authors", "", "Comma-separated author names")
	fs.StringVar(&cmd.Description, "description", "", "Book description")
	fs.StringVar(&cmd.Cover, "cover", "", "Cover image URL")
	fs.IntVar(&cmd.Days, "days", 0, "Loan period in days (default: configured due period)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s borrow -user <id> -username <name> -isbn <isbn> -title <title> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Register a borrowed book for a user. The due date is today plus the\n")
		fmt.Fprintf(os.Stderr, "configured due period (or -days). A user can hold one loan per ISBN.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s borrow -user 1234 -username alice -isbn 978-3-16-148410-0 -title \"Faust\"\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s borrow -user 1234 -username alice -isbn 9783161484100 -title \"Faust\" -days 7\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.UserID == 0 {
		return fmt.Errorf("required flag -user not provided")
	}
	if cmd.Username == "" {
		return fmt.Errorf("required flag -username not provided")
	}
	if cmd.ISBN == "" {
		return fmt.Errorf("required flag -isbn not provided")
	}
	if cmd.Title == "" {
		return fmt.Errorf("required flag -title not provided")
	}

	return nil
}

func (cmd *BorrowCommand) Run() error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	loan, err := app.service.Checkout(lending.CheckoutRequest{
		UserID:        cmd.UserID,
		Username:      cmd.Username,
		ISBN:          cmd.ISBN,
		Title:         cmd.Title,
		Authors:       cmd.Authors,
		Description:   cmd.Description,
		Cover:         cmd.Cover,
		DuePeriodDays: cmd.Days,
	})
	if err != nil {
		return err
	}

	fmt.Printf("✅ Registered \"%s\" for %s (ISBN %s)\n", loan.Title, loan.Username, loan.ISBN)
	fmt.Printf("📅 Due on %s\n", loan.DueDate.Format("2006-01-02"))
	return nil
}
