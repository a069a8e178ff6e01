package cli

import (
	"flag"
	"fmt"
	"os"
)

// ExtendCommand moves a loan's due date forward
type ExtendCommand struct {
	UserID int64
	ISBN   string
	Days   int
}

func NewExtendCommand() *ExtendCommand {
	return &ExtendCommand{}
}

func (cmd *ExtendCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("extend", flag.ExitOnError)

	fs.Int64Var(&cmd.UserID, "user", 0, "Discord user ID of the borrower (required)")
	fs.StringVar(&cmd.ISBN, "isbn", "", "ISBN of the loan to extend (required)")
	fs.IntVar(&cmd.Days, "days", 0, "Days to add to the due date (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s extend -user <id> -isbn <isbn> -days <n>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Extend a loan by up to the configured maximum. An extension never\n")
		fmt.Fprintf(os.Stderr, "re-arms an already sent reminder.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s extend -user 1234 -isbn 9783161484100 -days 7\n", os.Args[0])
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
	if cmd.Days == 0 {
		return fmt.Errorf("required flag -days not provided")
	}

	return nil
}

func (cmd *ExtendCommand) Run() error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	loan, err := app.service.Extend(cmd.UserID, cmd.ISBN, cmd.Days)
	if err != nil {
		return err
	}

	fmt.Printf("✅ Extended \"%s\" by %d day(s)\n", loan.Title, cmd.Days)
	fmt.Printf("📅 New due date: %s\n", loan.DueDate.Format("2006-01-02"))
	return nil
}
