package cli

import (
	"flag"
	"fmt"
	"os"
)

// HistoryCommand lists past returns from the audit log
type HistoryCommand struct {
	UserID int64
	Limit  int
}

func NewHistoryCommand() *HistoryCommand {
	return &HistoryCommand{}
}

func (cmd *HistoryCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)

	fs.Int64Var(&cmd.UserID, "user", 0, "Only show returns for this user ID (default: everyone)")
	fs.IntVar(&cmd.Limit, "limit", 20, "Maximum number of entries to show")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s history [-user <id>] [-limit <n>]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Show the return history, newest first.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *HistoryCommand) Run() error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	entries, total, err := app.service.History(cmd.UserID, cmd.Limit, 0)
	if err != nil {
		return err
	}

	if total == 0 {
		fmt.Println("No returns recorded yet")
		return nil
	}

	fmt.Printf("📦 Showing %d of %d return(s):\n\n", len(entries), total)
	fmt.Printf("%-20s %-12s %-12s %-14s\n", "Returned at", "User", "Moderator", "ISBN")
	for _, entry := range entries {
		fmt.Printf("%-20s %-12d %-12d %-14s\n",
			entry.Timestamp.Format("2006-01-02 15:04"),
			entry.UserID,
			entry.ModeratorID,
			entry.ISBN)
	}
	return nil
}
