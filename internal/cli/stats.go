package cli

import (
	"flag"
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// StatsCommand prints loan statistics
type StatsCommand struct {
	JSON bool
}

func NewStatsCommand() *StatsCommand {
	return &StatsCommand{}
}

func (cmd *StatsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)

	fs.BoolVar(&cmd.JSON, "json", false, "Print statistics as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s stats [-json]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Summarize active loans and the return log.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *StatsCommand) Run() error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	stats, err := app.service.Stats()
	if err != nil {
		return err
	}

	if cmd.JSON {
		out, err := json.MarshalIndent(stats, "", "    ")
		if err != nil {
			return fmt.Errorf("failed to encode stats: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Println("📊 Loan statistics")
	fmt.Println("==================")
	fmt.Printf("Active loans:  %d\n", stats.ActiveLoans)
	fmt.Printf("Overdue:       %d\n", stats.OverdueLoans)
	fmt.Printf("Due soon:      %d\n", stats.DueSoonLoans)
	fmt.Printf("Total returns: %d\n", stats.TotalReturns)
	return nil
}
