package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/Jawollo07/DC-Lib/internal/config"
	"github.com/Jawollo07/DC-Lib/internal/database"
)

// ValidateCommand checks the environment configuration and, when it is
// sound, probes the database connection.
type ValidateCommand struct {
	SkipDB bool
}

func NewValidateCommand() *ValidateCommand {
	return &ValidateCommand{}
}

func (cmd *ValidateCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)

	fs.BoolVar(&cmd.SkipDB, "skip-db", false, "Only validate the configuration, do not touch the database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s --validate [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Validate the configuration. Every problem is reported, not just the\n")
		fmt.Fprintf(os.Stderr, "first. With a valid configuration the database connection is probed\n")
		fmt.Fprintf(os.Stderr, "as well.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *ValidateCommand) Run() error {
	fmt.Println("🔎 Configuration check")
	fmt.Println("======================")

	cfg := config.NewConfig()

	if problems := cfg.Validate(); len(problems) > 0 {
		for _, p := range problems {
			fmt.Printf("❌ %s\n", p.Error())
		}
		return fmt.Errorf("configuration is invalid (%d problem(s))", len(problems))
	}
	fmt.Println("✅ Configuration is valid")

	fmt.Println("\nOptional API keys:")
	for _, p := range cfg.APIKeys.Providers() {
		if p.Configured {
			fmt.Printf("  ✅ %s\n", p.Name)
		} else {
			fmt.Printf("  ⚪ %s (not configured)\n", p.Name)
		}
	}
	fmt.Println()

	if cmd.SkipDB {
		fmt.Println("⏭️  Database check skipped")
		return nil
	}

	db, err := database.New(database.Config{
		Host:     cfg.MySQL.Host,
		Port:     cfg.MySQL.Port,
		User:     cfg.MySQL.User,
		Password: cfg.MySQL.Password,
		Database: cfg.MySQL.Database,
	})
	if err != nil {
		fmt.Printf("❌ Database connection failed: %v\n", err)
		return fmt.Errorf("database is not reachable")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		fmt.Printf("❌ Database ping failed: %v\n", err)
		return fmt.Errorf("database is not reachable")
	}

	fmt.Printf("✅ Database %s reachable at %s:%d\n", cfg.MySQL.Database, cfg.MySQL.Host, cfg.MySQL.Port)
	return nil
}
