// Package cli implements the subcommands behind the dc-lib binary. Each
// command is a struct with ParseFlags and Run, dispatched from main.
package cli

import (
	"fmt"
	"time"

	"github.com/Jawollo07/DC-Lib/internal/config"
	"github.com/Jawollo07/DC-Lib/internal/database"
	"github.com/Jawollo07/DC-Lib/internal/database/loans"
	"github.com/Jawollo07/DC-Lib/internal/database/returnlog"
	"github.com/Jawollo07/DC-Lib/internal/entities"
	"github.com/Jawollo07/DC-Lib/internal/lending"
)

// app bundles what an operational command needs: configuration, the
// settings document, an open database and the lending service.
type app struct {
	cfg      *config.Config
	settings *config.Settings
	db       *database.Database
	loans    *loans.Repository
	service  *lending.Service
}

func openApp() (*app, error) {
	cfg := config.NewConfig()

	if cfg.MySQL.User == "" {
		return nil, fmt.Errorf("MYSQL_USER is not set, run --setup to create a .env template")
	}

	settings, err := config.LoadSettings(config.DefaultSettingsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", config.DefaultSettingsPath, err)
	}

	db, err := database.New(database.Config{
		Host:     cfg.MySQL.Host,
		Port:     cfg.MySQL.Port,
		User:     cfg.MySQL.User,
		Password: cfg.MySQL.Password,
		Database: cfg.MySQL.Database,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	loansRepo := loans.NewRepository(db.DB)
	returnsRepo := returnlog.NewRepository(db.DB)
	service := lending.NewService(db.DB, loansRepo, returnsRepo, loanPolicy(settings))

	return &app{
		cfg:      cfg,
		settings: settings,
		db:       db,
		loans:    loansRepo,
		service:  service,
	}, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		fmt.Printf("Warning: failed to close database: %v\n", err)
	}
}

// loanPolicy resolves the effective lending policy: compiled defaults
// overridden by bot_config.json's media_settings section. The settings
// defaults are themselves seeded from the environment, so DUE_PERIOD_DAYS
// and REMIND_DAYS_BEFORE flow through when no file overrides them.
func loanPolicy(settings *config.Settings) lending.Policy {
	policy := lending.DefaultPolicy()
	policy.DuePeriodDays = settings.GetInt("media_settings.due_period_days", policy.DuePeriodDays)
	policy.RemindDaysBefore = settings.GetInt("media_settings.remind_days_before", policy.RemindDaysBefore)
	policy.MaxLoansPerUser = settings.GetInt("media_settings.max_loans_per_user", policy.MaxLoansPerUser)
	policy.AllowExtensions = settings.GetBool("media_settings.allow_extensions", policy.AllowExtensions)
	policy.MaxExtensionDays = settings.GetInt("media_settings.max_extension_days", policy.MaxExtensionDays)
	return policy
}

func statusMarker(status entities.LoanStatus) string {
	switch status {
	case entities.LoanStatusOverdue:
		return "❌"
	case entities.LoanStatusDueSoon:
		return "⚠️"
	default:
		return "✅"
	}
}

func printLoanTable(loanList []entities.Loan, today time.Time) {
	fmt.Printf("%-3s %-20s %-14s %-30s %-12s %s\n", "", "User", "ISBN", "Title", "Due", "Days left")
	for _, loan := range loanList {
		title := loan.Title
		if len(title) > 30 {
			title = title[:27] + "..."
		}
		fmt.Printf("%-3s %-20s %-14s %-30s %-12s %d\n",
			statusMarker(loan.Status(today)),
			loan.Username,
			loan.ISBN,
			title,
			loan.DueDate.Format("2006-01-02"),
			loan.DaysLeft(today))
	}
}
