package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/Jawollo07/DC-Lib/internal/config"
)

// SetupCommand creates the configuration files a fresh checkout needs:
// a commented .env template and the default bot_config.json. Existing
// files are never overwritten.
type SetupCommand struct {
	EnvPath      string
	SettingsPath string
}

func NewSetupCommand() *SetupCommand {
	return &SetupCommand{}
}

func (cmd *SetupCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("setup", flag.ExitOnError)

	fs.StringVar(&cmd.EnvPath, "env", config.DefaultEnvPath, "Where to write the .env template")
	fs.StringVar(&cmd.SettingsPath, "config", config.DefaultSettingsPath, "Where to write the default settings file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s --setup [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create a .env template and a default settings file. Files that\n")
		fmt.Fprintf(os.Stderr, "already exist are left untouched.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *SetupCommand) Run() error {
	fmt.Println("🛠  Setup")
	fmt.Println("========")

	switch err := config.WriteEnvTemplate(cmd.EnvPath); {
	case err == nil:
		fmt.Printf("✅ Wrote %s\n", cmd.EnvPath)
	case errors.Is(err, config.ErrEnvExists):
		fmt.Printf("⏭️  %s already exists, left untouched\n", cmd.EnvPath)
	default:
		return fmt.Errorf("failed to write %s: %w", cmd.EnvPath, err)
	}

	settings, err := config.LoadSettings(cmd.SettingsPath)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", cmd.SettingsPath, err)
	}
	if settings.Exists() {
		fmt.Printf("⏭️  %s already exists, left untouched\n", cmd.SettingsPath)
	} else {
		if err := settings.Save(); err != nil {
			return fmt.Errorf("failed to write %s: %w", cmd.SettingsPath, err)
		}
		fmt.Printf("✅ Wrote %s with default settings\n", cmd.SettingsPath)
	}

	fmt.Println("\nNext steps:")
	fmt.Printf("  1. Edit %s and fill in DISCORD_TOKEN and the MySQL credentials\n", cmd.EnvPath)
	fmt.Printf("  2. Run '%s --validate' to check the configuration\n", os.Args[0])
	return nil
}
