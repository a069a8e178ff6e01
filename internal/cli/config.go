package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/Jawollo07/DC-Lib/internal/config"
)

// ConfigCommand inspects and edits the bot_config.json settings document
type ConfigCommand struct {
	File string

	action string
	key    string
	value  string
}

func NewConfigCommand() *ConfigCommand {
	return &ConfigCommand{}
}

func (cmd *ConfigCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("config", flag.ExitOnError)

	fs.StringVar(&cmd.File, "file", config.DefaultSettingsPath, "Path to the settings file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s config <show|set|reset> [key] [value]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Inspect or edit the JSON settings document.\n\n")
		fmt.Fprintf(os.Stderr, "Actions:\n")
		fmt.Fprintf(os.Stderr, "  show [key]        Print the whole document, or one key/section\n")
		fmt.Fprintf(os.Stderr, "  set <key> <value> Set a value by dot path and save\n")
		fmt.Fprintf(os.Stderr, "  reset <section>   Restore one top-level section to its defaults\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s config show media_settings\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s config set media_settings.due_period_days 21\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s config reset notifications\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd.action = fs.Arg(0)
	cmd.key = fs.Arg(1)
	cmd.value = fs.Arg(2)

	switch cmd.action {
	case "show":
	case "set":
		if cmd.key == "" || fs.NArg() < 3 {
			return fmt.Errorf("set needs a key and a value")
		}
	case "reset":
		if cmd.key == "" {
			return fmt.Errorf("reset needs a section name")
		}
	case "":
		return fmt.Errorf("missing action, expected show, set or reset")
	default:
		return fmt.Errorf("unknown action %q, expected show, set or reset", cmd.action)
	}

	return nil
}

func (cmd *ConfigCommand) Run() error {
	settings, err := config.LoadSettings(cmd.File)
	if err != nil {
		return err
	}

	switch cmd.action {
	case "show":
		return cmd.show(settings)
	case "set":
		return cmd.set(settings)
	case "reset":
		if err := settings.ResetSection(cmd.key); err != nil {
			return err
		}
		fmt.Printf("✅ Section %q restored to defaults\n", cmd.key)
		return nil
	}
	return nil
}

func (cmd *ConfigCommand) show(settings *config.Settings) error {
	var value any = settings.All()
	if cmd.key != "" {
		v, ok := settings.Get(cmd.key)
		if !ok {
			return fmt.Errorf("no such setting: %s", cmd.key)
		}
		value = v
	}

	out, err := json.MarshalIndent(value, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	fmt.Println(string(out))

	if !settings.Exists() {
		fmt.Fprintf(os.Stderr, "\n(defaults only, %s does not exist yet)\n", settings.Path())
	}
	return nil
}

func (cmd *ConfigCommand) set(settings *config.Settings) error {
	if err := settings.Set(cmd.key, coerceValue(cmd.value)); err != nil {
		return err
	}
	fmt.Printf("✅ %s = %s (saved to %s)\n", cmd.key, cmd.value, settings.Path())
	return nil
}

// coerceValue turns CLI text into the JSON type it reads as: bools and
// numbers stay typed, everything else remains a string. Only the literal
// words count as bools so "1" stays a number.
func coerceValue(raw string) any {
	switch raw {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}
