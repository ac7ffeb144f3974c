package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekpulse/internal/config"
	"github.com/javiermolinar/weekpulse/internal/llm"
	"github.com/javiermolinar/weekpulse/internal/locale"
	"github.com/javiermolinar/weekpulse/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  weekpulse config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInteractive(cmd.InOrStdin(), cmd.OutOrStdout(), config.DefaultConfigPath())
		},
	}
}

func runConfigInteractive(in io.Reader, out io.Writer, configPath string) error {
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg)

	reader := bufio.NewReader(in)
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.Storage.DBPath = promptValue(reader, out, "Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = promptChoice(reader, out, "UI theme", cfg.UI.Theme, theme.Available(), theme.IsAvailable)
	cfg.UI.Locale = promptChoice(reader, out, "Locale (BCP 47 tag)", cfg.UI.Locale, locale.Supported(), locale.Valid)
	cfg.UI.Mouse = promptBool(reader, out, "Enable mouse", cfg.UI.Mouse)
	cfg.LLM.Provider = promptChoice(reader, out, "LLM provider", cfg.LLM.Provider, llm.Providers(), func(v string) bool {
		_, ok := llm.NormalizeProvider(v)
		return ok
	})
	cfg.LLM.Model = promptValue(reader, out, "LLM model", cfg.LLM.Model)
	cfg.LLM.BaseURL = promptValue(reader, out, "LLM base URL (Ollama/LM Studio)", cfg.LLM.BaseURL)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintln(out, "[storage]")
	fmt.Fprintf(out, "  db_path  = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(out, "\n[ui]")
	fmt.Fprintf(out, "  theme    = %s\n", cfg.UI.Theme)
	fmt.Fprintf(out, "  locale   = %s\n", cfg.UI.Locale)
	fmt.Fprintf(out, "  mouse    = %t\n", cfg.UI.Mouse)
	fmt.Fprintln(out, "\n[llm]")
	fmt.Fprintf(out, "  provider = %s\n", cfg.LLM.Provider)
	fmt.Fprintf(out, "  model    = %s\n", cfg.LLM.Model)
	fmt.Fprintf(out, "  base_url = %s\n", cfg.LLM.BaseURL)
}

func promptYesNo(reader *bufio.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptBool(reader *bufio.Reader, out io.Writer, label string, current bool) bool {
	for {
		value := promptValue(reader, out, label+" (true/false)", strconv.FormatBool(current))
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
		fmt.Fprintf(out, "  Invalid value %q.\n", value)
	}
}

// promptChoice re-asks until valid accepts the answer. An empty answer
// keeps current. EOF also keeps current so piped input cannot loop.
func promptChoice(reader *bufio.Reader, out io.Writer, label, current string, options []string, valid func(string) bool) string {
	joined := strings.Join(options, ", ")
	full := fmt.Sprintf("%s (%s)", label, joined)
	for {
		value := promptValue(reader, out, full, current)
		if valid(value) {
			return value
		}
		fmt.Fprintf(out, "  Invalid value %q. Available: %s\n", value, joined)
		if _, err := reader.Peek(1); err != nil {
			return current
		}
	}
}
