package ui

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekpulse/internal/dateutil"
	"github.com/javiermolinar/weekpulse/internal/exchange"
	"github.com/javiermolinar/weekpulse/internal/locale"
	"github.com/javiermolinar/weekpulse/internal/summary"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

func (a *App) pulseCmd() *cobra.Command {
	var (
		selected string
		asJSON   bool
		copyOut  bool
		insight  bool
		noColor  bool
	)

	cmd := &cobra.Command{
		Use:   "pulse",
		Short: "Print the 7-Day Weekly Pulse",
		Long: `Print one line per day from today through the next six days with the
number of pending project and area tasks.

Today is marked with '*', the selected day with '>'.`,
		Example: `  weekpulse pulse
  weekpulse pulse --selected=friday
  weekpulse pulse --json
  weekpulse pulse --insight --copy`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor || asJSON || !stdoutIsTerminal() {
				DisableColor()
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			now := a.now()
			sel := dateutil.Today(now)
			if selected != "" {
				key, err := dateutil.ParseRelativeDate(selected, now)
				if err != nil {
					return fmt.Errorf("parsing --selected: %w", err)
				}
				sel = key
			}

			pulse, _, err := summary.BuildPulseFromRepo(context.Background(), a.repo, summary.BuildPulseOptions{
				Now:            now,
				IncludeInsight: insight,
				Provider:       a.config.LLM.Provider,
				Model:          a.config.LLM.Model,
				BaseURL:        a.config.LLM.BaseURL,
			})
			if err != nil {
				return fmt.Errorf("building pulse: %w", err)
			}

			names := locale.New(a.config.UI.Locale)
			out := cmd.OutOrStdout()

			if asJSON {
				if err := exchange.EncodePulse(out, exchange.NewPulseDocument(pulse, names, sel)); err != nil {
					return err
				}
			} else {
				fmt.Fprint(out, formatPulse(pulse, names, sel))
				if pulse.Insight != "" {
					fmt.Fprintln(out)
					PrintInsightWrapped(out, pulse.Insight, min(termWidth(), 80))
				}
			}

			if copyOut {
				if err := writeClipboard(pulse.Text(names, sel)); err != nil {
					return fmt.Errorf("copying to clipboard: %w", err)
				}
				fmt.Fprintln(cmd.ErrOrStderr(), "Copied pulse to clipboard")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&selected, "selected", "", "Day to mark as selected (YYYY-MM-DD, today, tomorrow, weekday)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the pulse as JSON")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Copy the plain-text pulse to the clipboard")
	cmd.Flags().BoolVar(&insight, "insight", false, "Ask the configured LLM for a short read of the week")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}
