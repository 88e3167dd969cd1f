package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/finderbridge/internal/core/domain"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Import every well matching the well filter",
	Long: `Imports well headers and, unless disabled, directional surveys, resampled
logs, the latest production state and formation tops.

A failing well is reported and skipped; the rest of the batch continues.`,
	Args: cobra.NoArgs,
	RunE: runLoad,
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Re-import the wells already in the project",
	Long: `Re-imports only the wells already present in the project store.
The well filter is ignored.`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

func init() {
	for _, c := range []*cobra.Command{loadCmd, updateCmd} {
		c.Flags().Bool("no-survey", false, "skip directional surveys and formation tops")
		c.Flags().Bool("no-logs", false, "skip well logs")
		c.Flags().String("suffix", "", "append to every well name")
		rootCmd.AddCommand(c)
	}
	loadCmd.Flags().String("filter", "", "UWI pattern (SQL LIKE) overriding connection.well_filter")
}

// passwordPrompt reads a password from the terminal.
// The boolean is false when stdin is not a terminal.
var passwordPrompt = func(w io.Writer, prompt string) (string, bool, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", false, nil
	}
	fmt.Fprint(w, prompt)
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", true, fmt.Errorf("reading password: %w", err)
	}
	return string(password), true, nil
}

func runLoad(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	opts, err := importOptions(cmd, s.Settings)
	if err != nil {
		return err
	}
	if filter, _ := cmd.Flags().GetString("filter"); filter != "" {
		opts.Session.WellFilter = filter
	}

	cmd.Printf("Loading wells matching %q...\n", opts.Session.WellFilter)
	report, err := s.Importer.Load(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}
	printReport(cmd, report)
	return nil
}

func runUpdate(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	opts, err := importOptions(cmd, s.Settings)
	if err != nil {
		return err
	}

	cmd.Println("Updating known wells...")
	report, err := s.Importer.Update(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	printReport(cmd, report)
	return nil
}

// importOptions applies command flags over the configured import settings.
func importOptions(cmd *cobra.Command, settings domain.Settings) (domain.ImportOptions, error) {
	opts := domain.ImportOptions{
		Session:     settings.Session,
		Columns:     domain.DefaultLogColumns(),
		LoadSurvey:  settings.Import.LoadSurvey,
		LoadLogs:    settings.Import.LoadLogs,
		NameFromUWI: settings.Import.NameFromUWI,
		Suffix:      settings.Import.Suffix,
	}
	if noSurvey, _ := cmd.Flags().GetBool("no-survey"); noSurvey {
		opts.LoadSurvey = false
	}
	if noLogs, _ := cmd.Flags().GetBool("no-logs"); noLogs {
		opts.LoadLogs = false
	}
	if cmd.Flags().Changed("suffix") {
		opts.Suffix, _ = cmd.Flags().GetString("suffix")
	}

	if err := ensurePassword(cmd, &opts.Session.Connection); err != nil {
		return domain.ImportOptions{}, err
	}
	return opts, nil
}

// ensurePassword prompts for a password when a user is configured without one.
func ensurePassword(cmd *cobra.Command, conn *domain.ConnectionParams) error {
	if conn.User == "" || conn.Password != "" {
		return nil
	}
	password, ok, err := passwordPrompt(cmd.OutOrStdout(), fmt.Sprintf("Password for %s: ", conn.User))
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("connection.password is not set and stdin is not a terminal")
	}
	conn.Password = password
	return nil
}

func printReport(cmd *cobra.Command, report *domain.ImportReport) {
	if report.ServerVersion != "" {
		cmd.Printf("Server: %s\n", report.ServerVersion)
	}
	for _, w := range report.Wells {
		if w.OK() {
			continue
		}
		msgs := make([]string, 0, len(w.Errors))
		for _, err := range w.Errors {
			msgs = append(msgs, err.Error())
		}
		cmd.Printf("  %s (%s): %s\n", w.Name, w.UWI, strings.Join(msgs, "; "))
	}
	if report.StateErr != nil {
		cmd.Printf("Well states not loaded: %v\n", report.StateErr)
	}
	if report.TopsErr != nil {
		cmd.Printf("Formation tops not loaded: %v\n", report.TopsErr)
	}
	cmd.Printf("Imported %d of %d wells (%d failed) in %s.\n",
		report.Loaded(), len(report.Wells), report.Failed(), report.Duration().Round(time.Millisecond))
}
