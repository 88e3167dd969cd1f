package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var wellsCmd = &cobra.Command{
	Use:   "wells",
	Short: "List wells matching the well filter",
	Args:  cobra.NoArgs,
	RunE:  runWells,
}

func init() {
	wellsCmd.Flags().String("filter", "", "UWI pattern (SQL LIKE) overriding connection.well_filter")
	rootCmd.AddCommand(wellsCmd)
}

func runWells(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	session := s.Settings.Session
	if filter, _ := cmd.Flags().GetString("filter"); filter != "" {
		session.WellFilter = filter
	}
	if err := ensurePassword(cmd, &session.Connection); err != nil {
		return err
	}

	headers, err := s.Importer.ListWells(cmd.Context(), session)
	if err != nil {
		return fmt.Errorf("listing wells: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "UWI\tNAME\tCLUSTER\tCLASS\tOPERATOR")
	for _, h := range headers {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", h.UWI, h.Name, h.Cluster, h.Class, h.Operator)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	cmd.Printf("%d wells\n", len(headers))
	return nil
}
