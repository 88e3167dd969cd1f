package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/finderbridge/internal/core/domain"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Show how the data access service is reached",
	Long: `Resolves the data access service the way an import would and reports
whether it runs in this process or in a host of the other word size.`,
	Args: cobra.NoArgs,
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	if _, err := s.Broker.Acquire(cmd.Context()); err != nil {
		return fmt.Errorf("probe failed: %w", err)
	}
	arch, _ := s.Broker.Architecture()

	cmd.Printf("Word size: %s\n", domain.CurrentWordSize())
	cmd.Printf("Data access: %s\n", arch)
	return nil
}
