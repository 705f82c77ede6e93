package cmd

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"college-predictor/service"
)

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "Print the filter facets known to the backend",
	Args:  cobra.NoArgs,
	RunE:  runFilters,
}

func init() {
	rootCmd.AddCommand(filtersCmd)
}

func runFilters(cmd *cobra.Command, _ []string) error {
	client := newRecommendationClient(cfg)
	options, ok := client.LoadFilterOptions(commandContext(cmd))
	if !ok {
		fmt.Fprintln(cmd.ErrOrStderr(), service.DiagnosticFiltersUnavailable)
	}

	out, err := json.MarshalIndent(options.Normalized(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
