package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (r *runner) sitesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sites",
		Short: "List sites supported by the download service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sites, err := r.client.SupportedSites(cmd.Context())
			if err != nil {
				return fmt.Errorf("load supported sites: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, s := range sites.Sites {
				fmt.Fprintln(out, s)
			}
			if sites.Total != "" {
				fmt.Fprintf(out, "Total supported: %s\n", sites.Total)
			}
			if sites.Note != "" {
				fmt.Fprintln(out, sites.Note)
			}
			return nil
		},
	}
}
