package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/newgrf/nch/internal/usecase"
)

func refreshCmd(flags *rootFlags) *cobra.Command {
	var fromFile string

	c := &cobra.Command{
		Use:   "refresh",
		Short: "Fetch the cargo label table and replace the cached labels",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(flags.workspace, flags.debug)
			if err != nil {
				return err
			}
			defer ws.Close()

			reg := ws.openRegistry()
			uc := usecase.NewRefreshLabels(ws.labelSource(fromFile), ws.store, usecase.WithLogger(ws.log))

			rep, err := uc.Execute(cmd.Context(), reg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Labels:    %d (was %d)\n", rep.Labels, rep.Previous)
			fmt.Fprintf(out, "Refreshed: %s\n", rep.RefreshedAt.Format(time.RFC3339))
			fmt.Fprintf(out, "Duration:  %s\n", rep.Duration.Round(time.Millisecond))
			fmt.Fprintf(out, "Saved to:  %s\n", ws.store.Path())
			return nil
		},
	}

	c.Flags().StringVar(&fromFile, "from-file", "", "Parse a saved CargoTypes HTML page instead of downloading it")
	return c
}
