package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/newgrf/nch/internal/infra/clipboard"
	"github.com/newgrf/nch/internal/infra/fsworkspace"
	"github.com/newgrf/nch/internal/ui/tui"
	"github.com/newgrf/nch/internal/usecase"
)

type rootFlags struct {
	workspace string
	debug     bool
}

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:          "nch",
		Short:        "nch - NewGRF cargo refit helper",
		Long:         "Pick the cargo labels and cargo classes a NewGRF vehicle should refit to, check them against the class rules and export NML.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(flags.workspace, flags.debug)
			if err != nil {
				return err
			}
			defer ws.Close()

			reg, loadErr := usecase.NewOpenRegistry(ws.store, usecase.WithLogger(ws.log)).Execute(ws.cfg)

			deps := tui.Deps{
				Registry:             reg,
				LoadErr:              loadErr,
				Refresh:              usecase.NewRefreshLabels(ws.source, ws.store, usecase.WithLogger(ws.log)),
				Clear:                usecase.NewClearLabels(ws.store, usecase.WithLogger(ws.log)),
				Clipboard:            clipboard.System{},
				WorkspaceRoot:        ws.root,
				WorkspaceFound:       ws.found,
				WorkspaceInitializer: fsworkspace.NewInitializer(),
				Logger:               ws.log,
			}

			return tui.Run(cmd.Context(), deps)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.workspace, "workspace", "w", "", "Workspace root (optional; autodetected from nch.yaml)")
	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable verbose logging to .nch/logs/nch.log")

	cmd.AddCommand(
		refreshCmd(flags),
		labelsCmd(flags),
		classesCmd(flags),
		checkCmd(),
		exportCmd(flags),
		cacheCmd(flags),
		initCmd(),
		versionCmd(),
	)
	return cmd
}
