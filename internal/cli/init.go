package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/newgrf/nch/internal/infra/fsworkspace"
	"github.com/newgrf/nch/internal/usecase"
)

func initCmd() *cobra.Command {
	var path string
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create nch.yaml, .env.example and .nch/ in a project directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("invalid path: %w", err)
			}

			if err := usecase.NewInitWorkspace(fsworkspace.NewInitializer()).Execute(root, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Workspace initialized at %s\n", root)
			return nil
		},
	}

	c.Flags().StringVarP(&path, "path", "p", ".", "Directory to initialize")
	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing template files")
	return c
}
