package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/newgrf/nch/internal/usecase"
)

func classesCmd(flags *rootFlags) *cobra.Command {
	c := &cobra.Command{
		Use:   "classes",
		Short: "List the cargo classes with usage tips and cached label counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(flags.workspace, flags.debug)
			if err != nil {
				return err
			}
			defer ws.Close()

			reg := ws.openRegistry()
			out := cmd.OutOrStdout()
			for _, cc := range reg.Classes() {
				fmt.Fprintf(out, "0x%04X  %-16s  %-28s  %-10s  %3d labels  %s\n",
					uint16(cc.Value), cc.NMLName, cc.Name, cc.Usage, len(reg.LabelsOf(cc.Value)), cc.Tips)
			}
			return nil
		},
	}

	c.AddCommand(classesVerifyCmd(flags))
	return c
}

func classesVerifyCmd(flags *rootFlags) *cobra.Command {
	var fromFile string

	c := &cobra.Command{
		Use:   "verify",
		Short: "Compare the built-in class table with the one published on the wiki",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(flags.workspace, flags.debug)
			if err != nil {
				return err
			}
			defer ws.Close()

			diffs, err := usecase.NewVerifyClasses(ws.classSource(fromFile), usecase.WithLogger(ws.log)).Execute(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(diffs) == 0 {
				fmt.Fprintln(out, "Class table matches the wiki.")
				return nil
			}
			for _, d := range diffs {
				fmt.Fprintf(out, "- %s\n", d)
			}
			return fmt.Errorf("class table differs from the wiki (%d difference(s))", len(diffs))
		},
	}

	c.Flags().StringVar(&fromFile, "from-file", "", "Parse a saved Action0/Cargos HTML page instead of downloading it")
	return c
}
