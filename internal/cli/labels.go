package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/newgrf/nch/internal/domain"
)

func labelsCmd(flags *rootFlags) *cobra.Command {
	var classes []string
	var match string

	c := &cobra.Command{
		Use:   "labels",
		Short: "List cached cargo labels, optionally filtered by class",
		Long: "List cached cargo labels. With --class, only labels matching the given classes are shown:\n" +
			"  any   labels in at least one of the classes\n" +
			"  all   labels in every class\n" +
			"  none  labels in none of the classes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode, err := domain.ParseMatchMode(match)
			if err != nil {
				return err
			}
			bits, err := parseClassArgs(classes)
			if err != nil {
				return err
			}

			ws, err := loadWorkspace(flags.workspace, flags.debug)
			if err != nil {
				return err
			}
			defer ws.Close()

			reg := ws.openRegistry()
			if reg.Len() == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "(no labels cached; run `nch refresh`)")
				return nil
			}

			labels := reg.Labels()
			if len(bits) > 0 {
				labels = reg.Ordered(domain.MatchLabels(reg, mode, bits))
			}
			printLabels(cmd.OutOrStdout(), reg, labels)
			return nil
		},
	}

	c.Flags().StringSliceVarP(&classes, "class", "c", nil, "Cargo class filter (CC_BULK, bulk, ...); repeatable or comma separated")
	c.Flags().StringVarP(&match, "match", "m", "any", "How --class combines: any|all|none")
	return c
}

func printLabels(w io.Writer, reg *domain.Registry, labels []domain.CargoLabel) {
	if len(labels) == 0 {
		fmt.Fprintln(w, "(no matching labels)")
		return
	}
	for _, lb := range labels {
		fmt.Fprintf(w, "%-4s  0x%04X  %-28s  %s\n",
			lb.Code, lb.Bitmask, clamp(lb.Description, 28),
			strings.Join(reg.ClassesOf(lb.Code).NMLNames(), ", "))
	}
}

func clamp(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
