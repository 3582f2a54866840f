package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/newgrf/nch/internal/domain"
)

func checkCmd() *cobra.Command {
	var include, exclude []string
	var strict bool

	c := &cobra.Command{
		Use:   "check",
		Short: "Check refittable / non-refittable class choices against the class rules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			inc, err := parseClassArgs(include)
			if err != nil {
				return err
			}
			exc, err := parseClassArgs(exclude)
			if err != nil {
				return err
			}

			included, excluded := domain.SetOf(inc...), domain.SetOf(exc...)
			if both := included.Intersect(excluded); !both.IsEmpty() {
				return &domain.OpError{
					Op:   "cli.check",
					Kind: domain.KindInvalidConfig,
					Err:  fmt.Errorf("%w: classes both included and excluded: %s", domain.ErrInvalidConfig, strings.Join(both.NMLNames(), ", ")),
				}
			}

			warnings := domain.EvaluateWarnings(included, excluded)
			printWarnings(cmd.OutOrStdout(), warnings)
			if strict && len(warnings) > 0 {
				return fmt.Errorf("%d warning(s)", len(warnings))
			}
			return nil
		},
	}

	c.Flags().StringSliceVarP(&include, "include", "i", nil, "Refittable classes (CC_BULK, bulk, ...)")
	c.Flags().StringSliceVarP(&exclude, "exclude", "x", nil, "Non-refittable classes")
	c.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when there are warnings")
	return c
}

func printWarnings(w io.Writer, warnings []domain.ClassWarning) {
	if len(warnings) == 0 {
		fmt.Fprintln(w, "No warnings.")
		return
	}
	for _, wr := range warnings {
		fmt.Fprintf(w, "! %s\n", wr)
	}
}
