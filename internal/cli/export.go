package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/newgrf/nch/internal/domain"
	"github.com/newgrf/nch/internal/infra/clipboard"
	"github.com/newgrf/nch/internal/ports"
	"github.com/newgrf/nch/internal/usecase/export"
)

type exportOptions struct {
	allow, disallow []string
	refit, noRefit  []string
	copyToClipboard bool
}

func exportCmd(flags *rootFlags) *cobra.Command {
	opts := &exportOptions{}

	c := &cobra.Command{
		Use:       "export <" + strings.Join(export.Formats, "|") + ">",
		Short:     "Render a refit selection as TSV, NML properties or a cargotable",
		Args:      cobra.ExactArgs(1),
		ValidArgs: export.Formats,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(flags.workspace, flags.debug)
			if err != nil {
				return err
			}
			defer ws.Close()

			var cb ports.Clipboard
			if opts.copyToClipboard {
				cb = clipboard.System{}
			}
			return runExport(cmd, ws.openRegistry(), args[0], opts, cb)
		},
	}

	c.Flags().StringSliceVar(&opts.allow, "allow", nil, "Labels for cargo_allow_refit")
	c.Flags().StringSliceVar(&opts.disallow, "disallow", nil, "Labels for cargo_disallow_refit")
	c.Flags().StringSliceVar(&opts.refit, "refit", nil, "Classes for refittable_cargo_classes")
	c.Flags().StringSliceVar(&opts.noRefit, "no-refit", nil, "Classes for non_refittable_cargo_classes")
	c.Flags().BoolVar(&opts.copyToClipboard, "copy", false, "Copy the result to the clipboard as well")
	return c
}

// runExport builds a selection from the flags. Labels missing from the
// registry are reported and skipped.
func runExport(cmd *cobra.Command, reg *domain.Registry, format string, opts *exportOptions, cb ports.Clipboard) error {
	refit, err := parseClassArgs(opts.refit)
	if err != nil {
		return err
	}
	noRefit, err := parseClassArgs(opts.noRefit)
	if err != nil {
		return err
	}

	sel := domain.NewSelection(reg)
	moves := []error{
		sel.MoveLabels(domain.BucketUnset, domain.BucketIncluded, parseLabelArgs(opts.allow)...),
		sel.MoveLabels(domain.BucketUnset, domain.BucketExcluded, parseLabelArgs(opts.disallow)...),
		sel.MoveClasses(domain.BucketUnset, domain.BucketIncluded, refit...),
		sel.MoveClasses(domain.BucketUnset, domain.BucketExcluded, noRefit...),
	}
	for _, err := range moves {
		if err == nil {
			continue
		}
		if !domain.IsKind(err, domain.KindNotFound) {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: skipped %v\n", err)
	}

	text, err := export.FromSelection(sel).Render(format)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)

	for _, w := range sel.Warnings() {
		fmt.Fprintf(cmd.ErrOrStderr(), "! %s\n", w)
	}

	if cb != nil {
		if err := cb.WriteText(text); err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "(copied to clipboard)")
	}
	return nil
}
