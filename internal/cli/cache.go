package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/newgrf/nch/internal/infra/logger"
	"github.com/newgrf/nch/internal/usecase"
	"github.com/newgrf/nch/internal/usecase/query"
)

func cacheCmd(flags *rootFlags) *cobra.Command {
	c := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the cached label snapshot",
	}

	c.AddCommand(
		cacheShowCmd(flags),
		cachePathCmd(flags),
		cacheClearCmd(flags),
		cacheQueryCmd(flags),
	)
	return c
}

func cacheShowCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Summarize the cached snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(flags.workspace, flags.debug)
			if err != nil {
				return err
			}
			defer ws.Close()

			reg := ws.openRegistry()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "File:           %s\n", ws.store.Path())
			fmt.Fprintf(out, "Labels:         %d\n", reg.Len())
			fmt.Fprintf(out, "Ignore unknown: %t\n", reg.IgnoreUnknown())
			if at := reg.RefreshedAt(); !at.IsZero() {
				fmt.Fprintf(out, "Refreshed:      %s\n", at.Format(time.RFC3339))
			} else {
				fmt.Fprintln(out, "Refreshed:      never")
			}
			if p := logger.Path(); p != "" {
				fmt.Fprintf(out, "Log file:       %s\n", p)
			} else {
				fmt.Fprintln(out, "Log file:       off")
			}
			return nil
		},
	}
}

func cachePathCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the snapshot file location",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(flags.workspace, flags.debug)
			if err != nil {
				return err
			}
			defer ws.Close()

			fmt.Fprintln(cmd.OutOrStdout(), ws.store.Path())
			return nil
		},
	}
}

func cacheClearCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Drop all cached labels",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(flags.workspace, flags.debug)
			if err != nil {
				return err
			}
			defer ws.Close()

			reg := ws.openRegistry()
			n := reg.Len()
			if err := usecase.NewClearLabels(ws.store, usecase.WithLogger(ws.log)).Execute(reg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d label(s)\n", n)
			return nil
		},
	}
}

func cacheQueryCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "query <jsonpath>",
		Short: "Evaluate a JSONPath expression against the snapshot file",
		Example: "  nch cache query '$.labels[*].code'\n" +
			"  nch cache query '$.labels[?(@.bitmask == 16)].code'",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(flags.workspace, flags.debug)
			if err != nil {
				return err
			}
			defer ws.Close()

			body, err := ws.store.ReadRaw()
			if err != nil {
				return err
			}
			res, err := query.Eval(body, args[0])
			if err != nil {
				return err
			}
			for _, line := range res.Lines {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}
