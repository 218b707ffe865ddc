package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ytgrab/internal/dirs"
	"ytgrab/internal/history"
	"ytgrab/internal/util/format"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "history",
		Short:         "List recent downloads",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			path, err := dirs.HistoryDBPath()
			if err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			store, err := history.Open(path)
			if err != nil {
				return &ExitError{Code: ExitCLIError, Err: fmt.Errorf("open history: %w", err)}
			}
			defer store.Close()

			ctx := cmd.Context()
			entries, err := store.Recent(ctx, limit)
			if err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No downloads recorded yet.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "WHEN\tTITLE\tQUALITY\tSIZE\tPATH")
			for _, e := range entries {
				quality := format.Resolution(e.Height)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					e.CreatedAt.Local().Format("2006-01-02 15:04"),
					truncateTitle(e.Title, 40), quality,
					format.HumanizeBytes(e.Bytes), e.OutputPath)
			}
			w.Flush()

			count, bytes, err := store.Totals(ctx)
			if err == nil {
				fmt.Fprintf(out, "\n%d download(s), %s total\n", count, format.HumanizeBytes(bytes))
			}
			return nil
		},
	}
	cmd.Flags().IntP("limit", "n", 20, "Maximum entries to list")
	return cmd
}

func truncateTitle(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n-1]) + "…"
}
