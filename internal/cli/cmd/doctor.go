package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ytgrab/internal/dirs"
	"ytgrab/internal/util/deps"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "doctor",
		Short:         "Diagnose backends and data locations",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			dlBinary := stringSetting(cmd, "dl-binary", "dl_binary")
			if bin, err := deps.FindDownloader(dlBinary); err == nil {
				fmt.Fprintf(out, "yt-dlp:     %s\n", bin)
			} else {
				fmt.Fprintf(out, "yt-dlp:     not found (%v)\n", err)
				fmt.Fprintln(out, "            downloads will use the built-in YouTube client")
			}
			fmt.Fprintln(out, "native:     built-in YouTube client available")

			if p, err := dirs.ConfigDir(); err == nil {
				fmt.Fprintf(out, "config:     %s\n", p)
			}
			if p, err := dirs.HistoryDBPath(); err == nil {
				fmt.Fprintf(out, "history:    %s\n", p)
			}
			if p, err := dirs.DefaultOutputDir(); err == nil {
				fmt.Fprintf(out, "downloads:  %s\n", p)
			}

			// Forced yt-dlp with no binary is the one fatal combination.
			if prov := stringSetting(cmd, "provider", "provider"); prov == "ytdlp" {
				if _, err := deps.FindDownloader(dlBinary); err != nil {
					return &ExitError{Code: ExitMissingDep, Err: err}
				}
			}
			return nil
		},
	}
}
