package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ytgrab/internal/model"
	"ytgrab/internal/pipeline"
	"ytgrab/internal/util/format"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "info <url>",
		Short:         "Show video metadata and available formats",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := assembleGetInputs(cmd, args)
			if err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			prov, err := in.newProvider(nil, "")
			if err != nil {
				return exitFor(err)
			}
			svc := pipeline.New(pipeline.WithProvider(prov))
			video, err := svc.FetchMetadata(cmd.Context(), args[0])
			if err != nil {
				printHint(err)
				return exitFor(err)
			}
			printVideoInfo(cmd, video)
			return nil
		},
	}
}

func printVideoInfo(cmd *cobra.Command, video model.VideoInfo) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Title:    %s\n", video.Title)
	fmt.Fprintf(out, "ID:       %s\n", video.ID)
	fmt.Fprintf(out, "Duration: %s\n", formatDuration(video.Duration))
	fmt.Fprintf(out, "Formats:  %d\n\n", len(video.Formats))

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tQUALITY\tEXT\tCODECS\tSIZE")
	for _, f := range video.Formats {
		quality := format.Resolution(f.Height)
		if f.IsAudioOnly() {
			quality = "audio"
		}
		size := "-"
		if f.Filesize > 0 {
			size = format.HumanizeBytes(f.Filesize)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s/%s\t%s\n",
			f.ID, quality, f.Ext, f.VCodec, f.ACodec, size)
	}
	w.Flush()
}

func formatDuration(sec int) string {
	if sec <= 0 {
		return "unknown"
	}
	h, m, s := sec/3600, (sec%3600)/60, sec%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
