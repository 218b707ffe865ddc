// Package cmd defines the ytgrab command tree.
package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"ytgrab/internal/config"
	"ytgrab/internal/media"
)

const (
	ExitOK            = 0
	ExitCLIError      = 1
	ExitMissingDep    = 2
	ExitDownloadError = 3
	ExitInterrupted   = 130
)

// ExitError wraps an error with a process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ytgrab [urls...]",
		Short:         "Download videos at the quality you ask for",
		Long:          "ytgrab fetches video metadata, picks the format that best matches your quality constraint, and downloads it. It drives yt-dlp when available and falls back to a built-in YouTube client otherwise.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getExecute(cmd, args, getMode{})
		},
	}

	// Persistent flags available to all subcommands
	root.PersistentFlags().StringP("out-dir", "o", "", "Output directory (default: current directory)")
	root.PersistentFlags().BoolP("verbose", "v", false, "Show full subprocess commands/output")
	root.PersistentFlags().String("dl-binary", "", "Path to yt-dlp or youtube-dl")
	root.PersistentFlags().String("provider", "auto", "Download backend: auto, ytdlp, native")

	// Also bind get flags on root, so `ytgrab <url>` works without a subcommand.
	bindGetFlags(root.Flags())

	root.AddCommand(newGetCmd())
	root.AddCommand(newTuiCmd())
	root.AddCommand(newInfoCmd())
	root.AddCommand(newHistoryCmd())
	root.AddCommand(newDoctorCmd())
	root.AddCommand(newCompletionCmd())

	return root
}

func bindGetFlags(fs *pflag.FlagSet) {
	fs.StringP("quality", "q", "best", "Quality constraint: best, audio, or a height like 720p")
	fs.StringP("format", "f", "", "Exact format ID to download, bypassing selection")
	fs.String("template", media.DefaultTemplate, "Output name template; placeholders: {title}, {ext}")
	fs.BoolP("interactive", "i", false, "Pick the format from a list")
	fs.Bool("no-ui", false, "Disable the progress TUI; use plain textual output")
	fs.Bool("no-history", false, "Do not record this download in history")
}

// Execute runs the CLI with the provided context.
func Execute(ctx context.Context) error {
	root := newRootCmd()
	_ = config.Init(root)
	return root.ExecuteContext(ctx)
}

// stringSetting resolves a flag with config/env fallback: an explicitly set
// flag wins, then the bound Viper key, then the flag default.
func stringSetting(cmd *cobra.Command, flagName, viperKey string) string {
	if f := lookupFlag(cmd, flagName); f != nil && f.Changed {
		return f.Value.String()
	}
	if viperKey != "" && viper.IsSet(viperKey) {
		return viper.GetString(viperKey)
	}
	if f := lookupFlag(cmd, flagName); f != nil {
		return f.DefValue
	}
	return ""
}

func boolSetting(cmd *cobra.Command, flagName, viperKey string) bool {
	if f := lookupFlag(cmd, flagName); f != nil && f.Changed {
		return f.Value.String() == "true"
	}
	if viperKey != "" && viper.IsSet(viperKey) {
		return viper.GetBool(viperKey)
	}
	if f := lookupFlag(cmd, flagName); f != nil {
		return f.DefValue == "true"
	}
	return false
}

func lookupFlag(cmd *cobra.Command, name string) *pflag.Flag {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f
	}
	return cmd.InheritedFlags().Lookup(name)
}
