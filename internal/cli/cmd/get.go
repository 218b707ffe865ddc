package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ytgrab/internal/dirs"
	"ytgrab/internal/dlerr"
	"ytgrab/internal/history"
	"ytgrab/internal/media"
	"ytgrab/internal/model"
	"ytgrab/internal/pipeline"
	"ytgrab/internal/progress"
	"ytgrab/internal/provider"
	"ytgrab/internal/provider/native"
	"ytgrab/internal/provider/ytdlp"
	"ytgrab/internal/ui"
	"ytgrab/internal/util/deps"
)

type getMode struct {
	ForceTUI bool
}

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "get [urls...]",
		Short:         "Download one or more videos",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getExecute(cmd, args, getMode{})
		},
	}
	bindGetFlags(cmd.Flags())
	return cmd
}

func newTuiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tui [urls...]",
		Short:         "Force the progress TUI",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getExecute(cmd, args, getMode{ForceTUI: true})
		},
	}
	bindGetFlags(cmd.Flags())
	if f := cmd.Flags().Lookup("no-ui"); f != nil {
		f.Hidden = true
	}
	return cmd
}

type getInputs struct {
	URLs        []string
	Constraint  model.QualityConstraint
	Template    string
	OutDir      string
	FormatID    string
	Interactive bool
	NoUI        bool
	NoHistory   bool
	Verbose     bool
	Provider    string
	DLBinary    string
}

func assembleGetInputs(cmd *cobra.Command, args []string) (getInputs, error) {
	quality := stringSetting(cmd, "quality", "quality")
	constraint, err := model.ParseQuality(quality)
	if err != nil {
		return getInputs{}, err
	}

	template := stringSetting(cmd, "template", "template")
	if template == "" {
		template = media.DefaultTemplate
	}
	if err := media.ValidateTemplate(template); err != nil {
		return getInputs{}, fmt.Errorf("invalid --template: %w", err)
	}

	outDir := stringSetting(cmd, "out-dir", "out_dir")
	if outDir != "" {
		outDir = filepath.Clean(outDir)
	}

	prov := stringSetting(cmd, "provider", "provider")
	if prov == "" {
		prov = "auto"
	}
	switch prov {
	case "auto", "ytdlp", "native":
	default:
		return getInputs{}, fmt.Errorf("invalid --provider: %q (valid: auto|ytdlp|native)", prov)
	}

	formatID, _ := cmd.Flags().GetString("format")
	interactive, _ := cmd.Flags().GetBool("interactive")
	noUI, _ := cmd.Flags().GetBool("no-ui")
	noHistory, _ := cmd.Flags().GetBool("no-history")

	in := getInputs{
		URLs:        args,
		Constraint:  constraint,
		Template:    template,
		OutDir:      outDir,
		FormatID:    formatID,
		Interactive: interactive,
		NoUI:        noUI,
		NoHistory:   noHistory,
		Verbose:     boolSetting(cmd, "verbose", "verbose"),
		Provider:    prov,
		DLBinary:    stringSetting(cmd, "dl-binary", "dl_binary"),
	}

	// Fail on malformed URLs before touching any backend.
	for _, raw := range args {
		req := in.request(raw)
		if err := req.Validate(); err != nil {
			return getInputs{}, err
		}
	}
	return in, nil
}

func (in getInputs) request(url string) model.DownloadRequest {
	return model.DownloadRequest{
		URL:            url,
		Constraint:     in.Constraint,
		OutputTemplate: in.Template,
		OutDir:         in.OutDir,
	}
}

// newProvider builds the configured backend. The reporter and job ID are
// threaded through so subprocess progress lines reach the UI.
func (in getInputs) newProvider(rep progress.Reporter, jobID string) (provider.Port, error) {
	switch in.Provider {
	case "native":
		return native.New(), nil
	case "ytdlp":
		bin, err := deps.FindDownloader(in.DLBinary)
		if err != nil {
			return nil, &ExitError{Code: ExitMissingDep, Err: err}
		}
		return ytdlp.New(ytdlp.Options{
			BinaryPath: bin,
			Verbose:    in.Verbose,
			Reporter:   rep,
			JobID:      jobID,
		}), nil
	default: // auto
		if bin, err := deps.FindDownloader(in.DLBinary); err == nil {
			return ytdlp.New(ytdlp.Options{
				BinaryPath: bin,
				Verbose:    in.Verbose,
				Reporter:   rep,
				JobID:      jobID,
			}), nil
		}
		return native.New(), nil
	}
}

// openRecorder opens the history store, or returns nil when history is off
// or the database cannot be opened. A broken history file never blocks a
// download.
func (in getInputs) openRecorder() (*history.Store, pipeline.Recorder) {
	if in.NoHistory {
		return nil, nil
	}
	path, err := dirs.HistoryDBPath()
	if err != nil {
		return nil, nil
	}
	_ = dirs.Ensure(filepath.Dir(path))
	store, err := history.Open(path)
	if err != nil {
		if in.Verbose {
			fmt.Fprintf(os.Stderr, "warning: history disabled: %v\n", err)
		}
		return nil, nil
	}
	return store, store
}

func getExecute(cmd *cobra.Command, args []string, mode getMode) error {
	in, err := assembleGetInputs(cmd, args)
	if err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}

	store, recorder := in.openRecorder()
	if store != nil {
		defer store.Close()
	}

	ctx := cmd.Context()

	if in.Interactive {
		return in.runInteractive(ctx, recorder)
	}

	useTUI := mode.ForceTUI || (!in.NoUI && !in.Verbose && isTerminal())
	if useTUI {
		return in.runTUI(ctx, recorder)
	}
	return in.runPlain(ctx, recorder)
}

// runTUI drives all URLs through the bubbletea progress view.
func (in getInputs) runTUI(ctx context.Context, recorder pipeline.Recorder) error {
	runner := func(jobCtx context.Context, jobID, url string, rep progress.Reporter) {
		prov, err := in.newProvider(rep, jobID)
		if err != nil {
			rep.Result(progress.Result{JobID: jobID, Err: err})
			return
		}
		svc := pipeline.New(
			pipeline.WithProvider(prov),
			pipeline.WithReporter(rep),
			pipeline.WithRecorder(recorder),
			pipeline.WithJobID(jobID),
		)
		// The service emits the final Result through the reporter.
		if in.FormatID != "" {
			_, _ = svc.RunFormatID(jobCtx, in.request(url), in.FormatID)
		} else {
			_, _ = svc.Run(jobCtx, in.request(url))
		}
	}
	if err := ui.Run(ctx, in.URLs, runner); err != nil {
		return exitFor(err)
	}
	return nil
}

// runPlain downloads each URL sequentially with line-oriented output.
func (in getInputs) runPlain(ctx context.Context, recorder pipeline.Recorder) error {
	for _, url := range in.URLs {
		rep := newPlainReporter(os.Stderr)
		prov, err := in.newProvider(rep, "")
		if err != nil {
			return exitFor(err)
		}
		svc := pipeline.New(
			pipeline.WithProvider(prov),
			pipeline.WithReporter(rep),
			pipeline.WithRecorder(recorder),
		)
		var res model.DownloadResult
		if in.FormatID != "" {
			res, err = svc.RunFormatID(ctx, in.request(url), in.FormatID)
		} else {
			res, err = svc.Run(ctx, in.request(url))
		}
		rep.finish()
		if err != nil {
			printHint(err)
			return exitFor(err)
		}
		fmt.Printf("Saved: %s\n", res.OutputPath)
	}
	return nil
}

// runInteractive fetches metadata, lets the user pick a format, then
// downloads the choice.
func (in getInputs) runInteractive(ctx context.Context, recorder pipeline.Recorder) error {
	if !isTerminal() {
		return &ExitError{Code: ExitCLIError, Err: errors.New("--interactive requires a terminal")}
	}
	for _, url := range in.URLs {
		rep := newPlainReporter(os.Stderr)
		prov, err := in.newProvider(rep, "")
		if err != nil {
			return exitFor(err)
		}
		svc := pipeline.New(
			pipeline.WithProvider(prov),
			pipeline.WithReporter(rep),
			pipeline.WithRecorder(recorder),
		)

		video, err := svc.FetchMetadata(ctx, url)
		if err != nil {
			printHint(err)
			return exitFor(err)
		}
		format, err := ui.PickFormat(video.Title, video.Formats)
		if err != nil {
			if errors.Is(err, ui.ErrPickerAborted) {
				continue
			}
			return exitFor(err)
		}

		res, err := svc.DownloadFormat(ctx, in.request(url), video, format)
		rep.finish()
		if err != nil {
			printHint(err)
			return exitFor(err)
		}
		fmt.Printf("Saved: %s\n", res.OutputPath)
	}
	return nil
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// exitFor maps a pipeline failure to a process exit code.
func exitFor(err error) error {
	if err == nil {
		return nil
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee
	}
	if errors.Is(err, context.Canceled) {
		return &ExitError{Code: ExitInterrupted, Err: errors.New("interrupted")}
	}
	if dlerr.IsKind(err, dlerr.KindInvalidRequest) {
		return &ExitError{Code: ExitCLIError, Err: err}
	}
	if _, ok := dlerr.KindOf(err); ok {
		return &ExitError{Code: ExitDownloadError, Err: err}
	}
	return &ExitError{Code: ExitCLIError, Err: err}
}

// printHint surfaces the remediation hint of a taxonomy error, if any.
func printHint(err error) {
	var de *dlerr.Error
	if errors.As(err, &de) && de.Hint != "" {
		fmt.Fprintf(os.Stderr, "hint: %s\n", de.Hint)
	}
}
