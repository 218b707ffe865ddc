// Package ytdlp implements the provider port on top of a yt-dlp (or
// youtube-dl) subprocess. It is the only place that knows yt-dlp's flags and
// failure text; everything it returns is expressed in domain types.
package ytdlp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"ytgrab/internal/media"
	"ytgrab/internal/model"
	"ytgrab/internal/progress"
	"ytgrab/internal/util"
)

// Options configures the adapter.
type Options struct {
	BinaryPath string // path to yt-dlp or youtube-dl; required
	Verbose    bool
	Runner     util.CmdRunner    // nil = real subprocesses
	Reporter   progress.Reporter // optional download progress sink
	JobID      string
}

// Provider runs yt-dlp as a subprocess.
type Provider struct {
	bin      string
	verbose  bool
	runner   util.CmdRunner
	reporter progress.Reporter
	jobID    string
}

// New constructs a Provider. BinaryPath must point at a yt-dlp compatible
// binary; discovery lives with the caller.
func New(opts Options) *Provider {
	r := opts.Runner
	if r == nil {
		r = util.NewDefaultRunner()
	}
	return &Provider{
		bin:      opts.BinaryPath,
		verbose:  opts.Verbose,
		runner:   r,
		reporter: opts.Reporter,
		jobID:    opts.JobID,
	}
}

// FetchMetadata runs yt-dlp --dump-json and converts the result into a
// VideoInfo. Failures are classified from stderr.
func (p *Provider) FetchMetadata(ctx context.Context, url string) (model.VideoInfo, error) {
	args := []string{"--dump-json", "--no-playlist", url}
	res, err := p.runner.Run(ctx, util.CmdSpec{
		Path:    p.bin,
		Args:    args,
		Verbose: p.verbose,
	})
	if err != nil && len(res.Stdout) == 0 {
		return model.VideoInfo{}, classify(err, res.Stderr)
	}
	info, perr := parseInfo(res.Stdout)
	if perr != nil {
		if err != nil {
			return model.VideoInfo{}, classify(err, res.Stderr)
		}
		return model.VideoInfo{}, classify(perr, res.Stderr)
	}
	return info, nil
}

// Download fetches the chosen format into a temp workdir, letting yt-dlp
// render the naming template, then sanitizes the produced name and moves it
// into the request's output directory.
func (p *Provider) Download(ctx context.Context, req model.DownloadRequest, format model.FormatInfo) (model.DownloadResult, error) {
	workdir, err := util.MakeTempWorkdir("dl")
	if err != nil {
		return model.DownloadResult{}, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(workdir)

	args := []string{
		"-f", formatSpec(format),
		"-o", filepath.Join(workdir, media.ToYtdlp(req.OutputTemplate)),
		"--no-playlist",
		req.URL,
	}
	res, runErr := p.runner.Run(ctx, util.CmdSpec{
		Path:       p.bin,
		Args:       args,
		Dir:        workdir,
		Verbose:    p.verbose,
		StdoutLine: p.onProgressLine,
	})
	if runErr != nil {
		return model.DownloadResult{}, classify(runErr, res.Stderr)
	}

	produced, err := locateOutput(workdir)
	if err != nil {
		return model.DownloadResult{}, classify(err, res.Stderr)
	}

	outDir := req.OutDir
	if outDir == "" {
		outDir = "."
	}
	if err := util.EnsureDir(outDir); err != nil {
		return model.DownloadResult{}, fmt.Errorf("create output dir: %w", err)
	}
	// yt-dlp rendered the template; re-sanitize the basename so a hostile
	// title can never smuggle separators into the final path.
	ext := filepath.Ext(produced)
	name := util.SanitizeFilename(strings.TrimSuffix(filepath.Base(produced), ext))
	if ext != "" {
		name += "." + util.SanitizeFilename(strings.TrimPrefix(ext, "."))
	}
	outPath := filepath.Join(outDir, name)
	if err := util.MoveFile(produced, outPath); err != nil {
		return model.DownloadResult{}, fmt.Errorf("move output: %w", err)
	}

	st, err := os.Stat(outPath)
	if err != nil {
		return model.DownloadResult{}, fmt.Errorf("stat output: %w", err)
	}
	return model.DownloadResult{
		OutputPath: outPath,
		Format:     format,
		Bytes:      st.Size(),
	}, nil
}

// formatSpec builds the yt-dlp format string for the chosen stream. A
// video-only stream gets best audio muxed in, mirroring what a user would
// expect from picking a resolution.
func formatSpec(f model.FormatInfo) string {
	if f.HasVideo() && !f.HasAudio() {
		return f.ID + "+bestaudio/" + f.ID
	}
	return f.ID
}

func (p *Provider) onProgressLine(line string) {
	if p.reporter == nil {
		return
	}
	if u, ok := ParseProgress(line, p.jobID); ok {
		p.reporter.Update(u)
	}
}

// locateOutput finds the downloaded file in workdir, preferring common
// playable containers when yt-dlp left more than one behind.
func locateOutput(workdir string) (string, error) {
	candidates, err := filepath.Glob(filepath.Join(workdir, "*"))
	if err != nil {
		return "", fmt.Errorf("resolve download: %w", err)
	}
	files := candidates[:0]
	for _, c := range candidates {
		if st, serr := os.Stat(c); serr == nil && st.Mode().IsRegular() {
			files = append(files, c)
		}
	}
	if len(files) == 0 {
		return "", fmt.Errorf("download succeeded but no output file found")
	}
	sort.SliceStable(files, func(i, j int) bool {
		pi := extPriority(filepath.Ext(files[i]))
		pj := extPriority(filepath.Ext(files[j]))
		if pi == pj {
			return files[i] < files[j]
		}
		return pi < pj
	})
	return files[0], nil
}

// extPriority scores file extensions, lower = better.
func extPriority(ext string) int {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "mp4":
		return 0
	case "mkv":
		return 1
	case "webm":
		return 2
	case "m4a":
		return 3
	case "mp3", "opus":
		return 4
	case "mov":
		return 5
	default:
		return 9
	}
}
