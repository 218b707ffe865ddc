// Package native implements the provider port with an in-process YouTube
// client, so ytgrab works without a yt-dlp binary on PATH. YouTube only;
// other sites need the ytdlp provider.
package native

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kkdai/youtube/v2"

	"ytgrab/internal/dlerr"
	"ytgrab/internal/media"
	"ytgrab/internal/model"
	"ytgrab/internal/util"
)

// Provider wraps a kkdai youtube client.
type Provider struct {
	client youtube.Client
}

// New constructs a native YouTube provider.
func New() *Provider {
	return &Provider{client: youtube.Client{}}
}

// FetchMetadata resolves a YouTube URL to domain metadata.
func (p *Provider) FetchMetadata(ctx context.Context, url string) (model.VideoInfo, error) {
	video, err := p.client.GetVideoContext(ctx, url)
	if err != nil {
		return model.VideoInfo{}, classify(err)
	}
	formats := make([]model.FormatInfo, 0, len(video.Formats))
	for _, f := range video.Formats {
		formats = append(formats, toFormatInfo(f))
	}
	return model.VideoInfo{
		ID:       video.ID,
		Title:    video.Title,
		Duration: int(video.Duration.Seconds()),
		Formats:  formats,
	}, nil
}

// Download streams the chosen format to the request's output directory.
// The format is re-resolved by itag; when it vanished between metadata fetch
// and download the failure surfaces as format-not-found.
func (p *Provider) Download(ctx context.Context, req model.DownloadRequest, format model.FormatInfo) (model.DownloadResult, error) {
	video, err := p.client.GetVideoContext(ctx, req.URL)
	if err != nil {
		return model.DownloadResult{}, classify(err)
	}

	var chosen *youtube.Format
	for i := range video.Formats {
		if strconv.Itoa(video.Formats[i].ItagNo) == format.ID {
			chosen = &video.Formats[i]
			break
		}
	}
	if chosen == nil {
		return model.DownloadResult{}, dlerr.Newf(dlerr.KindFormatNotFound,
			"format %s is no longer offered for this video", format.ID).
			WithHint("re-fetch metadata and pick a listed format")
	}

	stream, _, err := p.client.GetStreamContext(ctx, video, chosen)
	if err != nil {
		return model.DownloadResult{}, classify(err)
	}
	defer stream.Close()

	outDir := req.OutDir
	if outDir == "" {
		outDir = "."
	}
	if err := util.EnsureDir(outDir); err != nil {
		return model.DownloadResult{}, fmt.Errorf("create output dir: %w", err)
	}
	outPath := filepath.Join(outDir, media.Render(req.OutputTemplate, video.Title, format.Ext))

	out, err := os.Create(outPath)
	if err != nil {
		return model.DownloadResult{}, fmt.Errorf("create output: %w", err)
	}
	written, err := io.Copy(out, stream)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		// Leave nothing half-written behind.
		_ = os.Remove(outPath)
		return model.DownloadResult{}, classify(err)
	}

	return model.DownloadResult{
		OutputPath: outPath,
		Format:     format,
		Bytes:      written,
	}, nil
}

// toFormatInfo converts a kkdai format, deriving codec fields from the MIME
// type (e.g. `video/mp4; codecs="avc1.4d401f, mp4a.40.2"`).
func toFormatInfo(f youtube.Format) model.FormatInfo {
	vcodec, acodec := codecsFromMime(f.MimeType, f.AudioChannels > 0)
	return model.FormatInfo{
		ID:         strconv.Itoa(f.ItagNo),
		Ext:        extFromMime(f.MimeType),
		Height:     f.Height,
		BitrateBps: int64(f.Bitrate) / 8, // reported in bits per second
		Filesize:   f.ContentLength,
		VCodec:     vcodec,
		ACodec:     acodec,
	}
}

func extFromMime(mime string) string {
	base := mime
	if i := strings.IndexByte(base, ';'); i != -1 {
		base = base[:i]
	}
	switch strings.TrimSpace(base) {
	case "video/mp4", "audio/mp4":
		if strings.HasPrefix(base, "audio/") {
			return "m4a"
		}
		return "mp4"
	case "video/webm", "audio/webm":
		return "webm"
	case "video/3gpp":
		return "3gp"
	default:
		if i := strings.IndexByte(base, '/'); i != -1 {
			return base[i+1:]
		}
		return base
	}
}

func codecsFromMime(mime string, hasAudio bool) (vcodec, acodec string) {
	vcodec, acodec = "none", "none"
	codecs := ""
	if i := strings.Index(mime, `codecs="`); i != -1 {
		codecs = mime[i+len(`codecs="`):]
		if j := strings.IndexByte(codecs, '"'); j != -1 {
			codecs = codecs[:j]
		}
	}
	parts := strings.Split(codecs, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	if strings.HasPrefix(mime, "audio/") {
		if len(parts) > 0 && parts[0] != "" {
			acodec = parts[0]
		}
		return vcodec, acodec
	}
	if len(parts) > 0 && parts[0] != "" {
		vcodec = parts[0]
	}
	if len(parts) > 1 {
		acodec = parts[1]
	} else if hasAudio {
		acodec = "mp4a"
	}
	return vcodec, acodec
}

// classify translates kkdai/network failures into the taxonomy.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return dlerr.Wrap(dlerr.KindNetwork, err, err.Error()).
			WithHint("check your connection and retry")
	}

	lower := strings.ToLower(err.Error())
	switch {
	case strings.Contains(lower, "private"),
		strings.Contains(lower, "unavailable"),
		strings.Contains(lower, "removed"),
		strings.Contains(lower, "not playable"),
		strings.Contains(lower, "invalid characters in video id"),
		strings.Contains(lower, "video id"):
		return dlerr.Wrap(dlerr.KindUnavailable, err, err.Error()).
			WithHint("the video may be private, removed, or not a valid YouTube URL")
	case strings.Contains(lower, "login"),
		strings.Contains(lower, "sign in"),
		strings.Contains(lower, "age"):
		return dlerr.Wrap(dlerr.KindAuth, err, err.Error()).
			WithHint("this video requires credentials ytgrab does not supply")
	case strings.Contains(lower, "connection"),
		strings.Contains(lower, "timeout"),
		strings.Contains(lower, "no such host"),
		strings.Contains(lower, "eof"):
		return dlerr.Wrap(dlerr.KindNetwork, err, err.Error()).
			WithHint("check your connection and retry")
	default:
		return dlerr.Wrap(dlerr.KindUnknown, err, err.Error())
	}
}
