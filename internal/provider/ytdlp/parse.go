package ytdlp

import (
	"encoding/json"
	"fmt"
	"strings"

	"ytgrab/internal/model"
)

// ytdlpInfo mirrors the fields of yt-dlp --dump-json output we care about.
type ytdlpInfo struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Duration float64       `json:"duration"`
	Formats  []ytdlpFormat `json:"formats"`
}

type ytdlpFormat struct {
	FormatID       string  `json:"format_id"`
	Ext            string  `json:"ext"`
	Height         int     `json:"height"`
	TBR            float64 `json:"tbr"` // total bitrate, kbit/s
	Filesize       int64   `json:"filesize"`
	FilesizeApprox int64   `json:"filesize_approx"`
	VCodec         string  `json:"vcodec"`
	ACodec         string  `json:"acodec"`
}

// parseInfo decodes yt-dlp metadata output. yt-dlp sometimes mixes progress
// noise into stdout, so when straight decoding fails we scan lines from the
// bottom for the JSON object.
func parseInfo(stdout []byte) (model.VideoInfo, error) {
	data := strings.TrimSpace(string(stdout))

	var info ytdlpInfo
	if err := json.Unmarshal([]byte(data), &info); err != nil {
		recovered := false
		lines := strings.Split(data, "\n")
		for i := len(lines) - 1; i >= 0; i-- {
			line := strings.TrimSpace(lines[i])
			if line == "" {
				continue
			}
			var tmp ytdlpInfo
			if json.Unmarshal([]byte(line), &tmp) == nil && tmp.ID != "" {
				info = tmp
				recovered = true
				break
			}
		}
		if !recovered {
			return model.VideoInfo{}, fmt.Errorf("parse metadata JSON: %w", err)
		}
	}

	return toVideoInfo(info), nil
}

func toVideoInfo(info ytdlpInfo) model.VideoInfo {
	formats := make([]model.FormatInfo, 0, len(info.Formats))
	for _, f := range info.Formats {
		size := f.Filesize
		if size == 0 {
			size = f.FilesizeApprox
		}
		formats = append(formats, model.FormatInfo{
			ID:     f.FormatID,
			Ext:    f.Ext,
			Height: f.Height,
			// tbr is reported in kbit/s.
			BitrateBps: int64(f.TBR * 125),
			Filesize:   size,
			VCodec:     normalizeCodec(f.VCodec),
			ACodec:     normalizeCodec(f.ACodec),
		})
	}
	return model.VideoInfo{
		ID:       info.ID,
		Title:    info.Title,
		Duration: int(info.Duration),
		Formats:  formats,
	}
}

func normalizeCodec(c string) string {
	if c == "" {
		return "none"
	}
	return c
}
