package ytdlp

import (
	"strconv"
	"strings"
	"time"

	"ytgrab/internal/progress"
)

// ParseProgress parses yt-dlp progress output lines such as
// "[download]  45.2% of 10.00MiB at  1.50MiB/s ETA 00:04".
// Returns ok=false for lines that carry no download progress.
func ParseProgress(line, jobID string) (u progress.Update, ok bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "[download]") {
		if strings.HasPrefix(line, "[Merger]") || strings.HasPrefix(line, "[ffmpeg]") {
			return progress.Update{
				JobID:   jobID,
				Stage:   progress.StageMerging,
				Percent: -1,
				Message: "Merging streams",
			}, true
		}
		return progress.Update{}, false
	}

	rest := strings.TrimSpace(strings.TrimPrefix(line, "[download]"))

	var percent float64 = -1
	if idx := strings.Index(rest, "%"); idx != -1 {
		if p, err := strconv.ParseFloat(strings.TrimSpace(rest[:idx]), 64); err == nil {
			percent = p
		}
	}

	var speed *string
	if idx := strings.Index(rest, " at "); idx != -1 {
		part := strings.TrimSpace(rest[idx+4:])
		if idx2 := strings.IndexByte(part, ' '); idx2 != -1 {
			part = part[:idx2]
		}
		if part != "" {
			speed = &part
		}
	}

	var eta *time.Duration
	if idx := strings.Index(rest, "ETA "); idx != -1 {
		etaStr := strings.TrimSpace(rest[idx+4:])
		if idx2 := strings.Index(etaStr, " "); idx2 != -1 {
			etaStr = etaStr[:idx2]
		}
		if d, err := parseETA(etaStr); err == nil {
			eta = &d
		}
	}

	return progress.Update{
		JobID:   jobID,
		Stage:   progress.StageDownloading,
		Percent: percent,
		Speed:   speed,
		ETA:     eta,
		Message: "Downloading",
	}, true
}

// parseETA parses duration strings like "00:04" or "01:23:45".
func parseETA(s string) (time.Duration, error) {
	parts := strings.Split(s, ":")
	switch len(parts) {
	case 2:
		m, err1 := strconv.Atoi(parts[0])
		sec, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil {
			return 0, errFirst(err1, err2)
		}
		return time.Duration(m)*time.Minute + time.Duration(sec)*time.Second, nil
	case 3:
		h, err1 := strconv.Atoi(parts[0])
		m, err2 := strconv.Atoi(parts[1])
		sec, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil {
			return 0, errFirst(err1, err2, err3)
		}
		return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(sec)*time.Second, nil
	default:
		sec, err := strconv.Atoi(s)
		if err != nil {
			return 0, err
		}
		return time.Duration(sec) * time.Second, nil
	}
}

func errFirst(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
