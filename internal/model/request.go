package model

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"ytgrab/internal/dlerr"
	"ytgrab/internal/media"
)

// QualityMode selects how the user's quality preference is interpreted.
type QualityMode int

const (
	ModeBest QualityMode = iota
	ModeMaxHeight
	ModeAudioOnly
)

// QualityConstraint is the user's expressed quality preference.
// Construct with BestQuality, MaxHeight, or AudioOnly.
type QualityConstraint struct {
	Mode      QualityMode
	MaxHeight int // meaningful only when Mode == ModeMaxHeight
}

// BestQuality requests the highest-ranked format of any category.
func BestQuality() QualityConstraint {
	return QualityConstraint{Mode: ModeBest}
}

// MaxHeight requests the best video format at or below h pixels.
func MaxHeight(h int) QualityConstraint {
	return QualityConstraint{Mode: ModeMaxHeight, MaxHeight: h}
}

// AudioOnly requests the best audio-only format.
func AudioOnly() QualityConstraint {
	return QualityConstraint{Mode: ModeAudioOnly}
}

// ParseQuality converts a CLI quality string into a constraint.
// Accepted: "best", "audio", or a height like "720p" or "720".
func ParseQuality(s string) (QualityConstraint, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "", "best":
		return BestQuality(), nil
	case "audio", "audio-only":
		return AudioOnly(), nil
	default:
		h, err := strconv.Atoi(strings.TrimSuffix(v, "p"))
		if err != nil || h <= 0 {
			return QualityConstraint{}, fmt.Errorf("invalid quality %q (valid: best|audio|<height>p)", s)
		}
		return MaxHeight(h), nil
	}
}

func (c QualityConstraint) String() string {
	switch c.Mode {
	case ModeAudioOnly:
		return "audio"
	case ModeMaxHeight:
		return strconv.Itoa(c.MaxHeight) + "p"
	default:
		return "best"
	}
}

// DownloadRequest carries everything needed for one download run.
// It is built by the CLI before orchestration begins and never mutated.
type DownloadRequest struct {
	URL            string
	Constraint     QualityConstraint
	OutputTemplate string // e.g. "{title}.{ext}"
	OutDir         string // "" means current directory
}

// Validate checks the request syntactically. It never touches a provider:
// failures here indicate a caller error, not an environmental one.
func (r DownloadRequest) Validate() error {
	raw := strings.TrimSpace(r.URL)
	if raw == "" {
		return dlerr.New(dlerr.KindInvalidRequest, "URL must not be empty")
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return dlerr.Newf(dlerr.KindInvalidRequest, "invalid URL %q", raw).
			WithHint("URL must start with http:// or https://")
	}
	tmpl := r.OutputTemplate
	if tmpl == "" {
		tmpl = media.DefaultTemplate
	}
	if err := media.ValidateTemplate(tmpl); err != nil {
		return dlerr.Wrap(dlerr.KindInvalidRequest, err, "invalid output template").
			WithHint("recognized placeholders: {title}, {ext}")
	}
	return nil
}

// DownloadResult is produced only on a fully successful pipeline run.
type DownloadResult struct {
	OutputPath string
	Format     FormatInfo
	Bytes      int64
}
