package ytdlp

import (
	"context"
	"errors"
	"strings"

	"ytgrab/internal/dlerr"
)

// Failure-message signals, matched case-insensitively against yt-dlp stderr.
var (
	unavailableSignals = []string{
		"video unavailable",
		"private video",
		"has been removed",
		"no longer available",
		"account terminated",
		"not available in your country",
		"geo restricted",
	}
	authSignals = []string{
		"sign in to confirm",
		"login required",
		"please log in",
		"authentication",
		"use --cookies",
		"members-only",
	}
	networkSignals = []string{
		"timed out",
		"timeout",
		"connection reset",
		"connection refused",
		"temporary failure in name resolution",
		"unable to download webpage",
		"network is unreachable",
		"http error 5",
	}
	formatSignals = []string{
		"requested format is not available",
		"requested format not available",
		"no video formats",
	}
)

// classify translates a yt-dlp failure into a taxonomy error, pairing the
// process error with whatever stderr said. Cancellation passes through.
func classify(err error, stderr []byte) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	text := strings.TrimSpace(string(stderr))
	msg := lastErrorLine(text)
	if msg == "" {
		msg = err.Error()
	}
	lower := strings.ToLower(text + " " + err.Error())

	switch {
	case containsAny(lower, unavailableSignals):
		return dlerr.Wrap(dlerr.KindUnavailable, err, msg).
			WithHint("the video may be private, removed, or geo-restricted")
	case containsAny(lower, authSignals):
		return dlerr.Wrap(dlerr.KindAuth, err, msg).
			WithHint("this video requires credentials ytgrab does not supply")
	case containsAny(lower, formatSignals):
		return dlerr.Wrap(dlerr.KindFormatNotFound, err, msg).
			WithHint("re-fetch metadata and pick a listed format")
	case containsAny(lower, networkSignals):
		return dlerr.Wrap(dlerr.KindNetwork, err, msg).
			WithHint("check your connection and retry")
	default:
		return dlerr.Wrap(dlerr.KindUnknown, err, msg).
			WithHint("try updating yt-dlp")
	}
}

// lastErrorLine extracts the last "ERROR: ..." line from stderr, or the last
// non-empty line when yt-dlp did not tag one.
func lastErrorLine(stderr string) string {
	lines := strings.Split(stderr, "\n")
	var lastNonEmpty string
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if lastNonEmpty == "" {
			lastNonEmpty = line
		}
		if strings.HasPrefix(line, "ERROR:") {
			return strings.TrimSpace(strings.TrimPrefix(line, "ERROR:"))
		}
	}
	return lastNonEmpty
}

func containsAny(s string, signals []string) bool {
	for _, sig := range signals {
		if strings.Contains(s, sig) {
			return true
		}
	}
	return false
}
