package ytdlp

import (
	"testing"
	"time"

	"ytgrab/internal/progress"
)

func TestParseProgress(t *testing.T) {
	u, ok := ParseProgress("[download]  45.2% of 10.00MiB at  1.50MiB/s ETA 00:04", "job-1")
	if !ok {
		t.Fatal("expected ok")
	}
	if u.Stage != progress.StageDownloading {
		t.Errorf("stage = %v", u.Stage)
	}
	if u.Percent != 45.2 {
		t.Errorf("percent = %v, want 45.2", u.Percent)
	}
	if u.Speed == nil || *u.Speed != "1.50MiB/s" {
		t.Errorf("speed = %v", u.Speed)
	}
	if u.ETA == nil || *u.ETA != 4*time.Second {
		t.Errorf("eta = %v", u.ETA)
	}
	if u.JobID != "job-1" {
		t.Errorf("jobID = %q", u.JobID)
	}
}

func TestParseProgress_NonProgressLines(t *testing.T) {
	for _, line := range []string{
		"[youtube] abc123: Downloading webpage",
		"WARNING: unable to extract channel id",
		"",
	} {
		if _, ok := ParseProgress(line, "j"); ok {
			t.Errorf("ParseProgress(%q) ok = true, want false", line)
		}
	}
}

func TestParseProgress_Merger(t *testing.T) {
	u, ok := ParseProgress(`[Merger] Merging formats into "out.mp4"`, "j")
	if !ok || u.Stage != progress.StageMerging {
		t.Errorf("merger line: ok=%v stage=%v", ok, u.Stage)
	}
}

func TestParseETA(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"00:04", 4 * time.Second},
		{"01:30", 90 * time.Second},
		{"01:02:03", time.Hour + 2*time.Minute + 3*time.Second},
		{"45", 45 * time.Second},
	}
	for _, tt := range tests {
		got, err := parseETA(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("parseETA(%q) = (%v, %v), want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := parseETA("xx:yy"); err == nil {
		t.Error("parseETA(garbage) should error")
	}
}
