package cmd

import (
	"context"
	"errors"
	"testing"

	"ytgrab/internal/dlerr"
	"ytgrab/internal/model"
)

func TestAssembleGetInputs(t *testing.T) {
	root := newRootCmd()
	if err := root.ParseFlags([]string{"-q", "720p", "-o", "/tmp/vids", "--no-history"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	in, err := assembleGetInputs(root, []string{"https://youtube.com/watch?v=abc"})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if in.Constraint.Mode != model.ModeMaxHeight || in.Constraint.MaxHeight != 720 {
		t.Errorf("constraint = %+v, want at-most-720", in.Constraint)
	}
	if in.OutDir != "/tmp/vids" {
		t.Errorf("out dir = %q", in.OutDir)
	}
	if !in.NoHistory {
		t.Error("no-history flag not picked up")
	}
	if in.Template != "{title}.{ext}" {
		t.Errorf("template = %q, want default", in.Template)
	}
}

func TestAssembleGetInputsRejects(t *testing.T) {
	tests := []struct {
		name  string
		flags []string
		args  []string
	}{
		{"bad quality", []string{"-q", "potato"}, []string{"https://youtube.com/watch?v=abc"}},
		{"bad template", []string{"--template", "{nope}.{ext}"}, []string{"https://youtube.com/watch?v=abc"}},
		{"bad provider", []string{"--provider", "wget"}, []string{"https://youtube.com/watch?v=abc"}},
		{"bad url scheme", nil, []string{"ftp://example.com/v"}},
		{"empty url", nil, []string{"  "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newRootCmd()
			if err := root.ParseFlags(tt.flags); err != nil {
				t.Fatalf("parse flags: %v", err)
			}
			if _, err := assembleGetInputs(root, tt.args); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestExitFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"interrupted", context.Canceled, ExitInterrupted},
		{"invalid request", dlerr.New(dlerr.KindInvalidRequest, "bad url"), ExitCLIError},
		{"network", dlerr.New(dlerr.KindNetwork, "reset"), ExitDownloadError},
		{"unavailable", dlerr.New(dlerr.KindUnavailable, "gone"), ExitDownloadError},
		{"auth", dlerr.New(dlerr.KindAuth, "login"), ExitDownloadError},
		{"format", dlerr.New(dlerr.KindFormatNotFound, "none"), ExitDownloadError},
		{"untyped", errors.New("boom"), ExitCLIError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := exitFor(tt.err)
			var ee *ExitError
			if !errors.As(err, &ee) {
				t.Fatalf("exitFor returned %T", err)
			}
			if ee.Code != tt.code {
				t.Errorf("code = %d, want %d", ee.Code, tt.code)
			}
		})
	}

	if exitFor(nil) != nil {
		t.Error("exitFor(nil) != nil")
	}
	pre := &ExitError{Code: ExitMissingDep, Err: errors.New("no yt-dlp")}
	if got := exitFor(pre); got != pre {
		t.Errorf("exitFor did not pass through an ExitError")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		sec  int
		want string
	}{
		{0, "unknown"},
		{59, "0:59"},
		{61, "1:01"},
		{3600, "1:00:00"},
		{3725, "1:02:05"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.sec); got != tt.want {
			t.Errorf("formatDuration(%d) = %q, want %q", tt.sec, got, tt.want)
		}
	}
}
