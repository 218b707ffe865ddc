package media

import (
	"strings"
	"testing"
)

func TestValidateTemplate(t *testing.T) {
	tests := []struct {
		name    string
		tmpl    string
		wantErr bool
	}{
		{"default", "{title}.{ext}", false},
		{"title only", "{title}", false},
		{"literal prefix", "clip_{title}.{ext}", false},
		{"no placeholders", "output.mp4", false},
		{"unknown placeholder", "{uploader}.{ext}", true},
		{"empty placeholder", "{}.{ext}", true},
		{"unbalanced open", "{title.{ext}", true},
		{"unbalanced close", "title}.{ext}", true},
		{"empty template", "", true},
		{"blank template", "   ", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTemplate(tt.tmpl)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTemplate(%q) err = %v, wantErr %v", tt.tmpl, err, tt.wantErr)
			}
		})
	}
}

func TestRender(t *testing.T) {
	got := Render("{title}.{ext}", "My Video", "mp4")
	if got != "My_Video.mp4" {
		t.Errorf("Render = %q, want %q", got, "My_Video.mp4")
	}
}

func TestRender_StripsTraversal(t *testing.T) {
	tests := []string{
		"../../etc/passwd",
		"/etc/passwd",
		"..\\windows\\system32",
		".hidden/../../x",
	}
	for _, title := range tests {
		got := Render("{title}.{ext}", title, "mp4")
		if strings.ContainsAny(got, `/\`) {
			t.Errorf("Render(title=%q) = %q contains a path separator", title, got)
		}
		if strings.HasPrefix(got, ".") {
			t.Errorf("Render(title=%q) = %q starts with a dot", title, got)
		}
	}
}

func TestRender_EmptyTitle(t *testing.T) {
	got := Render("{title}.{ext}", "", "mp4")
	if got != "untitled.mp4" {
		t.Errorf("Render empty title = %q", got)
	}
}

func TestToYtdlp(t *testing.T) {
	if got := ToYtdlp("{title}.{ext}"); got != "%(title)s.%(ext)s" {
		t.Errorf("ToYtdlp = %q", got)
	}
	if got := ToYtdlp(""); got != "%(title)s.%(ext)s" {
		t.Errorf("ToYtdlp default = %q", got)
	}
}
