package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"ytgrab/internal/model"
)

func pickerFormats() []model.FormatInfo {
	return []model.FormatInfo{
		{ID: "137", Ext: "mp4", Height: 1080, VCodec: "avc1", ACodec: "none", Filesize: 50 << 20},
		{ID: "22", Ext: "mp4", Height: 720, VCodec: "avc1", ACodec: "mp4a"},
		{ID: "140", Ext: "m4a", VCodec: "none", ACodec: "mp4a"},
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestPickerNavigation(t *testing.T) {
	p := newPickerModel("Sample", pickerFormats())

	step := func(key string) {
		m, _ := p.Update(keyMsg(key))
		p = m.(pickerModel)
	}

	step("down")
	step("j")
	if p.cursor != 2 {
		t.Fatalf("cursor = %d, want 2", p.cursor)
	}
	step("down") // clamped at last row
	if p.cursor != 2 {
		t.Fatalf("cursor moved past end: %d", p.cursor)
	}
	step("up")
	step("k")
	step("up") // clamped at first row
	if p.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", p.cursor)
	}

	step("down")
	step("enter")
	if p.chosen != 1 {
		t.Fatalf("chosen = %d, want 1", p.chosen)
	}
}

func TestPickerAbort(t *testing.T) {
	p := newPickerModel("", pickerFormats())
	m, _ := p.Update(keyMsg("esc"))
	p = m.(pickerModel)
	if !p.aborted {
		t.Fatal("esc did not abort")
	}
	if p.chosen != -1 {
		t.Fatalf("abort still chose %d", p.chosen)
	}
}

func TestDescribeFormat(t *testing.T) {
	rows := []struct {
		f    model.FormatInfo
		want []string
	}{
		{model.FormatInfo{ID: "137", Ext: "mp4", Height: 1080, VCodec: "avc1", ACodec: "none"}, []string{"137", "1080p", "mp4"}},
		{model.FormatInfo{ID: "140", Ext: "m4a", VCodec: "none", ACodec: "mp4a"}, []string{"140", "audio only", "m4a"}},
	}
	for _, row := range rows {
		got := describeFormat(row.f)
		for _, want := range row.want {
			if !strings.Contains(got, want) {
				t.Errorf("describeFormat(%s) = %q, missing %q", row.f.ID, got, want)
			}
		}
	}
}
