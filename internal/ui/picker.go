package ui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"ytgrab/internal/model"
	"ytgrab/internal/util/format"
)

// ErrPickerAborted is returned when the user backs out of the format list.
var ErrPickerAborted = errors.New("format selection aborted")

type pickerModel struct {
	title   string
	formats []model.FormatInfo
	cursor  int
	chosen  int // -1 until a choice is made
	aborted bool
	styles  Styles
}

func newPickerModel(title string, formats []model.FormatInfo) pickerModel {
	return pickerModel{
		title:   title,
		formats: formats,
		chosen:  -1,
		styles:  defaultStyles(),
	}
}

func (p pickerModel) Init() tea.Cmd { return nil }

func (p pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.formats)-1 {
			p.cursor++
		}
	case "enter":
		p.chosen = p.cursor
		return p, tea.Quit
	case "q", "esc", "ctrl+c":
		p.aborted = true
		return p, tea.Quit
	}
	return p, nil
}

func (p pickerModel) View() string {
	var b strings.Builder
	b.WriteString(p.styles.Title.Render("Pick a format"))
	if p.title != "" {
		b.WriteString("  ")
		b.WriteString(p.styles.Subtitle.Render(truncate(p.title, 60)))
	}
	b.WriteString("\n\n")

	for i, f := range p.formats {
		cursor := "  "
		line := describeFormat(f)
		if i == p.cursor {
			cursor = p.styles.Cursor.Render("> ")
			line = p.styles.Cursor.Render(line)
		} else {
			line = p.styles.JobInfo.Render(line)
		}
		b.WriteString(cursor)
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(p.styles.Faint.Render("↑/↓ move • enter select • esc cancel"))
	b.WriteString("\n")
	return b.String()
}

// describeFormat renders one list row: id, resolution or audio marker,
// container, and size when known.
func describeFormat(f model.FormatInfo) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("%-6s", f.ID))
	if f.IsAudioOnly() {
		parts = append(parts, "audio only")
	} else {
		parts = append(parts, format.Resolution(f.Height))
	}
	parts = append(parts, f.Ext)
	if f.Filesize > 0 {
		parts = append(parts, format.HumanizeBytes(f.Filesize))
	}
	return strings.Join(parts, "  ")
}

// PickFormat shows an interactive list of formats and returns the chosen
// one. The list is presented in the order given.
func PickFormat(title string, formats []model.FormatInfo) (model.FormatInfo, error) {
	if len(formats) == 0 {
		return model.FormatInfo{}, errors.New("no formats to choose from")
	}
	prog := tea.NewProgram(newPickerModel(title, formats))
	final, err := prog.Run()
	if err != nil {
		return model.FormatInfo{}, err
	}
	pm, ok := final.(pickerModel)
	if !ok || pm.aborted || pm.chosen < 0 {
		return model.FormatInfo{}, ErrPickerAborted
	}
	return pm.formats[pm.chosen], nil
}
