package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/typetower/pkg/emit"
	"github.com/matzehuels/typetower/pkg/emit/languages"
	"github.com/matzehuels/typetower/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// LanguageListModel - Interactive target language selection
// =============================================================================

// LanguageListModel is the bubbletea model for picking one or more target
// languages when none were given on the command line.
type LanguageListModel struct {
	Languages []*emit.Language
	Cursor    int
	Checked   map[int]bool
	Confirmed bool
}

// NewLanguageListModel creates a new language list model.
func NewLanguageListModel(langs []*emit.Language) LanguageListModel {
	return LanguageListModel{
		Languages: langs,
		Checked:   make(map[int]bool),
	}
}

func (m LanguageListModel) Init() tea.Cmd {
	return nil
}

func (m LanguageListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Languages)-1 {
				m.Cursor++
			}
		case " ":
			m.Checked[m.Cursor] = !m.Checked[m.Cursor]
		case "enter":
			if len(m.Selected()) == 0 {
				m.Checked[m.Cursor] = true
			}
			m.Confirmed = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m LanguageListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Target Languages"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  ⏎ confirm  q quit"))
	b.WriteString("\n\n")

	for i, lang := range m.Languages {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		check := "[ ]"
		if m.Checked[i] {
			check = "[x]"
		}

		label := lang.Name
		if len(lang.Aliases) > 0 {
			label += listDimStyle.Render("  (" + strings.Join(lang.Aliases, ", ") + ")")
		}

		line := fmt.Sprintf("%s%s %s", cursor, check, label)
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else if m.Checked[i] {
			b.WriteString(listNormalStyle.Render(line))
		} else {
			b.WriteString(listDimStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// Selected returns the names of the checked languages in display order.
func (m LanguageListModel) Selected() []string {
	var out []string
	for i, lang := range m.Languages {
		if m.Checked[i] {
			out = append(out, lang.Name)
		}
	}
	return out
}

// =============================================================================
// Picker Entry Point
// =============================================================================

// pickLanguages runs the interactive language picker. In non-interactive
// contexts (pipes, CI) it falls back to the default target language.
func pickLanguages() ([]string, error) {
	if !isInteractive() {
		printDetail("No language given, defaulting to %s (use -l to choose)", pipeline.DefaultLanguage)
		return []string{pipeline.DefaultLanguage}, nil
	}

	p := tea.NewProgram(NewLanguageListModel(languages.All))
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	fm, ok := finalModel.(LanguageListModel)
	if !ok || !fm.Confirmed {
		return nil, fmt.Errorf("no language selected")
	}
	return fm.Selected(), nil
}

// isInteractive reports whether stdin and stdout are attached to a terminal.
func isInteractive() bool {
	for _, f := range []*os.File{os.Stdin, os.Stdout} {
		info, err := f.Stat()
		if err != nil || info.Mode()&os.ModeCharDevice == 0 {
			return false
		}
	}
	return true
}
