package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/typetower/pkg/emit/languages"
)

// languagesCommand creates the languages command listing supported targets.
func (c *CLI) languagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List supported target languages",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(renderLanguageTable())
			return nil
		},
	}
}

// renderLanguageTable renders the supported languages as a bordered table.
func renderLanguageTable() string {
	rows := make([][]string, 0, len(languages.All))
	for _, lang := range languages.All {
		aliases := strings.Join(lang.Aliases, ", ")
		if aliases == "" {
			aliases = "-"
		}
		rows = append(rows, []string{lang.Name, aliases, lang.Extension})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Language", "Aliases", "Extension").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleHighlight.PaddingRight(2)
			}
			return StyleValue.PaddingRight(2)
		})

	return t.Render()
}
