package cli

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/timcondit/kintsugi/pkg/text"
)

// fontsCommand creates the fonts command listing available lettering fonts.
func (c *CLI) fontsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fonts",
		Short: "List the available lettering fonts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]string, 0, len(text.Fonts))
			for id := range text.Fonts {
				ids = append(ids, string(id))
			}
			sort.Strings(ids)

			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(StyleDim).
				Headers("ID", "NAME", "DESCRIPTION")

			for _, id := range ids {
				info := text.Fonts[text.Font(id)]
				t.Row(id, info.Name, info.Description)
			}

			fmt.Println(t)
			printDetail("set [text] font = \"<id>\" in the scene manifest")
			return nil
		},
	}
}
