package cli

import (
	"fmt"
	"io"
	"strings"

	"brand_server/core/service/reconcile"
	"brand_server/pkg/colormath"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1)
	rowLabelStyle = lipgloss.NewStyle().
			Width(15).
			Foreground(lipgloss.Color("245"))
)

func newPaletteCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "palette <hex>",
		Short: "Print the color scheme derived from a brand color",
		Long: `Print the complementary, analogous and triadic schemes plus the tonal
scale for a brand color.

Examples:
  brand_server palette 2E3192
  brand_server palette '#f15a24' --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scheme, err := reconcile.NewPaletteService().Scheme(args[0])
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(scheme)
			}
			renderScheme(cmd.OutOrStdout(), scheme)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the scheme as JSON")
	return cmd
}

func renderScheme(w io.Writer, s colormath.ColorScheme) {
	fmt.Fprintln(w, titleStyle.Render("Brand color #"+s.Base))

	rows := []struct {
		label  string
		colors []string
	}{
		{colormath.SchemeComplementary, s.Complementary},
		{colormath.SchemeAnalogous, s.Analogous},
		{colormath.SchemeTriadic, s.Triadic},
		{"tonal", s.Tonal[:]},
	}
	for _, row := range rows {
		cells := make([]string, 0, len(row.colors))
		for _, hex := range row.colors {
			cells = append(cells, swatch(hex))
		}
		fmt.Fprintln(w, rowLabelStyle.Render(row.label)+strings.Join(cells, " "))
	}
}

// swatch renders hex as a labelled block readable on its own background.
func swatch(hex string) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color("#" + hex)).
		Foreground(lipgloss.Color("#" + colormath.ReadableOn(hex))).
		Padding(0, 1).
		Render("#" + hex)
}
