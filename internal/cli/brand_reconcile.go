package cli

import (
	"fmt"
	"io"
	"os"

	"brand_server/core/domain"
	"brand_server/core/service/reconcile"

	"github.com/spf13/cobra"
)

func newReconcileCmd() *cobra.Command {
	var (
		in    string
		out   string
		font  string
		color string
	)

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Retarget a logo document onto a font and color",
		Long: `Rewrite a logo SVG so its text uses the given font and every visible
fill and stroke uses the given color. Long names are wrapped onto lines.

Examples:
  brand_server reconcile --in logo.svg --font Inter --color 112233
  cat logo.svg | brand_server reconcile --in - --font Lora --color '#f15a24' --out final.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readInput(cmd, in)
			if err != nil {
				return err
			}
			result, err := reconcile.NewService().Reconcile(string(doc), font, domain.HexColor(color))
			if err != nil {
				return err
			}
			return writeOutput(cmd, out, []byte(result))
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "", "input SVG file, - for stdin")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&font, "font", "", "font family")
	cmd.Flags().StringVar(&color, "color", "", "six digit hex color")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("font")
	_ = cmd.MarkFlagRequired("color")
	return cmd
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
