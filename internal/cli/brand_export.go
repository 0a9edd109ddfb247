package cli

import (
	"context"
	"fmt"

	"brand_server/core/domain"
	"brand_server/core/service/export"
	"brand_server/core/service/reconcile"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var (
		kitPath string
		format  string
		out     string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render a brand kit to SVG, PNG or PDF",
		Long: `Render a brand kit JSON document (the body POST /api/v1/exports accepts)
without running the server.

Examples:
  brand_server export --kit kit.json --format pdf
  brand_server export --kit kit.json --format png --out sheet.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := domain.ParseExportFormat(format)
			if err != nil {
				return err
			}
			raw, err := readInput(cmd, kitPath)
			if err != nil {
				return err
			}
			var kit domain.BrandKit
			if err := json.Unmarshal(raw, &kit); err != nil {
				return fmt.Errorf("parse kit: %w", err)
			}

			svc := export.NewService(reconcile.NewService(), nil, 0)
			artifact, err := svc.Export(context.Background(), kit, f)
			if err != nil {
				return err
			}
			if out == "" {
				out = artifact.FileName
			}
			if err := writeOutput(cmd, out, artifact.Data); err != nil {
				return err
			}
			if out != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d bytes)\n", out, len(artifact.Data))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&kitPath, "kit", "k", "", "brand kit JSON file, - for stdin")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "svg, png or pdf")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file, - for stdout (default <company>-<kind>.<format>)")
	_ = cmd.MarkFlagRequired("kit")
	return cmd
}
