package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"isoflow/document"
	"isoflow/export"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		format string
		viewID string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export a view of a document",
		Long:  "Export a view of a document as an image, a document or a graph description.\n\nFormats:\n" + formatHelp(),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			data, docFormat, err := load(args[0])
			if err != nil {
				return err
			}
			m, err := document.DecodeBytes(data, docFormat)
			if err != nil {
				return err
			}

			exp, err := export.NewExporter(f, export.Options{
				Padding: a.cfg.Export.Padding,
				Scale:   a.cfg.Export.Scale,
				Router:  a.router(),
				Logger:  a.logger,
			})
			if err != nil {
				return err
			}
			result, err := exp.Export(m, viewID)
			if err != nil {
				return fmt.Errorf("export %s: %w", exp.FormatName(), err)
			}

			if out == "-" {
				_, err = cmd.OutOrStdout().Write(result)
				return err
			}
			if out == "" {
				out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + exp.FileExtension()
			}
			if filepath.Clean(out) == filepath.Clean(args[0]) {
				return fmt.Errorf("refusing to overwrite the input %s, pass --out", args[0])
			}
			if err := os.WriteFile(out, result, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			a.logger.Info("exported", "format", exp.FormatName(), "path", out)
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatPNG), "output format")
	cmd.Flags().StringVar(&viewID, "view", "", "view id (default: the current view)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path, or - for stdout (default: input name with the format's extension)")
	return cmd
}

func formatHelp() string {
	desc := export.FormatDescriptions()
	names := make([]string, 0, len(desc))
	for f := range desc {
		names = append(names, string(f))
	}
	sort.Strings(names)
	var sb strings.Builder
	for _, n := range names {
		fmt.Fprintf(&sb, "  %-8s %s\n", n, desc[export.Format(n)])
	}
	return sb.String()
}
