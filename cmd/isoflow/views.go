package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"isoflow/document"
)

func newViewsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "views <file>",
		Short: "List the views of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, format, err := load(args[0])
			if err != nil {
				return err
			}
			m, err := document.DecodeBytes(data, format)
			if err != nil {
				return err
			}
			a.logger.Debug("listing views", "path", args[0], "views", len(m.Views))

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "\tID\tNAME\tITEMS\tCONNECTORS\tRECTANGLES\tTEXT")
			for _, v := range m.Views {
				current := ""
				if v.ID == m.CurrentViewID {
					current = "*"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\n", current, v.ID, v.Name,
					len(v.Items), len(v.Connectors), len(v.Rectangles), len(v.TextBoxes))
			}
			return w.Flush()
		},
	}
}
