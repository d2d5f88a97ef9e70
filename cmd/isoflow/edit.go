package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"isoflow/clipboard"
	"isoflow/editor"
	"isoflow/interaction"
	"isoflow/terminal"
)

func newEditCmd(a *app) *cobra.Command {
	var readonly bool

	cmd := &cobra.Command{
		Use:   "edit <file>",
		Short: "Open a document in the terminal editor",
		Long:  "Open a document in the terminal editor. The file is created on first save if it does not exist yet.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
			defer stop()

			cb, fellBack := clipboard.New(a.cfg.Clipboard)
			if fellBack {
				a.logger.Warn("system clipboard unavailable, using in-memory clipboard")
			}
			mode := interaction.EditorEditable
			if readonly {
				mode = interaction.EditorReadonly
			}

			s, err := editor.Open(ctx, args[0],
				editor.WithLogger(a.logger),
				editor.WithHistoryCapacity(a.cfg.History),
				editor.WithRouter(a.router()),
				editor.WithEditorMode(mode),
				editor.WithManagerOptions(
					interaction.WithProjector(terminal.Grid()),
					interaction.WithClipboard(cb),
					interaction.WithZoom(a.cfg.Zoom),
					interaction.WithPasteOffset(a.cfg.Paste),
				),
			)
			if err != nil {
				return err
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("failed to create screen: %w", err)
			}
			return terminal.New(screen, s, terminal.WithLogger(a.logger)).Run(ctx)
		},
	}
	cmd.Flags().BoolVar(&readonly, "readonly", false, "open for viewing only")
	return cmd
}
