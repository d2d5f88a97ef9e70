package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"isoflow/document"
)

// errInvalid is returned after the problems have been listed.
var errInvalid = errors.New("document is invalid")

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a document against the data model rules",
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
			problems := document.Problems(document.Validate(m))
			out := cmd.OutOrStdout()
			if len(problems) == 0 {
				fmt.Fprintf(out, "%s: ok\n", args[0])
				return nil
			}
			for _, p := range problems {
				fmt.Fprintf(out, "%s: %s\n", args[0], p)
			}
			a.logger.Debug("validation failed", "path", args[0], "problems", len(problems))
			return fmt.Errorf("%w: %d problem(s)", errInvalid, len(problems))
		},
	}
}
