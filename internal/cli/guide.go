package cli

import (
	"fmt"
	"strings"

	"scribe-cli/internal/docs"

	"github.com/spf13/cobra"
)

func newGuideCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "guide [topic]",
		Short:     "Show a built-in guide topic",
		ValidArgs: docs.Topics(),
		Args:      cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeOut(cmd, app, map[string]any{
					"data": map[string]any{"topics": docs.Topics()},
				})
			}
			body, ok := docs.Get(args[0])
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown topic %q (try: %s)", args[0], strings.Join(docs.Topics(), ", ")))
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), body)
			return err
		},
	}
}
