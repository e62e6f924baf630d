package main

import (
	"context"
	"fmt"
	"io"

	"github.com/abelbrown/stageview/internal/compose"
	"github.com/abelbrown/stageview/internal/display"
	"github.com/abelbrown/stageview/internal/fetch"
	"github.com/abelbrown/stageview/internal/logging"
	"github.com/abelbrown/stageview/internal/model"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func newOnceCmd(f *flags) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "once",
		Short: "Fetch the live slide once, print the composed output and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}

			logging.Use(cmd.ErrOrStderr(), log.WarnLevel)

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.FetchTimeout())
			defer cancel()

			client := fetch.NewClient(cfg.APIBaseURL(), cfg.FetchTimeout())
			list, err := client.LiveItems(ctx)
			if err != nil {
				return fmt.Errorf("fetch live items from %s: %w", client.BaseURL(), err)
			}

			out := compose.Compose(list, compose.Options{Dedup: cfg.Dedup, Pairing: cfg.Pairing})
			if out.Key() == "" {
				logging.Warn("live slide is empty", "list", list.Name, "items", len(list.Items))
			}
			return printOutput(cmd.OutOrStdout(), out, raw)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print the composed markup instead of plain text")
	return cmd
}

// printOutput writes out the way the stage would show it: the title line
// when visible, then the image reference or the text.
func printOutput(w io.Writer, out model.ComposedOutput, raw bool) error {
	if out.ShowsTitle() && out.Title != "" {
		if _, err := fmt.Fprintf(w, "# %s\n", out.Title); err != nil {
			return err
		}
	}
	if out.Img != "" {
		_, err := fmt.Fprintf(w, "[image] %s\n", out.Img)
		return err
	}

	body := out.Key()
	if !raw {
		body = display.Normalize(body)
	}
	_, err := fmt.Fprintln(w, body)
	return err
}
