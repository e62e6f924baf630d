package main

import (
	"encoding/json"
	"fmt"

	"github.com/abelbrown/stageview/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(f *flags) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}

			if write {
				path := f.configPath
				if path == "" {
					path = config.ConfigPath()
				}
				if err := cfg.SaveFile(path); err != nil {
					return fmt.Errorf("save config: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", path)
			}

			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().BoolVar(&write, "write", false, "Save the effective configuration to the config file")
	return cmd
}
