package main

import (
	"fmt"

	"github.com/abelbrown/stageview/internal/config"
	"github.com/abelbrown/stageview/internal/otel"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// flags holds command-line overrides. Only flags the user set are applied.
type flags struct {
	host       string
	apiPort    int
	wsPort     int
	noDedup    bool
	noPairing  bool
	debounceMs int
	configPath string
	trace      bool
	debug      bool
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:          "stageview",
		Short:        "Show the live song slide of a presentation controller",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			if f.trace {
				otel.SetTraceEnabled(true)
			}
			level := log.InfoLevel
			if f.debug {
				level = log.DebugLevel
			}
			return runDisplay(cmd.Context(), cfg, level)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&f.host, "host", "", "Controller host (default from config, then localhost)")
	pf.IntVar(&f.apiPort, "api-port", 0, "Controller HTTP API port")
	pf.IntVar(&f.wsPort, "ws-port", 0, "Controller websocket port")
	pf.BoolVar(&f.noDedup, "no-dedup", false, "Show repeated lines verbatim instead of collapsing them")
	pf.BoolVar(&f.noPairing, "no-pairing", false, "Show only the selected segment, without verse/chorus pairing")
	pf.IntVar(&f.debounceMs, "debounce", 0, "Debounce window in milliseconds")
	pf.StringVar(&f.configPath, "config", "", "Config file (default ~/.stageview/config.json)")
	cmd.Flags().BoolVar(&f.trace, "trace", false, "Log raw push payloads (same as STAGEVIEW_TRACE=1)")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "Write debug-level entries to the log file")

	cmd.AddCommand(newOnceCmd(f))
	cmd.AddCommand(newConfigCmd(f))
	cmd.AddCommand(newEventsCmd())
	return cmd
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command, f *flags) (*config.Config, error) {
	path := f.configPath
	if path == "" {
		path = config.ConfigPath()
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	fl := cmd.Flags()
	if fl.Changed("host") {
		cfg.Host = f.host
	}
	if fl.Changed("api-port") {
		cfg.APIPort = f.apiPort
	}
	if fl.Changed("ws-port") {
		cfg.WSPort = f.wsPort
	}
	if f.noDedup {
		cfg.Dedup = false
	}
	if f.noPairing {
		cfg.Pairing = false
	}
	if fl.Changed("debounce") {
		cfg.DebounceMs = f.debounceMs
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
