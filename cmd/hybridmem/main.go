// Command hybridmem runs the hybrid DRAM/Flash memory simulator: either a
// one-shot pass over a trace file, or the interactive p/c/r/h/q monitor
// described in spec.md §6, wired together with Cobra the way the pack's
// own simulator CLIs do.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/newhook/hybridmem/internal/config"
	"github.com/newhook/hybridmem/internal/engine"
	"github.com/newhook/hybridmem/internal/obslog"
	"github.com/newhook/hybridmem/internal/report"
	"github.com/newhook/hybridmem/internal/trace"
	"github.com/newhook/hybridmem/internal/tui"
)

const defaultConfigPath = "./hybridmem.conf"

var (
	tracePath  string
	dumpConfig bool
	logLevel   string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hybridmem [config-path]",
		Short: "Trace-driven simulator for a two-tier DRAM/Flash memory hierarchy",
		Args:  cobra.MaximumNArgs(1),
		RunE:  run,
	}

	cmd.Flags().StringVar(&tracePath, "trace", "", "run non-interactively against a trace file and exit")
	cmd.Flags().BoolVar(&dumpConfig, "dump-config", false, "print the resolved configuration as YAML and exit")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "logrus level (debug, info, warn, error)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	path := defaultConfigPath
	if len(args) == 1 {
		path = args[0]
	}

	log := obslog.New(logLevel)

	cfg, err := loadConfig(path, log)
	if err != nil {
		return err
	}

	if dumpConfig {
		return dumpConfigYAML(cmd, cfg)
	}

	eng := engine.New(cfg, log)
	eng.Initialize()

	if tracePath != "" {
		return runTraceFile(cmd, eng, log)
	}

	return runInteractive(eng, cfg, log)
}

// loadConfig opens path if it exists; a missing default config path falls
// back to Default() rather than failing, since spec.md §6 treats the
// config path as optional. Any other read/parse error is the one
// unrecoverable condition per spec.md §7.
func loadConfig(path string, log *obslog.Logger) (config.Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && path == defaultConfigPath {
			return config.Default(), nil
		}
		return config.Config{}, fmt.Errorf("hybridmem: %w", err)
	}

	cfg, err := config.Load(path, log.MalformedConfigValue)
	if err != nil {
		return config.Config{}, fmt.Errorf("hybridmem: %w", err)
	}

	return cfg, nil
}

func dumpConfigYAML(cmd *cobra.Command, cfg config.Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("hybridmem: marshal config: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), string(out))
	return nil
}

func runTraceFile(cmd *cobra.Command, eng *engine.Engine, log *obslog.Logger) error {
	f, err := os.Open(tracePath)
	if err != nil {
		return fmt.Errorf("hybridmem: %w", err)
	}
	defer f.Close()

	reader := trace.NewReader(f, log.MalformedTraceLine)
	for {
		access, ok := reader.Next()
		if !ok {
			break
		}
		eng.ProcessAccess(access.Op, access.Address)
	}

	report.Write(cmd.OutOrStdout(), eng)
	return nil
}

func runInteractive(eng *engine.Engine, cfg config.Config, log *obslog.Logger) error {
	model := tui.New(eng, cfg, log)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("hybridmem: %w", err)
	}

	return nil
}
