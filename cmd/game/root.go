package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tomz197/fbroids/internal/config"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	backend    string
	seed       uint64
	logLevel   string
	logFile    string
}

func newRootCmd() *cobra.Command {
	var (
		flags globalFlags
		ticks uint64
	)

	root := &cobra.Command{
		Use:   "fbroids",
		Short: "Asteroids on a raw framebuffer",
		Long: `fbroids flies a ship through a field of splitting asteroids, drawn
into a software back buffer and copied to a framebuffer display.

Controls:
  A/D or Left/Right  - Rotate
  W/S or Up/Down     - Thrust forward/backward
  Space              - Fire
  +/-                - Projectile speed
  Q/Esc/Ctrl+C       - Quit

Examples:
  fbroids
  fbroids --display tcell
  fbroids play --display memory --ticks 600
  fbroids probe --display fbdev`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, flags, 0)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "Path to config YAML")
	pf.StringVar(&flags.backend, "display", "", "Display backend: memory, term, tcell, fbdev")
	pf.Uint64Var(&flags.seed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&flags.logFile, "log-file", "", "Write logs to this file")

	play := &cobra.Command{
		Use:   "play",
		Short: "Run the simulation",
		Long: `Run the simulation until quit, or for a fixed number of ticks.

With --display memory and --ticks the run is headless, which is useful for
benchmarking the renderer.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, flags, ticks)
		},
	}
	play.Flags().Uint64Var(&ticks, "ticks", 0, "Stop after this many ticks (0 = until quit)")

	probe := &cobra.Command{
		Use:   "probe",
		Short: "Open the display and print its mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProbe(cmd, flags)
		},
	}

	var resolved bool
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the default configuration",
		Long: `Print the embedded default configuration as YAML. Copy it to
~/.fbroids/game.yaml to customize. With --resolved, print the configuration
a run would use after files, environment and flags are applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(cmd, flags, resolved)
		},
	}
	cfgCmd.Flags().BoolVar(&resolved, "resolved", false, "Print the effective configuration")

	root.AddCommand(play, probe, cfgCmd)
	return root
}

// loadConfig resolves the configuration: file, then environment, then flags.
func loadConfig(cmd *cobra.Command, flags globalFlags) (config.Config, string, error) {
	path := flags.configPath
	if path == "" {
		path = config.GetEnv(config.EnvConfig, "")
	}
	cfg, source, err := config.Load(path)
	if err != nil {
		return config.Config{}, "", err
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return config.Config{}, "", err
	}

	if cmd.Flags().Changed("display") {
		cfg.Display.Backend = flags.backend
	}
	if cmd.Flags().Changed("seed") {
		cfg.Game.Seed = flags.seed
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, "", err
	}
	return cfg, source, nil
}

// newLogger builds the run logger. Terminal backends share the tty with the
// frame, so they log only warnings to stderr unless a file or level is given.
func newLogger(flags globalFlags, backend string) (*log.Logger, io.Closer, error) {
	var (
		w      io.Writer = os.Stderr
		closer io.Closer = io.NopCloser(nil)
	)
	if flags.logFile != "" {
		f, err := os.OpenFile(flags.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "fbroids",
	})

	level := log.InfoLevel
	if flags.logFile == "" && (backend == config.BackendTerm || backend == config.BackendTcell) {
		level = log.WarnLevel
	}
	name := flags.logLevel
	if name == "" {
		name = config.GetEnv(config.EnvLogLevel, "")
	}
	if name != "" {
		parsed, err := log.ParseLevel(name)
		if err != nil {
			closer.Close()
			return nil, nil, fmt.Errorf("%w: log level %q", config.ErrInvalid, name)
		}
		level = parsed
	}
	logger.SetLevel(level)
	return logger, closer, nil
}
