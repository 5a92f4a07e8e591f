package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tomz197/fbroids/internal/asset"
	"github.com/tomz197/fbroids/internal/config"
	"github.com/tomz197/fbroids/internal/display"
	"github.com/tomz197/fbroids/internal/draw"
	"github.com/tomz197/fbroids/internal/input"
	"github.com/tomz197/fbroids/internal/loop"
)

// session is an opened display with its keyboard source.
type session struct {
	display display.Display
	input   input.Source
	restore func()
}

// Close closes the display and restores the terminal.
func (s *session) Close() error {
	err := s.display.Close()
	if s.restore != nil {
		s.restore()
	}
	return err
}

// openSession opens the configured backend. Terminal-backed displays read
// keys from stdin in raw mode; tcell reads its own events.
func openSession(cfg config.DisplayConfig, logger *log.Logger) (*session, error) {
	format, err := draw.ParsePixelFormat(cfg.PixelFormat)
	if err != nil {
		return nil, fmt.Errorf("display.pixel_format: %w", err)
	}

	switch cfg.Backend {
	case config.BackendMemory:
		d, err := display.NewMemory(cfg.Width, cfg.Height, cfg.StridePadding, format)
		if err != nil {
			return nil, err
		}
		return &session{display: d, input: input.None{}}, nil

	case config.BackendTcell:
		d, err := display.OpenTcell(format, input.DefaultHold)
		if err != nil {
			return nil, err
		}
		return &session{display: d, input: d}, nil

	case config.BackendTerm, config.BackendFbdev:
		src, restore, err := stdinKeys(logger)
		if err != nil {
			return nil, err
		}
		var d display.Display
		if cfg.Backend == config.BackendTerm {
			d, err = display.OpenTerm(os.Stdout, display.StdoutSize, format)
		} else {
			d, err = display.OpenFbdev(cfg.Device)
		}
		if err != nil {
			restore()
			return nil, err
		}
		return &session{display: d, input: src, restore: restore}, nil
	}
	return nil, fmt.Errorf("%w: display backend %q", config.ErrInvalid, cfg.Backend)
}

// stdinKeys puts stdin into raw mode and streams its keys. Without a tty
// the run has no keyboard.
func stdinKeys(logger *log.Logger) (input.Source, func(), error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		logger.Warn("stdin is not a terminal, keyboard disabled")
		return input.None{}, func() {}, nil
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to enable raw mode: %w", err)
	}
	restore := func() {
		_ = term.Restore(fd, oldState)
	}
	return input.StartStream(os.Stdin, input.DefaultHold), restore, nil
}

func runPlay(cmd *cobra.Command, flags globalFlags, ticks uint64) error {
	cfg, source, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}
	logger, logCloser, err := newLogger(flags, cfg.Display.Backend)
	if err != nil {
		return err
	}
	defer logCloser.Close()
	logger.Debug("configuration loaded", "source", source, "backend", cfg.Display.Backend)

	sess, err := openSession(cfg.Display, logger)
	if err != nil {
		return fmt.Errorf("open %s display: %w", cfg.Display.Backend, err)
	}
	logger.Info("display opened", "backend", cfg.Display.Backend, "mode", sess.display.Mode().String())

	settings := loop.SettingsFrom(cfg)
	stats, runErr := loop.Run(cmd.Context(), loop.Options{
		Display:  sess.display,
		Input:    sess.input,
		Logger:   logger,
		Settings: settings,
		Seed:     cfg.Game.Seed,
		Splash:   &loop.Splash{Logo: asset.Logo(), Ticks: uint64(settings.SplashTicks)},
		MaxTicks: ticks,
	})
	if err := sess.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("close display: %w", err)
	}
	if runErr != nil {
		return runErr
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d ticks, %d shots (%d dropped), %d hits, %d waves\n",
		stats.Ticks, stats.Shots, stats.Dropped, stats.Hits, stats.Waves)
	return nil
}

func runProbe(cmd *cobra.Command, flags globalFlags) error {
	cfg, _, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}
	logger, logCloser, err := newLogger(flags, cfg.Display.Backend)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	sess, err := openSession(cfg.Display, logger)
	if err != nil {
		return fmt.Errorf("open %s display: %w", cfg.Display.Backend, err)
	}
	mode := sess.display.Mode()
	if err := sess.Close(); err != nil {
		return fmt.Errorf("close display: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "backend: %s\nmode:    %s\n", cfg.Display.Backend, mode)
	if _, err := draw.PackerFor(mode.Format); err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "warning: %v\n", err)
	}
	return nil
}

func runConfig(cmd *cobra.Command, flags globalFlags, resolved bool) error {
	out := cmd.OutOrStdout()
	if !resolved {
		_, err := out.Write(config.DefaultYAML())
		return err
	}
	cfg, source, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "# source: %s\n", source)
	_, err = out.Write(data)
	return err
}
