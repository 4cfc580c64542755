package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kk-code-lab/fluxdir/internal/app"
	"github.com/kk-code-lab/fluxdir/internal/config"
	"github.com/kk-code-lab/fluxdir/internal/logging"
	"github.com/kk-code-lab/fluxdir/internal/shellsetup"
)

var errNotTerminal = errors.New("stdin is not a terminal")

type rootOptions struct {
	configPath string
	showHidden bool
	logFile    string
	debug      bool
	printDir   bool
	noWatch    bool
}

// deps are the side effects of the root command, replaced in tests.
type deps struct {
	isTerminal func() bool
	// run starts the UI and returns the directory it ended in.
	run    func(opts app.Options) (string, error)
	stdout io.Writer
}

func defaultDeps() deps {
	return deps{
		isTerminal: func() bool {
			fd := os.Stdin.Fd()
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
		run:    runApp,
		stdout: os.Stdout,
	}
}

func runApp(opts app.Options) (string, error) {
	a, err := app.New(opts)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = a.Close()
	}()
	if err := a.Run(); err != nil {
		return "", err
	}
	return a.CurrentDir(), nil
}

func newRootCmd(d deps) *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:   "fluxdir [directory]",
		Short: "A keyboard-driven terminal file manager",
		Long: `fluxdir browses directories in the terminal. Every change goes through a
single reducer, so navigation can be undone and redone.

Configuration is read from $XDG_CONFIG_HOME/fluxdir/config.toml unless
--config is given.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !d.isTerminal() {
				return errNotTerminal
			}

			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}

			logger, err := logging.New(logging.Options{File: opts.logFile, Debug: opts.debug})
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Close()
			}()

			startDir := ""
			if len(args) > 0 {
				startDir = args[0]
			}
			logger.WithFields(logrus.Fields{
				"version": version,
				"config":  opts.configPath,
			}).Debug("starting")

			dir, err := d.run(app.Options{
				Config:     cfg,
				StartDir:   startDir,
				ShowHidden: opts.showHidden,
				Logger:     logger,
				Watch:      !opts.noWatch,
			})
			if err != nil {
				logger.WithError(err).Error("exited with error")
				return err
			}
			if opts.printDir && dir != "" {
				fmt.Fprintln(d.stdout, dir)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to config.toml")
	flags.BoolVarP(&opts.showHidden, "show-hidden", "a", false, "show hidden files")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	flags.BoolVar(&opts.debug, "debug", false, "log at debug level")
	flags.BoolVar(&opts.printDir, "print-dir", false, "print the final directory on exit")
	flags.BoolVar(&opts.noWatch, "no-watch", false, "do not reload when the directory changes")

	cmd.AddCommand(setupCmd(d))
	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		defaultPath, err := config.DefaultPath()
		if err != nil {
			return config.Default(), nil
		}
		path = defaultPath
	}
	return config.Load(path)
}

func setupCmd(d deps) *cobra.Command {
	return &cobra.Command{
		Use:       "setup [shell]",
		Short:     "Print a shell function that changes into the last directory",
		Long:      "Add the output to your shell's startup file, e.g.\n\n    eval \"$(fluxdir setup)\"",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: shellsetup.Shells,
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := ""
			if len(args) > 0 {
				shell = args[0]
			}
			return shellsetup.PrintSetup(d.stdout, shell, shellsetup.Config{})
		},
	}
}
