package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/maxshaw/sqlbuilder"
	"github.com/maxshaw/sqlbuilder/config"
)

const (
	exitGeneral   = 1
	exitConfig    = 2
	exitDBConnect = 4
)

var (
	cfg        *config.Config
	configPath string

	cfgFile string
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "sqlbuilder",
	Short: "Parameterized SQL statement builder",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, configPath, err = config.Load(cfgFile)
		if err != nil {
			return &exitError{code: exitConfig, msg: "loading configuration", err: err}
		}

		if !cfg.LogSQL || quiet {
			sqlbuilder.SetLogger(nil)
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: auto-discover sqlbuilder.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress statement logging")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(configCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exitWithError(err)
	}
}

type exitError struct {
	code int
	msg  string
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *exitError) Unwrap() error {
	return e.err
}

func exitWithError(err error) {
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", exitErr.Error())
		os.Exit(exitErr.code)
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(exitGeneral)
}

// resolveString returns the first non-empty value: flag > config > default.
func resolveString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
