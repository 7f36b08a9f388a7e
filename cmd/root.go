// Copyright © 2018 The ELPS authors

package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/luthersystems/cstyle/lint"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	colorFlag string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cstyle",
	Short: "cstyle checks C sources against a fixed coding style",
	Long: `cstyle checks C source and header files against a fixed coding style:
block indentation, brace placement, spacing, naming prefixes, header guards,
function size and more. Each rule is an independent check that reports
one line per finding.

Getting started:
  cstyle check main.c              Check a single file
  cstyle check ./...               Check every .c and .h file below .
  cstyle check --format json src   Machine-readable output
  cstyle rules                     Describe every check
  cstyle fmt -w main.c             Fix tabs and trailing whitespace
  cstyle lsp                       Start the language server

Configuration:
  Limits and defaults are read from .cstyle.yaml (or .toml, .json) in the
  working directory or $HOME, from CSTYLE_* environment variables
  (CSTYLE_INDENT_WIDTH=2) and from command flags, in increasing order of
  precedence. Keys: indent-width, max-line-length, max-function-lines,
  max-function-args, checks, disable, exclude, extensions, jobs, format.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsage)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.cstyle.yaml or $HOME/.cstyle.yaml)")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto",
		`Control colored output: "auto", "always", or "never".`)

	setConfigDefaults(viper.GetViper())
}

// setConfigDefaults registers the convention limits as viper defaults so
// that configuration files only need to name the values they change.
func setConfigDefaults(v *viper.Viper) {
	d := lint.DefaultConfig()
	v.SetDefault("indent-width", d.IndentWidth)
	v.SetDefault("max-line-length", d.MaxLineLength)
	v.SetDefault("max-function-lines", d.MaxFunctionLines)
	v.SetDefault("max-function-args", d.MaxFunctionArgs)
	v.SetDefault("extensions", defaultExtensions)
	v.SetDefault("format", formatText)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if err := readConfig(viper.GetViper(), cfgFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsage)
	}
}

// readConfig points v at the config file (or the default search path) and
// the CSTYLE_ environment. A missing default config file is not an error.
func readConfig(v *viper.Viper, file string) error {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigName(".cstyle")
	}

	v.SetEnvPrefix("CSTYLE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	log.Printf("Using config file: %s", v.ConfigFileUsed())
	return nil
}

// lintConfig decodes the convention limits from v and validates them.
func lintConfig(v *viper.Viper) (lint.Config, error) {
	cfg := lint.DefaultConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
