package main

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/lintroll/pkg/config"
	"github.com/arthur-debert/lintroll/pkg/driver"
	"github.com/arthur-debert/lintroll/pkg/logging"
	"github.com/arthur-debert/lintroll/pkg/printer"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// errLintFailed signals a clean run of the program itself where at least
// one linter's outcome was not successful. main maps it to exit code 1;
// every other error is a failure to run at all and maps to exit code 2.
var errLintFailed = stderrors.New("lint failed")

var (
	verbosity    int
	workDir      string
	outputFormat string
	onlyLinters  []string

	rootCmd = &cobra.Command{
		Use:   "lintroll",
		Short: "Run every configured linter over your tree",
		Long: `lintroll runs the linters configured in lintroll.toml over the files
they declare interest in, batching command lines under the platform limit
and flagging runs where a tool silently rewrote files in place.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRoot,
	}
)

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.Flags().StringVarP(&workDir, "directory", "C", "", "Change to this directory before running")
	rootCmd.Flags().StringVarP(&outputFormat, "format", "f",
		printer.FormatText,
		"Output format ("+strings.Join(printer.Formats(), "|")+")")
	rootCmd.Flags().StringSliceVarP(&onlyLinters, "linter", "l", nil, "Run only the named linters (repeatable)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
}

func runRoot(cmd *cobra.Command, args []string) error {
	if workDir != "" {
		log.Debug().Str("dir", workDir).Msg("changing working directory")
		if err := os.Chdir(workDir); err != nil {
			return err
		}
	}

	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	p, err := printer.Select(outputFormat, os.Stdout)
	if err != nil {
		return err
	}

	ok, err := driver.Run(".", cfg, p, onlyLinters)
	if err != nil {
		return err
	}
	if !ok {
		return errLintFailed
	}
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lintroll version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter lintroll.toml in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		const name = "lintroll.toml"
		if _, err := os.Stat(name); err == nil {
			return fmt.Errorf("%s already exists", name)
		}
		if err := os.WriteFile(name, config.StarterConfig, 0644); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", name)
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective merged configuration as TOML",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(".")
		if err != nil {
			return err
		}
		out, err := cfg.MarshalTOML()
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	},
}
