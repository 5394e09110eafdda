// Package cli implements the hedwig command line.
package cli

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/hedwig/internal/core/ports/driven"
	"github.com/custodia-labs/hedwig/internal/core/ports/driving"
	"github.com/custodia-labs/hedwig/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

var (
	verboseFlag   bool
	logFormatFlag string
	envFileFlag   string
)

// Services wired by main.
var (
	monitorService     driving.Monitor
	configStore        driven.ConfigStore
	credentialResolver driven.CredentialResolver
)

var rootCmd = &cobra.Command{
	Use:   "hedwig",
	Short: "Watch commit histories for keyword mentions",
	Long: `hedwig walks the commit history of a GitHub or Gitea repository and
counts commits whose messages mention curated keyword groups such as media
formats, codecs and protocols.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRun,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "print progress to stderr")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", logger.FormatText, "log format: text or json")
	rootCmd.PersistentFlags().StringVar(&envFileFlag, "env-file", ".env", "dotenv file with HEDWIG_* credentials")
}

func setupRun(_ *cobra.Command, _ []string) error {
	logger.SetFormat(logFormatFlag)
	logger.SetVerbose(verboseFlag)

	if envFileFlag == "" {
		return nil
	}
	if err := godotenv.Load(envFileFlag); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("load %s: %v", envFileFlag, err)
	}
	return nil
}

// SetServices wires the services the commands use.
func SetServices(monitor driving.Monitor, store driven.ConfigStore, resolver driven.CredentialResolver) {
	monitorService = monitor
	configStore = store
	credentialResolver = resolver
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
