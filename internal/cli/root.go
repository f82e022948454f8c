// Package cli implements the logflow command tree.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mmynk/logflow/pkg/logging"
)

// NewRootCommand builds the logflow command tree bound to v.
func NewRootCommand(v *viper.Viper) *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:           "logflow",
		Short:         "Romaneio aggregation server and tools",
		Long:          "LogFlow stores packing lists (romaneios), computes their totals and breakdowns, cleans item data and tracks automated processing.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(v, cfgFile); err != nil {
				return err
			}
			logging.Configure(v.GetString("log_level"), v.GetString("log_format"))
			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default .logflow.yaml)")
	root.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	root.PersistentFlags().String("log-format", "text", "log format: text or json")
	_ = v.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag("log_format", root.PersistentFlags().Lookup("log-format"))

	root.AddCommand(
		newServeCommand(v),
		newTotalsCommand(),
		newRulesCommand(),
	)
	return root
}

// Execute runs the command tree against the process arguments.
func Execute() {
	if err := NewRootCommand(viper.New()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".logflow")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	v.SetEnvPrefix("LOGFLOW")
	v.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}
