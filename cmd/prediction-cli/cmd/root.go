// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/yapdotfun/predictionvm/consts"
)

const envPrefix = "PREDICTION"

var (
	ErrMissingSubcommand = errors.New("must specify a subcommand")

	configFile string

	config = viper.New()
	log    logging.Logger = logging.NoLog{}

	rootCmd = &cobra.Command{
		Use:               "prediction-cli",
		Short:             "PredictionVM CLI",
		SuggestFor:        []string{"prediction-cli", "predictioncli"},
		PersistentPreRunE: setup,
	}
)

func init() {
	cobra.EnablePrefixMatching = true
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (yaml, toml or json)")
	rootCmd.PersistentFlags().String("log-level", logging.Info.String(), "log level")

	rootCmd.AddCommand(
		addressCmd,
		actionCmd,
		genesisCmd,
		versionCmd,
	)
}

func Execute() error {
	return rootCmd.Execute()
}

// setup loads the config file and environment, then builds the logger. Flags
// win over PREDICTION_* variables, which win over the config file.
func setup(cmd *cobra.Command, _ []string) error {
	config.SetEnvPrefix(envPrefix)
	config.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	config.AutomaticEnv()
	if err := config.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	if configFile != "" {
		config.SetConfigFile(configFile)
		if err := config.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	level, err := logging.ToLevel(config.GetString("log-level"))
	if err != nil {
		return err
	}
	log = logging.NewLogger(
		consts.Name,
		logging.NewWrappedCore(level, os.Stderr, logging.Plain.ConsoleEncoder()),
	)
	log.Debug("cli configured",
		zap.String("command", cmd.CommandPath()),
		zap.String("config", config.ConfigFileUsed()),
	)
	return nil
}
