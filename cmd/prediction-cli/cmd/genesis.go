// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yapdotfun/predictionvm/genesis"
)

// genesisCmd reads "allocations" from the config file, a list of
// {address, balance} entries.
var genesisCmd = &cobra.Command{
	Use:   "genesis",
	Short: "Build a genesis file from configured allocations",
	RunE: func(*cobra.Command, []string) error {
		var allocations []genesis.Allocation
		if err := config.UnmarshalKey("allocations", &allocations); err != nil {
			return fmt.Errorf("failed to read allocations: %w", err)
		}
		g, err := genesis.New(allocations)
		if err != nil {
			return err
		}
		b, err := json.MarshalIndent(g, "", "  ")
		if err != nil {
			return err
		}

		out := config.GetString("out")
		if out == "" {
			fmt.Println(string(b))
			return nil
		}
		if err := os.WriteFile(out, b, 0o600); err != nil {
			return err
		}
		log.Info("wrote genesis", zap.String("path", out), zap.Int("allocations", len(allocations)))
		color.Green("genesis written to %s", out)
		return nil
	},
}

func init() {
	genesisCmd.Flags().String("out", "", "write genesis to this path instead of stdout")
}
