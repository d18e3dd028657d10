// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/formatting"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yapdotfun/predictionvm/genesis"
	"github.com/yapdotfun/predictionvm/storage"
)

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Derive deterministic record addresses",
	RunE: func(*cobra.Command, []string) error {
		return ErrMissingSubcommand
	},
}

var marketAddressCmd = &cobra.Command{
	Use:   "market",
	Short: "Derive the market and ledger of a description and creator",
	RunE: func(*cobra.Command, []string) error {
		creator, err := genesis.ParseAddress(config.GetString("creator"))
		if err != nil {
			return err
		}
		description := config.GetString("description")
		marketID := storage.MarketID(description, creator)
		ledgerID := storage.LedgerID(marketID)
		log.Debug("derived market", zap.Stringer("marketID", marketID), zap.Stringer("creator", creator))
		if err := printID("market", marketID, storage.MarketKey(marketID)); err != nil {
			return err
		}
		return printID("ledger", ledgerID, storage.LedgerKey(ledgerID))
	},
}

var ledgerAddressCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Derive the ledger of a market",
	RunE: func(*cobra.Command, []string) error {
		marketID, err := ids.FromString(config.GetString("market"))
		if err != nil {
			return err
		}
		ledgerID := storage.LedgerID(marketID)
		return printID("ledger", ledgerID, storage.LedgerKey(ledgerID))
	},
}

var voterAddressCmd = &cobra.Command{
	Use:   "voter",
	Short: "Derive a user's position in a market",
	RunE: func(*cobra.Command, []string) error {
		marketID, err := ids.FromString(config.GetString("market"))
		if err != nil {
			return err
		}
		user, err := genesis.ParseAddress(config.GetString("user"))
		if err != nil {
			return err
		}
		return printID("voter", storage.VoterID(marketID, user), storage.VoterKey(marketID, user))
	},
}

func init() {
	marketAddressCmd.Flags().String("description", "", "market description")
	marketAddressCmd.Flags().String("creator", "", "creator address")
	ledgerAddressCmd.Flags().String("market", "", "market id")
	voterAddressCmd.Flags().String("market", "", "market id")
	voterAddressCmd.Flags().String("user", "", "user address")

	addressCmd.AddCommand(
		marketAddressCmd,
		ledgerAddressCmd,
		voterAddressCmd,
	)
}

func printID(name string, id ids.ID, key []byte) error {
	encodedKey, err := formatting.Encode(formatting.HexNC, key)
	if err != nil {
		return err
	}
	label := color.New(color.FgCyan, color.Bold).SprintFunc()
	fmt.Printf("%s id:  %s\n", label(name), id)
	fmt.Printf("%s key: %s\n", label(name), encodedKey)
	return nil
}
