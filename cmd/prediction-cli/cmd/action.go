// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/formatting"
	"github.com/ava-labs/hypersdk/chain"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yapdotfun/predictionvm/actions"
	"github.com/yapdotfun/predictionvm/genesis"
)

var ErrInvalidSide = errors.New("side must be yes or no")

var actionCmd = &cobra.Command{
	Use:   "action",
	Short: "Encode predictionvm actions",
	RunE: func(*cobra.Command, []string) error {
		return ErrMissingSubcommand
	},
}

var createActionCmd = &cobra.Command{
	Use:   "create",
	Short: "Encode a CreateMarket action",
	RunE: func(*cobra.Command, []string) error {
		resolver := codec.EmptyAddress
		if s := config.GetString("resolver"); s != "" {
			var err error
			if resolver, err = genesis.ParseAddress(s); err != nil {
				return err
			}
		}
		return printAction(&actions.CreateMarket{
			Description:            config.GetString("description"),
			ExpectedResolutionDate: config.GetUint64("resolution-date"),
			Resolver:               resolver,
		})
	},
}

var buyActionCmd = &cobra.Command{
	Use:   "buy",
	Short: "Encode a Buy action",
	RunE: func(*cobra.Command, []string) error {
		marketID, side, err := marketAndSide("side")
		if err != nil {
			return err
		}
		return printAction(&actions.Buy{MarketID: marketID, Side: side, Amount: config.GetUint64("amount")})
	},
}

var sellActionCmd = &cobra.Command{
	Use:   "sell",
	Short: "Encode a Sell action",
	RunE: func(*cobra.Command, []string) error {
		marketID, side, err := marketAndSide("side")
		if err != nil {
			return err
		}
		return printAction(&actions.Sell{MarketID: marketID, Side: side, Shares: config.GetUint64("shares")})
	},
}

var closeActionCmd = &cobra.Command{
	Use:   "close",
	Short: "Encode a Close action",
	RunE: func(*cobra.Command, []string) error {
		marketID, answer, err := marketAndSide("answer")
		if err != nil {
			return err
		}
		return printAction(&actions.Close{MarketID: marketID, Answer: answer})
	},
}

var claimActionCmd = &cobra.Command{
	Use:   "claim",
	Short: "Encode a Claim action",
	RunE: func(*cobra.Command, []string) error {
		marketID, err := ids.FromString(config.GetString("market"))
		if err != nil {
			return err
		}
		return printAction(&actions.Claim{MarketID: marketID})
	},
}

func init() {
	createActionCmd.Flags().String("description", "", "market description")
	createActionCmd.Flags().Uint64("resolution-date", 0, "expected resolution date (unix seconds)")
	createActionCmd.Flags().String("resolver", "", "resolver address, defaults to the sender")

	buyActionCmd.Flags().String("market", "", "market id")
	buyActionCmd.Flags().String("side", "yes", "yes or no")
	buyActionCmd.Flags().Uint64("amount", 0, "base units to wager")

	sellActionCmd.Flags().String("market", "", "market id")
	sellActionCmd.Flags().String("side", "yes", "yes or no")
	sellActionCmd.Flags().Uint64("shares", 0, "shares to redeem")

	closeActionCmd.Flags().String("market", "", "market id")
	closeActionCmd.Flags().String("answer", "", "yes or no")

	claimActionCmd.Flags().String("market", "", "market id")

	actionCmd.AddCommand(
		createActionCmd,
		buyActionCmd,
		sellActionCmd,
		closeActionCmd,
		claimActionCmd,
	)
}

func parseSide(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "y", "true":
		return true, nil
	case "no", "n", "false":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidSide, s)
	}
}

func marketAndSide(sideKey string) (ids.ID, bool, error) {
	marketID, err := ids.FromString(config.GetString("market"))
	if err != nil {
		return ids.Empty, false, err
	}
	side, err := parseSide(config.GetString(sideKey))
	if err != nil {
		return ids.Empty, false, err
	}
	return marketID, side, nil
}

func printAction(action chain.Action) error {
	b, err := json.MarshalIndent(action, "", "  ")
	if err != nil {
		return err
	}
	encoded, err := formatting.Encode(formatting.HexNC, action.Bytes())
	if err != nil {
		return err
	}
	log.Debug("encoded action",
		zap.Uint8("typeID", action.GetTypeID()),
		zap.Int("size", len(action.Bytes())),
	)
	fmt.Println(string(b))
	fmt.Printf("%s %s\n", color.GreenString("bytes:"), encoded)
	return nil
}
