// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yapdotfun/predictionvm/consts"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints out the version",
	RunE: func(*cobra.Command, []string) error {
		fmt.Printf("%s@%s (%s)\n", consts.Name, consts.Version, consts.ID)
		return nil
	},
}
