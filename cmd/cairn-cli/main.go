// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewCmd builds the cairn-cli root command with every subcommand
// attached.
func NewCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cairn-cli",
		Short: "Declaration checks and ABI extraction for StarkNet contract sources",
	}

	rootCmd.AddCommand(CheckCmd(), ABICmd())

	return rootCmd
}

func main() {
	if err := NewCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
