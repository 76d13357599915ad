// SPDX-License-Identifier: Apache-2.0
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// ABICmd returns the command that prints the ABI of a contract source
// as JSON. Diagnostics go to stderr so stdout stays valid JSON.
func ABICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "abi <file.cairo>",
		Short: "Print the contract ABI as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runABI,
	}
	cmd.Flags().Bool(accountContractF, false, accountContractUsage)

	return cmd
}

func runABI(cmd *cobra.Command, args []string) error {
	isAccount, err := cmd.Flags().GetBool(accountContractF)
	if err != nil {
		return err
	}

	analysis, clean, err := analyzeFile(args[0], isAccount, os.Stderr)
	if err != nil {
		return err
	}
	if !clean {
		os.Exit(1)
	}

	encoded, err := json.MarshalIndent(analysis.ABI, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode ABI: %w", err)
	}

	fmt.Println(string(encoded))
	return nil
}
