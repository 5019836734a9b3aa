/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bifrostdb/bifrost/pkg/registry"
)

// typesCmd represents the types command
var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the registered type families",
	Long: `List the base type families the codec registry understands.

Sized families (Int, UInt, Float, Decimal) take their bit width from the
name, e.g. Int32 or Decimal64(4).`,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range registry.TypeNames() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

func init() {
	rootCmd.AddCommand(typesCmd)
}
