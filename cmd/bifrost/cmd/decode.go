/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bifrostdb/bifrost/pkg/codec"
	"github.com/bifrostdb/bifrost/pkg/config"
	"github.com/bifrostdb/bifrost/pkg/registry"
	"github.com/bifrostdb/bifrost/pkg/rowbinary"
)

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode [file]",
	Short: "Decode row-binary data against a type schema",
	Long: `Decode row-binary data from a file (or stdin) against a
comma-separated type schema, printing one tab-separated row per line.

Example:
  bifrost decode --schema "UInt64,String,DateTime('UTC')" dump.bin
  bifrost decode --schema "Decimal(18, 4)" --uint64 signed < dump.bin`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		schemaFlag, _ := cmd.Flags().GetString("schema")
		if schemaFlag == "" {
			return fmt.Errorf("--schema is required")
		}

		pol, err := buildPolicy(cmd)
		if err != nil {
			return err
		}

		reg := registry.New(pol)
		codecs, err := reg.Schema(splitSchema(schemaFlag))
		if err != nil {
			return fmt.Errorf("invalid schema: %w", err)
		}
		schema := rowbinary.NewSchema(codecs)

		data, err := readInput(args)
		if err != nil {
			return err
		}

		loc := 0
		for loc < len(data) {
			values, next, err := schema.DecodeRow(data, loc)
			if err != nil {
				return fmt.Errorf("decode failed at offset %d: %w", loc, err)
			}
			printRow(cmd.OutOrStdout(), values)
			loc = next
		}
		return nil
	},
}

// buildPolicy layers the config file (if given) under the flags.
func buildPolicy(cmd *cobra.Command) (*codec.Policy, error) {
	pol := codec.NewPolicy()

	if configPath, _ := cmd.Flags().GetString("config"); configPath != "" {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		if err := cfg.Apply(pol); err != nil {
			return nil, err
		}
	}

	if s, _ := cmd.Flags().GetString("fixed-strings"); s != "" {
		method, err := codec.ParseFixedStringMethod(s)
		if err != nil {
			return nil, err
		}
		encoding, _ := cmd.Flags().GetString("encoding")
		onInvalidFlag, _ := cmd.Flags().GetString("on-invalid")
		onInvalid, err := codec.ParseInvalidTextFallback(onInvalidFlag)
		if err != nil {
			return nil, err
		}
		if err := pol.SetFixedStringHandling(codec.FixedStringOptions{
			Method:    method,
			Encoding:  encoding,
			OnInvalid: onInvalid,
		}); err != nil {
			return nil, err
		}
	}

	if s, _ := cmd.Flags().GetString("uint64"); s != "" {
		mode, err := codec.ParseUInt64Mode(s)
		if err != nil {
			return nil, err
		}
		pol.SetUInt64Handling(mode)
	}

	return pol, nil
}

func splitSchema(schema string) []string {
	// Commas inside parentheses belong to type arguments, not the schema.
	var names []string
	depth, start := 0, 0
	for i := 0; i < len(schema); i++ {
		switch schema[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				names = append(names, strings.TrimSpace(schema[start:i]))
				start = i + 1
			}
		}
	}
	names = append(names, strings.TrimSpace(schema[start:]))
	return names
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 0 {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}

func printRow(w io.Writer, values []any) {
	for i, v := range values {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		switch val := v.(type) {
		case []byte:
			fmt.Fprintf(w, "%x", val)
		default:
			fmt.Fprintf(w, "%v", val)
		}
	}
	fmt.Fprintln(w)
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().StringP("schema", "s", "", "Comma-separated column type names")
	decodeCmd.Flags().String("fixed-strings", "", "FixedString handling: raw, decode or hex")
	decodeCmd.Flags().String("encoding", "", "Text encoding for FixedString decode mode (default UTF-8)")
	decodeCmd.Flags().String("on-invalid", "hex", "Fallback for invalid FixedString text: hex or placeholder")
	decodeCmd.Flags().String("uint64", "", "UInt64 handling: unsigned or signed")
}
