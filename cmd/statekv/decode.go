package main

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/statecraft/go-statestore/codec"
	"github.com/statecraft/go-statestore/internal/json"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <payload | ->",
	Short: "Decode stored value bytes and print the decoded view",
	Long:  "Runs the given payload (or stdin when the argument is '-') through the value codec and prints the decode outcome: its kind and its JSON rendering.",
	Args:  cobra.ExactArgs(1),
	RunE:  runDecode,
}

func init() {
	decodeCmd.Flags().BoolP("hex", "x", false, "treat the payload as hex-encoded bytes")
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	data, err := decodeInput(cmd, args[0])
	if err != nil {
		return err
	}

	logger, err := cliLogger(cmd)
	if err != nil {
		return err
	}

	result := codec.New(logger).Unmarshal(data)

	rendered, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render result: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "kind: %s\n", result.Kind())
	fmt.Fprintln(out, string(rendered))

	return nil
}

func decodeInput(cmd *cobra.Command, arg string) ([]byte, error) {
	var data []byte

	if arg == "-" {
		stdin, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}

		data = stdin
	} else {
		data = []byte(arg)
	}

	isHex, err := cmd.Flags().GetBool("hex")
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if !isHex {
		return data, nil
	}

	decoded, err := hex.DecodeString(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode hex payload: %w", err)
	}

	return decoded, nil
}
