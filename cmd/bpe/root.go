package main

import (
	"fmt"

	"github.com/spf13/cobra"

	gpt4cmd "github.com/agentstation/bpe/gpt4/cmd/gpt4"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "bpe",
	Short: "A trainable BPE tokenizer CLI tool",
	Long: `Bpe is a CLI tool for training and applying byte-level BPE tokenizers.

Each tokenizer family is available as a subcommand with its own set of
operations.

Currently supported tokenizers:
  - gpt4: trainable byte-level BPE with the GPT-4 pre-tokenization pattern

Common operations available for tokenizers:
  - train:  Learn a merge table from a corpus
  - encode: Convert text to token ids
  - stream: Process large files in streaming mode
  - info:   Display tokenizer information`,
	Example: `  # Train a merge table
  bpe gpt4 train --vocab-size 4096 --merges merges.json corpus.txt

  # Encode text
  bpe gpt4 encode --merges merges.json "Hello, world!"

  # Stream a large file
  cat large_file.txt | bpe gpt4 stream --merges merges.json

  # Get tokenizer info
  bpe gpt4 info --merges merges.json`,
	SilenceUsage: true,
}

// versionCmd represents the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("bpe version %s\n", version)
		if commit != "none" {
			fmt.Printf("  commit:     %s\n", commit)
		}
		if buildDate != "unknown" {
			fmt.Printf("  built:      %s\n", buildDate)
		}
		if goVersion != "unknown" {
			fmt.Printf("  go version: %s\n", goVersion)
		}
	},
}

func init() {
	// Register commands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(gpt4cmd.Command())
}
