// Package gpt4cmd provides the gpt4 command for the bpe CLI.
package gpt4cmd

import (
	"github.com/spf13/cobra"
)

// Command returns the gpt4 command tree for the bpe CLI.
// This command provides train, encode, stream, and info subcommands for
// working with the trainable GPT-4-pattern BPE tokenizer.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gpt4",
		Short: "Trainable byte-level BPE tokenizer operations",
		Long: `Train and apply a byte-level BPE tokenizer that uses the GPT-4
pre-tokenization pattern.

The tokenizer starts from the 256 raw byte values and learns merge rules
from a corpus; a trained merge table is saved as JSON and reused for
encoding.

Available commands:
  train  - Learn a merge table from a corpus
  encode - Encode text to token ids
  stream - Process text in streaming mode
  info   - Display tokenizer information`,
		Example: `  # Train a 4096-entry vocabulary from a corpus
  bpe gpt4 train --vocab-size 4096 --merges merges.json corpus.txt

  # Encode text with a trained merge table
  bpe gpt4 encode --merges merges.json "Hello, world!"

  # Stream from stdin
  cat large_file.txt | bpe gpt4 stream --merges merges.json

  # Show tokenizer info
  bpe gpt4 info --merges merges.json`,
	}

	// Add subcommands
	cmd.AddCommand(
		newTrainCmd(),
		newEncodeCmd(),
		newStreamCmd(),
		newInfoCmd(),
	)

	return cmd
}
