package gpt4cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/bpe/gpt4"
)

var (
	// Stream command flags.
	streamMerges     string
	streamBufferSize int
	streamMaxBuffer  int
	streamOutput     string
)

// newStreamCmd creates the stream subcommand.
func newStreamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Process text in streaming mode",
		Long: `Process text in streaming mode, outputting tokens as they are produced.

This command is designed for processing large files or real-time input where
you want tokens as they appear rather than after the entire input is read.

The streaming tokenizer accumulates text until it finds a safe tokenization
boundary (a whitespace run) so tokens are not split across reads.

Input is read from stdin only.`,
		Example: `  # Stream a large file
  cat large_file.txt | bpe gpt4 stream --merges merges.json

  # Stream with custom buffer size
  cat data.txt | bpe gpt4 stream --merges merges.json --buffer-size 8192

  # Stream with one token per line
  cat input.txt | bpe gpt4 stream --merges merges.json --output newline`,
		RunE: runStream,
	}

	// Add flags
	cmd.Flags().StringVarP(&streamMerges, "merges", "m", "", "Path to a trained merge table (optional)")
	cmd.Flags().IntVar(&streamBufferSize, "buffer-size", 4096, "Buffer size for reading")
	cmd.Flags().IntVar(&streamMaxBuffer, "max-buffer", 1048576, "Maximum buffer size before forcing tokenization")
	cmd.Flags().StringVarP(&streamOutput, "output", "o", "space", "Output format: space, newline")

	return cmd
}

func runStream(_ *cobra.Command, _ []string) error {
	// Validate output format
	if streamOutput != "space" && streamOutput != "newline" {
		return fmt.Errorf("invalid output format %q: must be 'space' or 'newline'", streamOutput)
	}

	tokenizer, err := newTokenizer(streamMerges)
	if err != nil {
		return fmt.Errorf("failed to initialize tokenizer: %w", err)
	}

	scanner := tokenizer.NewScanner(
		os.Stdin,
		gpt4.WithBufferSize(streamBufferSize),
		gpt4.WithMaxBuffer(streamMaxBuffer),
	)

	// Process tokens
	first := true
	tokenCount := 0
	for scanner.Scan() {
		token := scanner.Token()
		tokenCount++

		switch streamOutput {
		case "newline":
			fmt.Println(token)
		case "space":
			if !first {
				fmt.Print(" ")
			}
			fmt.Print(token)
			first = false
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("streaming error: %w", err)
	}

	// Final newline for space-separated output
	if streamOutput == "space" && tokenCount > 0 {
		fmt.Println()
	}

	return nil
}
