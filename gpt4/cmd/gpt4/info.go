package gpt4cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/agentstation/bpe/gpt4"
)

var (
	// Info command flags.
	infoMerges string
)

// newInfoCmd creates the info subcommand.
func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Display tokenizer information",
		Long: `Display information about the tokenizer, including vocabulary size and
the first trained merges when a merge table is loaded.`,
		Example: `  # Show tokenizer information
  bpe gpt4 info --merges merges.json`,
		RunE: runInfo,
	}

	cmd.Flags().StringVarP(&infoMerges, "merges", "m", "", "Path to a trained merge table (optional)")

	return cmd
}

func runInfo(_ *cobra.Command, _ []string) error {
	tokenizer, err := newTokenizer(infoMerges)
	if err != nil {
		return fmt.Errorf("failed to initialize tokenizer: %w", err)
	}

	merges := tokenizer.Merges()

	fmt.Println("GPT-4 BPE Tokenizer Information")
	fmt.Println("===============================")
	fmt.Println()

	fmt.Println("Model Details:")
	fmt.Printf("  Tokenizer Type:    Byte-level BPE (trainable)\n")
	fmt.Printf("  Base Alphabet:     256 byte values\n")
	fmt.Printf("  Trained Merges:    %d\n", len(merges))
	fmt.Printf("  Vocabulary Size:   %d tokens\n", tokenizer.VocabSize())
	fmt.Println()

	fmt.Println("Pre-tokenization Pattern:")
	fmt.Printf("  %s\n", tokenizer.Pattern())
	fmt.Println()

	if len(merges) > 0 {
		type entry struct {
			pair gpt4.Pair
			id   uint32
		}
		entries := make([]entry, 0, len(merges))
		for pair, id := range merges {
			entries = append(entries, entry{pair: pair, id: id})
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].id < entries[j].id })

		limit := min(len(entries), 10)
		fmt.Println("First Trained Merges:")
		for _, e := range entries[:limit] {
			fmt.Printf("  (%d, %d) -> %d\n", e.pair.A, e.pair.B, e.id)
		}
		if len(entries) > limit {
			fmt.Printf("  ... and %d more\n", len(entries)-limit)
		}
		fmt.Println()
	}

	fmt.Println("Encoding Characteristics:")
	fmt.Printf("  Byte-level:        Yes (handles any byte sequence)\n")
	fmt.Printf("  Whitespace:        Preserved (including multiple spaces)\n")
	fmt.Printf("  Case Sensitive:    Yes\n")
	fmt.Printf("  Unicode Support:   Full (via byte encoding)\n")
	fmt.Println()

	fmt.Println("Performance Features:")
	fmt.Printf("  BPE Cache:         Enabled (per-chunk results)\n")
	fmt.Printf("  Streaming:         Supported (via Scanner interface)\n")
	fmt.Printf("  Parallel Training: Yes (pre-tokenization and pair counting)\n")

	return nil
}
