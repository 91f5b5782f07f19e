package gpt4cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	// Encode command flags.
	encMerges    string
	encOutput    string
	encCount     bool
	encCountOnly bool
	encMetrics   bool
)

// newEncodeCmd creates the encode subcommand.
func newEncodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode [text]",
		Short: "Encode text to token ids",
		Long: `Encode text into BPE token ids using a trained merge table.

If no text is provided as an argument, reads from stdin.

The output format can be:
  - space: Space-separated token ids (default)
  - newline: One token id per line
  - json: JSON array of token ids`,
		Example: `  # Encode a simple string
  bpe gpt4 encode --merges merges.json "Hello, world!"

  # Encode from stdin
  echo "Hello, world!" | bpe gpt4 encode --merges merges.json

  # Output as JSON
  bpe gpt4 encode --merges merges.json --output json "Hello"

  # Show only the token count
  bpe gpt4 encode --merges merges.json --count-only "Hello"`,
		RunE: runEncode,
	}

	// Add flags
	cmd.Flags().StringVarP(&encMerges, "merges", "m", "", "Path to a trained merge table (optional)")
	cmd.Flags().StringVarP(&encOutput, "output", "o", "space", "Output format: space, newline, json")
	cmd.Flags().BoolVar(&encCount, "count", false, "Show token count with output")
	cmd.Flags().BoolVar(&encCountOnly, "count-only", false, "Show only token count (no tokens)")
	cmd.Flags().BoolVar(&encMetrics, "metrics", false, "Show performance metrics")

	return cmd
}

func runEncode(_ *cobra.Command, args []string) error {
	tokenizer, err := newTokenizer(encMerges)
	if err != nil {
		return fmt.Errorf("failed to initialize tokenizer: %w", err)
	}

	var text string
	if len(args) > 0 {
		text = strings.Join(args, " ")
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	}

	startTime := time.Now()
	tokens := tokenizer.Encode(text)
	encodeDuration := time.Since(startTime)

	// Handle count-only mode
	if encCountOnly {
		switch encOutput {
		case "json":
			data, err := json.Marshal(map[string]int{"count": len(tokens)})
			if err != nil {
				return fmt.Errorf("failed to marshal count: %w", err)
			}
			fmt.Println(string(data))
		default:
			fmt.Println(len(tokens))
		}
		return nil
	}

	switch encOutput {
	case "json":
		output := map[string]any{
			"tokens": tokens,
		}
		if encCount {
			output["count"] = len(tokens)
		}
		if encMetrics {
			output["metrics"] = map[string]any{
				"latency":     formatLatency(encodeDuration),
				"tps":         calculateTPS(len(tokens), encodeDuration),
				"input_bytes": len(text),
			}
		}
		data, err := json.Marshal(output)
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		fmt.Println(string(data))
	case "newline":
		if encCount {
			fmt.Printf("count: %d\n", len(tokens))
		}
		for _, token := range tokens {
			fmt.Println(token)
		}
	case "space":
		if encCount {
			fmt.Printf("count: %d\n", len(tokens))
			fmt.Print("tokens: ")
		}
		for i, token := range tokens {
			if i > 0 {
				fmt.Print(" ")
			}
			fmt.Print(token)
		}
		fmt.Println()
	default:
		return fmt.Errorf("unknown output format: %s", encOutput)
	}

	if encMetrics && encOutput != "json" {
		fmt.Println("metrics:")
		fmt.Printf("  latency: %s\n", formatLatency(encodeDuration))
		fmt.Printf("  tps: %d\n", calculateTPS(len(tokens), encodeDuration))
		fmt.Printf("  input_bytes: %d\n", len(text))
	}

	return nil
}
