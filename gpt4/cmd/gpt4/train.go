package gpt4cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/bpe/gpt4"
)

var (
	// Train command flags.
	trainVocabSize  int
	trainBufferSize int
	trainMergesOut  string
	trainMetrics    bool
)

// maxDocumentSize bounds a single corpus line; bufio.Scanner's default token
// limit is too small for real corpora.
const maxDocumentSize = 16 * 1024 * 1024

// newTrainCmd creates the train subcommand.
func newTrainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train [file...]",
		Short: "Learn a merge table from a corpus",
		Long: `Train a BPE merge table from a corpus and save it as JSON.

Each line of the input files (or stdin when no files are given) is treated
as one document. Training learns up to vocab-size minus 256 merges; the run
stops early if the corpus has no adjacent pairs left, which yields a smaller
vocabulary and is not an error.`,
		Example: `  # Train from a file
  bpe gpt4 train --vocab-size 4096 --merges merges.json corpus.txt

  # Train from stdin
  cat corpus.txt | bpe gpt4 train --vocab-size 1024 --merges merges.json

  # Larger ingestion waves for big corpora
  bpe gpt4 train --vocab-size 32000 --buffer-size 65536 --merges merges.json corpus.txt`,
		RunE: runTrain,
	}

	// Add flags
	cmd.Flags().IntVar(&trainVocabSize, "vocab-size", 4096, "Target vocabulary size (>= 256)")
	cmd.Flags().IntVar(&trainBufferSize, "buffer-size", 0, "Documents per parallel ingestion wave (0 = default)")
	cmd.Flags().StringVarP(&trainMergesOut, "merges", "m", "merges.json", "Output path for the merge table")
	cmd.Flags().BoolVar(&trainMetrics, "metrics", false, "Show training metrics")

	return cmd
}

func runTrain(_ *cobra.Command, args []string) error {
	var reader io.Reader
	if len(args) == 0 {
		reader = os.Stdin
	} else {
		readers := make([]io.Reader, 0, len(args))
		for _, path := range args {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open corpus: %w", err)
			}
			defer f.Close()
			readers = append(readers, f)
		}
		reader = io.MultiReader(readers...)
	}

	tokenizer, err := gpt4.New()
	if err != nil {
		return fmt.Errorf("failed to initialize tokenizer: %w", err)
	}

	source := bufio.NewScanner(reader)
	source.Buffer(make([]byte, 0, 64*1024), maxDocumentSize)

	startTime := time.Now()
	if err := tokenizer.Train(source, trainVocabSize, trainBufferSize); err != nil {
		return fmt.Errorf("training failed: %w", err)
	}
	trainDuration := time.Since(startTime)

	merges := tokenizer.Merges()
	if err := saveMerges(trainMergesOut, merges); err != nil {
		return err
	}

	fmt.Printf("trained %d merges (vocab size %d), wrote %s\n",
		len(merges), tokenizer.VocabSize(), trainMergesOut)
	if trainMetrics {
		fmt.Println("metrics:")
		fmt.Printf("  latency: %s\n", formatLatency(trainDuration))
	}

	return nil
}
