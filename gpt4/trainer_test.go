package gpt4

import (
	"bufio"
	"errors"
	"math/rand"
	"reflect"
	"sort"
	"testing"
)

// sliceSource is a DocumentSource over an in-memory corpus.
type sliceSource struct {
	docs []string
	pos  int
	err  error
}

func newSliceSource(docs ...string) *sliceSource {
	return &sliceSource{docs: docs}
}

func (s *sliceSource) Scan() bool {
	if s.pos < len(s.docs) {
		s.pos++
		return true
	}
	return false
}

func (s *sliceSource) Text() string { return s.docs[s.pos-1] }
func (s *sliceSource) Err() error   { return s.err }

// A bufio.Scanner is usable as a training source directly.
var _ DocumentSource = (*bufio.Scanner)(nil)

func repeat(doc string, n int) []string {
	docs := make([]string, n)
	for i := range docs {
		docs[i] = doc
	}
	return docs
}

func TestTrainMostFrequentPairFirst(t *testing.T) {
	tokenizer, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	docs := append(repeat("aaaa", 10), "aaab")
	if err := tokenizer.Train(newSliceSource(docs...), 258, 0); err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	// (97,97) dominates with count 32; after the first merge the pair
	// (256,256) appears ten times and wins the second round.
	want := map[Pair]uint32{
		{97, 97}:   256,
		{256, 256}: 257,
	}
	if got := tokenizer.Merges(); !reflect.DeepEqual(got, want) {
		t.Errorf("Merges() = %v, want %v", got, want)
	}
	if got := tokenizer.VocabSize(); got != 258 {
		t.Errorf("VocabSize() = %d, want 258", got)
	}
}

func TestTrainBaseVocabOnly(t *testing.T) {
	tokenizer, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if err := tokenizer.Train(newSliceSource("some corpus text"), 256, 0); err != nil {
		t.Fatalf("Train with vocab size 256 failed: %v", err)
	}
	if got := len(tokenizer.Merges()); got != 0 {
		t.Errorf("merge table has %d entries, want 0", got)
	}
}

func TestTrainTieBreakPrefersSmallerPair(t *testing.T) {
	tokenizer, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	// (97,98) and (99,100) both occur twice; the smaller pair must win the
	// first id.
	if err := tokenizer.Train(newSliceSource("ab", "ab", "cd", "cd"), 258, 0); err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	want := map[Pair]uint32{
		{97, 98}:  256,
		{99, 100}: 257,
	}
	if got := tokenizer.Merges(); !reflect.DeepEqual(got, want) {
		t.Errorf("Merges() = %v, want %v", got, want)
	}
}

func TestTrainStopsWhenCorpusExhausted(t *testing.T) {
	tokenizer, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	// "ab" yields a single pair; a 300-entry vocabulary cannot be reached
	// and that is not an error.
	if err := tokenizer.Train(newSliceSource("ab"), 300, 0); err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	want := map[Pair]uint32{{97, 98}: 256}
	if got := tokenizer.Merges(); !reflect.DeepEqual(got, want) {
		t.Errorf("Merges() = %v, want %v", got, want)
	}
	if got := tokenizer.VocabSize(); got != 257 {
		t.Errorf("VocabSize() = %d, want 257", got)
	}
}

func TestTrainVocabSizeTooSmall(t *testing.T) {
	tokenizer, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	err = tokenizer.Train(newSliceSource("text"), 255, 0)
	if !errors.Is(err, ErrInvalidVocabSize) {
		t.Errorf("Train(255) error = %v, want ErrInvalidVocabSize", err)
	}
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("Train(255) error type = %T, want *ConfigError", err)
	}
}

func TestTrainPropagatesSourceError(t *testing.T) {
	tokenizer, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	sourceErr := errors.New("disk on fire")
	src := newSliceSource("a few", "documents")
	src.err = sourceErr

	err = tokenizer.Train(src, 300, 0)
	if !errors.Is(err, sourceErr) {
		t.Errorf("Train error = %v, want wrapped %v", err, sourceErr)
	}
	var dataErr *DataError
	if !errors.As(err, &dataErr) {
		t.Errorf("Train error type = %T, want *DataError", err)
	}
}

func TestTrainMergeIDsContiguous(t *testing.T) {
	tokenizer, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	docs := []string{
		"the quick brown fox jumps over the lazy dog",
		"the slow brown bear sleeps under the old tree",
		"quick foxes and slow bears share the brown wood",
	}
	const vocabSize = 300
	if err := tokenizer.Train(newSliceSource(docs...), vocabSize, 0); err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	merges := tokenizer.Merges()
	if len(merges) > vocabSize-256 {
		t.Fatalf("trained %d merges, budget was %d", len(merges), vocabSize-256)
	}

	ids := make([]int, 0, len(merges))
	for _, id := range merges {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)
	for i, id := range ids {
		if id != 256+i {
			t.Fatalf("merge ids not contiguous from 256: %v", ids)
		}
	}
}

func TestTrainDeterministic(t *testing.T) {
	docs := []string{
		"all work and no play makes jack a dull boy",
		"all play and no work makes jack a mere toy",
		"work and play, play and work",
	}

	var runs []map[Pair]uint32
	for i := 0; i < 2; i++ {
		tokenizer, err := New()
		if err != nil {
			t.Fatalf("New() failed: %v", err)
		}
		if err := tokenizer.Train(newSliceSource(docs...), 320, 0); err != nil {
			t.Fatalf("Train failed: %v", err)
		}
		runs = append(runs, tokenizer.Merges())
	}

	if !reflect.DeepEqual(runs[0], runs[1]) {
		t.Errorf("two training runs on the same corpus diverged")
	}
}

// Ingestion wave size must not influence the result.
func TestTrainBufferSizeIrrelevant(t *testing.T) {
	docs := []string{"one fish", "two fish", "red fish", "blue fish", "old fish"}

	var runs []map[Pair]uint32
	for _, bufferSize := range []int{0, 1, 2} {
		tokenizer, err := New()
		if err != nil {
			t.Fatalf("New() failed: %v", err)
		}
		if err := tokenizer.Train(newSliceSource(docs...), 280, bufferSize); err != nil {
			t.Fatalf("Train(bufferSize=%d) failed: %v", bufferSize, err)
		}
		runs = append(runs, tokenizer.Merges())
	}

	for i := 1; i < len(runs); i++ {
		if !reflect.DeepEqual(runs[0], runs[i]) {
			t.Errorf("buffer size changed the trained merges")
		}
	}
}

// Re-encoding a training chunk never produces more tokens than the chunk
// has bytes.
func TestTrainedEncodingNeverExpands(t *testing.T) {
	tokenizer, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	docs := []string{
		"peter piper picked a peck of pickled peppers",
		"a peck of pickled peppers peter piper picked",
	}
	if err := tokenizer.Train(newSliceSource(docs...), 300, 0); err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	for _, doc := range docs {
		for _, chunk := range tokenizer.pretokenize(doc) {
			if got := tokenizer.encodeChunk(chunk); len(got) > len(chunk) {
				t.Errorf("chunk %q encoded to %d tokens, more than %d bytes",
					chunk, len(got), len(chunk))
			}
		}
	}
}

func TestTrainRandomCorporaTerminate(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	letters := []rune("abcdeftuvxyz ")

	for round := 0; round < 5; round++ {
		docs := make([]string, 20)
		for i := range docs {
			doc := make([]rune, 1+rng.Intn(40))
			for j := range doc {
				doc[j] = letters[rng.Intn(len(letters))]
			}
			docs[i] = string(doc)
		}
		vocabSize := 256 + rng.Intn(100)

		tokenizer, err := New()
		if err != nil {
			t.Fatalf("New() failed: %v", err)
		}
		if err := tokenizer.Train(newSliceSource(docs...), vocabSize, 0); err != nil {
			t.Fatalf("Train failed: %v", err)
		}
		if got := len(tokenizer.Merges()); got > vocabSize-256 {
			t.Errorf("round %d: trained %d merges, budget %d", round, got, vocabSize-256)
		}
	}
}
