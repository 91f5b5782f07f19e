// Package bpe provides a trainable byte-level BPE tokenizer implementation.
package bpe

// Generate documentation for the root package
//go:generate gomarkdoc -o README.md -e . --embed --repository.url https://github.com/agentstation/bpe --repository.default-branch master --repository.path /

// Generate documentation for the gpt4 package
//go:generate gomarkdoc -o ./gpt4/README.md -e ./gpt4 --embed --repository.url https://github.com/agentstation/bpe --repository.default-branch master --repository.path /gpt4

// Generate documentation for the CLI package
//go:generate gomarkdoc -o ./cmd/bpe/README.md -e ./cmd/bpe --embed --repository.url https://github.com/agentstation/bpe --repository.default-branch master --repository.path /cmd/bpe
