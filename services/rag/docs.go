// Package rag answers general museum questions: a small lexical retriever
// over the knowledge-base documents feeds context to a Gemini prompt.
package rag

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	chunkSize    = 500
	chunkOverlap = 50
)

// DocStore holds the museum knowledge base split into overlapping chunks.
type DocStore struct {
	chunks []string
}

// LoadDocs reads every .txt file under dir and chunks it. A missing or empty
// directory yields an empty store; retrieval then returns no context.
func LoadDocs(dir string) (*DocStore, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return &DocStore{}, nil
		}
		return nil, fmt.Errorf("failed to read document directory: %w", err)
	}

	var chunks []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read document %s: %w", entry.Name(), err)
		}
		chunks = append(chunks, splitChunks(string(data), chunkSize, chunkOverlap)...)
	}
	return &DocStore{chunks: chunks}, nil
}

// Retrieve returns up to k chunks ranked by word overlap with the question.
func (d *DocStore) Retrieve(question string, k int) []string {
	if len(d.chunks) == 0 || k <= 0 {
		return nil
	}

	terms := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(question)) {
		terms[strings.Trim(w, `.,?!'"`)] = struct{}{}
	}

	type scored struct {
		chunk string
		score int
	}
	ranked := make([]scored, 0, len(d.chunks))
	for _, chunk := range d.chunks {
		score := 0
		for _, w := range strings.Fields(strings.ToLower(chunk)) {
			if _, ok := terms[strings.Trim(w, `.,?!'"`)]; ok {
				score++
			}
		}
		if score > 0 {
			ranked = append(ranked, scored{chunk: chunk, score: score})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	if len(ranked) > k {
		ranked = ranked[:k]
	}
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.chunk
	}
	return out
}

func splitChunks(text string, size, overlap int) []string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= size {
		return []string{string(runes)}
	}

	var chunks []string
	step := size - overlap
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks
}
