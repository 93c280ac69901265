package words

import (
	"fmt"
	"os"
	"strings"
)

// LoadBook reads a text file and splits it into whitespace-separated
// words, preserving punctuation and capitalization.
func LoadBook(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	words := strings.Fields(string(content))
	if len(words) == 0 {
		return nil, fmt.Errorf("book is empty")
	}
	return words, nil
}

// ChunkWords groups words into sentence-like units of the given size.
// The last chunk may be shorter.
func ChunkWords(words []string, size int) []string {
	if size <= 0 {
		size = 1
	}
	chunks := make([]string, 0, (len(words)+size-1)/size)
	for start := 0; start < len(words); start += size {
		end := start + size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}
	return chunks
}
