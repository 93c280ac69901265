// Package words supplies target word sequences for typing sessions.
package words

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Built-in word sets selectable by name. Custom lists are loaded from
// files, one word per line.
var builtinSets = map[string][]string{
	"easy": {
		"the", "and", "for", "are", "but", "not", "you", "all", "can",
		"her", "was", "one", "our", "out", "day", "get", "has", "him",
		"his", "how", "man", "new", "now", "old", "see", "two", "way",
		"who", "did", "its", "let", "put", "say", "she", "too", "use",
	},
	"medium": {
		"about", "after", "again", "along", "began", "below", "between",
		"carry", "clean", "close", "country", "earth", "every", "father",
		"found", "great", "house", "large", "learn", "light", "might",
		"mother", "mountain", "night", "often", "paper", "plant", "right",
		"should", "small", "sound", "spell", "still", "story", "study",
		"their", "there", "thought", "together", "water", "world", "would",
	},
	"hard": {
		"accommodate", "acknowledgment", "bureaucracy", "conscientious",
		"entrepreneur", "extraordinary", "hierarchy", "idiosyncrasy",
		"juxtaposition", "maneuver", "miscellaneous", "mischievous",
		"necessary", "occurrence", "perseverance", "pharmaceutical",
		"questionnaire", "reconnaissance", "rhythm", "silhouette",
		"subpoena", "surveillance", "synchronous", "unanimous",
	},
	"programming": {
		"append", "boolean", "buffer", "channel", "closure", "compile",
		"context", "defer", "encode", "error", "function", "goroutine",
		"import", "index", "interface", "iterate", "lambda", "mutex",
		"nil", "package", "pointer", "queue", "recursion", "return",
		"runtime", "slice", "stack", "string", "struct", "syntax",
		"thread", "token", "tuple", "variable",
	},
}

// DefaultSet is used when no word list is configured.
const DefaultSet = "easy"

// SetNames returns the available built-in set names.
func SetNames() []string {
	return []string{"easy", "medium", "hard", "programming"}
}

// Load resolves a word list identifier: a built-in set name or a file
// path with one word per line.
func Load(nameOrPath string) ([]string, error) {
	if nameOrPath == "" {
		nameOrPath = DefaultSet
	}
	if set, ok := builtinSets[nameOrPath]; ok {
		out := make([]string, len(set))
		copy(out, set)
		return out, nil
	}
	return loadFile(nameOrPath)
}

func loadFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}
