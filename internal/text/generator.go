package text

import (
	"math/rand"
	"strings"
)

// Generator produces race text by sampling from a common-word list.
type Generator struct{}

// Generate returns wordCount space-separated words.
func (Generator) Generate(wordCount int) string {
	if wordCount <= 0 {
		wordCount = 10
	}
	words := make([]string, wordCount)
	for i := range words {
		words[i] = commonWords[rand.Intn(len(commonWords))]
	}
	return strings.Join(words, " ")
}
