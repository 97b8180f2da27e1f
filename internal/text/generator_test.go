package text

import (
	"strings"
	"testing"
)

func TestGenerate_WordCount(t *testing.T) {
	g := Generator{}
	for _, n := range []int{1, 10, 35, 50} {
		got := g.Generate(n)
		if words := strings.Fields(got); len(words) != n {
			t.Fatalf("Generate(%d): got %d words", n, len(words))
		}
	}
}

func TestGenerate_NonPositiveCountFallsBack(t *testing.T) {
	g := Generator{}
	if words := strings.Fields(g.Generate(0)); len(words) != 10 {
		t.Fatalf("Generate(0): got %d words, want 10", len(words))
	}
}

func TestGenerate_UsesWordList(t *testing.T) {
	allowed := make(map[string]bool, len(commonWords))
	for _, w := range commonWords {
		allowed[w] = true
	}
	for _, w := range strings.Fields(Generator{}.Generate(200)) {
		if !allowed[w] {
			t.Fatalf("unexpected word %q", w)
		}
	}
}
