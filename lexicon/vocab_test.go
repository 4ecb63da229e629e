package lexicon

import (
	"strings"
	"testing"
)

const testPhones = `# CMU phone set (excerpt)
AA	vowel
AE	vowel
B	stop
K	stop
T	stop
`

func TestLoadVocabulary(t *testing.T) {
	v, err := LoadVocabulary(strings.NewReader(testPhones))
	if err != nil {
		t.Fatalf("LoadVocabulary error: %v", err)
	}

	for _, p := range []string{"AA", "AE", "B", "K", "T"} {
		if !v.Contains(p) {
			t.Errorf("Contains(%q) = false, want true", p)
		}
	}
	if v.Contains("A") {
		t.Error("Contains(A) = true; substring of AA must not match")
	}
	if v.Contains("#") {
		t.Error("comment line leaked into vocabulary")
	}
}

func TestLoadVocabularyEmpty(t *testing.T) {
	if _, err := LoadVocabulary(strings.NewReader("# nothing here\n\n")); err == nil {
		t.Error("expected error for empty vocabulary")
	}
}

func TestParseVocabulary(t *testing.T) {
	v := ParseVocabulary("b ae\nt\tk")
	if v.Len() != 4 {
		t.Errorf("Len = %d, want 4", v.Len())
	}
	want := []string{"ae", "b", "k", "t"}
	got := v.Symbols()
	if len(got) != len(want) {
		t.Fatalf("Symbols = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Symbols[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNilVocabulary(t *testing.T) {
	var v *Vocabulary
	if v.Contains("b") {
		t.Error("nil vocabulary should contain nothing")
	}
	if v.Len() != 0 {
		t.Errorf("Len = %d, want 0", v.Len())
	}
}
