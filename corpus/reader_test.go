package corpus

import (
	"strings"
	"testing"

	"github.com/ieee0824/p2g-go/lexicon"
)

const testCorpus = `phonemes,graphemes
B AE T,b a t
K,c k
N OW,kn ow
"AH B",  _ b
ONLYONE
`

func TestReadRows(t *testing.T) {
	rows, err := ReadRows(strings.NewReader(testCorpus))
	if err != nil {
		t.Fatalf("ReadRows error: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("len(rows) = %d, want 5", len(rows))
	}

	if rows[0].Phonemes != "B AE T" || rows[0].Graphemes != "b a t" {
		t.Errorf("rows[0] = %+v", rows[0])
	}
	if rows[0].Line != 2 {
		t.Errorf("rows[0].Line = %d, want 2 (header is line 1)", rows[0].Line)
	}
	if rows[3].Graphemes != "_ b" {
		t.Errorf("rows[3].Graphemes = %q, want %q", rows[3].Graphemes, "_ b")
	}
	if rows[4].Phonemes != "ONLYONE" || rows[4].Graphemes != "" {
		t.Errorf("rows[4] = %+v, want missing grapheme column", rows[4])
	}
}

func TestReadRowsBareQuote(t *testing.T) {
	input := "phonemes,graphemes\nB AE T,b a t\nK,c\"k\nN OW,n ow\n"
	rows, err := ReadRows(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadRows error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}
	if rows[1].Phonemes != "K" || rows[1].Graphemes != `c"k` {
		t.Errorf("rows[1] = %+v, want bare quote kept in field", rows[1])
	}
	if rows[2].Phonemes != "N OW" || rows[2].Line != 4 {
		t.Errorf("rows[2] = %+v, want N OW on line 4", rows[2])
	}

	vocab := lexicon.NewVocabulary("B", "AE", "T", "K", "N", "OW")
	res := NewValidator(vocab, lexicon.DefaultAlphabet()).Validate(rows)
	if res.Stats.RetainedRows != 2 || res.Stats.InvalidGraphemes != 1 {
		t.Errorf("Stats = %+v, want 2 retained and 1 invalid grapheme", res.Stats)
	}
}

func TestReadRowsHeaderOnly(t *testing.T) {
	rows, err := ReadRows(strings.NewReader("phonemes,graphemes\n"))
	if err != nil {
		t.Fatalf("ReadRows error: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("len(rows) = %d, want 0", len(rows))
	}
}

func TestReadRowsEmpty(t *testing.T) {
	if _, err := ReadRows(strings.NewReader("")); err == nil {
		t.Error("expected error for corpus without header")
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile("testdata/does-not-exist.csv"); err == nil {
		t.Error("expected error for missing file")
	}
}
