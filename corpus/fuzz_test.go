package corpus

import (
	"testing"

	"github.com/ieee0824/p2g-go/lexicon"
)

func FuzzCheck(f *testing.F) {
	f.Add("b ae t", "b a t")
	f.Add("k", "c k")
	f.Add("", "")
	f.Add("ah b", "_ b")
	f.Add("b\tae", "Bé a")

	v := NewValidator(lexicon.NewVocabulary("b", "ae", "t", "k", "ah"), lexicon.DefaultAlphabet())

	f.Fuzz(func(t *testing.T, phonemes, graphemes string) {
		rec, err := v.Check(Row{Phonemes: phonemes, Graphemes: graphemes})
		if err != nil {
			return
		}
		if len(rec.Phonemes) != len(rec.Graphemes) {
			t.Fatalf("accepted misaligned record %q / %q", phonemes, graphemes)
		}
		res := v.Validate([]Row{{Phonemes: phonemes, Graphemes: graphemes}})
		if res.Stats.RetainedRows != 1 || res.Stats.InvalidRows != 0 {
			t.Fatalf("Validate disagrees with Check: %+v", res.Stats)
		}
	})
}
