package wordpool

import (
	"path/filepath"
	"testing"
)

func TestAddWordsNormalizesAndDedupes(t *testing.T) {
	p := New()
	added := p.AddWords([]string{" cat ", "CAT", "Dog", "bad$word", ""})

	if added[3] != 2 {
		t.Fatalf("expected 2 new 3-letter words (CAT, DOG), got %d", added[3])
	}
	if len(p.WordsOfLength(3)) != 2 {
		t.Fatalf("expected pool to contain 2 three-letter words, got %v", p.WordsOfLength(3))
	}

	added2 := p.AddWords([]string{"CAT"})
	if added2[3] != 0 {
		t.Fatalf("expected re-adding CAT to add nothing, got %d", added2[3])
	}
}

func TestSaveAtomicThenLoadRoundTrips(t *testing.T) {
	p := New()
	p.AddWords([]string{"CAT", "DOG", "BAT", "APPLE", "EAGLE"})

	dir := t.TempDir()
	path := filepath.Join(dir, "pool.json")

	if err := p.SaveAtomic(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, length := range []int{3, 5} {
		want := p.WordsOfLength(length)
		got := loaded.WordsOfLength(length)
		if len(want) != len(got) {
			t.Fatalf("length %d: want %v, got %v", length, want, got)
		}
		for i := range want {
			if want[i] != got[i] {
				t.Fatalf("length %d: want %v, got %v", length, want, got)
			}
		}
	}
}

func TestLoadMissingFileYieldsEmptyPool(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Size() != 0 {
		t.Fatalf("expected empty pool, got size %d", p.Size())
	}
}
