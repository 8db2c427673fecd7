package words

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPickReturnsVocabularyMember(t *testing.T) {
	v := Default()
	for i := 0; i < 20; i++ {
		if w := v.Pick(); !v.Contains(w) {
			t.Fatalf("picked word %q not in vocabulary", w)
		}
	}
}

func TestSampleIsDistinct(t *testing.T) {
	v := Default()
	for i := 0; i < 20; i++ {
		sample := v.Sample(3)
		if len(sample) != 3 {
			t.Fatalf("expected 3 words, got %d", len(sample))
		}
		seen := map[string]bool{}
		for _, w := range sample {
			if seen[w] {
				t.Fatalf("duplicate word %q in sample %v", w, sample)
			}
			seen[w] = true
			if !v.Contains(w) {
				t.Fatalf("sampled word %q not in vocabulary", w)
			}
		}
	}
}

func TestSampleClampsToVocabularySize(t *testing.T) {
	v, err := New([]string{"one", "two", "three"})
	if err != nil {
		t.Fatalf("new vocabulary: %v", err)
	}
	if got := len(v.Sample(10)); got != 3 {
		t.Fatalf("expected sample of 3, got %d", got)
	}
}

func TestContainsIsCaseInsensitive(t *testing.T) {
	v := Default()
	if !v.Contains("Apple") {
		t.Fatal("expected Apple to match")
	}
	if v.Contains("zeppelin") {
		t.Fatal("unexpected vocabulary member")
	}
}

func TestNewNormalizesAndRejectsTinyLists(t *testing.T) {
	v, err := New([]string{" Apple ", "apple", "CAT", "dog"})
	if err != nil {
		t.Fatalf("new vocabulary: %v", err)
	}
	if v.Len() != 3 {
		t.Fatalf("expected 3 unique words, got %d", v.Len())
	}

	if _, err := New([]string{"only", "two"}); err == nil {
		t.Fatal("expected error for undersized vocabulary")
	}
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.yaml")
	if err := os.WriteFile(path, []byte("- alpha\n- bravo\n- charlie\n- delta\n"), 0o600); err != nil {
		t.Fatalf("write words file: %v", err)
	}

	v, err := FromFile(path)
	if err != nil {
		t.Fatalf("from file: %v", err)
	}
	if v.Len() != 4 || !v.Contains("bravo") {
		t.Fatalf("unexpected vocabulary: len=%d", v.Len())
	}

	if _, err := FromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
