package game

import "testing"

func TestBagFairness(t *testing.T) {
	// Every consecutive non-overlapping block of 7 draws must be a
	// permutation of all 7 kinds.
	bag := NewBag(7)
	for block := 0; block < 20; block++ {
		seen := make(map[Kind]bool)
		for i := 0; i < KindCount; i++ {
			k := bag.Next()
			if seen[k] {
				t.Fatalf("block %d: kind %v drawn twice", block, k)
			}
			seen[k] = true
		}
		if len(seen) != KindCount {
			t.Fatalf("block %d: got %d distinct kinds, want %d", block, len(seen), KindCount)
		}
	}
}

func TestBagDeterminism(t *testing.T) {
	a := NewBag(42)
	b := NewBag(42)
	for i := 0; i < 200; i++ {
		ka, kb := a.Next(), b.Next()
		if ka != kb {
			t.Fatalf("draw %d: bags diverged: %v vs %v", i, ka, kb)
		}
	}
}

func TestBagSeedsDiffer(t *testing.T) {
	a := NewBag(1)
	b := NewBag(2)
	same := true
	for i := 0; i < 28; i++ {
		if a.Next() != b.Next() {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical 28-piece sequences")
	}
}

func TestBagPreview(t *testing.T) {
	bag := NewBag(9)

	preview := bag.Preview(5)
	if len(preview) != 5 {
		t.Fatalf("preview length = %d, want 5", len(preview))
	}

	// Preview must match the pieces actually dealt.
	expected := make([]Kind, 5)
	copy(expected, preview)
	for i, want := range expected {
		if got := bag.Next(); got != want {
			t.Errorf("draw %d: got %v, previewed %v", i, got, want)
		}
	}
}

func TestBagNeverEmpties(t *testing.T) {
	bag := NewBag(3)
	for i := 0; i < 1000; i++ {
		bag.Next()
		if len(bag.Preview(14)) < 7 {
			t.Fatalf("after %d draws the queue dropped below one full bag", i+1)
		}
	}
}
