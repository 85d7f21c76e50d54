package breed

import (
	"strings"
	"testing"
)

func TestExpand_ExactCanonical(t *testing.T) {
	got := Expand("Golden Retriever")
	if got.Tier != TierExact {
		t.Fatalf("tier = %d, want %d (note: %s)", got.Tier, TierExact, got.Note)
	}
	if len(got.Canonical) != 1 || got.Canonical[0] != "Golden Retriever" {
		t.Errorf("canonical = %v", got.Canonical)
	}
}

func TestExpand_AliasFamilyTerm(t *testing.T) {
	got := Expand("doodle")
	if got.Tier != TierAlias {
		t.Fatalf("tier = %d, want %d (note: %s)", got.Tier, TierAlias, got.Note)
	}
	want := map[string]bool{"Goldendoodle": true, "Labradoodle": true, "Poodle": true}
	if len(got.Canonical) != len(want) {
		t.Fatalf("canonical = %v, want 3 doodle breeds", got.Canonical)
	}
	for _, n := range got.Canonical {
		if !want[n] {
			t.Errorf("unexpected expansion %q", n)
		}
	}
}

func TestExpand_FamilySubstring(t *testing.T) {
	got := Expand("retriever")
	if got.Tier != TierFamily {
		t.Fatalf("tier = %d, want %d (note: %s)", got.Tier, TierFamily, got.Note)
	}
	foundGolden, foundLab := false, false
	for _, n := range got.Canonical {
		if n == "Golden Retriever" {
			foundGolden = true
		}
		if n == "Labrador Retriever" {
			foundLab = true
		}
	}
	if !foundGolden || !foundLab {
		t.Errorf("canonical = %v, want both retrievers", got.Canonical)
	}
}

func TestExpand_FuzzyTypo(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"golden retreiver", "Golden Retriever"},
		{"labradoodel", "Labradoodle"},
		{"puddle", "Poodle"},
	}
	for _, tt := range tests {
		got := Expand(tt.raw)
		if got.Tier != TierFuzzy {
			t.Errorf("Expand(%q) tier = %d, want %d (note: %s)", tt.raw, got.Tier, TierFuzzy, got.Note)
			continue
		}
		if !containsName(got.Canonical, tt.want) {
			t.Errorf("Expand(%q) canonical = %v, want %s", tt.raw, got.Canonical, tt.want)
		}
	}
}

func TestExpand_NgramFallback(t *testing.T) {
	// Too mangled for edit distance, but shares most bigrams.
	got := Expand("bernese mtn dog")
	if got.Tier != TierNgram {
		t.Fatalf("tier = %d, want %d (note: %s)", got.Tier, TierNgram, got.Note)
	}
	if !containsName(got.Canonical, "Bernese Mountain Dog") {
		t.Errorf("canonical = %v", got.Canonical)
	}
}

func TestExpand_UnknownNeverErrors(t *testing.T) {
	for _, raw := range []string{"qwertzuiop", "", "   ", "12345", "!!??"} {
		got := Expand(raw)
		if got.Tier != 0 {
			t.Errorf("Expand(%q) tier = %d, want 0", raw, got.Tier)
		}
		if got.Note == "" {
			t.Errorf("Expand(%q) produced no note", raw)
		}
	}
}

func TestExpandAll_CollectsNotes(t *testing.T) {
	terms, notes := ExpandAll([]string{"husky", "nosuchbreed"})
	if len(terms) != 2 || len(notes) != 2 {
		t.Fatalf("terms=%d notes=%d, want 2 and 2", len(terms), len(notes))
	}
	if terms[0].Tier != TierAlias {
		t.Errorf("husky tier = %d, want alias", terms[0].Tier)
	}
	if terms[1].Tier != 0 || !strings.Contains(notes[1], "no breed match") {
		t.Errorf("unknown term: tier=%d note=%q", terms[1].Tier, notes[1])
	}
}

func TestDogBreedHit(t *testing.T) {
	doodle, _ := ExpandAll([]string{"doodle"})
	husky, _ := ExpandAll([]string{"husky"})

	if hit, tier := DogBreedHit([]string{"Goldendoodle"}, doodle); !hit || tier != TierAlias {
		t.Errorf("Goldendoodle vs doodle: hit=%v tier=%d", hit, tier)
	}
	if hit, tier := DogBreedHit([]string{"Siberian Husky"}, husky); !hit || tier != TierAlias {
		t.Errorf("Siberian Husky vs husky: hit=%v tier=%d", hit, tier)
	}
	if hit, _ := DogBreedHit([]string{"Beagle"}, doodle); hit {
		t.Error("Beagle matched doodle")
	}
}

func TestDogBreedHit_BestTierWins(t *testing.T) {
	// One exact term and one alias term both matching the same dog:
	// the exact (lower) tier must be reported.
	terms, _ := ExpandAll([]string{"doodle", "Goldendoodle"})
	hit, tier := DogBreedHit([]string{"Goldendoodle"}, terms)
	if !hit || tier != TierExact {
		t.Errorf("hit=%v tier=%d, want exact tier", hit, tier)
	}
}

func TestDogBreedHit_MixSuffix(t *testing.T) {
	lab, _ := ExpandAll([]string{"lab"})
	if hit, _ := DogBreedHit([]string{"Labrador Retriever Mix"}, lab); !hit {
		t.Error("feed mix string did not match expanded lab term")
	}
}

func containsName(names []string, want string) bool {
	for _, n := range names {
		if n == want {
			return true
		}
	}
	return false
}
