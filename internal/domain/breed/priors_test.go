package breed

import (
	"testing"

	"github.com/pawmatch/pawmatch/internal/domain"
)

func TestPrior_SingleBreed(t *testing.T) {
	if got := Prior([]string{"Golden Retriever"}, "gentle"); got != 3 {
		t.Errorf("gentle prior = %v, want 3", got)
	}
	if got := Prior([]string{"Jack Russell Terrier"}, "gentle"); got != 0 {
		t.Errorf("gentle prior = %v, want 0", got)
	}
}

func TestPrior_AveragedAcrossMix(t *testing.T) {
	// Golden Retriever gentle=3, German Shepherd gentle=1 -> 2.0
	got := Prior([]string{"Golden Retriever", "German Shepherd"}, "gentle")
	if got != 2 {
		t.Errorf("mixed prior = %v, want 2", got)
	}
}

func TestPrior_UnknownBreeds(t *testing.T) {
	if got := Prior([]string{"Xoloitzcuintli"}, "gentle"); got != 0 {
		t.Errorf("unknown breed prior = %v, want 0", got)
	}
	if got := Prior(nil, "gentle"); got != 0 {
		t.Errorf("nil breeds prior = %v, want 0", got)
	}
}

func TestPrior_MatchesFeedMixStrings(t *testing.T) {
	// Feed strings like "Labrador Retriever Mix" still hit the table.
	if got := Prior([]string{"Labrador Retriever Mix"}, "playful"); got != 3 {
		t.Errorf("prior = %v, want 3", got)
	}
}

func TestPrior_MultiNameBreedStringIsStable(t *testing.T) {
	// A single feed string naming two table breeds must resolve the same
	// way on every call: canonical-list order, Australian Shepherd first
	// (protective=2), never Border Collie (protective=1).
	for range 500 {
		got := Prior([]string{"border collie australian shepherd mix"}, "protective")
		if got != 2 {
			t.Fatalf("prior = %v, want 2 on every call", got)
		}
	}
}

func TestDeriveFacts(t *testing.T) {
	t.Run("hypoallergenic requires all breeds", func(t *testing.T) {
		if f := DeriveFacts([]string{"Poodle"}); !f.Hypoallergenic {
			t.Error("Poodle should be hypoallergenic")
		}
		if f := DeriveFacts([]string{"Poodle", "Beagle"}); f.Hypoallergenic {
			t.Error("Poodle/Beagle mix must not be hypoallergenic")
		}
	})

	t.Run("shedding aggregates to the highest level", func(t *testing.T) {
		f := DeriveFacts([]string{"Poodle", "Siberian Husky"})
		if f.ShedLevel != domain.LevelHigh {
			t.Errorf("shed = %s, want high", f.ShedLevel)
		}
	})

	t.Run("barky when any breed is barky", func(t *testing.T) {
		f := DeriveFacts([]string{"Golden Retriever", "Beagle"})
		if !f.Barky {
			t.Error("Beagle mix should be barky")
		}
	})

	t.Run("nil for empty breeds", func(t *testing.T) {
		if f := DeriveFacts(nil); f != nil {
			t.Errorf("facts = %+v, want nil", f)
		}
	})
}

func TestEnergyPrior(t *testing.T) {
	if got := EnergyPrior([]string{"Border Collie"}); got != domain.EnergyHigh {
		t.Errorf("energy = %s, want high", got)
	}
	if got := EnergyPrior([]string{"Greyhound"}); got != domain.EnergyLow {
		t.Errorf("energy = %s, want low", got)
	}
	if got := EnergyPrior([]string{"Unknown Breed"}); got != domain.EnergyMedium {
		t.Errorf("energy = %s, want medium default", got)
	}
	// High wins over low in a mix.
	if got := EnergyPrior([]string{"Greyhound", "Border Collie"}); got != domain.EnergyHigh {
		t.Errorf("mixed energy = %s, want high", got)
	}
}
