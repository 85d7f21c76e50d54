package match

import (
	"testing"

	"github.com/pawmatch/pawmatch/internal/domain"
	"github.com/pawmatch/pawmatch/internal/domain/breed"
)

func dogAt(id string, distance *float64) domain.Dog {
	return domain.Dog{ID: id, Location: domain.Location{DistanceMi: distance}}
}

func mi(v float64) *float64 { return &v }

func TestFilterRadius_SkippedWithoutZips(t *testing.T) {
	dogs := []domain.Dog{dogAt("far", mi(500))}
	eff := domain.EffectivePreferences{RadiusMi: 50}

	got := FilterRadius(dogs, eff)
	if len(got) != 1 {
		t.Fatalf("got %d dogs, want 1 (radius stage must be skipped without zips)", len(got))
	}
}

func TestFilterRadius_FailOpenOnMissingDistance(t *testing.T) {
	dogs := []domain.Dog{
		dogAt("near", mi(10)),
		dogAt("far", mi(120)),
		dogAt("unknown", nil),
	}
	eff := domain.EffectivePreferences{ZipCodes: []string{"08401"}, RadiusMi: 100}

	got := FilterRadius(dogs, eff)
	if len(got) != 2 {
		t.Fatalf("got %d dogs, want 2", len(got))
	}
	for _, d := range got {
		if d.ID == "far" {
			t.Error("dog beyond radius survived")
		}
	}
}

func TestFilterBreeds_ExclusionDominates(t *testing.T) {
	// A dog matching both an excluded and an included term is removed.
	include, _ := breed.ExpandAll([]string{"husky"})
	exclude, _ := breed.ExpandAll([]string{"husky"})
	eff := domain.EffectivePreferences{IncludeBreeds: include, ExcludeBreeds: exclude}

	dogs := []domain.Dog{{ID: "h", Breeds: []string{"Siberian Husky"}}}
	if got := FilterBreeds(dogs, eff); len(got) != 0 {
		t.Fatalf("excluded dog survived: %v", got)
	}
}

func TestFilterBreeds_IncludePassThrough(t *testing.T) {
	dogs := []domain.Dog{{ID: "a", Breeds: []string{"Beagle"}}}

	// No include terms: pass-through.
	if got := FilterBreeds(dogs, domain.EffectivePreferences{}); len(got) != 1 {
		t.Fatal("pass-through failed with no include terms")
	}

	// Include terms present: dog must hit one.
	include, _ := breed.ExpandAll([]string{"doodle"})
	eff := domain.EffectivePreferences{IncludeBreeds: include}
	if got := FilterBreeds(dogs, eff); len(got) != 0 {
		t.Fatal("non-matching dog survived include filter")
	}

	doodle := []domain.Dog{{ID: "d", Breeds: []string{"Goldendoodle"}}}
	if got := FilterBreeds(doodle, eff); len(got) != 1 {
		t.Fatal("doodle include term did not retain Goldendoodle")
	}
}

func TestFilter_StagesCompose(t *testing.T) {
	include, _ := breed.ExpandAll([]string{"doodle"})
	exclude, _ := breed.ExpandAll([]string{"husky"})
	eff := domain.EffectivePreferences{
		ZipCodes:      []string{"11211"},
		RadiusMi:      100,
		IncludeBreeds: include,
		ExcludeBreeds: exclude,
	}

	dogs := []domain.Dog{
		{ID: "keep", Breeds: []string{"Goldendoodle"}, Location: domain.Location{DistanceMi: mi(20)}},
		{ID: "husky", Breeds: []string{"Siberian Husky", "Goldendoodle"}, Location: domain.Location{DistanceMi: mi(20)}},
		{ID: "far", Breeds: []string{"Goldendoodle"}, Location: domain.Location{DistanceMi: mi(300)}},
	}

	got := Filter(dogs, eff)
	if len(got) != 1 || got[0].ID != "keep" {
		t.Fatalf("got %v, want only 'keep'", got)
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	dogs := []domain.Dog{dogAt("a", mi(500)), dogAt("b", mi(1))}
	eff := domain.EffectivePreferences{ZipCodes: []string{"19003"}, RadiusMi: 10}

	_ = Filter(dogs, eff)
	if dogs[0].ID != "a" || dogs[1].ID != "b" {
		t.Error("input slice mutated")
	}
}
