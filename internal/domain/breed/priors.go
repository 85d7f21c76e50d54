package breed

import (
	"strings"

	"github.com/pawmatch/pawmatch/internal/domain"
)

// temperamentPriors is the breed-level statistical prior per trait on a
// 0-3 scale. Breeds absent from the table contribute nothing to the
// blended confidence.
var temperamentPriors = map[string]map[string]int{
	"Golden Retriever":              {"gentle": 3, "affectionate": 3, "playful": 3, "calm": 2, "protective": 1, "independent": 1},
	"Labrador Retriever":            {"gentle": 3, "affectionate": 3, "playful": 3, "calm": 2, "protective": 1, "independent": 1},
	"Goldendoodle":                  {"gentle": 3, "affectionate": 3, "playful": 3, "calm": 2, "protective": 1, "independent": 1},
	"Labradoodle":                   {"gentle": 3, "affectionate": 3, "playful": 3, "calm": 2, "protective": 1, "independent": 1},
	"Poodle":                        {"gentle": 2, "affectionate": 2, "playful": 2, "calm": 2, "protective": 1, "independent": 2},
	"Cavalier King Charles Spaniel": {"gentle": 3, "affectionate": 3, "playful": 2, "calm": 3, "protective": 0, "independent": 0},
	"Greyhound":                     {"gentle": 3, "affectionate": 2, "playful": 1, "calm": 3, "protective": 0, "independent": 2},
	"Great Pyrenees":                {"gentle": 2, "affectionate": 1, "playful": 1, "calm": 2, "protective": 3, "independent": 3},
	"Bernese Mountain Dog":          {"gentle": 3, "affectionate": 2, "playful": 2, "calm": 2, "protective": 2, "independent": 1},
	"Beagle":                        {"gentle": 2, "affectionate": 2, "playful": 3, "calm": 1, "protective": 0, "independent": 2},
	"Border Collie":                 {"gentle": 1, "affectionate": 2, "playful": 3, "calm": 0, "protective": 1, "independent": 2},
	"Australian Shepherd":           {"gentle": 1, "affectionate": 2, "playful": 3, "calm": 0, "protective": 2, "independent": 2},
	"German Shepherd":               {"gentle": 1, "affectionate": 2, "playful": 2, "calm": 1, "protective": 3, "independent": 2},
	"Siberian Husky":                {"gentle": 1, "affectionate": 2, "playful": 3, "calm": 0, "protective": 1, "independent": 3},
	"Jack Russell Terrier":          {"gentle": 0, "affectionate": 2, "playful": 3, "calm": 0, "protective": 1, "independent": 3},
	"Rottweiler":                    {"gentle": 1, "affectionate": 2, "playful": 1, "calm": 2, "protective": 3, "independent": 2},
	"Chihuahua":                     {"gentle": 1, "affectionate": 2, "playful": 2, "calm": 1, "protective": 2, "independent": 2},
	"Pug":                           {"gentle": 2, "affectionate": 3, "playful": 2, "calm": 2, "protective": 0, "independent": 1},
	"French Bulldog":                {"gentle": 2, "affectionate": 3, "playful": 2, "calm": 2, "protective": 1, "independent": 1},
	"Shih Tzu":                      {"gentle": 2, "affectionate": 3, "playful": 2, "calm": 2, "protective": 0, "independent": 1},
	"Maltese":                       {"gentle": 2, "affectionate": 3, "playful": 2, "calm": 2, "protective": 0, "independent": 1},
	"Boxer":                         {"gentle": 2, "affectionate": 3, "playful": 3, "calm": 1, "protective": 2, "independent": 1},
	"Doberman Pinscher":             {"gentle": 1, "affectionate": 2, "playful": 2, "calm": 1, "protective": 3, "independent": 2},
}

// Prior returns the breed prior for a trait on the 0-3 scale, averaged
// across the dog's breeds that appear in the table. A dog whose breeds are
// all unknown gets 0 (no prior evidence either way).
func Prior(dogBreeds []string, trait string) float64 {
	trait = strings.ToLower(trait)
	var sum, n int
	for _, b := range dogBreeds {
		entry, ok := lookupPriors(b)
		if !ok {
			continue
		}
		sum += entry[trait]
		n++
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// lookupPriors resolves a feed breed string through the ordered canonical
// list, so a string containing several table names always resolves to the
// same entry.
func lookupPriors(dogBreed string) (map[string]int, bool) {
	name, ok := canonicalFor(dogBreed)
	if !ok {
		return nil, false
	}
	entry, ok := temperamentPriors[name]
	return entry, ok
}

// hypoallergenic breeds. Conservative by construction: a mixed dog counts
// only when every breed is on this list, because a wrong allergy claim
// carries real-world harm.
var hypoallergenic = map[string]bool{
	"Bichon Frise":      true,
	"Goldendoodle":      true,
	"Havanese":          true,
	"Labradoodle":       true,
	"Maltese":           true,
	"Poodle":            true,
	"Shih Tzu":          true,
	"Yorkshire Terrier": true,
}

// shedLevels and groomingLoads by breed; breeds not listed default to
// medium shedding and low grooming in DeriveFacts aggregation.
var shedLevels = map[string]string{
	"Bichon Frise":         domain.LevelLow,
	"Goldendoodle":         domain.LevelLow,
	"Havanese":             domain.LevelLow,
	"Labradoodle":          domain.LevelLow,
	"Maltese":              domain.LevelLow,
	"Poodle":               domain.LevelLow,
	"Shih Tzu":             domain.LevelLow,
	"Yorkshire Terrier":    domain.LevelLow,
	"Boston Terrier":       domain.LevelLow,
	"Greyhound":            domain.LevelLow,
	"German Shepherd":      domain.LevelHigh,
	"Golden Retriever":     domain.LevelHigh,
	"Great Pyrenees":       domain.LevelHigh,
	"Labrador Retriever":   domain.LevelHigh,
	"Siberian Husky":       domain.LevelHigh,
	"Bernese Mountain Dog": domain.LevelHigh,
	"Pomeranian":           domain.LevelHigh,
}

var groomingLoads = map[string]string{
	"Bichon Frise":                  domain.LevelHigh,
	"Goldendoodle":                  domain.LevelHigh,
	"Labradoodle":                   domain.LevelHigh,
	"Poodle":                        domain.LevelHigh,
	"Shih Tzu":                      domain.LevelHigh,
	"Maltese":                       domain.LevelHigh,
	"Yorkshire Terrier":             domain.LevelHigh,
	"Great Pyrenees":                domain.LevelHigh,
	"Bernese Mountain Dog":          domain.LevelMedium,
	"Golden Retriever":              domain.LevelMedium,
	"Pomeranian":                    domain.LevelMedium,
	"Siberian Husky":                domain.LevelMedium,
	"Cavalier King Charles Spaniel": domain.LevelMedium,
	"Australian Shepherd":           domain.LevelMedium,
	"Border Collie":                 domain.LevelMedium,
}

// barky breeds, used for the quiet-preferred penalty.
var barky = map[string]bool{
	"Beagle":               true,
	"Chihuahua":            true,
	"Dachshund":            true,
	"Jack Russell Terrier": true,
	"Pomeranian":           true,
	"Shetland Sheepdog":    true,
	"Yorkshire Terrier":    true,
}

// energyPriors by breed for dogs whose feed listing carries no energy.
var energyPriors = map[string]string{
	"Australian Shepherd":           domain.EnergyHigh,
	"Beagle":                        domain.EnergyHigh,
	"Border Collie":                 domain.EnergyHigh,
	"Boxer":                         domain.EnergyHigh,
	"Jack Russell Terrier":          domain.EnergyHigh,
	"Siberian Husky":                domain.EnergyHigh,
	"Doberman Pinscher":             domain.EnergyHigh,
	"Cavalier King Charles Spaniel": domain.EnergyLow,
	"Great Pyrenees":                domain.EnergyLow,
	"Greyhound":                     domain.EnergyLow,
	"Maltese":                       domain.EnergyLow,
	"Pug":                           domain.EnergyLow,
	"Shih Tzu":                      domain.EnergyLow,
	"French Bulldog":                domain.EnergyLow,
}

// DeriveFacts infers optional dog facts from the breed tables. Shedding
// and grooming aggregate to the highest level across breeds; barkiness is
// true when any breed is barky; hypoallergenic requires every breed to be.
func DeriveFacts(dogBreeds []string) *domain.DerivedFacts {
	if len(dogBreeds) == 0 {
		return nil
	}

	facts := &domain.DerivedFacts{Hypoallergenic: true}
	for _, b := range dogBreeds {
		name, ok := canonicalFor(b)
		if !ok {
			facts.Hypoallergenic = false
			continue
		}
		if !hypoallergenic[name] {
			facts.Hypoallergenic = false
		}
		if barky[name] {
			facts.Barky = true
		}
		facts.ShedLevel = maxLevel(facts.ShedLevel, levelOrDefault(shedLevels, name, domain.LevelMedium))
		facts.GroomingLoad = maxLevel(facts.GroomingLoad, levelOrDefault(groomingLoads, name, domain.LevelLow))
	}
	return facts
}

// EnergyPrior infers an energy level from breed tables, defaulting to
// medium when no breed has a strong prior.
func EnergyPrior(dogBreeds []string) string {
	level := domain.EnergyMedium
	for _, b := range dogBreeds {
		name, ok := canonicalFor(b)
		if !ok {
			continue
		}
		if e, ok := energyPriors[name]; ok {
			if e == domain.EnergyHigh {
				return domain.EnergyHigh
			}
			level = e
		}
	}
	return level
}

func canonicalFor(dogBreed string) (string, bool) {
	have := strings.ToLower(strings.TrimSpace(dogBreed))
	if have == "" {
		return "", false
	}
	for _, name := range canonical {
		if strings.Contains(have, strings.ToLower(name)) {
			return name, true
		}
	}
	return "", false
}

func levelOrDefault(table map[string]string, name, def string) string {
	if l, ok := table[name]; ok {
		return l
	}
	return def
}

var levelRank = map[string]int{domain.LevelLow: 1, domain.LevelMedium: 2, domain.LevelHigh: 3}

func maxLevel(a, b string) string {
	if levelRank[b] > levelRank[a] {
		return b
	}
	return a
}
