package domain

import (
	"strings"
	"time"
)

// Age buckets used by the listing feed.
const (
	AgeBaby   = "baby"
	AgeYoung  = "young"
	AgeAdult  = "adult"
	AgeSenior = "senior"
)

// Size buckets used by the listing feed.
const (
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
	SizeXLarge = "xlarge"
)

// Energy levels. An empty string means the feed did not report one.
const (
	EnergyLow    = "low"
	EnergyMedium = "medium"
	EnergyHigh   = "high"
)

// Trait levels for derived facts such as shedding and grooming load.
const (
	LevelLow    = "low"
	LevelMedium = "medium"
	LevelHigh   = "high"
)

// Location is where a dog is listed. DistanceMi is precomputed by the feed
// relative to the searched zip; nil means unknown (the radius filter
// fails open on unknown distance).
type Location struct {
	City       string
	State      string
	Zip        string
	DistanceMi *float64
}

// DerivedFacts are optional traits inferred from breed reference data or
// listing descriptions. Zero values mean "not evidenced", not "false".
type DerivedFacts struct {
	Hypoallergenic bool
	ShedLevel      string // low, medium, high, or empty when unknown
	GroomingLoad   string // low, medium, high, or empty when unknown
	Barky          bool
}

// Organization is the shelter or rescue holding the listing.
type Organization struct {
	ID    string
	Name  string
	Email string
	Phone string
}

// Dog is a candidate listing from the external feed. Read-only to the
// matching core.
type Dog struct {
	ID           string
	Name         string
	Breeds       []string
	Age          string
	Size         string
	Energy       string
	Temperament  []string
	Location     Location
	Facts        *DerivedFacts
	Description  string
	Gender       string
	PhotoURL     string
	URL          string
	Organization Organization
	PublishedAt  time.Time
}

// HasTemperament reports whether the dog has direct evidence of the trait.
func (d Dog) HasTemperament(trait string) bool {
	for _, t := range d.Temperament {
		if strings.EqualFold(t, trait) {
			return true
		}
	}
	return false
}
