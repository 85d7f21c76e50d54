// Package breed holds the static breed reference data and the tiered
// fuzzy matcher that expands user breed terms into canonical names.
// Expansion never errors: an unknown term yields no match plus a note.
package breed

// canonical is the list of canonical breed names the matcher resolves to.
var canonical = []string{
	"Australian Shepherd",
	"Beagle",
	"Bernese Mountain Dog",
	"Bichon Frise",
	"Border Collie",
	"Boston Terrier",
	"Boxer",
	"Cavalier King Charles Spaniel",
	"Chihuahua",
	"Cocker Spaniel",
	"Dachshund",
	"Doberman Pinscher",
	"French Bulldog",
	"German Shepherd",
	"Golden Retriever",
	"Goldendoodle",
	"Great Dane",
	"Great Pyrenees",
	"Greyhound",
	"Havanese",
	"Jack Russell Terrier",
	"Labradoodle",
	"Labrador Retriever",
	"Maltese",
	"Mixed Breed",
	"Pembroke Welsh Corgi",
	"Pit Bull Terrier",
	"Pomeranian",
	"Poodle",
	"Pug",
	"Rottweiler",
	"Shetland Sheepdog",
	"Shih Tzu",
	"Siberian Husky",
	"Staffordshire Bull Terrier",
	"Yorkshire Terrier",
}

// aliases maps family terms, nicknames, and common plurals to canonical
// names. A single alias may expand to several breeds ("doodle").
var aliases = map[string][]string{
	"doodle":       {"Goldendoodle", "Labradoodle", "Poodle"},
	"doodles":      {"Goldendoodle", "Labradoodle", "Poodle"},
	"lab":          {"Labrador Retriever"},
	"labs":         {"Labrador Retriever"},
	"labrador":     {"Labrador Retriever"},
	"golden":       {"Golden Retriever"},
	"goldens":      {"Golden Retriever"},
	"husky":        {"Siberian Husky"},
	"huskies":      {"Siberian Husky"},
	"gsd":          {"German Shepherd"},
	"alsatian":     {"German Shepherd"},
	"pitbull":      {"Pit Bull Terrier", "Staffordshire Bull Terrier"},
	"pit bull":     {"Pit Bull Terrier", "Staffordshire Bull Terrier"},
	"pittie":       {"Pit Bull Terrier", "Staffordshire Bull Terrier"},
	"staffy":       {"Staffordshire Bull Terrier"},
	"corgi":        {"Pembroke Welsh Corgi"},
	"corgis":       {"Pembroke Welsh Corgi"},
	"yorkie":       {"Yorkshire Terrier"},
	"yorkies":      {"Yorkshire Terrier"},
	"frenchie":     {"French Bulldog"},
	"frenchies":    {"French Bulldog"},
	"sheltie":      {"Shetland Sheepdog"},
	"berner":       {"Bernese Mountain Dog"},
	"dobie":        {"Doberman Pinscher"},
	"doberman":     {"Doberman Pinscher"},
	"aussie":       {"Australian Shepherd"},
	"cavalier":     {"Cavalier King Charles Spaniel"},
	"king charles": {"Cavalier King Charles Spaniel"},
	"pom":          {"Pomeranian"},
	"wiener dog":   {"Dachshund"},
	"sausage dog":  {"Dachshund"},
	"mutt":         {"Mixed Breed"},
	"mix":          {"Mixed Breed"},
	"mixed":        {"Mixed Breed"},
}
