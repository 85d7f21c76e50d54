package domain

// FeedQuery narrows a listing-feed search. Ages only carries explicit
// selections: guidance-derived ages influence scoring, not the upstream
// candidate pull.
type FeedQuery struct {
	ZipCodes []string
	RadiusMi float64
	Ages     []string
	Sizes    []string

	// Breeds narrows upstream; BreedsExclude is applied client side by
	// case-insensitive substring, the feed has no exclusion parameter.
	Breeds        []string
	BreedsExclude []string

	Sort     string // defaults to newest listings first
	Page     int
	PageSize int
}
