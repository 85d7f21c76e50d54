package chi

import (
	"time"

	"github.com/pawmatch/pawmatch/internal/domain"
	healthuc "github.com/pawmatch/pawmatch/internal/usecase/health"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type healthResponse struct {
	Status string                          `json:"status"`
	Checks map[string]healthuc.CheckResult `json:"checks"`
}

// matchRequest is the POST /api/match body. List facets accept arrays;
// empty fields fall through to guidance or defaults downstream.
type matchRequest struct {
	ZipCodes      []string `json:"zipCodes"`
	RadiusMi      float64  `json:"radiusMi"`
	Ages          []string `json:"age,omitempty"`
	Sizes         []string `json:"size,omitempty"`
	Energy        string   `json:"energy,omitempty"`
	Temperament   []string `json:"temperament,omitempty"`
	BreedsInclude []string `json:"breedsInclude,omitempty"`
	BreedsExclude []string `json:"breedsExclude,omitempty"`
	Guidance      string   `json:"guidance,omitempty"`
}

func (r matchRequest) toDomain() domain.UserPreferences {
	return domain.UserPreferences{
		ZipCodes:      r.ZipCodes,
		RadiusMi:      r.RadiusMi,
		Ages:          r.Ages,
		Sizes:         r.Sizes,
		Energy:        r.Energy,
		Temperament:   r.Temperament,
		BreedsInclude: r.BreedsInclude,
		BreedsExclude: r.BreedsExclude,
		Guidance:      r.Guidance,
	}
}

type matchResponse struct {
	TopMatches     []analysisDTO `json:"topMatches"`
	AllMatches     []analysisDTO `json:"allMatches"`
	ExpansionNotes []string      `json:"expansionNotes,omitempty"`
	Error          string        `json:"error,omitempty"`
}

type analysisDTO struct {
	DogID        string      `json:"dogId"`
	Name         string      `json:"name"`
	Score        int         `json:"score"`
	MatchedPrefs []string    `json:"matchedPrefs"`
	UnmetPrefs   []unmetDTO  `json:"unmetPrefs"`
	Reasons      *reasonsDTO `json:"reasons,omitempty"`
	Breeds       []string    `json:"breeds,omitempty"`
	Age          string      `json:"age,omitempty"`
	Size         string      `json:"size,omitempty"`
	PhotoURL     string      `json:"photoUrl,omitempty"`
	URL          string      `json:"url,omitempty"`
	DistanceMi   *float64    `json:"distanceMi,omitempty"`
}

type unmetDTO struct {
	Label  string `json:"label"`
	Reason string `json:"reason,omitempty"`
}

type reasonsDTO struct {
	Primary    string   `json:"primary"`
	Additional []string `json:"additional,omitempty"`
	Concerns   []string `json:"concerns,omitempty"`
}

func matchResultsToDTO(res domain.MatchingResults) matchResponse {
	return matchResponse{
		TopMatches:     analysesToDTO(res.TopMatches),
		AllMatches:     analysesToDTO(res.AllMatches),
		ExpansionNotes: res.ExpansionNotes,
		Error:          res.Err,
	}
}

func analysesToDTO(analyses []domain.DogAnalysis) []analysisDTO {
	out := make([]analysisDTO, len(analyses))
	for i, a := range analyses {
		out[i] = analysisToDTO(a)
	}
	return out
}

func analysisToDTO(a domain.DogAnalysis) analysisDTO {
	unmet := make([]unmetDTO, len(a.UnmetPrefs))
	for i, u := range a.UnmetPrefs {
		unmet[i] = unmetDTO{Label: u.Label, Reason: u.Reason}
	}

	dto := analysisDTO{
		DogID:        a.Dog.ID,
		Name:         a.Dog.Name,
		Score:        a.Score,
		MatchedPrefs: a.MatchedPrefs,
		UnmetPrefs:   unmet,
		Breeds:       a.Dog.Breeds,
		Age:          a.Dog.Age,
		Size:         a.Dog.Size,
		PhotoURL:     a.Dog.PhotoURL,
		URL:          a.Dog.URL,
		DistanceMi:   a.Dog.Location.DistanceMi,
	}
	if a.Reasons.Primary != "" {
		dto.Reasons = &reasonsDTO{
			Primary:    a.Reasons.Primary,
			Additional: a.Reasons.Additional,
			Concerns:   a.Reasons.Concerns,
		}
	}
	return dto
}

type dogListResponse struct {
	Items []dogDTO `json:"items"`
	Total int      `json:"total"`
}

type dogDTO struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Breeds       []string   `json:"breeds,omitempty"`
	Age          string     `json:"age,omitempty"`
	Size         string     `json:"size,omitempty"`
	Energy       string     `json:"energy,omitempty"`
	Gender       string     `json:"gender,omitempty"`
	Temperament  []string   `json:"temperament,omitempty"`
	Description  string     `json:"description,omitempty"`
	PhotoURL     string     `json:"photoUrl,omitempty"`
	URL          string     `json:"url,omitempty"`
	City         string     `json:"city,omitempty"`
	State        string     `json:"state,omitempty"`
	Zip          string     `json:"zip,omitempty"`
	DistanceMi   *float64   `json:"distanceMi,omitempty"`
	Facts        *factsDTO  `json:"facts,omitempty"`
	Organization orgDTO     `json:"organization"`
	PublishedAt  *time.Time `json:"publishedAt,omitempty"`
}

type factsDTO struct {
	Hypoallergenic bool   `json:"hypoallergenic"`
	ShedLevel      string `json:"shedLevel,omitempty"`
	GroomingLoad   string `json:"groomingLoad,omitempty"`
	Barky          bool   `json:"barky"`
}

type orgDTO struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

func dogToDTO(d domain.Dog) dogDTO {
	dto := dogDTO{
		ID:          d.ID,
		Name:        d.Name,
		Breeds:      d.Breeds,
		Age:         d.Age,
		Size:        d.Size,
		Energy:      d.Energy,
		Gender:      d.Gender,
		Temperament: d.Temperament,
		Description: d.Description,
		PhotoURL:    d.PhotoURL,
		URL:         d.URL,
		City:        d.Location.City,
		State:       d.Location.State,
		Zip:         d.Location.Zip,
		DistanceMi:  d.Location.DistanceMi,
		Organization: orgDTO{
			ID:    d.Organization.ID,
			Name:  d.Organization.Name,
			Email: d.Organization.Email,
			Phone: d.Organization.Phone,
		},
	}
	if d.Facts != nil {
		dto.Facts = &factsDTO{
			Hypoallergenic: d.Facts.Hypoallergenic,
			ShedLevel:      d.Facts.ShedLevel,
			GroomingLoad:   d.Facts.GroomingLoad,
			Barky:          d.Facts.Barky,
		}
	}
	if !d.PublishedAt.IsZero() {
		t := d.PublishedAt
		dto.PublishedAt = &t
	}
	return dto
}
