package petfinder

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pawmatch/pawmatch/internal/domain"
)

// maxResponseBytes bounds feed response reads; a full 100-animal page is
// well under 2 MiB.
const maxResponseBytes = 8 << 20

// Wire DTOs for the Petfinder v2 API.

type animalsResponse struct {
	Animals    []animal   `json:"animals"`
	Pagination pagination `json:"pagination"`
}

type animalResponse struct {
	Animal animal `json:"animal"`
}

type pagination struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
}

type animal struct {
	ID             int64     `json:"id"`
	OrganizationID string    `json:"organization_id"`
	URL            string    `json:"url"`
	Name           string    `json:"name"`
	Age            string    `json:"age"`
	Size           string    `json:"size"`
	Gender         string    `json:"gender"`
	Description    string    `json:"description"`
	Breeds         breeds    `json:"breeds"`
	Tags           []string  `json:"tags"`
	Photos         []photo   `json:"photos"`
	Contact        contact   `json:"contact"`
	Distance       *float64  `json:"distance"`
	PublishedAt    time.Time `json:"published_at"`
}

type breeds struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Mixed     bool   `json:"mixed"`
}

type photo struct {
	Medium string `json:"medium"`
	Full   string `json:"full"`
}

type contact struct {
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Address address `json:"address"`
}

type address struct {
	City     string `json:"city"`
	State    string `json:"state"`
	Postcode string `json:"postcode"`
}

var sizeNames = map[string]string{
	"small":       domain.SizeSmall,
	"medium":      domain.SizeMedium,
	"large":       domain.SizeLarge,
	"extra large": domain.SizeXLarge,
	"xlarge":      domain.SizeXLarge,
}

func (a animal) toDomain() domain.Dog {
	d := domain.Dog{
		ID:          strconv.FormatInt(a.ID, 10),
		Name:        a.Name,
		Age:         strings.ToLower(a.Age),
		Size:        sizeNames[strings.ToLower(a.Size)],
		Gender:      strings.ToLower(a.Gender),
		Description: a.Description,
		URL:         a.URL,
		PublishedAt: a.PublishedAt,
		Location: domain.Location{
			City:       a.Contact.Address.City,
			State:      a.Contact.Address.State,
			Zip:        a.Contact.Address.Postcode,
			DistanceMi: a.Distance,
		},
		Organization: domain.Organization{
			ID:    a.OrganizationID,
			Email: a.Contact.Email,
			Phone: a.Contact.Phone,
		},
	}

	if a.Breeds.Primary != "" {
		d.Breeds = append(d.Breeds, a.Breeds.Primary)
	}
	if a.Breeds.Secondary != "" {
		d.Breeds = append(d.Breeds, a.Breeds.Secondary)
	}
	if a.Breeds.Mixed && len(d.Breeds) > 0 {
		d.Breeds = append(d.Breeds, "Mixed Breed")
	}

	for _, tag := range a.Tags {
		d.Temperament = append(d.Temperament, strings.ToLower(tag))
	}

	if len(a.Photos) > 0 {
		d.PhotoURL = a.Photos[0].Medium
		if d.PhotoURL == "" {
			d.PhotoURL = a.Photos[0].Full
		}
	}

	return d
}

// fingerprint identifies the same dog cross-posted under different listing
// ids: shelters routinely re-list, and the digest must not show one dog
// twice.
func (a animal) fingerprint() string {
	base := strings.ToLower(a.Name) + "|" + strings.ToLower(a.Breeds.Primary) + "|" + strings.ToLower(a.OrganizationID)
	h := sha256.Sum256([]byte(base))
	return hex.EncodeToString(h[:8])
}

func readBody(resp *http.Response) ([]byte, error) {
	return io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
}
