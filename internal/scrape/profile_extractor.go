package scrape

import (
	"encoding/json"
	"errors"
	"fmt"

	"linkedin-scraper/internal/models"
)

// ProfileExtractor decodes the scraping service's response body
type ProfileExtractor struct{}

// NewProfileExtractor creates a new ProfileExtractor instance
func NewProfileExtractor() *ProfileExtractor {
	return &ProfileExtractor{}
}

type scrapeResponse struct {
	Profiles *[]models.ProfileRecord `json:"profiles"`
}

var errMissingProfiles = errors.New(`response has no "profiles" array`)

// ExtractProfiles returns the profiles in responseJSON in server order
func (pe *ProfileExtractor) ExtractProfiles(responseJSON []byte) (models.ResultSet, error) {
	var resp scrapeResponse
	if err := json.Unmarshal(responseJSON, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if resp.Profiles == nil {
		return nil, errMissingProfiles
	}

	rs := make(models.ResultSet, len(*resp.Profiles))
	copy(rs, *resp.Profiles)
	return rs, nil
}
