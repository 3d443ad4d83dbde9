package models

// Form field names as posted by the page
const (
	FieldIndustry = "industry"
	FieldCountry  = "country"
	FieldPages    = "pages"
)

// DefaultPages is the page count sent when the user has not changed it
const DefaultPages = "1"

// SearchCriteria represents the user-entered parameters sent to the scraping service
type SearchCriteria struct {
	Industry string `json:"industry"`
	Country  string `json:"country"`
	Pages    string `json:"pages"`
}

// DefaultSearchCriteria returns the initial, empty form
func DefaultSearchCriteria() SearchCriteria {
	return SearchCriteria{Pages: DefaultPages}
}

// With returns a copy with the named field set. Unknown names leave it unchanged.
func (c SearchCriteria) With(name, value string) (SearchCriteria, bool) {
	switch name {
	case FieldIndustry:
		c.Industry = value
	case FieldCountry:
		c.Country = value
	case FieldPages:
		c.Pages = value
	default:
		return c, false
	}
	return c, true
}
