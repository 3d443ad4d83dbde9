package web

import (
	"linkedin-scraper/internal/models"
	"linkedin-scraper/internal/orchestrator"
)

// Row is one rendered table row
type Row struct {
	Serial  int
	Name    string
	Link    string
	Address string
}

// PageView is the template input derived from a ViewState
type PageView struct {
	Theme       string
	ThemeLabel  string
	Criteria    models.SearchCriteria
	Loading     bool
	ButtonLabel string
	CanExport   bool
	LastError   string

	Rows       []Row
	Total      int
	Page       int
	PageSize   int
	TotalPages int
	PrevPage   int
	NextPage   int
	PageLinks  []int
}

// BuildPageView derives everything the page shows from s. It never changes s.
func BuildPageView(s orchestrator.ViewState) PageView {
	p := s.Pagination.Clamp(s.Results.Len())
	visible := s.Results.Page(p)

	rows := make([]Row, len(visible))
	for i, profile := range visible {
		address := ""
		if profile.HasAddress() {
			address = *profile.Address
		}
		rows[i] = Row{
			Serial:  p.Serial(i),
			Name:    profile.Name,
			Link:    profile.Link,
			Address: address,
		}
	}

	totalPages := p.TotalPages(s.Results.Len())
	links := make([]int, totalPages)
	for i := range links {
		links[i] = i + 1
	}

	v := PageView{
		Theme:       s.Theme(),
		ThemeLabel:  "Dark Mode",
		Criteria:    s.Criteria,
		Loading:     s.Loading,
		ButtonLabel: "Scrape Profiles",
		CanExport:   s.CanExport(),
		LastError:   s.LastError,
		Rows:        rows,
		Total:       s.Results.Len(),
		Page:        p.CurrentPage,
		PageSize:    p.PageSize,
		TotalPages:  totalPages,
		PageLinks:   links,
	}
	if s.DarkMode {
		v.ThemeLabel = "Light Mode"
	}
	if s.Loading {
		v.ButtonLabel = "Scraping..."
	}
	if p.CurrentPage > 1 {
		v.PrevPage = p.CurrentPage - 1
	}
	if p.CurrentPage < totalPages {
		v.NextPage = p.CurrentPage + 1
	}
	return v
}
