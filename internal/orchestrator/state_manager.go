package orchestrator

import "linkedin-scraper/internal/models"

// Theme names used by the presentation layer
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ViewState is everything the page renders from. Transitions return a new
// value; callers never edit fields directly.
type ViewState struct {
	Criteria   models.SearchCriteria
	Loading    bool
	Results    models.ResultSet
	Pagination models.PaginationState
	DarkMode   bool
	LastError  string

	// generation of the most recently issued fetch; only it may settle the state
	issued uint64
}

// NewViewState returns the idle state of a fresh page
func NewViewState(pageSize int) ViewState {
	p := models.DefaultPagination()
	p.PageSize = pageSize
	return ViewState{
		Criteria:   models.DefaultSearchCriteria(),
		Results:    models.ResultSet{},
		Pagination: p.Normalize(),
	}
}

// SetField updates one form field. Unknown fields are ignored.
func (s ViewState) SetField(name, value string) (ViewState, bool) {
	criteria, ok := s.Criteria.With(name, value)
	if !ok {
		return s, false
	}
	s.Criteria = criteria
	return s, true
}

// BeginFetch enters Loading and returns the generation of the new request
func (s ViewState) BeginFetch() (ViewState, uint64) {
	s.issued++
	s.Loading = true
	return s, s.issued
}

// CompleteFetch replaces the results with rs if gen is the latest request.
// Responses of superseded requests are dropped.
func (s ViewState) CompleteFetch(gen uint64, rs models.ResultSet) ViewState {
	if gen != s.issued {
		return s
	}
	if rs == nil {
		rs = models.ResultSet{}
	}
	s.Results = rs
	s.Pagination = models.PaginationState{CurrentPage: 1, PageSize: s.Pagination.PageSize}.Normalize()
	s.LastError = ""
	s.Loading = false
	return s
}

// FailFetch leaves Loading if gen is the latest request. Results are kept.
func (s ViewState) FailFetch(gen uint64, err error) ViewState {
	if gen != s.issued {
		return s
	}
	if err != nil {
		s.LastError = err.Error()
	}
	s.Loading = false
	return s
}

// ChangePage moves the table to page at the given size, clamped to the results
func (s ViewState) ChangePage(page, size int) ViewState {
	s.Pagination = models.PaginationState{CurrentPage: page, PageSize: size}.Clamp(s.Results.Len())
	return s
}

// ToggleTheme flips between light and dark
func (s ViewState) ToggleTheme() ViewState {
	s.DarkMode = !s.DarkMode
	return s
}

// Theme returns the active theme name
func (s ViewState) Theme() string {
	if s.DarkMode {
		return ThemeDark
	}
	return ThemeLight
}

// CanExport reports whether the export actions are enabled
func (s ViewState) CanExport() bool {
	return !s.Results.Empty()
}
