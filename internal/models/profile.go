package models

// DefaultAddress is shown wherever a profile has no address
const DefaultAddress = "No address found"

// ProfileRecord represents one LinkedIn profile returned by the scraping service
type ProfileRecord struct {
	Name    string  `json:"name"`
	Link    string  `json:"link"`
	Address *string `json:"address,omitempty"`
}

// DisplayAddress returns the address, or DefaultAddress when it is absent or empty
func (p ProfileRecord) DisplayAddress() string {
	if p.Address == nil || *p.Address == "" {
		return DefaultAddress
	}
	return *p.Address
}

// HasAddress reports whether the record carries a non-empty address
func (p ProfileRecord) HasAddress() bool {
	return p.Address != nil && *p.Address != ""
}

// ResultSet is the ordered list of profiles from the last successful fetch.
// It is replaced wholesale, never merged or edited in place.
type ResultSet []ProfileRecord

// Len returns the number of records
func (rs ResultSet) Len() int { return len(rs) }

// Empty reports whether there are no records
func (rs ResultSet) Empty() bool { return len(rs) == 0 }

// Clone returns a copy that shares no backing array with rs
func (rs ResultSet) Clone() ResultSet {
	if rs == nil {
		return nil
	}
	out := make(ResultSet, len(rs))
	copy(out, rs)
	return out
}

// Page returns the slice of records visible under p
func (rs ResultSet) Page(p PaginationState) ResultSet {
	start := p.Offset()
	if start >= len(rs) {
		return ResultSet{}
	}
	end := start + p.PageSize
	if end > len(rs) {
		end = len(rs)
	}
	return rs[start:end]
}
