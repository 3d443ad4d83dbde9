// Package web serves the scraper page: a search form, a paginated table of
// the last result set, and PDF/XLSX downloads of that set. Each browser
// gets its own view state, keyed by a session cookie.
package web
