// Package scrape is the client for the remote scraping service.
//
// A search is a single JSON POST carrying the industry, country and page
// count. The service answers with {"profiles": [...]}; anything else
// (transport error, non-2xx status, malformed body) is reported as a
// *FetchFailure. There is no retry: one user action, one request.
package scrape
