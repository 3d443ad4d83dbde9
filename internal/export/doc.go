// Package export turns a result set into downloadable files: a paginated
// PDF report and a single-sheet XLSX workbook. Both are pure with respect to
// their input; the only clock dependency is the date passed in by the caller.
package export
