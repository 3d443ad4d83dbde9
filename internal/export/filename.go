package export

import "time"

// Download names and content types
const (
	SpreadsheetFilename    = "profiles.xlsx"
	PDFContentType         = "application/pdf"
	SpreadsheetContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// PDFFilename returns LinkedIn_Profiles_<M-D-YYYY>.pdf for the given day
func PDFFilename(now time.Time) string {
	return "LinkedIn_Profiles_" + now.Format("1-2-2006") + ".pdf"
}
