package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"linkedin-scraper/internal/models"
)

// Page geometry in millimetres (A4 portrait)
const (
	pageMargin    = 20.0
	topMargin     = 20.0
	bottomMargin  = 270.0
	contentStartY = 45.0
	lineHeight    = 7.0
	blockSpacing  = 10.0
	separatorGap  = 10.0

	notSpecified = "Not specified"
	reportTitle  = "LinkedIn Profiles"
)

// PDFResult is a rendered report
type PDFResult struct {
	Bytes  []byte
	Pages  int
	Blocks int
}

// PDF renders profiles as a multi-page report headed by the search criteria.
// now is stamped as the document creation date so output is reproducible.
func PDF(profiles models.ResultSet, criteria models.SearchCriteria, now time.Time) (PDFResult, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(now)
	pdf.SetModificationDate(now)
	pdf.SetTitle(reportTitle, true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(pageMargin, topMargin, pageMargin)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageWidth, _ := pdf.GetPageSize()
	maxWidth := pageWidth - pageMargin*2

	pdf.AddPage()
	writeHeader(pdf, tr, criteria, pageWidth)

	cursor := NewCursor(contentStartY, topMargin, bottomMargin, func() { pdf.AddPage() })
	blocks := 0

	for i, profile := range profiles {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetTextColor(0, 0, 0)
		title := tr(fmt.Sprintf("%d. %s", i+1, profile.Name))

		pdf.SetFont("Helvetica", "", 12)
		linkLines := wrapText(tr(profile.Link), maxWidth, pdf.GetStringWidth)

		cursor.Reserve(lineHeight + float64(len(linkLines))*lineHeight)

		pdf.SetFont("Helvetica", "B", 12)
		pdf.Text(pageMargin, cursor.Y, title)
		cursor.Advance(lineHeight)

		pdf.SetFont("Helvetica", "", 12)
		pdf.SetTextColor(0, 0, 255)
		writeLines(pdf, cursor, linkLines)

		pdf.SetTextColor(0, 0, 0)
		addressLines := wrapText(tr(profile.DisplayAddress()), maxWidth, pdf.GetStringWidth)
		cursor.Reserve(float64(len(addressLines)) * lineHeight)
		writeLines(pdf, cursor, addressLines)
		cursor.Advance(blockSpacing)
		blocks++

		if i < len(profiles)-1 {
			cursor.Reserve(separatorGap)
			pdf.SetDrawColor(200, 200, 200)
			pdf.SetLineWidth(0.5)
			pdf.Line(pageMargin, cursor.Y-5, pageWidth-pageMargin, cursor.Y-5)
			cursor.Advance(separatorGap)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return PDFResult{}, fmt.Errorf("failed to render pdf: %w", err)
	}

	return PDFResult{
		Bytes:  buf.Bytes(),
		Pages:  pdf.PageCount(),
		Blocks: blocks,
	}, nil
}

func writeHeader(pdf *fpdf.Fpdf, tr func(string) string, criteria models.SearchCriteria, pageWidth float64) {
	pdf.SetFont("Helvetica", "", 16)
	pdf.SetTextColor(0, 128, 255)
	pdf.Text((pageWidth-pdf.GetStringWidth(reportTitle))/2, 15, reportTitle)

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(pageMargin, 25, tr("Industry: "+orNotSpecified(criteria.Industry)))
	pdf.Text(pageMargin, 32, tr("Country: "+orNotSpecified(criteria.Country)))

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(pageMargin, 35, pageWidth-pageMargin, 35)
}

// writeLines draws lines at the cursor. A block taller than a whole page is
// flowed line by line instead of overrunning the bottom margin.
func writeLines(pdf *fpdf.Fpdf, cursor *Cursor, lines []string) {
	flow := float64(len(lines))*lineHeight > cursor.Capacity()
	for _, line := range lines {
		if flow {
			cursor.Reserve(lineHeight)
		}
		pdf.Text(pageMargin, cursor.Y, line)
		cursor.Advance(lineHeight)
	}
}

func orNotSpecified(s string) string {
	if s == "" {
		return notSpecified
	}
	return s
}
