package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"linkedin-scraper/internal/models"
)

// SheetName is the only sheet in the exported workbook
const SheetName = "Profiles"

// SpreadsheetHeader is the first row of the exported sheet
var SpreadsheetHeader = []string{"SNo", "Name", "ProfileLink", "Address"}

// Spreadsheet renders profiles as an XLSX workbook, one row per profile in order
func Spreadsheet(profiles models.ResultSet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to open sheet writer: %w", err)
	}

	header := make([]interface{}, len(SpreadsheetHeader))
	for i, h := range SpreadsheetHeader {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, profile := range profiles {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{i + 1, profile.Name, profile.Link, profile.DisplayAddress()}
		if err := sw.SetRow(cell, row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
