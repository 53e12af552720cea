package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mikegehrke/webcheck360/audit"
)

// ExportRow is one line of the lead export: the lead plus the audit it
// was captured from.
type ExportRow struct {
	Lead       audit.Lead
	AuditURL   string
	ScoreTotal int
}

var exportHeader = []string{
	"Lead ID", "Name", "Email", "Phone", "Status",
	"Website", "Score", "Message", "Consent", "Created",
}

func (r ExportRow) values() []string {
	consent := "No"
	if r.Lead.Consent {
		consent = "Yes"
	}
	return []string{
		r.Lead.ID,
		r.Lead.Name,
		r.Lead.Email,
		r.Lead.Phone,
		string(r.Lead.Status),
		r.AuditURL,
		fmt.Sprintf("%d", r.ScoreTotal),
		r.Lead.Message,
		consent,
		r.Lead.CreatedAt.Format(time.RFC3339),
	}
}

// ExportRows joins every lead with its audit for export.
func ExportRows(s Store) ([]ExportRow, error) {
	leads, err := s.ListLeads()
	if err != nil {
		return nil, err
	}
	rows := make([]ExportRow, 0, len(leads))
	for _, l := range leads {
		row := ExportRow{Lead: *l}
		if a, err := s.GetAudit(l.AuditID); err == nil {
			row.AuditURL = a.URL
			row.ScoreTotal = a.ScoreTotal
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteCSV writes the lead export as CSV. A UTF-8 BOM is prepended so
// Excel opens the file with correct umlauts.
func WriteCSV(w io.Writer, rows []ExportRow) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row.values()); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the lead export as a styled Excel workbook.
func WriteXLSX(w io.Writer, rows []ExportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Leads"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1E88E5"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})

	for i, col := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, col)
		f.SetCellStyle(sheet, cell, cell, headerStyle)

		colName, _ := excelize.ColumnNumberToName(i + 1)
		width := float64(len(col) + 8)
		if width < 12 {
			width = 12
		}
		f.SetColWidth(sheet, colName, colName, width)
	}

	for rowIdx, row := range rows {
		for i, val := range row.values() {
			cell, _ := excelize.CoordinatesToCellName(i+1, rowIdx+2)
			f.SetCellValue(sheet, cell, val)
		}
	}

	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	_, err = f.WriteTo(w)
	return err
}
