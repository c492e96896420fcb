package handler

// export.go implements GET /export.
// Returns every trip, product scan and energy reading in a window as a flat ledger.
// Supports ?format=json (default), csv or xlsx.

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/oapi-codegen/runtime"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/pkordes/footprint/backend/internal/domain"
	"github.com/pkordes/footprint/backend/internal/emissions"
)

// Export formats accepted by ?format=.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ledgerHeaders defines the column names written as the first row of CSV and XLSX exports.
var ledgerHeaders = []string{"occurred_at", "category", "description", "quantity", "unit", "emissions_kg"}

// GetExport handles GET /export.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	period, date, err := windowParams(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	var format *string
	if err := runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), &format); err != nil {
		badRequest(w, "invalid format")
		return
	}
	f := FormatJSON
	if format != nil {
		f = *format
	}
	if f != FormatJSON && f != FormatCSV && f != FormatXLSX {
		badRequest(w, "format must be one of: json, csv, xlsx")
		return
	}

	rows, err := s.export.Export(r.Context(), period, date)
	if err != nil {
		s.serviceError(w, r, err, "export not found")
		return
	}

	switch f {
	case FormatCSV:
		body := buildCSV(rows)
		writeAttachment(w, "text/csv", exportFilename(period, date, FormatCSV), body)
	case FormatXLSX:
		body, err := buildXLSX(rows)
		if err != nil {
			s.internalError(w, r, fmt.Errorf("build xlsx: %w", err))
			return
		}
		writeAttachment(w, xlsxContentType, exportFilename(period, date, FormatXLSX), body)
	default:
		writeJSON(w, http.StatusOK, rows)
	}
}

func writeAttachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// exportFilename is e.g. "footprint-week-2025-06-09.csv". Without an explicit
// date the name carries "current".
func exportFilename(period emissions.Period, date *time.Time, ext string) string {
	label := "current"
	if date != nil {
		label = date.Format(time.DateOnly)
	}
	return fmt.Sprintf("footprint-%s-%s.%s", period, label, ext)
}

// buildCSV encodes rows as CSV with a header line.
func buildCSV(rows []domain.LedgerRow) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	w.Write(ledgerHeaders)
	for _, r := range rows {
		//nolint:errcheck
		w.Write(ledgerRecord(r))
	}
	w.Flush()
	return buf.Bytes()
}

func ledgerRecord(r domain.LedgerRow) []string {
	return []string{
		r.OccurredAt.UTC().Format(time.RFC3339),
		r.Category,
		r.Description,
		strconv.FormatFloat(r.Quantity, 'f', -1, 64),
		r.Unit,
		strconv.FormatFloat(r.EmissionsKg, 'f', -1, 64),
	}
}

// buildXLSX writes a workbook with a "Ledger" sheet of rows and a "Totals"
// sheet with the per-category sum.
func buildXLSX(rows []domain.LedgerRow) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	const ledgerSheet, totalsSheet = "Ledger", "Totals"
	if err := file.SetSheetName("Sheet1", ledgerSheet); err != nil {
		return nil, err
	}

	set := func(sheet string, col, row int, value any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = file.SetCellValue(sheet, cell, value)
	}

	for i, h := range ledgerHeaders {
		set(ledgerSheet, i+1, 1, h)
	}
	totals := map[string]decimal.Decimal{}
	for i, r := range rows {
		row := i + 2
		set(ledgerSheet, 1, row, r.OccurredAt.UTC())
		set(ledgerSheet, 2, row, r.Category)
		set(ledgerSheet, 3, row, r.Description)
		set(ledgerSheet, 4, row, r.Quantity)
		set(ledgerSheet, 5, row, r.Unit)
		set(ledgerSheet, 6, row, r.EmissionsKg)
		totals[r.Category] = totals[r.Category].Add(decimal.NewFromFloat(r.EmissionsKg))
	}
	_ = file.SetColWidth(ledgerSheet, "A", "A", 22)
	_ = file.SetColWidth(ledgerSheet, "C", "C", 40)

	if _, err := file.NewSheet(totalsSheet); err != nil {
		return nil, err
	}
	set(totalsSheet, 1, 1, "category")
	set(totalsSheet, 2, 1, "emissions_kg")
	grand := decimal.Zero
	row := 2
	for _, c := range []string{domain.CategoryTravel, domain.CategoryFood, domain.CategoryEnergy} {
		set(totalsSheet, 1, row, c)
		set(totalsSheet, 2, row, totals[c].InexactFloat64())
		grand = grand.Add(totals[c])
		row++
	}
	set(totalsSheet, 1, row, "total")
	set(totalsSheet, 2, row, grand.InexactFloat64())

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
