package engine

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"hrdash/internal/models"
)

// exportHeaders maps canonical column keys to the header written in the
// output file. The loader accepts all of these back, so an export → reload
// round-trip reproduces the same view.
var exportHeaders = map[string]string{
	colName:           "Name",
	colRole:           "Role",
	colLocation:       "Location",
	colExperience:     "Experience",
	colStatus:         "Status",
	colCurrentComp:    "Current Comp",
	colUpdatedComp:    "Updated Comp",
	colLastWorkingDay: "Last Working Day",
}

// DefaultExportColumns returns the standard output projection. Updated Comp
// is included only when the increment simulation actually ran on the input.
func DefaultExportColumns(records []models.EmployeeRecord) []string {
	cols := []string{colName, colRole, colLocation, colExperience, colStatus, colCurrentComp}
	if hasUpdatedComp(records) {
		cols = append(cols, colUpdatedComp)
	}
	return cols
}

// Project builds the tabular projection: a header row plus one row per input
// record, with exactly the requested columns in the requested order and the
// input record order preserved. Requesting a column outside the record
// schema (including updated_comp when no increment ran) is a SchemaError.
func Project(records []models.EmployeeRecord, columns []string) ([][]string, error) {
	if len(columns) == 0 {
		columns = DefaultExportColumns(records)
	}

	header := make([]string, len(columns))
	keys := make([]string, len(columns))
	for i, col := range columns {
		key := strings.ToLower(strings.TrimSpace(col))
		h, ok := exportHeaders[key]
		if !ok {
			return nil, &SchemaError{Column: col, Reason: "unknown column"}
		}
		if key == colUpdatedComp && !hasUpdatedComp(records) {
			return nil, &SchemaError{Column: col, Reason: "no increment simulation ran"}
		}
		header[i] = h
		keys[i] = key
	}

	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, header)
	for _, rec := range records {
		row := make([]string, len(keys))
		for i, col := range keys {
			row[i] = cellValue(rec, col)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteCSV serializes a projection to w. Write errors propagate unchanged.
func WriteCSV(w io.Writer, records []models.EmployeeRecord, columns []string) error {
	rows, err := Project(records, columns)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func cellValue(rec models.EmployeeRecord, col string) string {
	switch col {
	case colName:
		return rec.Name
	case colRole:
		return rec.Role
	case colLocation:
		return rec.Location
	case colExperience:
		return formatNumber(rec.ExperienceYears)
	case colStatus:
		if rec.Active {
			return "Active"
		}
		return "Inactive"
	case colCurrentComp:
		return formatNumber(rec.CurrentComp)
	case colUpdatedComp:
		if rec.UpdatedComp == nil {
			return ""
		}
		return formatNumber(*rec.UpdatedComp)
	case colLastWorkingDay:
		return rec.LastWorkingDay
	}
	return ""
}

// formatNumber keeps full precision so exported values survive a round-trip
// exactly. Currency rounding is left to whoever renders the file.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func hasUpdatedComp(records []models.EmployeeRecord) bool {
	for _, rec := range records {
		if rec.UpdatedComp != nil {
			return true
		}
	}
	return false
}
