package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"hrdash/internal/models"
)

// Canonical column keys. Source headers are normalized before matching, so
// "Experience (years)", "experience_years" and "Experience Years" all map to
// the same key.
const (
	colName           = "name"
	colRole           = "role"
	colLocation       = "location"
	colExperience     = "experience"
	colStatus         = "status"
	colCurrentComp    = "current_comp"
	colUpdatedComp    = "updated_comp"
	colLastWorkingDay = "last_working_day"
)

// headerAliases maps normalized source headers to canonical keys. The status
// column notoriously appears as both "Active?" (Yes/No) and "Status"
// (Active/Inactive); both normalize to the one canonical Active flag.
var headerAliases = map[string]string{
	"name":                 colName,
	"employee name":        colName,
	"role":                 colRole,
	"designation":          colRole,
	"location":             colLocation,
	"experience":           colExperience,
	"experience years":     colExperience,
	"experience in years":  colExperience,
	"status":               colStatus,
	"active":               colStatus,
	"current comp":         colCurrentComp,
	"current compensation": colCurrentComp,
	"compensation":         colCurrentComp,
	"comp":                 colCurrentComp,
	"updated comp":         colUpdatedComp,
	"updated compensation": colUpdatedComp,
	"last working day":     colLastWorkingDay,
	"lastworkingday":       colLastWorkingDay,
}

var requiredColumns = []string{colName, colRole, colLocation, colExperience, colStatus, colCurrentComp}

// LoadReport summarizes a load: how many rows made it into the store and
// which rows were skipped, with the reason for each. Skipped rows are never
// silently dropped.
type LoadReport struct {
	Loaded  int
	Skipped int
	Issues  []*ValidationError
}

// LoadCSV reads a delimited employee table into records. A missing required
// column is a SchemaError and aborts the load; per-row problems (negative
// experience, non-numeric compensation, unrecognized status encoding) are
// collected in the report and the row is skipped.
func LoadCSV(r io.Reader) ([]models.EmployeeRecord, *LoadReport, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(headers))
	for i, h := range headers {
		key, ok := headerAliases[normalizeHeader(h)]
		if !ok {
			continue // unknown columns are ignored
		}
		if _, dup := cols[key]; !dup {
			cols[key] = i
		}
	}
	for _, req := range requiredColumns {
		if _, ok := cols[req]; !ok {
			return nil, nil, &SchemaError{Column: req, Reason: "required column missing"}
		}
	}

	report := &LoadReport{}
	var records []models.EmployeeRecord
	row := 0
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			report.Skipped++
			report.Issues = append(report.Issues, &ValidationError{
				Row: row, Field: "", Value: "", Reason: err.Error(),
			})
			continue
		}

		rec, verr := parseRow(row, fields, cols)
		if verr != nil {
			report.Skipped++
			report.Issues = append(report.Issues, verr)
			continue
		}
		records = append(records, rec)
		report.Loaded++
	}

	return records, report, nil
}

// LoadFile reads and parses a CSV file into an immutable RecordStore.
func LoadFile(path string) (*RecordStore, *LoadReport, error) {
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	records, report, err := LoadCSV(f)
	if err != nil {
		return nil, nil, err
	}

	log.Printf("Load complete. Rows: %d, skipped: %d. Time: %v", report.Loaded, report.Skipped, time.Since(start))
	return NewRecordStore(records), report, nil
}

func parseRow(row int, fields []string, cols map[string]int) (models.EmployeeRecord, *ValidationError) {
	get := func(key string) string {
		i, ok := cols[key]
		if !ok || i >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[i])
	}

	var rec models.EmployeeRecord
	rec.Name = get(colName)
	rec.Role = get(colRole)
	rec.Location = get(colLocation)
	rec.LastWorkingDay = get(colLastWorkingDay)

	expStr := get(colExperience)
	exp, err := strconv.ParseFloat(expStr, 64)
	if err != nil {
		return rec, &ValidationError{Row: row, Field: colExperience, Value: expStr, Reason: "not numeric"}
	}
	if exp < 0 {
		return rec, &ValidationError{Row: row, Field: colExperience, Value: expStr, Reason: "negative"}
	}
	rec.ExperienceYears = exp

	compStr := get(colCurrentComp)
	comp, err := strconv.ParseFloat(compStr, 64)
	if err != nil {
		return rec, &ValidationError{Row: row, Field: colCurrentComp, Value: compStr, Reason: "not numeric"}
	}
	if comp < 0 {
		return rec, &ValidationError{Row: row, Field: colCurrentComp, Value: compStr, Reason: "negative"}
	}
	rec.CurrentComp = comp

	statusStr := get(colStatus)
	active, ok := parseStatus(statusStr)
	if !ok {
		return rec, &ValidationError{Row: row, Field: colStatus, Value: statusStr, Reason: "unrecognized status encoding"}
	}
	rec.Active = active

	// Updated comp only appears in exports we re-ingest (round-trips).
	if upStr := get(colUpdatedComp); upStr != "" {
		up, err := strconv.ParseFloat(upStr, 64)
		if err != nil {
			return rec, &ValidationError{Row: row, Field: colUpdatedComp, Value: upStr, Reason: "not numeric"}
		}
		rec.UpdatedComp = &up
	}

	return rec, nil
}

// parseStatus maps the heterogeneous source encodings to the canonical flag.
// Accepted true values: yes, y, true, 1, active. False: no, n, false, 0,
// inactive. Anything else is a validation issue for the row.
func parseStatus(s string) (active bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1", "active":
		return true, true
	case "no", "n", "false", "0", "inactive":
		return false, true
	default:
		return false, false
	}
}

// normalizeHeader lowercases a header and strips the punctuation that varies
// between exports: "Active?" → "active", "Experience (years)" → "experience years".
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.NewReplacer("?", "", "(", "", ")", "", "_", " ", "-", " ").Replace(h)
	return strings.Join(strings.Fields(h), " ")
}
