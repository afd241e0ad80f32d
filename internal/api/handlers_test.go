package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrdash/internal/engine"
	"hrdash/internal/models"
)

func testHandler() *Handler {
	h := NewHandler(engine.DefaultBuckets(), engine.PercentSpec{
		Global:     10,
		ByLocation: map[string]float64{"Bangalore": 5},
	})

	records := []models.EmployeeRecord{
		{Name: "Asha", Role: "Dev", Location: "Bangalore", ExperienceYears: 3.5, Active: true, CurrentComp: 100000},
		{Name: "Ravi", Role: "Dev", Location: "Pune", ExperienceYears: 0.5, Active: true, CurrentComp: 200000},
		{Name: "Meera", Role: "QA", Location: "Bangalore", ExperienceYears: 1, Active: false, CurrentComp: 80000},
	}
	h.SetStore(engine.NewRecordStore(records), &engine.LoadReport{Loaded: len(records)})
	return h
}

func doGET(t *testing.T, h func(echo.Context) error, target string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return rec, h(e.NewContext(req, rec))
}

func TestGetEmployeesFiltering(t *testing.T) {
	h := testHandler()

	rec, err := doGET(t, h.GetEmployees, "/api/employees?active=true&role=dev")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data  []models.EmployeeRecord `json:"data"`
		Total int                     `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Total)
	for _, r := range body.Data {
		assert.True(t, r.Active)
		assert.Equal(t, "Dev", r.Role)
	}
}

func TestUnavailableWhileLoading(t *testing.T) {
	h := NewHandler(engine.DefaultBuckets(), engine.PercentSpec{})

	_, err := doGET(t, h.GetEmployees, "/api/employees")
	require.Error(t, err)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, he.Code)
}

func TestGetCompensationStats(t *testing.T) {
	h := testHandler()

	rec, err := doGET(t, h.GetCompensationStats, "/api/stats/compensation?active=true")
	require.NoError(t, err)

	var body struct {
		Averages []models.RoleAverage `json:"averages"`
		Chart    *models.ChartConfig  `json:"chart"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	// Only the two active Devs survive the filter; QA is omitted, not zero.
	require.Len(t, body.Averages, 1)
	assert.Equal(t, "Dev", body.Averages[0].Role)
	assert.Equal(t, float64(150000), body.Averages[0].Average)

	require.NotNil(t, body.Chart)
	assert.Equal(t, "bar", body.Chart.ChartType)
	require.Len(t, body.Chart.Series, 1)
	assert.Len(t, body.Chart.Series[0].Data, 1)
}

func TestGetExperienceStats(t *testing.T) {
	h := testHandler()

	rec, err := doGET(t, h.GetExperienceStats, "/api/stats/experience?by=location")
	require.NoError(t, err)

	var body struct {
		Table models.ExperienceTable `json:"table"`
		Chart *models.ChartConfig    `json:"chart"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	require.Len(t, body.Table.Series, 2)
	for _, s := range body.Table.Series {
		assert.Len(t, s.Counts, len(body.Table.Buckets), "series %s not zero-filled", s.Key)
	}
	require.NotNil(t, body.Chart)
	assert.Equal(t, "stacked_bar", body.Chart.ChartType)

	// Unknown cross-tab dimension is a client error.
	_, err = doGET(t, h.GetExperienceStats, "/api/stats/experience?by=salary")
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestGetIncrement(t *testing.T) {
	h := testHandler()

	rec, err := doGET(t, h.GetIncrement, "/api/increment?percent=10")
	require.NoError(t, err)

	var body struct {
		Data []models.EmployeeRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 3)

	// Bangalore records get the configured 5% location override even when a
	// global percent is passed; Pune falls back to the query percent.
	byName := map[string]models.EmployeeRecord{}
	for _, r := range body.Data {
		byName[r.Name] = r
	}
	require.NotNil(t, byName["Asha"].UpdatedComp)
	assert.Equal(t, float64(105000), *byName["Asha"].UpdatedComp)
	assert.Equal(t, float64(220000), *byName["Ravi"].UpdatedComp)

	// CurrentComp is reported unchanged.
	assert.Equal(t, float64(100000), byName["Asha"].CurrentComp)
}

func TestExportCSV(t *testing.T) {
	h := testHandler()

	rec, err := doGET(t, h.ExportCSV, "/api/export.csv?active=true&percent=10&columns=name,current_comp,updated_comp")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "employees.csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 3) // header + two active records
	assert.Equal(t, "Name,Current Comp,Updated Comp", lines[0])
	assert.Contains(t, lines[1], "Asha")
	assert.Contains(t, lines[1], "105000") // Bangalore override

	// Requesting updated_comp without running the simulation is a 400.
	_, err = doGET(t, h.ExportCSV, "/api/export.csv?columns=updated_comp")
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestExportCSVSurfacesRangeWarnings(t *testing.T) {
	h := testHandler()

	// A cut past -100% drives Ravi (Pune, no override) negative. The export
	// still succeeds, but the warning count must be surfaced, not dropped.
	rec, err := doGET(t, h.ExportCSV, "/api/export.csv?percent=-150")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "-100000")
	assert.Equal(t, "1", rec.Header().Get(HeaderRangeWarnings))

	// No negative results, no warning header.
	rec, err = doGET(t, h.ExportCSV, "/api/export.csv?percent=10")
	require.NoError(t, err)
	assert.Empty(t, rec.Header().Get(HeaderRangeWarnings))
}

func TestGetLoadReport(t *testing.T) {
	h := NewHandler(engine.DefaultBuckets(), engine.PercentSpec{})

	// Still loading.
	_, err := doGET(t, h.GetLoadReport, "/api/load-report")
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, he.Code)

	h.SetStore(engine.NewRecordStore(nil), &engine.LoadReport{
		Loaded:  2,
		Skipped: 1,
		Issues: []*engine.ValidationError{
			{Row: 3, Field: "status", Value: "maybe", Reason: "unrecognized status encoding"},
		},
	})

	rec, err := doGET(t, h.GetLoadReport, "/api/load-report")
	require.NoError(t, err)

	var body struct {
		Loaded  int `json:"loaded"`
		Skipped int `json:"skipped"`
		Issues  []struct {
			Row    int    `json:"row"`
			Field  string `json:"field"`
			Reason string `json:"reason"`
		} `json:"issues"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Loaded)
	assert.Equal(t, 1, body.Skipped)
	require.Len(t, body.Issues, 1)
	assert.Equal(t, "status", body.Issues[0].Field)
}
