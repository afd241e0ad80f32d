package api

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/labstack/echo/v4"

	"hrdash/internal/engine"
	"hrdash/internal/models"
)

// HeaderRangeWarnings carries the number of negative updated-compensation
// warnings produced while building a CSV export.
const HeaderRangeWarnings = "X-Range-Warnings"

// dataset bundles the loaded store with its report so both publish in one
// atomic swap.
type dataset struct {
	store  *engine.RecordStore
	report *engine.LoadReport
}

// Handler serves the derived views over HTTP. The dataset pointer is nil
// until the background load finishes; until then every endpoint answers 503.
// Requests after that each derive their own view from the immutable snapshot.
type Handler struct {
	data      atomic.Pointer[dataset]
	buckets   engine.BucketSet
	increment engine.PercentSpec
}

func NewHandler(buckets engine.BucketSet, increment engine.PercentSpec) *Handler {
	return &Handler{buckets: buckets, increment: increment}
}

// SetStore publishes the loaded dataset to the live API. Safe to call while
// handlers are serving.
func (h *Handler) SetStore(store *engine.RecordStore, report *engine.LoadReport) {
	h.data.Store(&dataset{store: store, report: report})
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/employees", h.GetEmployees)
	api.GET("/stats/compensation", h.GetCompensationStats)
	api.GET("/stats/experience", h.GetExperienceStats)
	api.GET("/increment", h.GetIncrement)
	api.GET("/export.csv", h.ExportCSV)
	api.GET("/load-report", h.GetLoadReport)
}

// --- HANDLERS ---

// GetEmployees returns the filtered record view.
// Query: active=true, role=<value>, location=<value>; absent params are wildcards.
func (h *Handler) GetEmployees(c echo.Context) error {
	records, err := h.view(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":  records,
		"total": len(records),
	})
}

// GetCompensationStats returns average compensation per role over the
// filtered view, plus a render-ready bar chart config.
func (h *Handler) GetCompensationStats(c echo.Context) error {
	records, err := h.view(c)
	if err != nil {
		return err
	}

	averages := engine.AverageCompByRole(records)
	points := make([]models.ChartPoint, len(averages))
	for i, a := range averages {
		points[i] = models.ChartPoint{Label: a.Role, Value: a.Average}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"averages": averages,
		"chart":    barChart("Average Compensation by Role", "Role", "Average Comp", points),
	})
}

// GetExperienceStats returns the experience-bucket distribution over the
// filtered view. With ?by=role or ?by=location the counts are cross-tabulated
// and every (bucket, key) combination is present, zero-filled.
func (h *Handler) GetExperienceStats(c echo.Context) error {
	records, err := h.view(c)
	if err != nil {
		return err
	}

	var table models.ExperienceTable
	if by := c.QueryParam("by"); by != "" {
		table, err = engine.BucketCrossTab(records, h.buckets, by)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	} else {
		table = engine.BucketCounts(records, h.buckets)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"table": table,
		"chart": stackedBarChart("Experience Distribution", table),
	})
}

// GetIncrement simulates the compensation increment over the filtered view.
// ?percent overrides the configured global percentage; per-entity overrides
// from the config still win for their records.
func (h *Handler) GetIncrement(c echo.Context) error {
	records, err := h.view(c)
	if err != nil {
		return err
	}

	spec, err := h.percentSpec(c)
	if err != nil {
		return err
	}

	updated, warnings := engine.ApplyIncrement(records, spec)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":     updated,
		"total":    len(updated),
		"percent":  spec.Global,
		"warnings": warnings,
	})
}

// ExportCSV streams the projected view as a CSV attachment.
// ?columns=name,role,... selects the projection; ?percent runs the increment
// simulation first so the export reflects filtered + incremented data. Any
// negative updated compensation is logged and counted in the
// X-Range-Warnings response header, never dropped.
func (h *Handler) ExportCSV(c echo.Context) error {
	records, err := h.view(c)
	if err != nil {
		return err
	}

	var warnings []engine.RangeWarning
	if c.QueryParam("percent") != "" {
		spec, err := h.percentSpec(c)
		if err != nil {
			return err
		}
		records, warnings = engine.ApplyIncrement(records, spec)
		for _, w := range warnings {
			log.Printf("WARNING: %s", w)
		}
	}

	var columns []string
	if raw := c.QueryParam("columns"); raw != "" {
		columns = strings.Split(raw, ",")
	}

	var buf bytes.Buffer
	if err := engine.WriteCSV(&buf, records, columns); err != nil {
		var schemaErr *engine.SchemaError
		if errors.As(err, &schemaErr) {
			return echo.NewHTTPError(http.StatusBadRequest, schemaErr.Error())
		}
		return err
	}

	if len(warnings) > 0 {
		c.Response().Header().Set(HeaderRangeWarnings, fmt.Sprintf("%d", len(warnings)))
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="employees.csv"`)
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

// GetLoadReport returns how the startup load went: rows loaded, rows skipped,
// and the issue behind every skipped row.
func (h *Handler) GetLoadReport(c echo.Context) error {
	ds := h.data.Load()
	if ds == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "dataset is still loading")
	}

	issues := make([]map[string]interface{}, 0, len(ds.report.Issues))
	for _, issue := range ds.report.Issues {
		issues = append(issues, map[string]interface{}{
			"row":    issue.Row,
			"field":  issue.Field,
			"value":  issue.Value,
			"reason": issue.Reason,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"loaded":  ds.report.Loaded,
		"skipped": ds.report.Skipped,
		"issues":  issues,
	})
}

// --- HELPERS ---

// view derives the per-request filtered view, or 503 while loading.
func (h *Handler) view(c echo.Context) ([]models.EmployeeRecord, error) {
	ds := h.data.Load()
	if ds == nil {
		return nil, echo.NewHTTPError(http.StatusServiceUnavailable, "dataset is still loading")
	}

	criteria := engine.Criteria{
		Role:     c.QueryParam("role"),
		Location: c.QueryParam("location"),
	}
	if active := c.QueryParam("active"); active != "" {
		on, err := strconv.ParseBool(active)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "active must be a boolean")
		}
		criteria.ActiveOnly = on
	}

	return engine.Filter(ds.store.Records(), criteria), nil
}

func (h *Handler) percentSpec(c echo.Context) (engine.PercentSpec, error) {
	spec := h.increment
	if raw := c.QueryParam("percent"); raw != "" {
		pct, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return spec, echo.NewHTTPError(http.StatusBadRequest, "percent must be numeric")
		}
		spec.Global = pct
	}
	return spec, nil
}
