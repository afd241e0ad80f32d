package models

// EmployeeRecord is one row of the loaded dataset.
// UpdatedComp is nil until an increment simulation has run; the simulator
// never touches CurrentComp.
type EmployeeRecord struct {
	Name            string   `json:"name"`
	Role            string   `json:"role"`
	Location        string   `json:"location"`
	ExperienceYears float64  `json:"experience_years"`
	Active          bool     `json:"active"`
	CurrentComp     float64  `json:"current_comp"`
	UpdatedComp     *float64 `json:"updated_comp,omitempty"`
	LastWorkingDay  string   `json:"last_working_day,omitempty"`
}

// RoleAverage is one group of the average-compensation view.
type RoleAverage struct {
	Role    string  `json:"role"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// BucketSeries holds counts per experience bucket for one secondary key
// (a role or a location). Counts is aligned with the bucket label list and
// zero-filled, so every (bucket, key) combination is present.
type BucketSeries struct {
	Key    string `json:"key"`
	Counts []int  `json:"counts"`
}

// ExperienceTable is the bucketed experience distribution, optionally
// cross-tabulated by a secondary dimension.
type ExperienceTable struct {
	Buckets []string       `json:"buckets"`
	Series  []BucketSeries `json:"series"`
}

// --- CHART PAYLOADS ---
// Render-ready config for the dashboard frontend. The backend only emits
// these; rendering happens client-side.

type ChartConfig struct {
	ChartType  string        `json:"chartType"`
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Series     []ChartSeries `json:"series"`
	Colors     []string      `json:"colors,omitempty"`
	ShowLegend bool          `json:"showLegend"`
	ShowGrid   bool          `json:"showGrid"`
}

type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}
