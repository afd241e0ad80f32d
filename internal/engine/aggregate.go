package engine

import (
	"strings"

	"hrdash/internal/models"
)

// Secondary dimensions accepted by BucketCrossTab.
const (
	ByRole     = "role"
	ByLocation = "location"
)

// AverageCompByRole computes the arithmetic mean of current compensation for
// each role present in the input. Group order is first-occurrence order of
// the role in the input, which is stable for a given dataset. Roles with no
// records simply do not appear: no zero entries, no NaN.
func AverageCompByRole(records []models.EmployeeRecord) []models.RoleAverage {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	var order []string

	for _, rec := range records {
		if _, seen := counts[rec.Role]; !seen {
			order = append(order, rec.Role)
		}
		sums[rec.Role] += rec.CurrentComp
		counts[rec.Role]++
	}

	out := make([]models.RoleAverage, 0, len(order))
	for _, role := range order {
		out = append(out, models.RoleAverage{
			Role:    role,
			Average: sums[role] / float64(counts[role]),
			Count:   counts[role],
		})
	}
	return out
}

// BucketCounts maps every record to exactly one experience bucket and counts
// members per bucket. All buckets of the set appear in the output, zero
// counts included, so the distribution is always the full partition.
func BucketCounts(records []models.EmployeeRecord, bs BucketSet) models.ExperienceTable {
	counts := make([]int, len(bs))
	for _, rec := range records {
		if i := bs.Locate(rec.ExperienceYears); i >= 0 {
			counts[i]++
		}
	}
	return models.ExperienceTable{
		Buckets: bs.Labels(),
		Series:  []models.BucketSeries{{Key: "all", Counts: counts}},
	}
}

// BucketCrossTab counts records per (bucket, secondary key) pair, where the
// secondary key is the record's role or location. Every combination of a
// bucket and a key seen in the input is present, defaulting to zero (unlike
// averaging, which omits empty groups). Key order is first-occurrence order.
func BucketCrossTab(records []models.EmployeeRecord, bs BucketSet, by string) (models.ExperienceTable, error) {
	keyOf, err := secondaryKey(by)
	if err != nil {
		return models.ExperienceTable{}, err
	}

	counts := make(map[string][]int)
	var order []string
	for _, rec := range records {
		key := keyOf(rec)
		if _, seen := counts[key]; !seen {
			order = append(order, key)
			counts[key] = make([]int, len(bs))
		}
		if i := bs.Locate(rec.ExperienceYears); i >= 0 {
			counts[key][i]++
		}
	}

	table := models.ExperienceTable{Buckets: bs.Labels()}
	for _, key := range order {
		table.Series = append(table.Series, models.BucketSeries{Key: key, Counts: counts[key]})
	}
	return table, nil
}

func secondaryKey(by string) (func(models.EmployeeRecord) string, error) {
	switch strings.ToLower(by) {
	case ByRole:
		return func(r models.EmployeeRecord) string { return r.Role }, nil
	case ByLocation:
		return func(r models.EmployeeRecord) string { return r.Location }, nil
	default:
		return nil, &SchemaError{Column: by, Reason: "not a cross-tab dimension (use role or location)"}
	}
}
