package engine

import (
	"strings"

	"hrdash/internal/models"
)

// Criteria are the composable record predicates, AND-combined. Zero values
// act as wildcards: an empty Role or Location constrains nothing, and
// ActiveOnly=false admits inactive records too.
type Criteria struct {
	ActiveOnly bool
	Role       string
	Location   string
}

// IsEmpty reports whether the criteria constrain nothing, in which case
// Filter is the identity.
func (c Criteria) IsEmpty() bool {
	return !c.ActiveOnly && c.Role == "" && c.Location == ""
}

// Matches checks every non-wildcard predicate. Role and location comparisons
// are case-insensitive.
func (c Criteria) Matches(rec models.EmployeeRecord) bool {
	if c.ActiveOnly && !rec.Active {
		return false
	}
	if c.Role != "" && !strings.EqualFold(c.Role, rec.Role) {
		return false
	}
	if c.Location != "" && !strings.EqualFold(c.Location, rec.Location) {
		return false
	}
	return true
}

// Filter returns the ordered subsequence of records matching all predicates.
// The input is never mutated and an empty result is a valid outcome.
func Filter(records []models.EmployeeRecord, c Criteria) []models.EmployeeRecord {
	if c.IsEmpty() {
		out := make([]models.EmployeeRecord, len(records))
		copy(out, records)
		return out
	}

	out := make([]models.EmployeeRecord, 0, len(records))
	for _, rec := range records {
		if c.Matches(rec) {
			out = append(out, rec)
		}
	}
	return out
}
