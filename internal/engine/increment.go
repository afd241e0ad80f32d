package engine

import (
	"strings"

	"hrdash/internal/models"
)

// PercentSpec defines the increment to simulate: a global percentage plus
// optional per-entity overrides. A name override beats a location override,
// which beats the global percentage. Override keys match case-insensitively.
type PercentSpec struct {
	Global     float64
	ByName     map[string]float64
	ByLocation map[string]float64
}

// PercentFor resolves the percentage applicable to one record.
func (p PercentSpec) PercentFor(rec models.EmployeeRecord) float64 {
	if pct, ok := lookupFold(p.ByName, rec.Name); ok {
		return pct
	}
	if pct, ok := lookupFold(p.ByLocation, rec.Location); ok {
		return pct
	}
	return p.Global
}

func lookupFold(m map[string]float64, key string) (float64, bool) {
	if len(m) == 0 {
		return 0, false
	}
	if pct, ok := m[key]; ok {
		return pct, true
	}
	for k, pct := range m {
		if strings.EqualFold(k, key) {
			return pct, true
		}
	}
	return 0, false
}

// ApplyIncrement returns a new record sequence with UpdatedComp populated as
// current * (1 + pct/100). CurrentComp is never touched and the record count
// is preserved. Negative percentages are allowed; any record whose updated
// compensation goes negative is flagged with a RangeWarning rather than
// rejected. No rounding happens here; that is a presentation concern.
func ApplyIncrement(records []models.EmployeeRecord, spec PercentSpec) ([]models.EmployeeRecord, []RangeWarning) {
	out := make([]models.EmployeeRecord, len(records))
	var warnings []RangeWarning

	for i, rec := range records {
		pct := spec.PercentFor(rec)
		// current + current*pct/100 rather than current*(1+pct/100): the
		// latter loses exactness on round percentages (100000 at 10% must
		// come out as 110000, not 110000.00000000001).
		updated := rec.CurrentComp + rec.CurrentComp*pct/100
		rec.UpdatedComp = &updated
		out[i] = rec

		if updated < 0 {
			warnings = append(warnings, RangeWarning{Name: rec.Name, Updated: updated})
		}
	}
	return out, warnings
}
