package usecase

import (
	"sort"

	"YieldAdvisor/internal/domain/models"
	domsvc "YieldAdvisor/internal/domain/service"
)

// Selection is the outcome of ranking a yield table.
type Selection struct {
	Best   models.YieldRecord
	Ranked []models.YieldRecord
	// Fallback is set when no record met the threshold and the whole
	// table was ranked instead.
	Fallback bool
}

// Select keeps records with APY >= minAPY and ranks them best first.
// The threshold is advisory: if nothing qualifies every record is ranked.
// Ties keep their input order and records is never modified.
func Select(records []models.YieldRecord, minAPY float64) (Selection, error) {
	if len(records) == 0 {
		return Selection{}, domsvc.ErrNoDataAvailable
	}

	ranked := make([]models.YieldRecord, 0, len(records))
	for _, r := range records {
		if r.APY >= minAPY {
			ranked = append(ranked, r)
		}
	}

	fallback := len(ranked) == 0
	if fallback {
		ranked = append(ranked, records...)
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].APY > ranked[j].APY })

	return Selection{Best: ranked[0], Ranked: ranked, Fallback: fallback}, nil
}
