package report

import "github.com/chrisdamba/ecomdash/internal/models"

// Filter keeps rows approved within rng, comparing calendar days only.
// Inverted ranges are swapped; rows without an approval timestamp never match.
func Filter(records []models.OrderRecord, rng models.DateRange) []models.OrderRecord {
	rng = rng.Normalize()
	out := make([]models.OrderRecord, 0, len(records))
	for _, r := range records {
		if r.OrderApprovedAt != nil && rng.Contains(*r.OrderApprovedAt) {
			out = append(out, r)
		}
	}
	return out
}
