package dedup

import (
	"github.com/rickgao/fixture-merge/internal/model"
	"github.com/rickgao/fixture-merge/internal/resolve"
)

// ApplyDisplayNames returns copies of records with team and league names
// replaced by their display names. Empty names are left alone.
func ApplyDisplayNames(records []model.ScheduleRecord, r *resolve.Resolver) []model.ScheduleRecord {
	out := make([]model.ScheduleRecord, len(records))
	for i, rec := range records {
		rec = rec.Clone()
		if rec.League != "" {
			rec.League = r.DisplayLeagueName(rec.League)
		}
		if rec.Home.Name != "" {
			rec.Home.Name = r.DisplayTeamName(rec.Home.Name)
		}
		if rec.Away.Name != "" {
			rec.Away.Name = r.DisplayTeamName(rec.Away.Name)
		}
		out[i] = rec
	}
	return out
}
