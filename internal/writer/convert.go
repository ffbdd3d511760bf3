package writer

import (
	"encoding/json"
	"fmt"

	"github.com/rickgao/fixture-merge/internal/model"
	"github.com/rickgao/fixture-merge/internal/poller"
)

// toFixtureRow converts a merged record and its group key to a fixtureRow.
func toFixtureRow(rec model.ScheduleRecord, key model.FixtureKey) (fixtureRow, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fixtureRow{}, fmt.Errorf("marshal fixture %s: %w", key, err)
	}

	sources := rec.Sources
	if sources == nil {
		sources = []string{}
	}

	return fixtureRow{
		FixtureKey:  key.String(),
		MatchDate:   key.Date,
		LeagueKey:   key.League,
		HomeKey:     key.Home,
		AwayKey:     key.Away,
		League:      rec.LeagueCanonical,
		Home:        rec.HomeCanonical,
		Away:        rec.AwayCanonical,
		KickoffTime: rec.KickoffTime,
		Sources:     sources,
		Payload:     payload,
	}, nil
}

// toRunRow converts a cycle to its audit row.
func toRunRow(c poller.Cycle, instanceID string) runRow {
	sources := make([]string, 0, len(c.Sources))
	failed := make([]string, 0)
	for _, s := range c.Sources {
		sources = append(sources, s.ID)
		if s.Err != nil {
			failed = append(failed, s.ID)
		}
	}

	r := c.Result.Report
	return runRow{
		RunID:         c.RunID.String(),
		InstanceID:    instanceID,
		StartedAt:     c.StartedAt,
		DurationMs:    c.Duration.Milliseconds(),
		Sources:       sources,
		FailedSources: failed,
		Input:         r.Input,
		Output:        r.Output,
		Merged:        r.Merged,
		Dropped:       r.Dropped,
		Orphaned:      r.Orphaned,
		Unmapped:      len(r.Unmapped),
	}
}

// toUnmappedRows converts the unmapped names of a cycle.
func toUnmappedRows(c poller.Cycle) []unmappedRow {
	rows := make([]unmappedRow, 0, len(c.Result.Report.Unmapped))
	for _, u := range c.Result.Report.Unmapped {
		rows = append(rows, unmappedRow{
			Namespace: string(u.Namespace),
			Key:       u.Key,
			Raw:       u.Raw,
			Count:     u.Count,
		})
	}
	return rows
}
