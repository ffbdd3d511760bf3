package dedup

import (
	"testing"

	"github.com/rickgao/fixture-merge/internal/model"
)

func TestApplyDisplayNames(t *testing.T) {
	r := testResolver(
		map[string]string{"manutd": "Manchester United"},
		map[string]string{"epl": "Premier League"},
	)

	in := []model.ScheduleRecord{
		fixture("a", "Man Utd", "SSC Napoli", "EPL", "2024-05-01"),
		fixture("a", "", "Chelsea", "uefa champions league", "2024-05-01"),
	}

	out := ApplyDisplayNames(in, r)

	if out[0].Home.Name != "Manchester United" || out[0].Away.Name != "SSC Napoli" || out[0].League != "Premier League" {
		t.Errorf("out[0] = %+v", out[0])
	}
	if out[1].Home.Name != "" || out[1].League != "Uefa Champions League" {
		t.Errorf("out[1] = %+v", out[1])
	}
	if in[0].Home.Name != "Man Utd" {
		t.Error("input records modified")
	}
}
