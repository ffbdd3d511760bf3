package model

import (
	"encoding/json"
	"testing"
)

func TestScheduleRecord_DecodeScraperOutput(t *testing.T) {
	data := []byte(`{
  "team1": {"name": "Man Utd", "logo": "https://img/mu.png"},
  "team2": {"name": "Chelsea"},
  "league": "Premier League",
  "sport": "Football",
  "kickoff_date": "2024-05-01",
  "kickoff_time": "20:00",
  "servers": [{"name": "CH 1", "label": "CH-UK", "url": "https://s/1"}]
}`)

	var r ScheduleRecord
	if err := json.Unmarshal(data, &r); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if r.Home.Name != "Man Utd" || r.Home.Logo != "https://img/mu.png" {
		t.Errorf("Home = %+v", r.Home)
	}
	if r.Away.Name != "Chelsea" {
		t.Errorf("Away = %+v", r.Away)
	}
	if r.KickoffDate != "2024-05-01" || r.KickoffTime != "20:00" {
		t.Errorf("kickoff = %q %q", r.KickoffDate, r.KickoffTime)
	}
	if len(r.Servers) != 1 || r.Servers[0].URL != "https://s/1" {
		t.Errorf("Servers = %+v", r.Servers)
	}
}

func TestScheduleRecord_Completeness(t *testing.T) {
	tests := []struct {
		name string
		rec  ScheduleRecord
		want int
	}{
		{name: "empty", rec: ScheduleRecord{}, want: 0},
		{
			name: "names only",
			rec:  ScheduleRecord{Home: Team{Name: "A"}, Away: Team{Name: "B"}, League: "L"},
			want: 0,
		},
		{
			name: "date and time",
			rec:  ScheduleRecord{KickoffDate: "2024-05-01", KickoffTime: "20:00"},
			want: 2,
		},
		{
			name: "blank strings ignored",
			rec:  ScheduleRecord{Sport: "  ", Status: ""},
			want: 0,
		},
		{
			name: "everything",
			rec: ScheduleRecord{
				Home:        Team{Logo: "h"},
				Away:        Team{Logo: "a"},
				Sport:       "Football",
				KickoffDate: "2024-05-01",
				KickoffTime: "20:00",
				Status:      "live",
				StatusDesc:  "1st half",
				Duration:    "2",
				Servers:     []Server{{URL: "u"}},
			},
			want: 9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.Completeness(); got != tt.want {
				t.Errorf("Completeness() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScheduleRecord_Clone(t *testing.T) {
	orig := ScheduleRecord{
		Servers:  []Server{{URL: "a"}},
		Sources:  []string{"x"},
		Metadata: map[string]string{"k": "v"},
	}

	c := orig.Clone()
	c.Servers[0].URL = "changed"
	c.Sources[0] = "changed"
	c.Metadata["k"] = "changed"

	if orig.Servers[0].URL != "a" || orig.Sources[0] != "x" || orig.Metadata["k"] != "v" {
		t.Errorf("Clone shares state with original: %+v", orig)
	}
}

func TestFixtureKey_String(t *testing.T) {
	k := FixtureKey{Home: "manchesterunited", Away: "chelsea", League: "premierleague", Date: "2024-05-01"}
	want := "2024-05-01|premierleague|manchesterunited|chelsea"
	if got := k.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
