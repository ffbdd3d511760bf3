package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rickgao/fixture-merge/internal/alias"
	"github.com/rickgao/fixture-merge/internal/dedup"
	"github.com/rickgao/fixture-merge/internal/poller"
	"github.com/rickgao/fixture-merge/internal/resolve"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read scrape: %v", err)
	}
	return string(body)
}

func TestHandleCycle(t *testing.T) {
	m := New()

	c := poller.Cycle{
		RunID:    uuid.New(),
		Duration: 2 * time.Second,
		Sources: []poller.SourceResult{
			{ID: "flashscore", Records: 12, Duration: 300 * time.Millisecond},
			{ID: "adstrim", Err: errors.New("timeout"), Duration: time.Second},
		},
		Result: dedup.Result{Report: dedup.Report{
			Input:  12,
			Output: 9,
			Merged: 3,
			Unmapped: []resolve.UnmappedName{
				{Namespace: alias.Teams, Key: "napoli", Raw: "Napoli", Count: 1},
				{Namespace: alias.Teams, Key: "roma", Raw: "Roma", Count: 2},
			},
		}},
	}
	if err := m.HandleCycle(context.Background(), c); err != nil {
		t.Fatalf("HandleCycle() error = %v", err)
	}

	body := scrape(t, m)
	for _, want := range []string{
		`fixture_merge_cycles_total{result="partial"} 1`,
		`fixture_merge_source_records{source="flashscore"} 12`,
		`fixture_merge_source_errors_total{source="adstrim"} 1`,
		`fixture_merge_records_in 12`,
		`fixture_merge_fixtures 9`,
		`fixture_merge_records_merged 3`,
		`fixture_merge_unmapped_names{namespace="team"} 2`,
		`fixture_merge_unmapped_names{namespace="league"} 0`,
		`fixture_merge_cycle_duration_seconds_count 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("scrape missing %q", want)
		}
	}
	if strings.Contains(body, `fixture_merge_source_records{source="adstrim"}`) {
		t.Error("failed source should not report a record count")
	}
}

func TestObserveReload(t *testing.T) {
	m := New()

	m.ObserveReload(alias.Result{Teams: 40, Leagues: 8, Conflicts: make([]alias.Conflict, 2)}, nil)
	m.ObserveReload(alias.Result{}, errors.New("config missing"))

	body := scrape(t, m)
	for _, want := range []string{
		`fixture_merge_alias_reloads_total{result="ok"} 1`,
		`fixture_merge_alias_reloads_total{result="error"} 1`,
		`fixture_merge_alias_entries{namespace="team"} 0`,
		`fixture_merge_alias_conflicts 0`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("scrape missing %q", want)
		}
	}
}

func TestNew_SeparateRegistries(t *testing.T) {
	a, b := New(), New()
	if a.Registry() == b.Registry() {
		t.Fatal("each Metrics should own its registry")
	}
	if !strings.Contains(scrape(t, a), "go_goroutines") {
		t.Error("runtime collector not registered")
	}
}
