package writer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rickgao/fixture-merge/internal/alias"
	"github.com/rickgao/fixture-merge/internal/dedup"
	"github.com/rickgao/fixture-merge/internal/model"
	"github.com/rickgao/fixture-merge/internal/poller"
	"github.com/rickgao/fixture-merge/internal/resolve"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testResolver() *resolve.Resolver {
	store := alias.NewStore(nil, discardLogger())
	store.Apply(alias.NewDocument(
		map[string]string{"manutd": "Manchester United", "spurs": "Tottenham Hotspur"},
		map[string]string{"epl": "Premier League"},
	))
	return resolve.New(store)
}

func testCycle(t *testing.T) poller.Cycle {
	t.Helper()
	records := []model.ScheduleRecord{
		{SourceID: "flashscore", Home: model.Team{Name: "Man Utd"}, Away: model.Team{Name: "Spurs"}, League: "EPL", KickoffDate: "2024-05-01", KickoffTime: "20:00"},
		{SourceID: "adstrim", Home: model.Team{Name: "Manchester United"}, Away: model.Team{Name: "Tottenham Hotspur"}, League: "Premier League", KickoffDate: "01.05.2024"},
		{SourceID: "adstrim", Home: model.Team{Name: "Napoli"}, Away: model.Team{Name: "Roma"}, League: "Serie A", KickoffDate: "2024-05-02"},
	}
	d := dedup.New(testResolver(), dedup.DefaultPolicy())
	return poller.Cycle{
		RunID:     uuid.New(),
		StartedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Duration:  1500 * time.Millisecond,
		Sources: []poller.SourceResult{
			{ID: "flashscore", Records: 1},
			{ID: "adstrim", Records: 2},
			{ID: "streamcenter", Err: errors.New("connection refused")},
		},
		Result: d.Run(records),
	}
}

// fakeDB records every batch and answers Exec from a callback.
type fakeDB struct {
	batches  []*pgx.Batch
	affected func(sql string, n int) int64
	failOn   string
}

func (f *fakeDB) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	f.batches = append(f.batches, b)
	return &fakeResults{db: f, batch: b}
}

func (f *fakeDB) queries(prefix string) []*pgx.QueuedQuery {
	var out []*pgx.QueuedQuery
	for _, b := range f.batches {
		for _, q := range b.QueuedQueries {
			if strings.HasPrefix(strings.TrimSpace(q.SQL), prefix) {
				out = append(out, q)
			}
		}
	}
	return out
}

type fakeResults struct {
	db    *fakeDB
	batch *pgx.Batch
	next  int
}

func (r *fakeResults) Exec() (pgconn.CommandTag, error) {
	q := r.batch.QueuedQueries[r.next]
	r.next++
	if r.db.failOn != "" && strings.Contains(q.SQL, r.db.failOn) {
		return pgconn.CommandTag{}, errors.New("relation does not exist")
	}
	var n int64 = 1
	if r.db.affected != nil {
		n = r.db.affected(q.SQL, len(r.db.queries("INSERT INTO fixtures")))
	}
	return pgconn.NewCommandTag("INSERT 0 " + strconv.FormatInt(n, 10)), nil
}

func (r *fakeResults) Query() (pgx.Rows, error) { return nil, errors.New("not supported") }
func (r *fakeResults) QueryRow() pgx.Row        { return nil }
func (r *fakeResults) Close() error             { return nil }

func TestFixtureWriter_Transform(t *testing.T) {
	c := testCycle(t)
	if len(c.Result.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(c.Result.Records))
	}

	row, err := toFixtureRow(c.Result.Records[0], c.Result.Groups[0].Key)
	if err != nil {
		t.Fatalf("toFixtureRow() error = %v", err)
	}
	if row.FixtureKey != "2024-05-01|premierleague|manchesterunited|tottenhamhotspur" {
		t.Errorf("FixtureKey = %q", row.FixtureKey)
	}
	if row.Home != "Manchester United" || row.Away != "Tottenham Hotspur" || row.League != "Premier League" {
		t.Errorf("canonical names = %q, %q, %q", row.Home, row.Away, row.League)
	}
	if row.MatchDate != "2024-05-01" {
		t.Errorf("MatchDate = %q, want 2024-05-01", row.MatchDate)
	}
	if len(row.Sources) != 2 || row.Sources[0] != "flashscore" || row.Sources[1] != "adstrim" {
		t.Errorf("Sources = %v", row.Sources)
	}
	if !strings.Contains(string(row.Payload), `"team1":{"name":"Man Utd"`) {
		t.Errorf("Payload should keep raw names, got %s", row.Payload)
	}

	run := toRunRow(c, "gatherer-1")
	if run.RunID != c.RunID.String() || run.InstanceID != "gatherer-1" {
		t.Errorf("run ids = %q, %q", run.RunID, run.InstanceID)
	}
	if run.DurationMs != 1500 {
		t.Errorf("DurationMs = %d, want 1500", run.DurationMs)
	}
	if len(run.Sources) != 3 || len(run.FailedSources) != 1 || run.FailedSources[0] != "streamcenter" {
		t.Errorf("sources = %v failed = %v", run.Sources, run.FailedSources)
	}
	if run.Input != 3 || run.Output != 2 || run.Merged != 1 {
		t.Errorf("counts = %+v", run)
	}
	if run.Unmapped != 3 {
		t.Errorf("Unmapped = %d, want 3", run.Unmapped)
	}
}

func TestFixtureWriter_HandleCycle(t *testing.T) {
	c := testCycle(t)
	db := &fakeDB{
		// The second fixture is already current.
		affected: func(sql string, n int) int64 {
			if strings.Contains(sql, "INSERT INTO fixtures") && n == 2 {
				return 0
			}
			return 1
		},
	}
	w := NewFixtureWriter(WriterConfig{BatchSize: 1, InstanceID: "gatherer-1"}, db, discardLogger())

	if err := w.HandleCycle(context.Background(), c); err != nil {
		t.Fatalf("HandleCycle() error = %v", err)
	}

	// Two single-row fixture batches, then unmapped names plus the run row.
	if len(db.batches) != 3 {
		t.Fatalf("batches = %d, want 3", len(db.batches))
	}
	if got := len(db.queries("INSERT INTO fixtures")); got != 2 {
		t.Errorf("fixture upserts = %d, want 2", got)
	}
	if got := len(db.queries("INSERT INTO unmapped_names")); got != len(c.Result.Report.Unmapped) {
		t.Errorf("unmapped upserts = %d, want %d", got, len(c.Result.Report.Unmapped))
	}

	runs := db.queries("INSERT INTO runs")
	if len(runs) != 1 {
		t.Fatalf("run inserts = %d, want 1", len(runs))
	}
	if runs[0].Arguments[0] != c.RunID.String() {
		t.Errorf("run_id arg = %v, want %s", runs[0].Arguments[0], c.RunID)
	}

	stats := w.Stats()
	if stats.Upserts != 1 || stats.Unchanged != 1 || stats.Runs != 1 || stats.Errors != 0 {
		t.Errorf("Stats() = %+v", stats)
	}
}

func TestFixtureWriter_HandleCycle_Error(t *testing.T) {
	c := testCycle(t)
	db := &fakeDB{failOn: "INSERT INTO runs"}
	w := NewFixtureWriter(DefaultWriterConfig(), db, discardLogger())

	err := w.HandleCycle(context.Background(), c)
	if err == nil || !strings.Contains(err.Error(), "insert run") {
		t.Fatalf("HandleCycle() error = %v, want insert run failure", err)
	}
	if stats := w.Stats(); stats.Errors != 1 || stats.Runs != 0 {
		t.Errorf("Stats() = %+v", stats)
	}
}

func TestFixtureWriter_EmptyCycle(t *testing.T) {
	db := &fakeDB{}
	w := NewFixtureWriter(DefaultWriterConfig(), db, nil)

	c := poller.Cycle{RunID: uuid.New(), StartedAt: time.Now()}
	if err := w.HandleCycle(context.Background(), c); err != nil {
		t.Fatalf("HandleCycle() error = %v", err)
	}
	if len(db.batches) != 1 || len(db.queries("INSERT INTO runs")) != 1 {
		t.Errorf("empty cycle should write only the run row, got %d batches", len(db.batches))
	}
}

func TestDefaultWriterConfig(t *testing.T) {
	cfg := DefaultWriterConfig()
	if cfg.BatchSize != 500 {
		t.Errorf("BatchSize = %d, want 500", cfg.BatchSize)
	}
	w := NewFixtureWriter(WriterConfig{}, &fakeDB{}, nil)
	if w.cfg.BatchSize != 500 {
		t.Errorf("zero BatchSize should default, got %d", w.cfg.BatchSize)
	}
}

func testCycleEmpty() poller.Cycle {
	return poller.Cycle{RunID: uuid.New(), StartedAt: time.Now()}
}
