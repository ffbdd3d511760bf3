package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rickgao/fixture-merge/internal/alias"
)

const testAliases = `{
  "_comment": "test table",
  "team_aliases": {
    "manutd": "Manchester United",
    "spurs": "Tottenham Hotspur"
  },
  "league_aliases": {
    "epl": "Premier League"
  }
}
`

// run executes the root command with args and returns its output. Flag
// variables are package globals, so they are reset first.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cfgFile, aliasFile, output, verbose = "", "", "table", false
	resolveLeague, checkStrict, formatWrite, importDryRun = false, false, false, false

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeAliases(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manual_mapping.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNormalizeCommand(t *testing.T) {
	out, err := run(t, "normalize", "Gérone FC", "Man Utd")
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	for _, want := range []string{"geronefc", "gerone-fc", "manutd", "man-utd"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestResolveCommand(t *testing.T) {
	path := writeAliases(t, testAliases)

	out, err := run(t, "resolve", "-a", path, "-o", "json", "Man Utd", "Napoli")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	var rows []struct {
		Raw       string `json:"raw"`
		Canonical string `json:"canonical"`
		Mapped    bool   `json:"mapped"`
	}
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Canonical != "Manchester United" || !rows[0].Mapped {
		t.Errorf("rows[0] = %+v", rows[0])
	}
	if rows[1].Canonical != "napoli" || rows[1].Mapped {
		t.Errorf("rows[1] = %+v", rows[1])
	}

	out, err = run(t, "resolve", "-a", path, "--league", "EPL")
	if err != nil {
		t.Fatalf("resolve --league: %v", err)
	}
	if !strings.Contains(out, "Premier League") {
		t.Errorf("league output = %s", out)
	}
}

func TestCheckCommand(t *testing.T) {
	t.Run("clean file", func(t *testing.T) {
		path := writeAliases(t, testAliases)
		out, err := run(t, "check", "-a", path, "--strict")
		if err != nil {
			t.Fatalf("check: %v", err)
		}
		if !strings.Contains(out, "teams:   2 entries") {
			t.Errorf("output = %s", out)
		}
	})

	t.Run("conflict fails strict", func(t *testing.T) {
		path := writeAliases(t, `{"team_aliases": {"Man Utd": "Manchester United", "manutd": "Man United"}}`)

		out, err := run(t, "check", "-a", path)
		if err != nil {
			t.Fatalf("non-strict check should pass: %v", err)
		}
		if !strings.Contains(out, "conflict:") {
			t.Errorf("output missing conflict:\n%s", out)
		}

		_, err = run(t, "check", "-a", path, "--strict")
		if !errors.Is(err, errCheckFailed) {
			t.Errorf("strict err = %v, want errCheckFailed", err)
		}
	})

	t.Run("syntax error", func(t *testing.T) {
		path := writeAliases(t, "{\n  \"team_aliases\": {\n    \"a\": \"A\",,\n  }\n}\n")
		_, err := run(t, "check", "-a", path)
		if !errors.Is(err, alias.ErrConfigParse) {
			t.Errorf("err = %v, want ErrConfigParse", err)
		}
	})
}

func TestFormatCommand(t *testing.T) {
	path := writeAliases(t, `{"league_aliases": {"epl": "Premier League"}, "team_aliases": {"spurs": "Tottenham Hotspur", "manutd": "Manchester United"}, "_comment": "x"}`)

	out, err := run(t, "format", "-a", path)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if !strings.HasPrefix(out, "{\n  \"_comment\"") {
		t.Errorf("formatted output should start with _comment:\n%s", out)
	}
	if strings.Index(out, "manutd") > strings.Index(out, "spurs") {
		t.Errorf("entries not sorted by canonical name:\n%s", out)
	}

	if _, err := run(t, "format", "-a", path, "--write"); err != nil {
		t.Fatalf("format --write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != out {
		t.Errorf("written file differs from printed output:\n%s", data)
	}
}

func TestFormatCommand_RejectsYAMLWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.yaml")
	if err := os.WriteFile(path, []byte("team_aliases:\n  manutd: Manchester United\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "format", "-a", path, "--write"); err == nil {
		t.Fatal("expected error rewriting a YAML file")
	}
}

func TestImportTeamsCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-apisports-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		if r.URL.Query().Get("league") != "39" || r.URL.Query().Get("season") != "2023" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"errors": [], "response": [
			{"team": {"id": 33, "name": "Manchester United"}},
			{"team": {"id": 47, "name": "Tottenham"}},
			{"team": {"id": 42, "name": "Arsenal"}}
		]}`))
	}))
	defer server.Close()

	aliasPath := writeAliases(t, testAliases)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	cfgYAML := "football_api:\n  base_url: " + server.URL + "\n  api_key: ${ALIASCTL_TEST_KEY}\n  max_retries: 0\n"
	if err := os.WriteFile(cfgPath, []byte(cfgYAML), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ALIASCTL_TEST_KEY", "test-key")

	out, err := run(t, "import-teams", "-c", cfgPath, "-a", aliasPath, "39", "2023")
	if err != nil {
		t.Fatalf("import-teams: %v", err)
	}
	// manchesterunited exists as an identity of a canonical name only, so
	// it is added along with tottenham and arsenal.
	if !strings.Contains(out, "Added 3 new teams, updated 0 existing teams.") {
		t.Errorf("output = %s", out)
	}

	doc, err := alias.LoadFile(aliasPath)
	if err != nil {
		t.Fatalf("reload alias file: %v", err)
	}
	if len(doc.Teams) != 5 {
		t.Errorf("teams = %d, want 5", len(doc.Teams))
	}
}

func TestImportTeamsCommand_BadArgs(t *testing.T) {
	if _, err := run(t, "import-teams", "premier"); err == nil {
		t.Error("expected error for non-numeric league id")
	}
}

func TestSearchTeamsCommand_NoKey(t *testing.T) {
	t.Setenv("API_FOOTBALL_KEY", "")
	_, err := run(t, "search-teams", "arsenal")
	if err == nil || !strings.Contains(err.Error(), "API_FOOTBALL_KEY") {
		t.Errorf("err = %v, want missing key error", err)
	}
}

func TestSearchLeaguesCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors": [], "response": [
			{"league": {"id": 279, "name": "Liga 1", "type": "League"}, "country": {"name": "Indonesia"}}
		]}`))
	}))
	defer server.Close()

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("football_api:\n  base_url: "+server.URL+"\n  api_key: k\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "search-leagues", "-c", cfgPath, "liga", "1")
	if err != nil {
		t.Fatalf("search-leagues: %v", err)
	}
	if !strings.Contains(out, "279") || !strings.Contains(out, "Indonesia") {
		t.Errorf("output = %s", out)
	}
}

func TestUnmappedCommand(t *testing.T) {
	aliasPath := writeAliases(t, testAliases)
	dir := t.TempDir()
	sched := `[
	  {"team1": {"name": "Man Utd"}, "team2": {"name": "Napoli"}, "league": "Friendlies", "kickoff_date": "2024-05-01"},
	  {"team1": {"name": "Napoli"}, "team2": {"name": "Spurs"}, "league": "EPL", "kickoff_date": "2024-05-02"}
	]`
	path := filepath.Join(dir, "flashscore.json")
	if err := os.WriteFile(path, []byte(sched), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "unmapped", "-a", aliasPath, path)
	if err != nil {
		t.Fatalf("unmapped: %v", err)
	}
	lines := strings.Split(out, "\n")
	if len(lines) < 3 || !strings.Contains(lines[1], "napoli") {
		t.Errorf("most frequent name should be first:\n%s", out)
	}
	if !strings.Contains(out, "friendlies") {
		t.Errorf("league name missing:\n%s", out)
	}
}

func TestCurrentSeason(t *testing.T) {
	tests := []struct {
		date time.Time
		want int
	}{
		{time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC), 2024},
		{time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), 2024},
		{time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), 2025},
	}
	for _, tt := range tests {
		if got := currentSeason(tt.date); got != tt.want {
			t.Errorf("currentSeason(%s) = %d, want %d", tt.date.Format("2006-01-02"), got, tt.want)
		}
	}
}
