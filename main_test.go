package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrab54/sleeper-db/internal/errors"
)

func resetCLI(t *testing.T) {
	t.Helper()
	saved := CLI
	t.Cleanup(func() { CLI = saved })

	CLI.League = ""
	CLI.Config = ""
	CLI.Output = ""
	CLI.BaseURL = ""
	CLI.MaxDepth = -1
	CLI.Weeks = nil
	CLI.TxWeeks = nil
	CLI.Quiet = true
	CLI.Version = false
}

func fakeSleeper(t *testing.T) *httptest.Server {
	t.Helper()

	respond := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/league/123/users", respond(`[{"user_id":"u1","display_name":"alice"}]`))
	mux.HandleFunc("/league/123/rosters", respond(`[{"roster_id":1,"owner_id":"u1","players":["p1"],"starters":["p1"]}]`))
	mux.HandleFunc("/league/123/matchups/", respond(`[{"roster_id":1,"matchup_id":1,"points":90.1}]`))
	mux.HandleFunc("/league/123/transactions/", respond(`[{"transaction_id":"t1","type":"waiver"}]`))
	mux.HandleFunc("/league/123/winners_bracket", respond(`[]`))
	mux.HandleFunc("/league/123/losers_bracket", respond(`[]`))
	mux.HandleFunc("/league/123/traded_picks", respond(`[]`))
	mux.HandleFunc("/league/123", respond(`{"league_id":"123","name":"Test League","sport":"nfl","season":"2025","draft_id":"d1"}`))
	mux.HandleFunc("/user/u1/leagues/nfl/2025", respond(`[{"league_id":"123"}]`))
	mux.HandleFunc("/user/u1", respond(`{"user_id":"u1","username":"alice"}`))
	mux.HandleFunc("/draft/d1/picks", respond(`[{"pick_no":1,"player_id":"p1"}]`))
	mux.HandleFunc("/draft/d1", respond(`{"draft_id":"d1","status":"complete"}`))
	mux.HandleFunc("/players/nfl/trending/add", respond(`[{"player_id":"p9","count":12}]`))
	mux.HandleFunc("/state/nfl", respond(`{"week":3,"season":"2025"}`))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLoadConfig_FlagsOverrideDefaults(t *testing.T) {
	resetCLI(t)
	CLI.League = "123"
	CLI.Output = "out"
	CLI.BaseURL = "http://example.test"
	CLI.MaxDepth = 4
	CLI.Weeks = []int{2, 3}
	CLI.TxWeeks = []int{6}

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, "123", cfg.LeagueID)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, "http://example.test", cfg.BaseURL)
	assert.Equal(t, 4, cfg.MaxDepth)
	assert.Equal(t, []int{2, 3}, cfg.MatchupWeeks)
	assert.Equal(t, []int{6}, cfg.TransactionWeeks)
}

func TestLoadConfig_FromFile(t *testing.T) {
	resetCLI(t)
	path := filepath.Join(t.TempDir(), "sleeper-db.yml")
	require.NoError(t, os.WriteFile(path, []byte("league_id: \"555\"\nmax_depth: 2\n"), 0o644))
	CLI.Config = path

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "555", cfg.LeagueID)
	assert.Equal(t, 2, cfg.MaxDepth)
}

func TestLoadConfig_FlagBeatsFile(t *testing.T) {
	resetCLI(t)
	path := filepath.Join(t.TempDir(), "sleeper-db.yml")
	require.NoError(t, os.WriteFile(path, []byte("league_id: \"555\"\n"), 0o644))
	CLI.Config = path
	CLI.League = "777"

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "777", cfg.LeagueID)
}

func TestLoadConfig_RequiresLeague(t *testing.T) {
	resetCLI(t)

	_, err := loadConfig()
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNoLeague)
}

func TestRun_WritesArtifacts(t *testing.T) {
	resetCLI(t)
	srv := fakeSleeper(t)
	outDir := filepath.Join(t.TempDir(), "research")

	CLI.League = "123"
	CLI.BaseURL = srv.URL
	CLI.Output = outDir

	cfg, err := loadConfig()
	require.NoError(t, err)
	require.NoError(t, run(cfg))

	md, err := os.ReadFile(filepath.Join(outDir, "api-analysis.md"))
	require.NoError(t, err)
	assert.Contains(t, string(md), "# Sleeper API Analysis Report")
	assert.Contains(t, string(md), "League ID: 123")
	assert.Contains(t, string(md), "### Matchups Week 1")

	raw, err := os.ReadFile(filepath.Join(outDir, "api-analysis-raw.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"rate_limit_analysis"`)
	assert.Contains(t, string(raw), `"api_calls"`)

	sample, err := os.ReadFile(filepath.Join(outDir, "sample_league.json"))
	require.NoError(t, err)
	assert.Contains(t, string(sample), `"league_id": "123"`)
}

func TestRun_SurfacesFetchFailure(t *testing.T) {
	resetCLI(t)

	CLI.League = "123"
	CLI.BaseURL = "http://127.0.0.1:1"
	CLI.Output = t.TempDir()

	cfg, err := loadConfig()
	require.NoError(t, err)

	// endpoint failures are recorded, not fatal
	require.NoError(t, run(cfg))
}
