// Package survey drives the sequential endpoint sweep against one Sleeper
// league: fetch, probe, analyze, and collect samples for the report.
package survey

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mrab54/sleeper-db/internal/api"
	"github.com/mrab54/sleeper-db/internal/errors"
	"github.com/mrab54/sleeper-db/internal/models"
	"github.com/mrab54/sleeper-db/internal/prober"
)

// Options configures a survey run.
type Options struct {
	LeagueID         string
	MatchupWeeks     []int
	TransactionWeeks []int
	MaxDepth         int
	SampleSize       int
	FallbackSport    string
	FallbackSeason   string
	// Progress receives the per-call progress lines. Defaults to
	// io.Discard when nil.
	Progress io.Writer
}

// Result is the recorded outcome for one endpoint: the decoded response,
// its probed structure, and any endpoint-specific analysis.
type Result struct {
	Name      string
	Data      models.Value
	Structure *prober.Descriptor
	Count     int
	HasCount  bool
	Analysis  models.Object
}

// Sample is a response excerpt destined for a sample_<name>.json file.
type Sample struct {
	Name string
	Data models.Value
}

// Results is the full outcome of one survey run. Endpoints appear in
// request order, which the report preserves.
type Results struct {
	LeagueID  string
	StartedAt time.Time
	Endpoints []Result
	Samples   []Sample
	Calls     []api.CallRecord
}

// Runner executes the sweep. Calls are strictly sequential and single
// attempt; a failed endpoint is recorded in the call log and skipped, and
// the prober is never invoked on a failed fetch.
type Runner struct {
	client *api.Client
	opts   Options
}

// NewRunner creates a Runner, filling unset options with the defaults the
// tool has always used (weeks 1/8/15 for matchups, 1/5/10 for
// transactions, probe depth 3, two-element samples).
func NewRunner(client *api.Client, opts Options) *Runner {
	if opts.MatchupWeeks == nil {
		opts.MatchupWeeks = []int{1, 8, 15}
	}
	if opts.TransactionWeeks == nil {
		opts.TransactionWeeks = []int{1, 5, 10}
	}
	if opts.MaxDepth == 0 {
		opts.MaxDepth = prober.DefaultMaxDepth
	}
	if opts.SampleSize == 0 {
		opts.SampleSize = 2
	}
	if opts.FallbackSport == "" {
		opts.FallbackSport = "nfl"
	}
	if opts.FallbackSeason == "" {
		opts.FallbackSeason = "2024"
	}
	if opts.Progress == nil {
		opts.Progress = io.Discard
	}
	return &Runner{client: client, opts: opts}
}

type fetchFunc func(context.Context) (models.Value, *api.CallRecord, error)

// Run sweeps every endpoint the tool knows about and returns the
// accumulated results. Identifiers discovered along the way (sport,
// season, draft id, user ids) feed the later calls, exactly like the
// original sweep.
func (r *Runner) Run(ctx context.Context) (*Results, error) {
	if r.opts.LeagueID == "" {
		return nil, errors.NewSurveyError("league id is required", errors.ErrNoLeague)
	}

	out := &Results{LeagueID: r.opts.LeagueID, StartedAt: time.Now()}
	leagueID := r.opts.LeagueID

	sport := r.opts.FallbackSport
	season := r.opts.FallbackSeason
	var draftID string
	var userIDs []string

	r.section("TESTING LEAGUE ENDPOINTS")

	if league, ok := r.fetch(ctx, func(ctx context.Context) (models.Value, *api.CallRecord, error) {
		return r.client.League(ctx, leagueID)
	}); ok {
		out.Endpoints = append(out.Endpoints, r.result("league", league))
		if obj, isObj := league.(models.Object); isObj {
			sport = obj.StringField("sport", sport)
			season = obj.StringField("season", season)
			draftID = obj.StringField("draft_id", "")
		}
		out.addSample("league", league, 0)
	}

	if users, ok := r.fetch(ctx, func(ctx context.Context) (models.Value, *api.CallRecord, error) {
		return r.client.LeagueUsers(ctx, leagueID)
	}); ok {
		out.Endpoints = append(out.Endpoints, r.result("users", users))
		if arr, isArr := users.(models.Array); isArr {
			for _, elem := range arr {
				if obj, isObj := elem.(models.Object); isObj {
					if id := obj.StringField("user_id", ""); id != "" {
						userIDs = append(userIDs, id)
					}
				}
			}
		}
		out.addSample("users", users, r.opts.SampleSize)
	}

	if rosters, ok := r.fetch(ctx, func(ctx context.Context) (models.Value, *api.CallRecord, error) {
		return r.client.LeagueRosters(ctx, leagueID)
	}); ok {
		res := r.result("rosters", rosters)
		if arr, isArr := rosters.(models.Array); isArr {
			res.Analysis = rosterAnalysis(arr)
		}
		out.Endpoints = append(out.Endpoints, res)
		out.addSample("rosters", rosters, r.opts.SampleSize)
	}

	r.section("TESTING MATCHUP ENDPOINTS")

	matchupsSampled := false
	for _, week := range r.opts.MatchupWeeks {
		week := week
		matchups, ok := r.fetch(ctx, func(ctx context.Context) (models.Value, *api.CallRecord, error) {
			return r.client.Matchups(ctx, leagueID, week)
		})
		if !ok {
			continue
		}
		res := r.result(fmt.Sprintf("matchups_week_%d", week), matchups)
		if arr, isArr := matchups.(models.Array); isArr {
			res.Analysis = matchupAnalysis(arr)
		}
		out.Endpoints = append(out.Endpoints, res)
		if !matchupsSampled {
			out.addSample("matchups", matchups, r.opts.SampleSize)
			matchupsSampled = true
		}
	}

	r.section("TESTING TRANSACTION ENDPOINTS")

	transactionsSampled := false
	for _, week := range r.opts.TransactionWeeks {
		week := week
		transactions, ok := r.fetch(ctx, func(ctx context.Context) (models.Value, *api.CallRecord, error) {
			return r.client.Transactions(ctx, leagueID, week)
		})
		if !ok {
			continue
		}
		res := r.result(fmt.Sprintf("transactions_week_%d", week), transactions)
		if arr, isArr := transactions.(models.Array); isArr {
			res.Analysis = models.Object{{Key: "types", Value: transactionTypes(arr)}}
		}
		out.Endpoints = append(out.Endpoints, res)
		if arr, isArr := transactions.(models.Array); isArr && len(arr) > 0 && !transactionsSampled {
			out.addSample(fmt.Sprintf("transactions_week_%d", week), transactions, r.opts.SampleSize)
			transactionsSampled = true
		}
	}

	if bracket, ok := r.fetch(ctx, func(ctx context.Context) (models.Value, *api.CallRecord, error) {
		return r.client.WinnersBracket(ctx, leagueID)
	}); ok {
		out.Endpoints = append(out.Endpoints, r.result("winners_bracket", bracket))
		out.addSample("winners_bracket", bracket, r.opts.SampleSize)
	}

	if bracket, ok := r.fetch(ctx, func(ctx context.Context) (models.Value, *api.CallRecord, error) {
		return r.client.LosersBracket(ctx, leagueID)
	}); ok {
		out.Endpoints = append(out.Endpoints, r.result("losers_bracket", bracket))
	}

	if picks, ok := r.fetch(ctx, func(ctx context.Context) (models.Value, *api.CallRecord, error) {
		return r.client.TradedPicks(ctx, leagueID)
	}); ok {
		out.Endpoints = append(out.Endpoints, r.result("traded_picks", picks))
	}

	r.section("TESTING USER ENDPOINTS")

	if len(userIDs) > 0 {
		userID := userIDs[0]
		if detail, ok := r.fetch(ctx, func(ctx context.Context) (models.Value, *api.CallRecord, error) {
			return r.client.User(ctx, userID)
		}); ok {
			out.Endpoints = append(out.Endpoints, r.result("user_detail", detail))
		}
		if leagues, ok := r.fetch(ctx, func(ctx context.Context) (models.Value, *api.CallRecord, error) {
			return r.client.UserLeagues(ctx, userID, sport, season)
		}); ok {
			out.Endpoints = append(out.Endpoints, r.result("user_leagues", leagues))
		}
	}

	r.section("TESTING DRAFT ENDPOINTS")

	if draftID != "" {
		if draft, ok := r.fetch(ctx, func(ctx context.Context) (models.Value, *api.CallRecord, error) {
			return r.client.Draft(ctx, draftID)
		}); ok {
			out.Endpoints = append(out.Endpoints, r.result("draft_detail", draft))
			out.addSample("draft", draft, 0)
		}
		if picks, ok := r.fetch(ctx, func(ctx context.Context) (models.Value, *api.CallRecord, error) {
			return r.client.DraftPicks(ctx, draftID)
		}); ok {
			res := r.result("draft_picks", picks)
			// keep the stored data to the first 10 picks, the full
			// length survives in Count
			if arr, isArr := picks.(models.Array); isArr && len(arr) > 10 {
				res.Data = arr[:10]
			}
			out.Endpoints = append(out.Endpoints, res)
			out.addSample("draft_picks", picks, 5)
		}
	}

	r.section("TESTING PLAYERS ENDPOINT")
	fmt.Fprintln(r.opts.Progress, "\nNOTE: Skipping full players endpoint due to size (would return 5000+ players)")
	fmt.Fprintln(r.opts.Progress, "Testing the smaller trending players endpoint instead")

	if trending, ok := r.fetch(ctx, func(ctx context.Context) (models.Value, *api.CallRecord, error) {
		return r.client.TrendingPlayers(ctx, sport, "add")
	}); ok {
		res := r.result("trending_players", trending)
		if arr, isArr := trending.(models.Array); isArr && len(arr) > 10 {
			res.Data = arr[:10]
		}
		out.Endpoints = append(out.Endpoints, res)
	}

	if state, ok := r.fetch(ctx, func(ctx context.Context) (models.Value, *api.CallRecord, error) {
		return r.client.SportState(ctx, sport)
	}); ok {
		name := fmt.Sprintf("%s_state", sport)
		out.Endpoints = append(out.Endpoints, r.result(name, state))
		out.addSample(name, state, 0)
	}

	out.Calls = r.client.Calls()
	return out, nil
}

// fetch runs one call, reports progress, and tells the caller whether the
// response is usable.
func (r *Runner) fetch(ctx context.Context, call fetchFunc) (models.Value, bool) {
	value, record, err := call(ctx)
	r.reportCall(record, value, err)
	if err != nil {
		return nil, false
	}
	return value, true
}

// result probes data and fills in the count for list responses.
func (r *Runner) result(name string, data models.Value) Result {
	res := Result{
		Name:      name,
		Data:      data,
		Structure: prober.Probe(data, r.opts.MaxDepth, 0),
	}
	if arr, ok := data.(models.Array); ok {
		res.Count = len(arr)
		res.HasCount = true
	}
	return res
}

// addSample records an excerpt of data under name. A limit of zero keeps
// the whole value; list responses longer than the limit are cut down.
func (out *Results) addSample(name string, data models.Value, limit int) {
	if arr, ok := data.(models.Array); ok && limit > 0 && len(arr) > limit {
		data = arr[:limit]
	}
	out.Samples = append(out.Samples, Sample{Name: name, Data: data})
}

func (r *Runner) section(title string) {
	line := strings.Repeat("=", 80)
	fmt.Fprintf(r.opts.Progress, "\n%s\n%s\n%s\n", line, title, line)
}

func (r *Runner) reportCall(record *api.CallRecord, value models.Value, err error) {
	w := r.opts.Progress
	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 60))
	fmt.Fprintf(w, "Testing: %s\n", record.Description)
	fmt.Fprintf(w, "Endpoint: %s\n", record.Endpoint)

	if record.Error != "" {
		fmt.Fprintf(w, "Error: %s\n", record.Error)
		return
	}
	fmt.Fprintf(w, "Status: %d\n", record.StatusCode)
	fmt.Fprintf(w, "Response Time: %.3fs\n", record.Elapsed)
	fmt.Fprintf(w, "Response Size: %d bytes\n", record.ResponseSize)
	if err != nil {
		fmt.Fprintf(w, "Error: %s\n", err)
		return
	}

	switch v := value.(type) {
	case models.Array:
		fmt.Fprintf(w, "Data Type: array\n")
		fmt.Fprintf(w, "Items Count: %d\n", len(v))
	case models.Object:
		keys := v.Keys()
		if len(keys) > 10 {
			keys = keys[:10]
		}
		fmt.Fprintf(w, "Data Type: object\n")
		fmt.Fprintf(w, "Keys: %s...\n", strings.Join(keys, ", "))
	default:
		fmt.Fprintf(w, "Data Type: %s\n", prober.TypeName(value))
	}
}
