// Package api is a thin read-only client for the public Sleeper fantasy
// API. Every request is a single GET attempt with no retries and no rate
// limiting; the point of the tool is to observe the API's raw behavior,
// so responses are decoded into the ordered value model rather than typed
// structs, and every call is appended to an in-order call log.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mrab54/sleeper-db/internal/errors"
	"github.com/mrab54/sleeper-db/internal/models"
	"github.com/mrab54/sleeper-db/internal/parser"
)

// DefaultBaseURL is the public Sleeper API root.
const DefaultBaseURL = "https://api.sleeper.app/v1"

// DefaultTimeout bounds a single request.
const DefaultTimeout = 30 * time.Second

// CallRecord captures timing and size metadata for one API call.
type CallRecord struct {
	Endpoint     string    `json:"endpoint"`
	Description  string    `json:"description"`
	StatusCode   int       `json:"status_code,omitempty"`
	Elapsed      float64   `json:"elapsed_time"`
	Timestamp    time.Time `json:"timestamp"`
	ResponseSize int       `json:"response_size"`
	Error        string    `json:"error,omitempty"`
}

// Options configures a Client. Zero values fall back to the defaults.
type Options struct {
	BaseURL string
	Timeout time.Duration
}

// Client issues GET requests against the Sleeper API and records a
// CallRecord for each one, successful or not.
type Client struct {
	http  *resty.Client
	calls []CallRecord
}

// NewClient creates a Sleeper API client.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseURL)
	client.SetTimeout(opts.Timeout)
	client.SetHeader("Accept", "application/json")

	return &Client{http: client}
}

// Get performs one GET against endpoint, decodes the JSON body and
// appends a record to the call log. The record is returned alongside the
// decoded value so callers can report progress; on failure the record
// carries the error and the value is nil.
func (c *Client) Get(ctx context.Context, endpoint, description string) (models.Value, *CallRecord, error) {
	start := time.Now()
	res, err := c.http.R().
		SetContext(ctx).
		Get(endpoint)
	elapsed := time.Since(start)

	record := CallRecord{
		Endpoint:    endpoint,
		Description: description,
		Elapsed:     elapsed.Seconds(),
		Timestamp:   time.Now(),
	}

	if err != nil {
		record.Error = err.Error()
		c.calls = append(c.calls, record)
		return nil, &record, errors.NewFetchError(fmt.Sprintf("GET %s failed", endpoint), err)
	}

	record.StatusCode = res.StatusCode()
	record.ResponseSize = len(res.Body())
	c.calls = append(c.calls, record)

	if res.StatusCode() != http.StatusOK {
		return nil, &record, errors.NewFetchError(
			fmt.Sprintf("GET %s returned status %d", endpoint, res.StatusCode()),
			errors.ErrBadStatus,
		)
	}

	value, err := parser.ParseBytes(res.Body())
	if err != nil {
		return nil, &record, err
	}
	return value, &record, nil
}

// Calls returns a copy of the call log in request order.
func (c *Client) Calls() []CallRecord {
	out := make([]CallRecord, len(c.calls))
	copy(out, c.calls)
	return out
}

// League fetches league information.
func (c *Client) League(ctx context.Context, leagueID string) (models.Value, *CallRecord, error) {
	return c.Get(ctx, fmt.Sprintf("/league/%s", leagueID), "Get League Details")
}

// LeagueUsers fetches all users in a league.
func (c *Client) LeagueUsers(ctx context.Context, leagueID string) (models.Value, *CallRecord, error) {
	return c.Get(ctx, fmt.Sprintf("/league/%s/users", leagueID), "Get League Users")
}

// LeagueRosters fetches all rosters in a league.
func (c *Client) LeagueRosters(ctx context.Context, leagueID string) (models.Value, *CallRecord, error) {
	return c.Get(ctx, fmt.Sprintf("/league/%s/rosters", leagueID), "Get League Rosters")
}

// Matchups fetches matchups for a specific week.
func (c *Client) Matchups(ctx context.Context, leagueID string, week int) (models.Value, *CallRecord, error) {
	return c.Get(ctx,
		fmt.Sprintf("/league/%s/matchups/%d", leagueID, week),
		fmt.Sprintf("Get Matchups Week %d", week))
}

// Transactions fetches transactions for a specific week.
func (c *Client) Transactions(ctx context.Context, leagueID string, week int) (models.Value, *CallRecord, error) {
	return c.Get(ctx,
		fmt.Sprintf("/league/%s/transactions/%d", leagueID, week),
		fmt.Sprintf("Get Transactions Week %d", week))
}

// WinnersBracket fetches the playoff winners bracket.
func (c *Client) WinnersBracket(ctx context.Context, leagueID string) (models.Value, *CallRecord, error) {
	return c.Get(ctx, fmt.Sprintf("/league/%s/winners_bracket", leagueID), "Get Winners Bracket")
}

// LosersBracket fetches the playoff losers bracket.
func (c *Client) LosersBracket(ctx context.Context, leagueID string) (models.Value, *CallRecord, error) {
	return c.Get(ctx, fmt.Sprintf("/league/%s/losers_bracket", leagueID), "Get Losers Bracket")
}

// TradedPicks fetches a league's traded draft picks.
func (c *Client) TradedPicks(ctx context.Context, leagueID string) (models.Value, *CallRecord, error) {
	return c.Get(ctx, fmt.Sprintf("/league/%s/traded_picks", leagueID), "Get Traded Picks")
}

// User fetches a single user's details.
func (c *Client) User(ctx context.Context, userID string) (models.Value, *CallRecord, error) {
	return c.Get(ctx, fmt.Sprintf("/user/%s", userID), fmt.Sprintf("Get User Details for %s", userID))
}

// UserLeagues fetches a user's leagues for a sport and season.
func (c *Client) UserLeagues(ctx context.Context, userID, sport, season string) (models.Value, *CallRecord, error) {
	return c.Get(ctx,
		fmt.Sprintf("/user/%s/leagues/%s/%s", userID, sport, season),
		fmt.Sprintf("Get User Leagues for %s", userID))
}

// Draft fetches draft details.
func (c *Client) Draft(ctx context.Context, draftID string) (models.Value, *CallRecord, error) {
	return c.Get(ctx, fmt.Sprintf("/draft/%s", draftID), fmt.Sprintf("Get Draft Details for %s", draftID))
}

// DraftPicks fetches all picks of a draft.
func (c *Client) DraftPicks(ctx context.Context, draftID string) (models.Value, *CallRecord, error) {
	return c.Get(ctx, fmt.Sprintf("/draft/%s/picks", draftID), fmt.Sprintf("Get Draft Picks for %s", draftID))
}

// TrendingPlayers fetches trending players; kind is "add" or "drop".
func (c *Client) TrendingPlayers(ctx context.Context, sport, kind string) (models.Value, *CallRecord, error) {
	return c.Get(ctx,
		fmt.Sprintf("/players/%s/trending/%s", sport, kind),
		fmt.Sprintf("Get Trending Players (%s)", kind))
}

// SportState fetches the current state (week, season phase) of a sport.
func (c *Client) SportState(ctx context.Context, sport string) (models.Value, *CallRecord, error) {
	return c.Get(ctx, fmt.Sprintf("/state/%s", sport), fmt.Sprintf("Get %s State", sport))
}
