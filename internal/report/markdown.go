// Package report turns survey results into the Markdown analysis document
// and its JSON companions.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/iancoleman/strcase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mrab54/sleeper-db/internal/errors"
	"github.com/mrab54/sleeper-db/internal/models"
	"github.com/mrab54/sleeper-db/internal/stats"
	"github.com/mrab54/sleeper-db/internal/survey"
)

// Document is everything the Markdown report needs.
type Document struct {
	LeagueID  string
	Generated time.Time
	RateLimit stats.Summary
	Results   []survey.Result
	// Samples lists the sample file names that were written, in order.
	Samples []string
}

var titleCaser = cases.Title(language.English)

// sectionTitle turns a result key like "matchups_week_1" into
// "Matchups Week 1".
func sectionTitle(name string) string {
	return titleCaser.String(strcase.ToDelimited(name, ' '))
}

// Markdown renders the full api-analysis.md document: summary, rate-limit
// figures, one section per surveyed endpoint with its probed structure,
// and the standing notes on Sleeper's data model.
func Markdown(doc Document) (string, error) {
	var sb strings.Builder

	rateLimit, err := json.MarshalIndent(doc.RateLimit, "", "  ")
	if err != nil {
		return "", errors.NewReportError("failed to encode rate limit analysis", err)
	}

	sb.WriteString("# Sleeper API Analysis Report\n\n")
	fmt.Fprintf(&sb, "Generated: %s\n", doc.Generated.Format(time.RFC3339))
	fmt.Fprintf(&sb, "League ID: %s\n\n", doc.LeagueID)

	sb.WriteString("## Executive Summary\n\n")
	sb.WriteString("This document contains an analysis of the Sleeper API endpoints, their response\n")
	sb.WriteString("structures, data relationships, and performance characteristics.\n\n")

	sb.WriteString("## Rate Limit Analysis\n\n")
	sb.WriteString("```json\n")
	sb.Write(rateLimit)
	sb.WriteString("\n```\n\n")

	sb.WriteString("**Key Findings:**\n")
	if doc.RateLimit.RateLimitErrors == 0 {
		sb.WriteString("- No explicit rate limiting detected (no 429 responses)\n")
	} else {
		fmt.Fprintf(&sb, "- %d rate-limited responses (429) observed\n", doc.RateLimit.RateLimitErrors)
	}
	fmt.Fprintf(&sb, "- Average response time: %.3fs\n", doc.RateLimit.AvgResponseTime)
	if doc.RateLimit.FailedCalls == 0 {
		sb.WriteString("- All endpoints responded successfully\n")
	} else {
		fmt.Fprintf(&sb, "- %d of %d calls failed\n", doc.RateLimit.FailedCalls, doc.RateLimit.TotalCalls)
	}
	sb.WriteString("\n## Endpoint Analysis\n\n")

	for _, res := range doc.Results {
		fmt.Fprintf(&sb, "### %s\n\n", sectionTitle(res.Name))

		if res.Structure != nil {
			structure, err := json.MarshalIndent(res.Structure, "", "  ")
			if err != nil {
				return "", errors.NewReportError(fmt.Sprintf("failed to encode structure for %q", res.Name), err)
			}
			sb.WriteString("**Data Structure:**\n```json\n")
			sb.Write(structure)
			sb.WriteString("\n```\n\n")
		}

		if res.Analysis != nil {
			analysis, err := json.MarshalIndent(res.Analysis, "", "  ")
			if err != nil {
				return "", errors.NewReportError(fmt.Sprintf("failed to encode analysis for %q", res.Name), err)
			}
			sb.WriteString("**Analysis:**\n```json\n")
			sb.Write(analysis)
			sb.WriteString("\n```\n\n")
		}

		if res.HasCount {
			fmt.Fprintf(&sb, "**Record Count:** %d\n\n", res.Count)
		}
	}

	writeRelationships(&sb)
	writeObservations(&sb)
	writeRecommendations(&sb)

	sb.WriteString("## API Response Samples\n\n")
	sb.WriteString("Response samples have been saved to:\n")
	for _, name := range doc.Samples {
		fmt.Fprintf(&sb, "- `%s`\n", name)
	}

	return sb.String(), nil
}

// Raw builds the api-analysis-raw.json payload: per-endpoint structures
// and analyses (sans response bodies), the rate-limit summary, and the
// call log.
func Raw(results *survey.Results, rateLimit stats.Summary) models.Value {
	perEndpoint := models.Object{}
	for _, res := range results.Endpoints {
		entry := models.Object{}
		if res.Structure != nil {
			entry = append(entry, models.Member{Key: "structure", Value: res.Structure})
		}
		if res.HasCount {
			entry = append(entry, models.Member{Key: "count", Value: res.Count})
		}
		if res.Analysis != nil {
			entry = append(entry, models.Member{Key: "analysis", Value: res.Analysis})
		}
		perEndpoint = append(perEndpoint, models.Member{Key: res.Name, Value: entry})
	}
	return models.Object{
		{Key: "results", Value: perEndpoint},
		{Key: "rate_limit_analysis", Value: rateLimit},
		{Key: "api_calls", Value: results.Calls},
	}
}

func writeRelationships(sb *strings.Builder) {
	sb.WriteString("## Data Relationships\n\n" +
		"### Primary Keys and Foreign Keys\n\n" +
		"1. **League**\n" +
		"   - Primary Key: `league_id`\n" +
		"   - Foreign Keys: `draft_id`, `previous_league_id`\n\n" +
		"2. **User**\n" +
		"   - Primary Key: `user_id`\n" +
		"   - Relationships: Many-to-Many with Leagues through Rosters\n\n" +
		"3. **Roster**\n" +
		"   - Primary Key: Composite (`league_id`, `roster_id`)\n" +
		"   - Foreign Keys: `owner_id` (user), `league_id`, `co_owners[]` (users)\n\n" +
		"4. **Matchup**\n" +
		"   - Primary Key: Composite (`league_id`, `week`, `roster_id`)\n" +
		"   - Foreign Keys: `roster_id`, uses `matchup_id` for pairing\n\n" +
		"5. **Transaction**\n" +
		"   - Primary Key: `transaction_id`\n" +
		"   - Foreign Keys: `creator` (user), `roster_ids[]`, `league_id`\n\n" +
		"6. **Draft**\n" +
		"   - Primary Key: `draft_id`\n" +
		"   - Relationships: One-to-One with League\n\n" +
		"### Data Flow\n\n" +
		"```\n" +
		"League\n" +
		"  ├── Users (through rosters)\n" +
		"  ├── Rosters\n" +
		"  │   ├── Players (array of player_ids)\n" +
		"  │   └── Starters (subset of players)\n" +
		"  ├── Matchups (by week)\n" +
		"  │   └── Player Points (nested in matchup)\n" +
		"  ├── Transactions (by week)\n" +
		"  │   ├── Adds (players added)\n" +
		"  │   └── Drops (players dropped)\n" +
		"  └── Draft\n" +
		"      └── Picks (ordered list)\n" +
		"```\n\n")
}

func writeObservations(sb *strings.Builder) {
	sb.WriteString("## Key Observations\n\n" +
		"1. **No Pagination**: All endpoints return complete datasets\n" +
		"2. **Weekly Data**: Matchups and transactions are organized by week\n" +
		"3. **Nested Data**: Heavy use of nested objects and arrays\n" +
		"4. **Player IDs**: String identifiers, not integers\n" +
		"5. **Timestamps**: Unix timestamps (milliseconds) for most time fields\n" +
		"6. **No Webhooks**: API is pull-only, no push notifications detected\n\n")
}

func writeRecommendations(sb *strings.Builder) {
	sb.WriteString("## Recommendations for Sync Strategy\n\n" +
		"1. **Full League Sync**: Daily at 3 AM (low activity time)\n" +
		"2. **Roster Updates**: Every hour during season\n" +
		"3. **Live Scoring**: Every 5 minutes during game windows (Sun 1pm-11pm, Mon/Thu 8pm-11pm)\n" +
		"4. **Transactions**: Every 30 minutes during waivers (Wed 3am-6am typical)\n" +
		"5. **Player Metadata**: Weekly (Tuesdays after waivers clear)\n\n")
}
