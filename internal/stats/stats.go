// Package stats aggregates the survey call log into the rate-limit
// summary that heads the Markdown report.
package stats

import (
	"net/http"

	"github.com/mrab54/sleeper-db/internal/api"
)

// Summary describes one survey run's call log.
type Summary struct {
	TotalCalls      int     `json:"total_calls"`
	SuccessfulCalls int     `json:"successful_calls"`
	FailedCalls     int     `json:"failed_calls"`
	RateLimitErrors int     `json:"rate_limit_errors"`
	AvgResponseTime float64 `json:"avg_response_time"`
	MaxResponseTime float64 `json:"max_response_time"`
	MinResponseTime float64 `json:"min_response_time"`
	CallsPerSecond  float64 `json:"calls_per_second"`
}

// Analyze computes call statistics in request order. A 429 anywhere in the
// log is the strongest rate-limiting signal the API gives; Sleeper has
// never been observed to send one.
func Analyze(calls []api.CallRecord) Summary {
	s := Summary{TotalCalls: len(calls)}
	if len(calls) == 0 {
		return s
	}

	var totalElapsed float64
	for i, call := range calls {
		if call.StatusCode == http.StatusOK {
			s.SuccessfulCalls++
		}
		if call.StatusCode == http.StatusTooManyRequests {
			s.RateLimitErrors++
		}
		totalElapsed += call.Elapsed
		if i == 0 || call.Elapsed > s.MaxResponseTime {
			s.MaxResponseTime = call.Elapsed
		}
		if i == 0 || call.Elapsed < s.MinResponseTime {
			s.MinResponseTime = call.Elapsed
		}
	}
	s.FailedCalls = s.TotalCalls - s.SuccessfulCalls
	s.AvgResponseTime = totalElapsed / float64(len(calls))
	if totalElapsed > 0 {
		s.CallsPerSecond = float64(s.TotalCalls) / totalElapsed
	}
	return s
}
