package survey

import (
	"encoding/json"

	"github.com/mrab54/sleeper-db/internal/models"
)

// rosterAnalysis summarizes roster composition across a league.
func rosterAnalysis(rosters models.Array) models.Object {
	playersPerRoster := models.Array{}
	startersPerRoster := models.Array{}
	hasCoOwners := false

	for _, elem := range rosters {
		obj, ok := elem.(models.Object)
		if !ok {
			continue
		}
		if players, present := obj.Get("players"); present {
			if arr, isArr := players.(models.Array); isArr && len(arr) > 0 {
				playersPerRoster = append(playersPerRoster, len(arr))
			}
		}
		if starters, present := obj.Get("starters"); present {
			if arr, isArr := starters.(models.Array); isArr && len(arr) > 0 {
				startersPerRoster = append(startersPerRoster, len(arr))
			}
		}
		if coOwners, present := obj.Get("co_owners"); present && truthy(coOwners) {
			hasCoOwners = true
		}
	}

	return models.Object{
		{Key: "total_rosters", Value: len(rosters)},
		{Key: "players_per_roster", Value: playersPerRoster},
		{Key: "starters_per_roster", Value: startersPerRoster},
		{Key: "has_co_owners", Value: hasCoOwners},
	}
}

// matchupAnalysis summarizes one week's matchups.
func matchupAnalysis(matchups models.Array) models.Object {
	uniqueIDs := map[string]struct{}{}
	hasCustomPoints := false
	playersPointsAvailable := false

	for _, elem := range matchups {
		obj, ok := elem.(models.Object)
		if !ok {
			continue
		}
		if id, present := obj.Get("matchup_id"); present && truthy(id) {
			if num, isNum := id.(json.Number); isNum {
				uniqueIDs[num.String()] = struct{}{}
			}
		}
		if custom, present := obj.Get("custom_points"); present && custom != nil {
			hasCustomPoints = true
		}
		if points, present := obj.Get("players_points"); present && truthy(points) {
			playersPointsAvailable = true
		}
	}

	return models.Object{
		{Key: "total_matchups", Value: len(matchups)},
		{Key: "unique_matchup_ids", Value: len(uniqueIDs)},
		{Key: "has_custom_points", Value: hasCustomPoints},
		{Key: "players_points_available", Value: playersPointsAvailable},
	}
}

// transactionTypes counts transactions by type, in first-seen order.
func transactionTypes(transactions models.Array) models.Object {
	var types models.Object
	for _, elem := range transactions {
		obj, ok := elem.(models.Object)
		if !ok {
			continue
		}
		kind := obj.StringField("type", "unknown")
		found := false
		for i := range types {
			if types[i].Key == kind {
				types[i].Value = types[i].Value.(int) + 1
				found = true
				break
			}
		}
		if !found {
			types = append(types, models.Member{Key: kind, Value: 1})
		}
	}
	return types
}

// truthy mirrors the loose emptiness checks the analyses rely on: nil,
// false, empty strings, zero numbers and empty collections all count as
// absent.
func truthy(v models.Value) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	case models.Array:
		return len(t) > 0
	case models.Object:
		return len(t) > 0
	default:
		return true
	}
}
