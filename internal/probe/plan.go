package probe

import (
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"strconv"

	"github.com/okian/finals/internal/domain/model"
	"github.com/okian/finals/internal/domain/types"
)

// neverWon are names the service must answer with found=false.
var neverWon = []string{"Canada", "Netherlands", "Hungary", "Croatia", "brazil"} //nolint:gochecknoglobals // fixed probe inputs

// missingYears are years without a final.
var missingYears = []int{1942, 1946, 2023, 0} //nolint:gochecknoglobals // fixed probe inputs

// expectedWins counts each winner by rescanning the records, in order of
// first win. It shares no code with the server's aggregation.
func expectedWins(records []model.EditionRecord) ([]model.WinCount, map[string]int) {
	var ordered []model.WinCount
	counts := make(map[string]int)
	for i, rec := range records {
		if slices.ContainsFunc(records[:i], func(r model.EditionRecord) bool { return r.Winner == rec.Winner }) {
			continue
		}
		n := 0
		for _, other := range records[i:] {
			if other.Winner == rec.Winner {
				n++
			}
		}
		ordered = append(ordered, model.WinCount{Entity: rec.Winner, Count: n})
		counts[rec.Winner] = n
	}
	return ordered, counts
}

// buildPlan derives every check from the expected records.
func buildPlan(records []model.EditionRecord) []check {
	ordered, counts := expectedWins(records)

	var plan []check
	for _, wc := range ordered {
		plan = append(plan, winsCheck(wc.Entity, wc.Count, true))
	}
	for _, name := range neverWon {
		if _, ok := counts[name]; ok {
			continue
		}
		plan = append(plan, winsCheck(name, 0, false))
	}
	for _, rec := range records {
		plan = append(plan, resultCheck(rec.Year, rec, true))
	}
	for _, year := range missingYears {
		if slices.ContainsFunc(records, func(r model.EditionRecord) bool { return r.Year == year }) {
			continue
		}
		plan = append(plan, resultCheck(year, model.EditionRecord{}, false))
	}
	plan = append(plan, choroplethCheck(ordered, len(records)), selectionsCheck(counts, records))
	return plan
}

func winsCheck(entity string, want int, found bool) check {
	return check{
		name: "wins " + entity,
		path: "/wins/" + url.PathEscape(entity),
		verify: func(body []byte) error {
			var got types.WinsResponse
			if err := json.Unmarshal(body, &got); err != nil {
				return err
			}
			return verifyWins(got, entity, want, found)
		},
	}
}

func resultCheck(year int, want model.EditionRecord, found bool) check {
	return check{
		name: "result " + strconv.Itoa(year),
		path: "/results/" + strconv.Itoa(year),
		verify: func(body []byte) error {
			var got types.ResultResponse
			if err := json.Unmarshal(body, &got); err != nil {
				return err
			}
			return verifyResult(got, year, want, found)
		},
	}
}

func choroplethCheck(want []model.WinCount, editions int) check {
	return check{
		name: "choropleth",
		path: "/choropleth",
		verify: func(body []byte) error {
			var got types.Choropleth
			if err := json.Unmarshal(body, &got); err != nil {
				return err
			}
			return verifyChoropleth(got, want, editions)
		},
	}
}

func selectionsCheck(counts map[string]int, records []model.EditionRecord) check {
	return check{
		name: "selections",
		path: "/selections",
		verify: func(body []byte) error {
			var got model.Selections
			if err := json.Unmarshal(body, &got); err != nil {
				return err
			}
			if len(got.Entities) != len(counts) {
				return fmt.Errorf("entities: got %d, want %d", len(got.Entities), len(counts))
			}
			for _, e := range got.Entities {
				if _, ok := counts[e]; !ok {
					return fmt.Errorf("entities: unexpected %q", e)
				}
			}
			if len(got.Years) != len(records) {
				return fmt.Errorf("years: got %d, want %d", len(got.Years), len(records))
			}
			if !slices.Contains(got.Entities, got.DefaultEntity) {
				return fmt.Errorf("default entity %q is not selectable", got.DefaultEntity)
			}
			if !slices.Contains(got.Years, got.DefaultYear) {
				return fmt.Errorf("default year %d is not selectable", got.DefaultYear)
			}
			return nil
		},
	}
}
