package probe

import (
	"fmt"

	"github.com/okian/finals/internal/domain/model"
	"github.com/okian/finals/internal/domain/types"
)

// verifyWins checks a wins answer against the expected count.
func verifyWins(got types.WinsResponse, entity string, want int, found bool) error {
	if got.Entity != entity {
		return fmt.Errorf("entity: got %q, want %q", got.Entity, entity)
	}
	if got.Found != found {
		return fmt.Errorf("found: got %t, want %t", got.Found, found)
	}
	if got.Count != want {
		return fmt.Errorf("count: got %d, want %d", got.Count, want)
	}
	if got.Message == "" {
		return fmt.Errorf("missing message")
	}
	return nil
}

// verifyResult checks a result answer. Absent years must not carry names.
func verifyResult(got types.ResultResponse, year int, want model.EditionRecord, found bool) error {
	if got.Year != year {
		return fmt.Errorf("year: got %d, want %d", got.Year, year)
	}
	if got.Found != found {
		return fmt.Errorf("found: got %t, want %t", got.Found, found)
	}
	if got.Winner != want.Winner || got.RunnerUp != want.RunnerUp {
		return fmt.Errorf("finalists: got %q/%q, want %q/%q", got.Winner, got.RunnerUp, want.Winner, want.RunnerUp)
	}
	if got.Message == "" {
		return fmt.Errorf("missing message")
	}
	return nil
}

// verifyChoropleth checks the map export entry by entry, the sum of counts
// and that the color scale is a list of stops spanning 0 to 1.
func verifyChoropleth(got types.Choropleth, want []model.WinCount, editions int) error {
	if got.LocationMode != types.LocationModeCountryNames {
		return fmt.Errorf("location mode: got %q", got.LocationMode)
	}
	if err := verifyColorScale(got.ColorScale); err != nil {
		return err
	}
	expected := make(map[string]int, len(want))
	for _, wc := range want {
		expected[wc.Entity] = wc.Count
	}
	if len(got.Data) != len(expected) {
		return fmt.Errorf("entries: got %d, want %d", len(got.Data), len(expected))
	}
	sum := 0
	for _, wc := range got.Data {
		n, ok := expected[wc.Entity]
		if !ok {
			return fmt.Errorf("unexpected entity %q", wc.Entity)
		}
		if wc.Count != n {
			return fmt.Errorf("%s: got %d, want %d", wc.Entity, wc.Count, n)
		}
		sum += wc.Count
	}
	if sum != editions {
		return fmt.Errorf("sum of counts: got %d, want %d", sum, editions)
	}
	return nil
}

func verifyColorScale(stops []types.ColorStop) error {
	if len(stops) < 2 {
		return fmt.Errorf("color scale: got %d stops, want at least 2", len(stops))
	}
	if stops[0].Position != 0 || stops[len(stops)-1].Position != 1 {
		return fmt.Errorf("color scale: stops span %v to %v, want 0 to 1",
			stops[0].Position, stops[len(stops)-1].Position)
	}
	for i := 1; i < len(stops); i++ {
		if stops[i].Position <= stops[i-1].Position {
			return fmt.Errorf("color scale: stop %d is not ascending", i)
		}
	}
	return nil
}
