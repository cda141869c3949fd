// Package model contains domain models passed between layers.
package model

// EditionRecord is the final of one tournament edition.
// Year is the natural key and is unique within a store.
type EditionRecord struct {
	Year     int    `json:"year"`
	Winner   string `json:"winner"`
	RunnerUp string `json:"runner_up"`
}

// WinCount is the number of editions an entity has won.
// Entities without a win have no WinCount.
type WinCount struct {
	Entity string `json:"entity"`
	Count  int    `json:"count"`
}

// WinsResult answers a wins-by-entity lookup. Count is 0 when Found is false.
type WinsResult struct {
	Entity string `json:"entity"`
	Count  int    `json:"count"`
	Found  bool   `json:"found"`
}

// ResultLookup answers a result-by-year lookup. Winner and RunnerUp are
// only populated when Found is true.
type ResultLookup struct {
	Year     int    `json:"year"`
	Winner   string `json:"winner,omitempty"`
	RunnerUp string `json:"runner_up,omitempty"`
	Found    bool   `json:"found"`
}

// Selections lists the choices offered to the viewer along with the
// initially selected values.
type Selections struct {
	Entities      []string `json:"entities"`
	Years         []int    `json:"years"`
	DefaultEntity string   `json:"default_entity"`
	DefaultYear   int      `json:"default_year"`
}
