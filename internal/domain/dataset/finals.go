// Package dataset holds the compiled-in World Cup finals.
package dataset

import "github.com/okian/finals/internal/domain/model"

// finals lists every final from 1930 through 2022 in chronological order.
// Entity names follow the spelling used on the map: West Germany finals
// are recorded as Germany.
var finals = [...]model.EditionRecord{
	{Year: 1930, Winner: "Uruguay", RunnerUp: "Argentina"},
	{Year: 1934, Winner: "Italy", RunnerUp: "Czechoslovakia"},
	{Year: 1938, Winner: "Italy", RunnerUp: "Hungary"},
	{Year: 1950, Winner: "Uruguay", RunnerUp: "Brazil"},
	{Year: 1954, Winner: "Germany", RunnerUp: "Hungary"},
	{Year: 1958, Winner: "Brazil", RunnerUp: "Sweden"},
	{Year: 1962, Winner: "Brazil", RunnerUp: "Czechoslovakia"},
	{Year: 1966, Winner: "England", RunnerUp: "Germany"},
	{Year: 1970, Winner: "Brazil", RunnerUp: "Italy"},
	{Year: 1974, Winner: "Germany", RunnerUp: "Netherlands"},
	{Year: 1978, Winner: "Argentina", RunnerUp: "Netherlands"},
	{Year: 1982, Winner: "Italy", RunnerUp: "Germany"},
	{Year: 1986, Winner: "Argentina", RunnerUp: "Germany"},
	{Year: 1990, Winner: "Germany", RunnerUp: "Argentina"},
	{Year: 1994, Winner: "Brazil", RunnerUp: "Italy"},
	{Year: 1998, Winner: "France", RunnerUp: "Brazil"},
	{Year: 2002, Winner: "Brazil", RunnerUp: "Germany"},
	{Year: 2006, Winner: "Italy", RunnerUp: "France"},
	{Year: 2010, Winner: "Spain", RunnerUp: "Netherlands"},
	{Year: 2014, Winner: "Germany", RunnerUp: "Argentina"},
	{Year: 2018, Winner: "France", RunnerUp: "Croatia"},
	{Year: 2022, Winner: "Argentina", RunnerUp: "France"},
}

// Finals returns a fresh copy of the canonical dataset.
func Finals() []model.EditionRecord {
	out := make([]model.EditionRecord, len(finals))
	copy(out, finals[:])
	return out
}
