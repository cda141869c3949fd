// Package types contains the wire shapes shared by the HTTP API and its clients.
package types

import "github.com/okian/finals/internal/domain/model"

// LocationModeCountryNames tells the renderer to resolve entities by country name.
const LocationModeCountryNames = "country names"

// WinsResponse is the body of GET /wins/{entity}.
type WinsResponse struct {
	model.WinsResult
	Message string `json:"message"`
}

// ResultResponse is the body of GET /results/{year}.
type ResultResponse struct {
	model.ResultLookup
	Message string `json:"message"`
}

// Choropleth is the map-coloring input: one value per entity with a win.
type Choropleth struct {
	Title          string           `json:"title"`
	ColorScaleName string           `json:"color_scale_name"`
	ColorScale     []ColorStop      `json:"color_scale"`
	LocationMode   string           `json:"location_mode"`
	Data           []model.WinCount `json:"data"`
}

// Dashboard is the localized page text: heading, map heading and the two
// selector prompts.
type Dashboard struct {
	Title        string `json:"title"`
	MapHeading   string `json:"map_heading"`
	EntityPrompt string `json:"entity_prompt"`
	YearPrompt   string `json:"year_prompt"`
}
