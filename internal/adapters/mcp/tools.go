package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/okian/finals/internal/domain/model"
	"github.com/okian/finals/pkg/logger"
	"github.com/okian/finals/pkg/metrics"
)

// Tool names.
const (
	ToolWinsFor    = "wins_for"
	ToolResultFor  = "result_for"
	ToolWinCounts  = "win_counts"
	ToolSelections = "selections"
)

// EditionsURI identifies the readable edition listing.
const EditionsURI = "finals://editions"

// WinsForInput is the input of the wins_for tool.
type WinsForInput struct {
	Entity string `json:"entity" jsonschema:"exact country name, e.g. Brazil"`
}

// WinsForResult is the output of the wins_for tool.
type WinsForResult struct {
	Entity  string `json:"entity" jsonschema:"country name as given"`
	Count   int    `json:"count" jsonschema:"number of titles won"`
	Found   bool   `json:"found" jsonschema:"false when the country never won"`
	Message string `json:"message" jsonschema:"display text"`
}

// ResultForInput is the input of the result_for tool.
type ResultForInput struct {
	Year int `json:"year" jsonschema:"tournament year, e.g. 2022"`
}

// ResultForResult is the output of the result_for tool.
type ResultForResult struct {
	Year     int    `json:"year" jsonschema:"tournament year as given"`
	Winner   string `json:"winner,omitempty" jsonschema:"champion, empty when not found"`
	RunnerUp string `json:"runner_up,omitempty" jsonschema:"runner-up, empty when not found"`
	Found    bool   `json:"found" jsonschema:"false when no final was played that year"`
	Message  string `json:"message" jsonschema:"display text"`
}

// WinCountsInput is the input of the win_counts tool.
type WinCountsInput struct{}

// WinCountsResult is the output of the win_counts tool.
type WinCountsResult struct {
	Counts []model.WinCount `json:"counts" jsonschema:"one entry per country with at least one title"`
	Total  int              `json:"total" jsonschema:"sum of all counts"`
}

// SelectionsInput is the input of the selections tool.
type SelectionsInput struct{}

// SelectionsResult is the output of the selections tool.
type SelectionsResult struct {
	Entities      []string `json:"entities" jsonschema:"countries with at least one title"`
	Years         []int    `json:"years" jsonschema:"years with a final"`
	DefaultEntity string   `json:"default_entity" jsonschema:"initially selected country"`
	DefaultYear   int      `json:"default_year" jsonschema:"initially selected year"`
}

// EditionsPayload is the content of the editions resource.
type EditionsPayload struct {
	Editions []model.EditionRecord `json:"editions"`
}

func observe(tool string, found bool) {
	outcome := metrics.OutcomeAbsent
	if found {
		outcome = metrics.OutcomeFound
	}
	metrics.RecordToolCall(tool, outcome)
}

func winsForHandler(deps Dependencies, log logger.Logger) gomcp.ToolHandlerFor[WinsForInput, WinsForResult] {
	return func(ctx context.Context, _ *gomcp.CallToolRequest, in WinsForInput) (*gomcp.CallToolResult, WinsForResult, error) {
		r := deps.WinsFor(ctx, in.Entity)
		observe(ToolWinsFor, r.Found)
		log.Debug(ctx, "tool call", logger.String("tool", ToolWinsFor), logger.String("entity", in.Entity))
		return nil, WinsForResult{
			Entity:  r.Entity,
			Count:   r.Count,
			Found:   r.Found,
			Message: deps.DescribeWins(r),
		}, nil
	}
}

func resultForHandler(deps Dependencies, log logger.Logger) gomcp.ToolHandlerFor[ResultForInput, ResultForResult] {
	return func(ctx context.Context, _ *gomcp.CallToolRequest, in ResultForInput) (*gomcp.CallToolResult, ResultForResult, error) {
		r := deps.ResultFor(ctx, in.Year)
		observe(ToolResultFor, r.Found)
		log.Debug(ctx, "tool call", logger.String("tool", ToolResultFor), logger.Int("year", in.Year))
		return nil, ResultForResult{
			Year:     r.Year,
			Winner:   r.Winner,
			RunnerUp: r.RunnerUp,
			Found:    r.Found,
			Message:  deps.DescribeResult(r),
		}, nil
	}
}

func winCountsHandler(deps Dependencies) gomcp.ToolHandlerFor[WinCountsInput, WinCountsResult] {
	return func(ctx context.Context, _ *gomcp.CallToolRequest, _ WinCountsInput) (*gomcp.CallToolResult, WinCountsResult, error) {
		counts := deps.ChoroplethData(ctx)
		total := 0
		for _, wc := range counts {
			total += wc.Count
		}
		observe(ToolWinCounts, len(counts) > 0)
		return nil, WinCountsResult{Counts: counts, Total: total}, nil
	}
}

func selectionsHandler(deps Dependencies) gomcp.ToolHandlerFor[SelectionsInput, SelectionsResult] {
	return func(ctx context.Context, _ *gomcp.CallToolRequest, _ SelectionsInput) (*gomcp.CallToolResult, SelectionsResult, error) {
		sel := deps.Selections(ctx)
		observe(ToolSelections, true)
		return nil, SelectionsResult{
			Entities:      sel.Entities,
			Years:         sel.Years,
			DefaultEntity: sel.DefaultEntity,
			DefaultYear:   sel.DefaultYear,
		}, nil
	}
}

func editionsResource() *gomcp.Resource {
	return &gomcp.Resource{
		Name:        "editions",
		Title:       "World Cup finals",
		Description: "Every final with its winner and runner-up, in chronological order",
		MIMEType:    "application/json",
		URI:         EditionsURI,
	}
}

func editionsHandler(deps Dependencies) gomcp.ResourceHandler {
	return func(ctx context.Context, req *gomcp.ReadResourceRequest) (*gomcp.ReadResourceResult, error) {
		uri := EditionsURI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}
		data, err := json.MarshalIndent(EditionsPayload{Editions: deps.Editions(ctx)}, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal editions: %w", err)
		}
		return &gomcp.ReadResourceResult{
			Contents: []*gomcp.ResourceContents{
				{URI: uri, MIMEType: "application/json", Text: string(data)},
			},
		}, nil
	}
}
