// Package service provides the query service that answers viewer selections
// over the edition records and their win counts.
package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"golang.org/x/text/language"

	"github.com/okian/finals/internal/adapters/repository"
	"github.com/okian/finals/internal/domain/aggregate"
	"github.com/okian/finals/internal/domain/model"
	"github.com/okian/finals/internal/domain/narrate"
	"github.com/okian/finals/internal/domain/types"
	"github.com/okian/finals/pkg/logger"
	"github.com/okian/finals/pkg/metrics"
)

const nanosecondsPerMillisecond = 1e6

// Default selections shown when the dashboard first loads.
const (
	DefaultEntity     = "Brazil"
	DefaultYear       = 2022
	DefaultColorScale = "Plasma"
)

// Service answers wins-by-entity and result-by-year lookups.
//
// All query methods are total: unknown inputs produce a result with
// Found == false, never an error. The service holds no mutable state after
// New returns, so it is safe for concurrent use.
type Service struct {
	store    repository.Store
	agg      *aggregate.Aggregator
	narrator *narrate.Narrator
	logger   logger.Logger

	// Configuration
	locale        language.Tag
	defaultEntity string
	defaultYear   int
	colorScale    string
	colorStops    []types.ColorStop
	mapTitle      string
	lazy          bool

	// Derived at construction
	entities []string
	years    []int
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLocale sets the locale used for messages and entity ordering.
func WithLocale(tag language.Tag) Option {
	return func(s *Service) {
		if tag != language.Und {
			s.locale = tag
		}
	}
}

// WithDefaultEntity sets the initially selected entity.
func WithDefaultEntity(entity string) Option {
	return func(s *Service) {
		if entity != "" {
			s.defaultEntity = entity
		}
	}
}

// WithDefaultYear sets the initially selected year.
func WithDefaultYear(year int) Option {
	return func(s *Service) {
		if year != 0 {
			s.defaultYear = year
		}
	}
}

// WithColorScale names the continuous color scale of the map. See
// types.ColorScaleNames for the accepted names.
func WithColorScale(scale string) Option {
	return func(s *Service) {
		if scale != "" {
			s.colorScale = scale
		}
	}
}

// WithMapTitle overrides the localized choropleth title.
func WithMapTitle(title string) Option {
	return func(s *Service) {
		s.mapTitle = title
	}
}

// WithLazyAggregation defers the win count computation to the first query.
func WithLazyAggregation() Option {
	return func(s *Service) {
		s.lazy = true
	}
}

// New validates records, builds the store and aggregator, and returns a ready
// service. It fails with an error matching repository.ErrValidation when the
// dataset is malformed.
func New(ctx context.Context, records []model.EditionRecord, opts ...Option) (*Service, error) {
	s := &Service{
		locale:        language.English,
		defaultEntity: DefaultEntity,
		defaultYear:   DefaultYear,
		colorScale:    DefaultColorScale,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	store, err := repository.NewMemoryStore(ctx, records)
	if err != nil {
		s.logger.Error(ctx, "edition records rejected", logger.Error(err))
		return nil, fmt.Errorf("build record store: %w", err)
	}
	s.store = store

	var aggOpts []aggregate.Option
	if !s.lazy {
		aggOpts = append(aggOpts, aggregate.WithEager())
	}
	s.agg = aggregate.New(ctx, store, aggOpts...)

	s.narrator = narrate.New(s.locale)
	if s.mapTitle == "" {
		s.mapTitle = s.narrator.MapTitle()
	}
	s.entities = s.narrator.SortEntities(store.Entities(ctx))
	s.years = store.Years(ctx)
	s.resolveDefaults(ctx)
	s.resolveColorScale(ctx)

	s.logger.Info(ctx, "finals service ready",
		logger.Int("editions", store.Count(ctx)),
		logger.Int("winners", len(s.entities)),
		logger.String("locale", s.locale.String()),
		logger.Bool("lazyAggregation", s.lazy),
	)
	return s, nil
}

// resolveDefaults replaces default selections that are not in the dataset.
func (s *Service) resolveDefaults(ctx context.Context) {
	if !slices.Contains(s.entities, s.defaultEntity) {
		fallback := s.entities[0]
		s.logger.Warn(ctx, "default entity has no wins; using first entity",
			logger.String("defaultEntity", s.defaultEntity),
			logger.String("fallback", fallback))
		s.defaultEntity = fallback
	}
	if _, ok := s.store.Lookup(ctx, s.defaultYear); !ok {
		fallback := s.years[len(s.years)-1]
		s.logger.Warn(ctx, "default year not in dataset; using latest year",
			logger.Int("defaultYear", s.defaultYear),
			logger.Int("fallback", fallback))
		s.defaultYear = fallback
	}
}

// resolveColorScale expands the configured scale name into stops. Unknown
// names fall back to DefaultColorScale.
func (s *Service) resolveColorScale(ctx context.Context) {
	stops, ok := types.ColorScale(s.colorScale)
	if !ok {
		s.logger.Warn(ctx, "unknown color scale; using default",
			logger.String("colorScale", s.colorScale),
			logger.String("fallback", DefaultColorScale))
		s.colorScale = DefaultColorScale
		stops, _ = types.ColorScale(DefaultColorScale)
	}
	s.colorStops = stops
}

func observe(kind string, start time.Time, found bool) {
	outcome := metrics.OutcomeAbsent
	if found {
		outcome = metrics.OutcomeFound
	}
	metrics.RecordQuery(kind, outcome)
	metrics.RecordQueryLatency(kind, float64(time.Since(start).Nanoseconds())/nanosecondsPerMillisecond)
}

// WinsFor returns the win count of entity using exact name matching.
// An entity that never won yields Count 0 and Found false.
func (s *Service) WinsFor(ctx context.Context, entity string) model.WinsResult {
	start := time.Now()
	n, ok := s.agg.Count(ctx, entity)
	observe(metrics.KindWins, start, ok)

	s.logger.Debug(ctx, "wins lookup", logger.String("entity", entity), logger.Bool("found", ok))
	return model.WinsResult{Entity: entity, Count: n, Found: ok}
}

// ResultFor returns the final played in year. An unknown year yields
// Found false with no finalists.
func (s *Service) ResultFor(ctx context.Context, year int) model.ResultLookup {
	start := time.Now()
	rec, ok := s.store.Lookup(ctx, year)
	observe(metrics.KindResult, start, ok)

	s.logger.Debug(ctx, "result lookup", logger.Int("year", year), logger.Bool("found", ok))
	if !ok {
		return model.ResultLookup{Year: year}
	}
	return model.ResultLookup{Year: rec.Year, Winner: rec.Winner, RunnerUp: rec.RunnerUp, Found: true}
}

// ChoroplethData returns one WinCount per entity with at least one win.
func (s *Service) ChoroplethData(ctx context.Context) []model.WinCount {
	start := time.Now()
	data := s.agg.Ordered(ctx)
	observe(metrics.KindChoropleth, start, len(data) > 0)
	return data
}

// Choropleth returns the complete map-coloring input.
func (s *Service) Choropleth(ctx context.Context) types.Choropleth {
	return types.Choropleth{
		Title:          s.mapTitle,
		ColorScaleName: s.colorScale,
		ColorScale:     slices.Clone(s.colorStops),
		LocationMode:   types.LocationModeCountryNames,
		Data:           s.ChoroplethData(ctx),
	}
}

// Selections returns the choices for the entity and year selectors.
func (s *Service) Selections(_ context.Context) model.Selections {
	start := time.Now()
	out := model.Selections{
		Entities:      slices.Clone(s.entities),
		Years:         slices.Clone(s.years),
		DefaultEntity: s.defaultEntity,
		DefaultYear:   s.defaultYear,
	}
	observe(metrics.KindSelections, start, true)
	return out
}

// Editions returns every edition record in load order.
func (s *Service) Editions(ctx context.Context) []model.EditionRecord {
	return s.store.AllRecords(ctx)
}

// DescribeWins renders r as display text.
func (s *Service) DescribeWins(r model.WinsResult) string {
	return s.narrator.Wins(r)
}

// DescribeResult renders r as display text.
func (s *Service) DescribeResult(r model.ResultLookup) string {
	return s.narrator.Result(r)
}

// Dashboard returns the localized page text.
func (s *Service) Dashboard(_ context.Context) types.Dashboard {
	return types.Dashboard{
		Title:        s.narrator.DashboardTitle(),
		MapHeading:   s.narrator.MapHeading(),
		EntityPrompt: s.narrator.EntityPrompt(),
		YearPrompt:   s.narrator.YearPrompt(),
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	ctx := context.Background()
	editions := s.store.Count(ctx)
	return map[string]interface{}{
		"editions":          editions,
		"winners":           len(s.entities),
		"aggregatedRecords": s.agg.Total(ctx),
		"aggregationBuilds": s.agg.Builds(),
		"locale":            s.locale.String(),
		"defaultEntity":     s.defaultEntity,
		"defaultYear":       s.defaultYear,
		"colorScale":        s.colorScale,
	}
}
