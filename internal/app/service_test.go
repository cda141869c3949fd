package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"golang.org/x/text/language"

	"github.com/okian/finals/internal/adapters/repository"
	"github.com/okian/finals/internal/domain/dataset"
	"github.com/okian/finals/internal/domain/model"
	"github.com/okian/finals/internal/domain/types"
	"github.com/okian/finals/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

func newTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	svc, err := New(context.Background(), dataset.Finals(), opts...)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestNew(t *testing.T) {
	Convey("Given the canonical finals", t, func() {
		ctx := context.Background()

		Convey("When creating a service with defaults", func() {
			svc, err := New(ctx, dataset.Finals())

			Convey("Then the service is ready", func() {
				So(err, ShouldBeNil)
				So(svc, ShouldNotBeNil)
				So(svc.locale, ShouldEqual, language.English)
				So(svc.defaultEntity, ShouldEqual, DefaultEntity)
				So(svc.defaultYear, ShouldEqual, DefaultYear)
				So(svc.colorScale, ShouldEqual, DefaultColorScale)
			})

			Convey("And win counts were computed eagerly", func() {
				So(svc.agg.Builds(), ShouldEqual, 1)
			})
		})

		Convey("When creating a service with lazy aggregation", func() {
			svc, err := New(ctx, dataset.Finals(), WithLazyAggregation())
			So(err, ShouldBeNil)

			Convey("Then nothing is computed until the first query", func() {
				So(svc.agg.Builds(), ShouldEqual, 0)
				svc.WinsFor(ctx, "Brazil")
				svc.WinsFor(ctx, "Spain")
				So(svc.agg.Builds(), ShouldEqual, 1)
			})
		})

		Convey("When the records are malformed", func() {
			records := dataset.Finals()
			records[3].RunnerUp = records[3].Winner
			svc, err := New(ctx, records)

			Convey("Then construction fails with a validation error", func() {
				So(svc, ShouldBeNil)
				So(errors.Is(err, repository.ErrValidation), ShouldBeTrue)
			})
		})

		Convey("When the records are empty", func() {
			svc, err := New(ctx, nil)

			Convey("Then construction fails", func() {
				So(svc, ShouldBeNil)
				So(errors.Is(err, repository.ErrEmptyStore), ShouldBeTrue)
			})
		})
	})
}

func TestWinsFor(t *testing.T) {
	Convey("Given a service over the canonical finals", t, func() {
		ctx := context.Background()
		svc := newTestService(t)

		Convey("When asking for Brazil", func() {
			r := svc.WinsFor(ctx, "Brazil")

			Convey("Then five wins are found", func() {
				So(r, ShouldResemble, model.WinsResult{Entity: "Brazil", Count: 5, Found: true})
			})
		})

		Convey("When asking for an entity that never won", func() {
			r := svc.WinsFor(ctx, "Canada")

			Convey("Then the result is absent with a zero count", func() {
				So(r.Found, ShouldBeFalse)
				So(r.Count, ShouldEqual, 0)
				So(r.Entity, ShouldEqual, "Canada")
			})
		})

		Convey("When asking for a runner-up that never won", func() {
			r := svc.WinsFor(ctx, "Netherlands")

			Convey("Then the result is absent", func() {
				So(r.Found, ShouldBeFalse)
			})
		})

		Convey("When asking with the empty string or a different case", func() {
			empty := svc.WinsFor(ctx, "")
			lower := svc.WinsFor(ctx, "brazil")

			Convey("Then neither matches", func() {
				So(empty.Found, ShouldBeFalse)
				So(lower.Found, ShouldBeFalse)
			})
		})

		Convey("When asking for every entity in the selections", func() {
			records := dataset.Finals()

			Convey("Then each count equals the number of records it won", func() {
				for _, entity := range svc.Selections(ctx).Entities {
					expected := 0
					for _, rec := range records {
						if rec.Winner == entity {
							expected++
						}
					}
					r := svc.WinsFor(ctx, entity)
					So(r.Found, ShouldBeTrue)
					So(r.Count, ShouldEqual, expected)
				}
			})
		})
	})
}

func TestResultFor(t *testing.T) {
	Convey("Given a service over the canonical finals", t, func() {
		ctx := context.Background()
		svc := newTestService(t)

		Convey("When asking for 2022", func() {
			r := svc.ResultFor(ctx, 2022)

			Convey("Then Argentina beat France", func() {
				So(r, ShouldResemble, model.ResultLookup{Year: 2022, Winner: "Argentina", RunnerUp: "France", Found: true})
			})
		})

		Convey("When asking for a year without a final", func() {
			r := svc.ResultFor(ctx, 2023)

			Convey("Then nothing is found and no names leak", func() {
				So(r.Found, ShouldBeFalse)
				So(r.Year, ShouldEqual, 2023)
				So(r.Winner, ShouldBeEmpty)
				So(r.RunnerUp, ShouldBeEmpty)
			})
		})

		Convey("When asking for nonsensical years", func() {
			Convey("Then the lookup is still total", func() {
				for _, year := range []int{0, -1, 1942, 1 << 30} {
					So(svc.ResultFor(ctx, year).Found, ShouldBeFalse)
				}
			})
		})

		Convey("When asking for every stored year", func() {
			Convey("Then each record round-trips exactly", func() {
				for _, rec := range dataset.Finals() {
					r := svc.ResultFor(ctx, rec.Year)
					So(r.Found, ShouldBeTrue)
					So(r.Winner, ShouldEqual, rec.Winner)
					So(r.RunnerUp, ShouldEqual, rec.RunnerUp)
				}
			})
		})
	})
}

func TestChoropleth(t *testing.T) {
	Convey("Given a service over the canonical finals", t, func() {
		ctx := context.Background()
		svc := newTestService(t)

		Convey("When exporting the map data", func() {
			data := svc.ChoroplethData(ctx)

			Convey("Then exactly the eight winners are present", func() {
				So(data, ShouldResemble, []model.WinCount{
					{Entity: "Brazil", Count: 5},
					{Entity: "Germany", Count: 4},
					{Entity: "Italy", Count: 4},
					{Entity: "Argentina", Count: 3},
					{Entity: "France", Count: 2},
					{Entity: "Uruguay", Count: 2},
					{Entity: "England", Count: 1},
					{Entity: "Spain", Count: 1},
				})
			})

			Convey("And the counts sum to the number of editions", func() {
				sum := 0
				for _, wc := range data {
					So(wc.Count, ShouldBeGreaterThanOrEqualTo, 1)
					sum += wc.Count
				}
				So(sum, ShouldEqual, len(dataset.Finals()))
			})

			Convey("And repeated exports are identical", func() {
				So(svc.ChoroplethData(ctx), ShouldResemble, data)
			})
		})

		Convey("When building the complete map input", func() {
			c := svc.Choropleth(ctx)

			Convey("Then it carries the rendering hints", func() {
				So(c.Title, ShouldEqual, "Number of FIFA World Cups Won by Country")
				So(c.ColorScaleName, ShouldEqual, DefaultColorScale)
				So(c.LocationMode, ShouldEqual, types.LocationModeCountryNames)
				So(c.Data, ShouldHaveLength, 8)
			})
		})

		Convey("When a custom title and color scale are configured", func() {
			custom := newTestService(t, WithMapTitle("Titles"), WithColorScale("Viridis"))
			c := custom.Choropleth(ctx)

			Convey("Then they are used", func() {
				viridis, _ := types.ColorScale("Viridis")
				So(c.Title, ShouldEqual, "Titles")
				So(c.ColorScaleName, ShouldEqual, "Viridis")
				So(c.ColorScale, ShouldResemble, viridis)
			})
		})

		Convey("When the map input is encoded for the browser", func() {
			b, err := json.Marshal(svc.Choropleth(ctx))
			So(err, ShouldBeNil)
			var raw struct {
				ColorScale [][]any `json:"color_scale"`
			}
			So(json.Unmarshal(b, &raw), ShouldBeNil)

			Convey("Then the color scale is explicit Plasma stops, not a name", func() {
				So(raw.ColorScale, ShouldHaveLength, 10)
				So(raw.ColorScale[0], ShouldResemble, []any{0.0, "#0d0887"})
				So(raw.ColorScale[9], ShouldResemble, []any{1.0, "#f0f921"})
			})
		})

		Convey("When an unknown color scale is configured", func() {
			c := newTestService(t, WithColorScale("Jet")).Choropleth(ctx)

			Convey("Then the default scale is used", func() {
				plasma, _ := types.ColorScale(DefaultColorScale)
				So(c.ColorScaleName, ShouldEqual, DefaultColorScale)
				So(c.ColorScale, ShouldResemble, plasma)
			})
		})

		Convey("When a caller mutates the returned stops", func() {
			c := svc.Choropleth(ctx)
			c.ColorScale[0].Color = "#ffffff"

			Convey("Then later exports are unaffected", func() {
				So(svc.Choropleth(ctx).ColorScale[0].Color, ShouldEqual, "#0d0887")
			})
		})
	})
}

func TestSelections(t *testing.T) {
	Convey("Given a service over the canonical finals", t, func() {
		ctx := context.Background()

		Convey("When using the default selections", func() {
			sel := newTestService(t).Selections(ctx)

			Convey("Then the defaults match the dashboard", func() {
				So(sel.DefaultEntity, ShouldEqual, "Brazil")
				So(sel.DefaultYear, ShouldEqual, 2022)
			})

			Convey("And entities and years are listed in order", func() {
				So(sel.Entities, ShouldResemble, []string{
					"Argentina", "Brazil", "England", "France", "Germany", "Italy", "Spain", "Uruguay",
				})
				So(sel.Years, ShouldHaveLength, 22)
				So(sel.Years[0], ShouldEqual, 1930)
				So(sel.Years[len(sel.Years)-1], ShouldEqual, 2022)
			})
		})

		Convey("When the configured defaults are not in the dataset", func() {
			sel := newTestService(t, WithDefaultEntity("Canada"), WithDefaultYear(1942)).Selections(ctx)

			Convey("Then the first entity and latest year are used", func() {
				So(sel.DefaultEntity, ShouldEqual, "Argentina")
				So(sel.DefaultYear, ShouldEqual, 2022)
			})
		})

		Convey("When the configured defaults are valid", func() {
			sel := newTestService(t, WithDefaultEntity("Italy"), WithDefaultYear(1982)).Selections(ctx)

			Convey("Then they are kept", func() {
				So(sel.DefaultEntity, ShouldEqual, "Italy")
				So(sel.DefaultYear, ShouldEqual, 1982)
			})
		})

		Convey("When a caller mutates the returned selections", func() {
			svc := newTestService(t)
			sel := svc.Selections(ctx)
			sel.Entities[0] = "Canada"
			sel.Years[0] = 1

			Convey("Then later selections are unaffected", func() {
				again := svc.Selections(ctx)
				So(again.Entities[0], ShouldEqual, "Argentina")
				So(again.Years[0], ShouldEqual, 1930)
			})
		})
	})
}

func TestDescribe(t *testing.T) {
	Convey("Given a service over the canonical finals", t, func() {
		ctx := context.Background()
		svc := newTestService(t)

		Convey("Then wins are described", func() {
			So(svc.DescribeWins(svc.WinsFor(ctx, "Brazil")), ShouldEqual, "Brazil has won the World Cup 5 time(s).")
			So(svc.DescribeWins(svc.WinsFor(ctx, "Canada")), ShouldEqual, "Canada has never won the World Cup.")
		})

		Convey("And results are described", func() {
			So(svc.DescribeResult(svc.ResultFor(ctx, 2022)), ShouldEqual,
				"In 2022, Argentina won the World Cup. Runner-up: France.")
			So(svc.DescribeResult(svc.ResultFor(ctx, 2023)), ShouldEqual, "No data available for 2023.")
		})
	})
}

func TestDashboard(t *testing.T) {
	Convey("Given the page text", t, func() {
		ctx := context.Background()

		Convey("When the locale is English", func() {
			d := newTestService(t).Dashboard(ctx)

			Convey("Then the dashboard layout text is used", func() {
				So(d, ShouldResemble, types.Dashboard{
					Title:        "FIFA World Cup Finals Dashboard",
					MapHeading:   "Choropleth Map of World Cup Winners",
					EntityPrompt: "Select a country to see number of wins:",
					YearPrompt:   "Select a year to see final match result:",
				})
			})
		})

		Convey("When the locale is Spanish", func() {
			d := newTestService(t, WithLocale(language.Spanish)).Dashboard(ctx)

			Convey("Then the heading is translated", func() {
				So(d.Title, ShouldEqual, "Panel de finales de la Copa Mundial de la FIFA")
			})
		})
	})
}

func TestGetStats(t *testing.T) {
	Convey("Given a service over the canonical finals", t, func() {
		svc := newTestService(t)

		Convey("When getting statistics", func() {
			stats := svc.GetStats()

			Convey("Then the dataset figures are reported", func() {
				So(stats["editions"], ShouldEqual, 22)
				So(stats["winners"], ShouldEqual, 8)
				So(stats["aggregatedRecords"], ShouldEqual, 22)
				So(stats["locale"], ShouldEqual, "en")
				So(stats["defaultEntity"], ShouldEqual, "Brazil")
				So(stats["defaultYear"], ShouldEqual, 2022)
				So(stats["colorScale"], ShouldEqual, "Plasma")
			})
		})
	})
}

func TestConcurrentQueries(t *testing.T) {
	Convey("Given a lazily aggregated service", t, func() {
		ctx := context.Background()
		svc := newTestService(t, WithLazyAggregation())

		Convey("When many viewers query at once", func() {
			var wg sync.WaitGroup
			wins := make([]model.WinsResult, 16)
			results := make([]model.ResultLookup, 16)
			for i := range wins {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					wins[i] = svc.WinsFor(ctx, "Germany")
					results[i] = svc.ResultFor(ctx, 2014)
				}(i)
			}
			wg.Wait()

			Convey("Then every viewer sees the same answers", func() {
				for i := range wins {
					So(wins[i].Count, ShouldEqual, 4)
					So(results[i].Winner, ShouldEqual, "Germany")
					So(results[i].RunnerUp, ShouldEqual, "Argentina")
				}
				So(svc.agg.Builds(), ShouldEqual, 1)
			})
		})
	})
}
