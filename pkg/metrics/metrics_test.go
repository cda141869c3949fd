package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options on a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then collectors use the finals namespace", func() {
				So(manager, ShouldNotBeNil)
				manager.editionsTotal.Set(22)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(families, ShouldNotBeEmpty)

				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "finals_dashboard_editions_total")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithLatencyBuckets([]float64{0.1, 1}),
				WithHTTPBuckets([]float64{1, 10}),
				WithConstLabels(prometheus.Labels{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options are applied", func() {
				So(manager.namespace, ShouldEqual, "test")
				So(manager.subsystem, ShouldEqual, "unit")
				So(manager.latencyBuckets, ShouldResemble, []float64{0.1, 1})
				So(manager.httpBuckets, ShouldResemble, []float64{1, 10})
				So(manager.constLabels["env"], ShouldEqual, "test")
			})
		})

		Convey("When options receive empty values", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithLatencyBuckets(nil),
				WithHTTPBuckets([]float64{}),
				WithConstLabels(nil),
				WithPrometheusRegistry(registry),
			)

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "finals")
				So(manager.subsystem, ShouldEqual, "dashboard")
				So(manager.latencyBuckets, ShouldResemble, defaultLatencyBuckets)
				So(manager.httpBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording queries", func() {
			before := testutil.ToFloat64(globalManager.queries.WithLabelValues(KindWins, OutcomeFound))
			RecordQuery(KindWins, OutcomeFound)
			RecordQuery(KindWins, OutcomeFound)

			Convey("Then the labelled counter increases", func() {
				after := testutil.ToFloat64(globalManager.queries.WithLabelValues(KindWins, OutcomeFound))
				So(after-before, ShouldEqual, 2)
			})
		})

		Convey("When setting dataset gauges", func() {
			UpdateEditionsTotal(22)
			UpdateWinnersTotal(8)

			Convey("Then gauges hold the latest values", func() {
				So(testutil.ToFloat64(globalManager.editionsTotal), ShouldEqual, 22)
				So(testutil.ToFloat64(globalManager.winnersTotal), ShouldEqual, 8)
			})
		})

		Convey("When recording aggregation builds", func() {
			before := testutil.ToFloat64(globalManager.aggregationBuilds)
			RecordAggregationBuild(0.02)

			Convey("Then the build counter increases", func() {
				So(testutil.ToFloat64(globalManager.aggregationBuilds)-before, ShouldEqual, 1)
			})
		})

		Convey("When recording validation failures", func() {
			before := testutil.ToFloat64(globalManager.validationFailures)
			RecordValidationFailures(3)

			Convey("Then the counter adds them all", func() {
				So(testutil.ToFloat64(globalManager.validationFailures)-before, ShouldEqual, 3)
			})
		})

		Convey("When recording the remaining series", func() {
			Convey("Then nothing panics", func() {
				So(func() {
					RecordQueryLatency(KindResult, 0.004)
					RecordToolCall("wins_for", OutcomeFound)
					RecordHTTPRequest("wins", "GET", "200")
					RecordHTTPRequestDuration("wins", "GET", "200", 1.0)
					RecordErrorByType("client_error", "medium")
					RecordErrorByEndpoint("results", "GET", "client_error")
					RecordErrorLatency("http", "client_error", 0.5)
					UpdateSystemMemoryUsage(1024)
					UpdateSystemGoroutineCount(10)
					RecordSystemGCPauseTime(0.3)
				}, ShouldNotPanic)
			})
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given metrics recorded from many goroutines", t, func() {
		before := testutil.ToFloat64(globalManager.queries.WithLabelValues(KindResult, OutcomeAbsent))
		done := make(chan bool, 10)
		for i := 0; i < 10; i++ {
			go func() {
				for j := 0; j < 100; j++ {
					RecordQuery(KindResult, OutcomeAbsent)
					RecordQueryLatency(KindResult, float64(j)/1000)
				}
				done <- true
			}()
		}
		for i := 0; i < 10; i++ {
			<-done
		}

		Convey("Then every increment is counted", func() {
			after := testutil.ToFloat64(globalManager.queries.WithLabelValues(KindResult, OutcomeAbsent))
			So(after-before, ShouldEqual, 1000)
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the custom registry", t, func() {
		Convey("Then it gathers the service metrics", func() {
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			So(families, ShouldNotBeEmpty)
		})
	})
}
