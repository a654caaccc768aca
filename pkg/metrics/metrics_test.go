package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			manager := NewManager()

			Convey("Then it owns a fresh registry", func() {
				So(manager, ShouldNotBeNil)
				So(manager.Registry(), ShouldNotBeNil)
				So(manager.Registry(), ShouldNotEqual, prometheus.DefaultRegisterer)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{0.1, 1}),
				WithRegistry(registry),
			)
			manager.RecordPairs(1)

			Convey("Then metrics use the custom names and registry", func() {
				So(manager.Registry(), ShouldEqual, registry)
				count, err := testutil.GatherAndCount(registry, "test_unit_pairs_total")
				So(err, ShouldBeNil)
				So(count, ShouldEqual, 1)
			})
		})

		Convey("When creating two managers", func() {
			Convey("Then they do not collide on registration", func() {
				So(func() {
					NewManager()
					NewManager()
				}, ShouldNotPanic)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a manager", t, func() {
		m := NewManager()

		Convey("When recording fetches", func() {
			m.RecordFetch("RAC", nil, 200*time.Millisecond)
			m.RecordFetch("RAC", errors.New("404"), time.Second)
			m.RecordFetch("FP4", nil, time.Second)
			m.AddFetchedBytes(1024)
			m.AddFetchedBytes(-1)

			Convey("Then results are counted per kind", func() {
				So(testutil.ToFloat64(m.fetches.WithLabelValues("RAC", ResultOK)), ShouldEqual, 1)
				So(testutil.ToFloat64(m.fetches.WithLabelValues("RAC", ResultFailed)), ShouldEqual, 1)
				So(testutil.ToFloat64(m.fetches.WithLabelValues("FP4", ResultOK)), ShouldEqual, 1)
				So(testutil.ToFloat64(m.fetchBytes), ShouldEqual, 1024)
				So(testutil.CollectAndCount(m.fetchDuration), ShouldEqual, 1)
			})
		})

		Convey("When recording events and riders", func() {
			m.RecordEvent("ok", time.Second)
			m.RecordEvent("practice_failed", time.Second)
			m.RecordEvent("ok", time.Second)
			m.RecordRiders(20, 2)
			m.RecordPairs(18)

			Convey("Then counters reflect the run", func() {
				So(testutil.ToFloat64(m.events.WithLabelValues("ok")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.events.WithLabelValues("practice_failed")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.riders.WithLabelValues("averaged")), ShouldEqual, 20)
				So(testutil.ToFloat64(m.riders.WithLabelValues("degenerate")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.pairs), ShouldEqual, 18)
			})
		})

		Convey("When the manager is nil", func() {
			var nilManager *Manager

			Convey("Then recording is a no-op", func() {
				So(func() {
					nilManager.RecordFetch("RAC", nil, time.Second)
					nilManager.AddFetchedBytes(1)
					nilManager.RecordEvent("ok", time.Second)
					nilManager.RecordRiders(1, 1)
					nilManager.RecordPairs(1)
				}, ShouldNotPanic)
				So(nilManager.WriteTextfile("ignored.prom"), ShouldBeNil)
			})
		})
	})
}

func TestWriteTextfile(t *testing.T) {
	Convey("Given a manager with recorded metrics", t, func() {
		m := NewManager()
		m.RecordPairs(3)
		dir := t.TempDir()

		Convey("When exporting to a textfile", func() {
			path := filepath.Join(dir, "motopace.prom")
			err := m.WriteTextfile(path)

			Convey("Then the file holds the exposition text", func() {
				So(err, ShouldBeNil)
				data, readErr := os.ReadFile(path)
				So(readErr, ShouldBeNil)
				So(string(data), ShouldContainSubstring, "motopace_pipeline_pairs_total 3")
			})
		})

		Convey("When the target directory does not exist", func() {
			err := m.WriteTextfile(filepath.Join(dir, "missing", "motopace.prom"))

			Convey("Then an export error is returned", func() {
				So(errors.Is(err, ErrExport), ShouldBeTrue)
			})
		})

		Convey("When no path is configured", func() {
			So(m.WriteTextfile(""), ShouldBeNil)
		})
	})
}
