package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/pyhub-apps/motopace/pkg/event"
	"github.com/pyhub-apps/motopace/pkg/metrics"
	"github.com/pyhub-apps/motopace/pkg/pdf"
	"github.com/pyhub-apps/motopace/pkg/reconcile"
	. "github.com/smartystreets/goconvey/convey"
)

// sheetExtractor serves canned rows keyed by document file name and region name
type sheetExtractor map[string]map[string][][]string

func (s sheetExtractor) Extract(doc pdf.Document, region pdf.Region) ([]pdf.PageTable, error) {
	rows := s[filepath.Base(doc.Path())][region.Name]
	return []pdf.PageTable{{Page: 1, Rows: rows}}, nil
}

func fakeOpen(path string) (pdf.Document, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return pdf.NewDocument(path), nil
}

func sheets() sheetExtractor {
	return sheetExtractor{
		"2021-QAT-RAC.pdf": {"classification": {
			{"Pos", "Points", "Num", "Rider", "Nation"},
			{"1", "25", "20", "Fabio QUARTARARO", "FRA"},
			{"2", "20", "63", "Francesco BAGNAIA", "ITA"},
			{"3", "16", "43", "Jack MILLER", "AUS"},
		}},
		"2021-QAT-FP4.pdf": {"practice-left": {
			{"No 63", "63"}, {"1", "1'55.000"}, {"2", "1'54.000"}, {"3", "1'54.100"},
			{"No 20", "20"}, {"1", "1'55.000"}, {"2", "1'54.500"},
			{"No 43", "43"}, {"1", "1'55.000"}, {"2", "1'53.900"},
			{"No 99", "99"}, {"1", "1'59.000"}, {"2", "1'58.000"},
			{"No 5", "5"}, {"1", "1'55.000"}, {"2", "1'50.000 P"},
		}},
		"2021-DOH-RAC.pdf": {"classification": {
			{"1", "25", "93", "Marc MARQUEZ", "SPA"},
		}},
		"2021-DOH-FP4.pdf": {},
		"2021-POR-RAC.pdf": {"classification": {
			{"1", "25", "93", "Marc MARQUEZ", "SPA"},
		}},
		"2021-POR-FP4.pdf": {"practice-right": {
			{"No 93", "93"}, {"1", "1'40.000"}, {"2", "1'39.000"},
		}},
	}
}

func touch(path string) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		panic(err)
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		panic(err)
	}
}

func seedDataDir(dir string) {
	for _, code := range []string{"QAT", "DOH", "POR"} {
		key := event.Key{Year: 2021, Code: code}
		touch(filepath.Join(dir, "Race", key.Filename(event.Race)))
		touch(filepath.Join(dir, "FP", key.Filename(event.Practice)))
	}
	touch(filepath.Join(dir, "Race", "2021-ESP-RAC.pdf"))
	touch(filepath.Join(dir, "Race", ".gitkeep"))
	touch(filepath.Join(dir, "FP", ".gitkeep"))
}

func readFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}

func TestListEvents(t *testing.T) {
	Convey("Given a data directory with paired and unpaired documents", t, func() {
		dir := t.TempDir()
		seedDataDir(dir)

		Convey("When listing events", func() {
			keys, err := ListEvents(dir)

			Convey("Then only paired, well-named events are returned in order", func() {
				So(err, ShouldBeNil)
				So(keys, ShouldResemble, []event.Key{
					{Year: 2021, Code: "DOH"},
					{Year: 2021, Code: "POR"},
					{Year: 2021, Code: "QAT"},
				})
			})
		})

		Convey("When the practice directory is missing", func() {
			So(os.RemoveAll(filepath.Join(dir, "FP")), ShouldBeNil)
			_, err := ListEvents(dir)

			Convey("Then a data directory error is returned", func() {
				So(errors.Is(err, ErrDataDir), ShouldBeTrue)
			})
		})
	})
}

func TestDriverRun(t *testing.T) {
	Convey("Given three events where the second has an unreadable practice sheet", t, func() {
		dir := t.TempDir()
		seedDataDir(dir)
		m := metrics.NewManager()

		driver := NewDriver(dir,
			WithOpener(fakeOpen),
			WithExtractor(sheets()),
			WithRunID("run-1"),
			WithMetrics(m),
		)

		Convey("When the batch runs", func() {
			report, err := driver.Run(context.Background())

			Convey("Then the failure is isolated to its event", func() {
				So(err, ShouldBeNil)
				So(report.RunID, ShouldEqual, "run-1")
				So(len(report.Outcomes), ShouldEqual, 3)

				doh, por, qat := report.Outcomes[0], report.Outcomes[1], report.Outcomes[2]
				So(doh.Event.Code, ShouldEqual, "DOH")
				So(doh.Status, ShouldEqual, StatusPracticeFailed)
				So(errors.Is(doh.Err, pdf.ErrExtraction), ShouldBeTrue)
				So(por.Status, ShouldEqual, StatusOK)
				So(qat.Status, ShouldEqual, StatusOK)

				So(report.Count(StatusOK), ShouldEqual, 2)
				So(report.Count(StatusPracticeFailed), ShouldEqual, 1)
			})

			Convey("Then CSVs are written for the successful events only", func() {
				So(readFile(filepath.Join(dir, "2021-QAT.csv")), ShouldEqual, ",fp,race\n0,43,20\n1,63,63\n2,20,43\n")
				So(readFile(filepath.Join(dir, "2021-POR.csv")), ShouldEqual, ",fp,race\n0,93,93\n")
				_, statErr := os.Stat(filepath.Join(dir, "2021-DOH.csv"))
				So(os.IsNotExist(statErr), ShouldBeTrue)
			})

			Convey("Then degenerate riders are reported, not averaged", func() {
				qat := report.Outcomes[2]
				So(qat.Degenerate, ShouldResemble, []string{"5"})
				So(qat.Pairs, ShouldEqual, 3)
				So(qat.Output, ShouldEqual, filepath.Join(dir, "2021-QAT.csv"))
			})

			Convey("Then the run is counted in metrics", func() {
				count, gatherErr := testutil.GatherAndCount(m.Registry(), "motopace_pipeline_events_total")
				So(gatherErr, ShouldBeNil)
				So(count, ShouldEqual, 2)
			})
		})

		Convey("When the race document cannot be opened", func() {
			failing := NewDriver(dir,
				WithOpener(func(path string) (pdf.Document, error) {
					if filepath.Base(path) == "2021-POR-RAC.pdf" {
						return nil, pdf.NewExtractionError(path, "", "cannot decode document", nil)
					}
					return fakeOpen(path)
				}),
				WithExtractor(sheets()),
			)
			report, err := failing.Run(context.Background())

			Convey("Then the event is recorded as a race failure", func() {
				So(err, ShouldBeNil)
				So(report.RunID, ShouldNotBeEmpty)
				So(len(report.Outcomes), ShouldEqual, 3)
				So(report.Outcomes[1].Status, ShouldEqual, StatusRaceFailed)
				So(report.Count(StatusOK), ShouldEqual, 1)
			})
		})

		Convey("When the run is restricted to a universe", func() {
			u, uErr := event.NewUniverse(2021, 2021, []string{"QAT"})
			So(uErr, ShouldBeNil)

			report, err := NewDriver(dir, WithOpener(fakeOpen), WithExtractor(sheets()), WithUniverse(u)).Run(context.Background())

			Convey("Then other events are not touched", func() {
				So(err, ShouldBeNil)
				So(len(report.Outcomes), ShouldEqual, 1)
				So(report.Outcomes[0].Event, ShouldResemble, event.Key{Year: 2021, Code: "QAT"})
			})
		})
	})
}

func TestDriverRaceFailure(t *testing.T) {
	Convey("Given an event whose race sheet has no classified rider", t, func() {
		dir := t.TempDir()
		seedDataDir(dir)
		extractor := sheets()
		extractor["2021-POR-RAC.pdf"] = map[string][][]string{"classification": {{"Pos", "Rider"}}}

		report, err := NewDriver(dir, WithOpener(fakeOpen), WithExtractor(extractor)).Run(context.Background())

		Convey("Then the event is a race failure and the others still run", func() {
			So(err, ShouldBeNil)
			So(report.Outcomes[1].Event.Code, ShouldEqual, "POR")
			So(report.Outcomes[1].Status, ShouldEqual, StatusRaceFailed)
			So(report.Count(StatusOK), ShouldEqual, 1)
			So(report.Count(StatusPracticeFailed), ShouldEqual, 1)
		})
	})
}

func TestDriverSystemicErrors(t *testing.T) {
	Convey("Given a driver", t, func() {
		dir := t.TempDir()
		seedDataDir(dir)

		Convey("When the data directory does not exist", func() {
			_, err := NewDriver(filepath.Join(dir, "absent")).Run(context.Background())

			Convey("Then the run fails", func() {
				So(errors.Is(err, ErrDataDir), ShouldBeTrue)
			})
		})

		Convey("When an output file cannot be written", func() {
			So(os.Mkdir(filepath.Join(dir, "2021-POR.csv"), 0o755), ShouldBeNil)

			report, err := NewDriver(dir, WithOpener(fakeOpen), WithExtractor(sheets())).Run(context.Background())

			Convey("Then the run stops with an output error", func() {
				So(errors.Is(err, ErrWriteOutput), ShouldBeTrue)
				So(len(report.Outcomes), ShouldEqual, 1)
			})
		})

		Convey("When the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			report, err := NewDriver(dir, WithOpener(fakeOpen), WithExtractor(sheets())).Run(ctx)

			Convey("Then no event is processed", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
				So(report.Outcomes, ShouldBeEmpty)
			})
		})
	})
}

func TestWriteCSV(t *testing.T) {
	Convey("Given reconciled pairs", t, func() {
		path := filepath.Join(t.TempDir(), "2020-VAL.csv")

		Convey("When there are no pairs", func() {
			So(WriteCSV(path, nil), ShouldBeNil)

			Convey("Then only the header is written", func() {
				So(readFile(path), ShouldEqual, ",fp,race\n")
			})
		})

		Convey("When there are pairs", func() {
			So(WriteCSV(path, []reconcile.Pair{{FP: "36", Race: "42"}}), ShouldBeNil)

			Convey("Then rows are indexed from zero", func() {
				So(readFile(path), ShouldEqual, ",fp,race\n0,36,42\n")
			})
		})
	})
}
