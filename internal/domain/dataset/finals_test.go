package dataset_test

import (
	"testing"

	"github.com/okian/finals/internal/domain/dataset"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFinals(t *testing.T) {
	Convey("Given the canonical finals", t, func() {
		records := dataset.Finals()

		Convey("Then every edition from 1930 to 2022 is present", func() {
			So(records, ShouldHaveLength, 22)
			So(records[0].Year, ShouldEqual, 1930)
			So(records[len(records)-1].Year, ShouldEqual, 2022)
		})

		Convey("And years are strictly increasing", func() {
			for i := 1; i < len(records); i++ {
				So(records[i].Year, ShouldBeGreaterThan, records[i-1].Year)
			}
		})

		Convey("And each call returns an independent copy", func() {
			records[0].Winner = "Nowhere"
			again := dataset.Finals()
			So(again[0].Winner, ShouldEqual, "Uruguay")
		})
	})
}
