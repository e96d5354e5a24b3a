package report

import (
	"context"
	"time"
)

// GenreBookCount is one bar of the genre distribution chart
type GenreBookCount struct {
	GenreName string `gorm:"column:genre_name" json:"genre_name"`
	BookCount int64  `gorm:"column:book_count" json:"book_count"`
}

// Axis and Series mirror the chart-oriented shape the weekly stats endpoint
// has always produced: xAxis.data holds day names, series[0].data the
// matching counts.
type Axis struct {
	Data []string `json:"data"`
}

type Series struct {
	Data []int64 `json:"data"`
}

// WeeklyStats is the wire shape of the weekly borrowings figure
type WeeklyStats struct {
	XAxis  Axis     `json:"xAxis"`
	Series []Series `json:"series"`
}

// Weekdays in the order the chart renders them
var Weekdays = []string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// BucketByWeekday folds borrow timestamps into per-weekday counts,
// Sunday first.
func BucketByWeekday(dates []time.Time) WeeklyStats {
	counts := make([]int64, len(Weekdays))
	for _, d := range dates {
		counts[int(d.Weekday())]++
	}
	return WeeklyStats{
		XAxis:  Axis{Data: Weekdays},
		Series: []Series{{Data: counts}},
	}
}

// StatsRepository defines the aggregate queries behind the dashboard and
// report figures.
type StatsRepository interface {
	// UniqueBooks counts catalog rows.
	UniqueBooks(ctx context.Context) (int64, error)
	// TotalCopies sums book_quantity over the catalog.
	TotalCopies(ctx context.Context) (int64, error)
	// AvailableCopies sums available_quantity over the catalog.
	AvailableCopies(ctx context.Context) (int64, error)
	TotalBorrows(ctx context.Context) (int64, error)
	TotalMembers(ctx context.Context) (int64, error)
	BooksPerGenre(ctx context.Context) ([]GenreBookCount, error)
	// BorrowDatesSince returns the borrow timestamps at or after since.
	BorrowDatesSince(ctx context.Context, since time.Time) ([]time.Time, error)
}
