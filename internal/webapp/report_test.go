package webapp

import (
	"errors"
	"testing"

	"github.com/dracarys/library/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildExport(t *testing.T) {
	t.Run("includes loaded figures under their export keys", func(t *testing.T) {
		data := &ReportData{
			UniqueBooks:    Ready[int64](12),
			TotalBooks:     Ready[int64](40),
			AvailableBooks: Ready[int64](33),
			TotalBorrows:   Ready[int64](7),
			TotalMembers:   Ready[int64](5),
			BooksByGenre: Ready([]report.GenreBookCount{
				{GenreName: "Romance", BookCount: 4},
			}),
			Weekly: Ready(&report.WeeklyStats{
				XAxis:  report.Axis{Data: report.Weekdays},
				Series: []report.Series{{Data: []int64{1, 0, 0, 2, 0, 0, 0}}},
			}),
		}

		out := BuildExport(data)

		assert.Equal(t, int64(12), out["totalUniqueBooks"])
		assert.Equal(t, int64(40), out["totalBooks"])
		assert.Equal(t, int64(33), out["availableBooks"])
		assert.Equal(t, int64(7), out["totalBorrows"])
		assert.Equal(t, int64(5), out["totalMembers"])

		weekly, ok := out["weeklyBorrowingsData"].([]map[string]any)
		require.True(t, ok)
		require.Len(t, weekly, 7)
		assert.Equal(t, "Sunday", weekly[0]["day"])
		assert.Equal(t, int64(1), weekly[0]["borrowings"])
		assert.Equal(t, "Wednesday", weekly[3]["day"])
		assert.Equal(t, int64(2), weekly[3]["borrowings"])
	})

	t.Run("failed figures are left out", func(t *testing.T) {
		data := &ReportData{
			UniqueBooks:  Ready[int64](12),
			TotalBooks:   Failed[int64](errors.New("boom")),
			BooksByGenre: Failed[[]report.GenreBookCount](errors.New("boom")),
		}

		out := BuildExport(data)

		assert.Contains(t, out, "totalUniqueBooks")
		assert.NotContains(t, out, "totalBooks")
		assert.NotContains(t, out, "booksByGenresData")
		assert.NotContains(t, out, "weeklyBorrowingsData")
	})
}
