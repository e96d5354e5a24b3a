package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBucketByWeekday(t *testing.T) {
	sunday := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC) // a Sunday
	dates := []time.Time{
		sunday,
		sunday.Add(24 * time.Hour),     // Monday
		sunday.Add(24 * time.Hour),     // same Monday, later fetch order
		sunday.Add(6 * 24 * time.Hour), // Saturday
	}

	stats := BucketByWeekday(dates)

	assert.Equal(t, Weekdays, stats.XAxis.Data)
	assert.Len(t, stats.Series, 1)
	assert.Equal(t, []int64{1, 2, 0, 0, 0, 0, 1}, stats.Series[0].Data)
}

func TestBucketByWeekday_Empty(t *testing.T) {
	stats := BucketByWeekday(nil)

	assert.Equal(t, []int64{0, 0, 0, 0, 0, 0, 0}, stats.Series[0].Data)
}
