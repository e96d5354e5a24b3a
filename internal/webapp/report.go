package webapp

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/dracarys/library/internal/domain/report"
	"github.com/gin-gonic/gin"
)

// exportFilename is the download name of the report export
const exportFilename = "library_report.json"

// ReportData holds every dashboard figure with its own fetch outcome, so
// one failed figure does not blank the page
type ReportData struct {
	UniqueBooks    View[int64]
	TotalBooks     View[int64]
	AvailableBooks View[int64]
	TotalBorrows   View[int64]
	TotalMembers   View[int64]
	BooksByGenre   View[[]report.GenreBookCount]
	Weekly         View[*report.WeeklyStats]
}

// FetchReport pulls all figures from the API in parallel
func (s *Server) FetchReport(ctx context.Context) *ReportData {
	data := &ReportData{}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	count := func(dst *View[int64], fetch func(context.Context) (int64, error)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := fetch(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				*dst = Failed[int64](err)
				return
			}
			*dst = Ready(n)
		}()
	}

	count(&data.UniqueBooks, s.api.UniqueBookCount)
	count(&data.TotalBooks, s.api.TotalBookCount)
	count(&data.AvailableBooks, s.api.AvailableBookCount)
	count(&data.TotalBorrows, s.api.BorrowCount)
	count(&data.TotalMembers, s.api.UserCount)

	wg.Add(2)
	go func() {
		defer wg.Done()
		counts, err := s.api.BooksPerGenre(ctx)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			data.BooksByGenre = Failed[[]report.GenreBookCount](err)
			return
		}
		data.BooksByGenre = Ready(counts)
	}()
	go func() {
		defer wg.Done()
		stats, err := s.api.WeeklyStats(ctx)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			data.Weekly = Failed[*report.WeeklyStats](err)
			return
		}
		data.Weekly = Ready(stats)
	}()

	wg.Wait()
	return data
}

// Dashboard renders the dashboard figures
func (s *Server) Dashboard(c *gin.Context) {
	data := s.FetchReport(c.Request.Context())
	s.rememberReport(data)

	c.HTML(http.StatusOK, "dashboard.tmpl", gin.H{
		"Page":   s.page(),
		"Report": data,
	})
}

// ReportPage renders the report view with the export link
func (s *Server) ReportPage(c *gin.Context) {
	data := s.FetchReport(c.Request.Context())
	s.rememberReport(data)

	c.HTML(http.StatusOK, "report.tmpl", gin.H{
		"Page":   s.page(),
		"Report": data,
	})
}

// ReportExport downloads the last rendered report as JSON without going
// back to the API. Visiting the report page first is required.
func (s *Server) ReportExport(c *gin.Context) {
	s.mu.Lock()
	data := s.lastReport
	s.mu.Unlock()

	if data == nil {
		c.HTML(http.StatusOK, "report.tmpl", gin.H{
			"Page":   s.page(),
			"Notice": "Load the report before exporting it",
		})
		return
	}

	buf, err := json.MarshalIndent(BuildExport(data), "", "  ")
	if err != nil {
		c.String(http.StatusInternalServerError, "export failed")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	c.Data(http.StatusOK, "application/json", buf)
}

func (s *Server) rememberReport(data *ReportData) {
	s.mu.Lock()
	s.lastReport = data
	s.mu.Unlock()
}

// BuildExport flattens the report into the export document. Only figures
// that actually loaded appear; failed ones are left out rather than
// exported as zeros.
func BuildExport(data *ReportData) map[string]any {
	out := make(map[string]any)

	put := func(key string, v View[int64]) {
		if v.OK() {
			out[key] = v.Data
		}
	}
	put("totalUniqueBooks", data.UniqueBooks)
	put("totalBooks", data.TotalBooks)
	put("availableBooks", data.AvailableBooks)
	put("totalBorrows", data.TotalBorrows)
	put("totalMembers", data.TotalMembers)

	if data.BooksByGenre.OK() {
		out["booksByGenresData"] = data.BooksByGenre.Data
	}
	if data.Weekly.OK() && data.Weekly.Data != nil {
		days := data.Weekly.Data.XAxis.Data
		var counts []int64
		if len(data.Weekly.Data.Series) > 0 {
			counts = data.Weekly.Data.Series[0].Data
		}
		weekly := make([]map[string]any, 0, len(days))
		for i, day := range days {
			var n int64
			if i < len(counts) {
				n = counts[i]
			}
			weekly = append(weekly, map[string]any{
				"day":        day,
				"borrowings": n,
			})
		}
		out["weeklyBorrowingsData"] = weekly
	}

	return out
}
