package handler

import (
	"github.com/dracarys/library/internal/application/report"
	"github.com/gin-gonic/gin"
)

// StatsHandler serves the catalog-counter endpoints behind the dashboard
// figures
type StatsHandler struct {
	BaseHandler
	statsService *report.StatsService
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(statsService *report.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// UniqueBooks handles GET /books/unique_count
func (h *StatsHandler) UniqueBooks(c *gin.Context) {
	total, err := h.statsService.UniqueBooks(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, gin.H{"total_unique_books": total})
}

// TotalCopies handles GET /books/total-count
func (h *StatsHandler) TotalCopies(c *gin.Context) {
	total, err := h.statsService.TotalCopies(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, gin.H{"total_books": total})
}

// AvailableCopies handles GET /books/available-count
func (h *StatsHandler) AvailableCopies(c *gin.Context) {
	total, err := h.statsService.AvailableCopies(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, gin.H{"available_books": total})
}

// BooksPerGenre handles GET /books/genres/count
func (h *StatsHandler) BooksPerGenre(c *gin.Context) {
	counts, err := h.statsService.BooksPerGenre(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, counts)
}
