package handler

import (
	"github.com/dracarys/library/internal/application/lending"
	"github.com/dracarys/library/internal/application/report"
	"github.com/gin-gonic/gin"
)

// BorrowHandler serves the lending endpoints
type BorrowHandler struct {
	BaseHandler
	borrowService *lending.BorrowService
	statsService  *report.StatsService
}

// NewBorrowHandler creates a new BorrowHandler
func NewBorrowHandler(borrowService *lending.BorrowService, statsService *report.StatsService) *BorrowHandler {
	return &BorrowHandler{borrowService: borrowService, statsService: statsService}
}

// Create handles POST /borrows/create
func (h *BorrowHandler) Create(c *gin.Context) {
	var req lending.CreateBorrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	borrow, err := h.borrowService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, gin.H{
		"message": "Borrow created successfully",
		"borrow":  borrow,
	})
}

// List handles GET /borrows
func (h *BorrowHandler) List(c *gin.Context) {
	borrows, err := h.borrowService.List(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, borrows)
}

// Count handles GET /borrows/count
func (h *BorrowHandler) Count(c *gin.Context) {
	total, err := h.statsService.TotalBorrows(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, gin.H{"total_borrows": total})
}

// WeeklyStats handles GET /borrows/weekly-stats: the last seven days of
// borrows bucketed by weekday, in chart form
func (h *BorrowHandler) WeeklyStats(c *gin.Context) {
	stats, err := h.statsService.WeeklyStats(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, stats)
}

// ListByUser handles GET /borrows/user/:user_id
func (h *BorrowHandler) ListByUser(c *gin.Context) {
	userID, ok := h.pathID(c, "user_id")
	if !ok {
		return
	}

	borrows, err := h.borrowService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, borrows)
}

// GetByID handles GET /borrows/:id
func (h *BorrowHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	borrow, err := h.borrowService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, borrow)
}

// Return handles PUT /borrows/:id, closing the borrow. The body may carry
// an explicit return_date; an empty body means "now".
func (h *BorrowHandler) Return(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req lending.ReturnBorrowRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindError(c, err)
			return
		}
	}

	borrow, err := h.borrowService.MarkReturned(c.Request.Context(), id, req.ReturnDate)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, borrow)
}

// Delete handles DELETE /borrows/:id
func (h *BorrowHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.borrowService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
