package handler

import (
	"github.com/dracarys/library/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// GenreHandler serves the genre endpoints
type GenreHandler struct {
	BaseHandler
	genreService *catalog.GenreService
}

// NewGenreHandler creates a new GenreHandler
func NewGenreHandler(genreService *catalog.GenreService) *GenreHandler {
	return &GenreHandler{genreService: genreService}
}

// List handles GET /genres
func (h *GenreHandler) List(c *gin.Context) {
	genres, err := h.genreService.List(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, genres)
}

// ListWithBooks handles GET /genres-with-books: every genre with its books
// nested, the shape the catalog page's filter sidebar consumes
func (h *GenreHandler) ListWithBooks(c *gin.Context) {
	genres, err := h.genreService.ListWithBooks(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, genres)
}
