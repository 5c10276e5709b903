package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/coursemart/internal/domain/model"
)

// CatalogHandler serves the public course listing.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// List handles GET /api/courses.
func (h *CatalogHandler) List(c *gin.Context) {
	filter := model.CourseFilter{
		Query:    c.Query("q"),
		Category: c.Query("category"),
		Level:    model.Level(c.Query("level")),
	}
	courses, err := h.facade.Courses(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	if courses == nil {
		courses = []model.Course{}
	}
	respond(c, http.StatusOK, courses)
}

// Get handles GET /api/courses/:id.
func (h *CatalogHandler) Get(c *gin.Context) {
	course, err := h.facade.Course(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, course)
}
