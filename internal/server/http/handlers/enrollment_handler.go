package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/coursemart/internal/server/http/dto"
)

// EnrollmentHandler exposes the user's purchased courses.
type EnrollmentHandler struct {
	facade EnrollmentFacade
}

// NewEnrollmentHandler constructs EnrollmentHandler.
func NewEnrollmentHandler(facade EnrollmentFacade) *EnrollmentHandler {
	return &EnrollmentHandler{facade: facade}
}

// List handles GET /api/enrollments.
func (h *EnrollmentHandler) List(c *gin.Context) {
	enrollments, err := h.facade.Enrollments(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for _, e := range enrollments {
		response = append(response, toEnrollmentResponse(e))
	}
	respond(c, http.StatusOK, response)
}

// Status handles GET /api/enrollments/:courseId.
func (h *EnrollmentHandler) Status(c *gin.Context) {
	courseID := c.Param("courseId")
	enrolled, err := h.facade.IsEnrolled(c.Request.Context(), CurrentUserID(c), courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, dto.EnrollmentStatusResponse{CourseID: courseID, Enrolled: enrolled})
}
