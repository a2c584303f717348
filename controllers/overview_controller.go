package controllers

import (
	"github.com/gin-gonic/gin"
)

func (h *Controller) GetOverviews(c *gin.Context) {
	o, err := h.store.Overview(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.respondError(c, err, "")
		return
	}

	ok(c, "Get overview success", gin.H{
		"totalCourses":  o.TotalCourses,
		"totalStudents": o.TotalStudents,
		"totalVideos":   o.TotalVideos,
		"totalTexts":    o.TotalTexts,
		"courses":       h.toCourseResponses(o.Courses),
		"students":      h.toStudentResponses(o.Students),
	})
}
