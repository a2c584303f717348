package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/elearning-backend/middleware"
	"github.com/vnkhanh/elearning-backend/store"
)

type StudentIDInput struct {
	StudentID string `json:"studentId" form:"studentId" validate:"required,uuid"`
}

// GetStudentsByCourseID trả khoá học kèm danh sách học viên đã ghi danh.
func (h *Controller) GetStudentsByCourseID(c *gin.Context) {
	id, err := store.ParseID(c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Course not found")
		return
	}
	course, err := h.store.ListCourseStudents(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		h.respondError(c, err, "Course not found")
		return
	}

	resp := h.toCourseResponse(*course)
	ok(c, "Get Students by Course Success", gin.H{
		"course":   resp,
		"students": h.toStudentResponses(course.Students),
	})
}

func (h *Controller) PostStudentToCourse(c *gin.Context) {
	h.changeEnrollment(c, true)
}

func (h *Controller) DeleteStudentFromCourse(c *gin.Context) {
	h.changeEnrollment(c, false)
}

func (h *Controller) changeEnrollment(c *gin.Context, enroll bool) {
	input := middleware.Payload[StudentIDInput](c)
	ctx := c.Request.Context()
	managerID := currentUser(c).ID

	course, found := h.ensureOwnedCourse(c, c.Param("id"))
	if !found {
		return
	}

	studentID, err := store.ParseID(input.StudentID)
	if err != nil {
		h.respondError(c, err, "Student not found")
		return
	}
	if _, err := h.store.GetStudent(ctx, managerID, studentID); err != nil {
		h.respondError(c, err, "Student not found")
		return
	}

	if enroll {
		err = h.store.EnrollStudent(ctx, course.ID, studentID)
	} else {
		err = h.store.UnenrollStudent(ctx, course.ID, studentID)
	}
	if err != nil {
		h.respondError(c, err, "")
		return
	}

	if enroll {
		ok(c, "Add Student to Course Success", nil)
		return
	}
	ok(c, "Delete Student from Course Success", nil)
}
